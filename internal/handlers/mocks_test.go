package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
)

// In-memory repository doubles. They mirror the store semantics the Postgres
// implementations rely on (unique indexes, ownership-scoped writes, ordering)
// so handler behavior can be exercised without a database.

type mockProfileRepo struct {
	profiles map[string]*models.Profile // by UserID
	nextID   uint
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (m *mockProfileRepo) CreateProfile(profile *models.Profile) error {
	for _, p := range m.profiles {
		if p.UserID == profile.UserID || p.Username == profile.Username || p.Email == profile.Email {
			return apperror.Conflict("profile with this username, email or identity already exists")
		}
	}
	m.nextID++
	profile.ID = m.nextID
	stored := *profile
	m.profiles[profile.UserID] = &stored
	return nil
}

func (m *mockProfileRepo) GetProfileByUserID(userID string) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("profile", userID)
	}
	result := *p
	return &result, nil
}

func (m *mockProfileRepo) GetProfileByEmail(email string) (*models.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("profile", email)
}

func (m *mockProfileRepo) UpdateProfile(profile *models.Profile) error {
	stored := *profile
	m.profiles[profile.UserID] = &stored
	return nil
}

func (m *mockProfileRepo) SearchProfiles(query string, limit int) ([]models.Profile, error) {
	var results []models.Profile
	for _, p := range m.profiles {
		if strings.Contains(strings.ToLower(p.Username), strings.ToLower(query)) {
			results = append(results, *p)
		}
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

type mockRestaurantRepo struct {
	byPlaceID map[string]*models.Restaurant
	nextID    uint
}

func newMockRestaurantRepo() *mockRestaurantRepo {
	return &mockRestaurantRepo{byPlaceID: make(map[string]*models.Restaurant)}
}

// Upsert follows the conflict-key contract: an existing place_id keeps its
// row id and gets its fields overwritten.
func (m *mockRestaurantRepo) Upsert(restaurant *models.Restaurant) error {
	if existing, ok := m.byPlaceID[restaurant.PlaceID]; ok {
		existing.Name = restaurant.Name
		existing.Address = restaurant.Address
		existing.Latitude = restaurant.Latitude
		existing.Longitude = restaurant.Longitude
		*restaurant = *existing
		return nil
	}
	m.nextID++
	restaurant.ID = m.nextID
	stored := *restaurant
	m.byPlaceID[restaurant.PlaceID] = &stored
	return nil
}

func (m *mockRestaurantRepo) GetRestaurantByID(id uint) (*models.Restaurant, error) {
	for _, r := range m.byPlaceID {
		if r.ID == id {
			result := *r
			return &result, nil
		}
	}
	return nil, apperror.NotFound("restaurant", id)
}

type mockReviewRepo struct {
	reviews map[uint]*models.Review
	nextID  uint

	listAllCalls       int
	listByAuthorsCalls int
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[uint]*models.Review)}
}

func (m *mockReviewRepo) CreateReview(review *models.Review) error {
	m.nextID++
	review.ID = m.nextID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *mockReviewRepo) GetReviewByID(id uint) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperror.NotFound("review", id)
	}
	result := *r
	return &result, nil
}

func (m *mockReviewRepo) UpdateOwnedReview(id uint, userID string, body string, rating int) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok || r.UserID != userID {
		return nil, apperror.NotFound("review", id)
	}
	r.Body = body
	r.Rating = rating
	result := *r
	return &result, nil
}

func (m *mockReviewRepo) DeleteOwnedReview(id uint, userID string) error {
	r, ok := m.reviews[id]
	if !ok || r.UserID != userID {
		return apperror.NotFound("review", id)
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepo) ListByAuthor(userID string) ([]models.Review, error) {
	var results []models.Review
	for _, r := range m.reviews {
		if r.UserID == userID {
			results = append(results, *r)
		}
	}
	sortNewestFirst(results)
	return results, nil
}

func (m *mockReviewRepo) ListByAuthors(userIDs []string) ([]models.Review, error) {
	m.listByAuthorsCalls++
	allowed := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = true
	}
	var results []models.Review
	for _, r := range m.reviews {
		if allowed[r.UserID] {
			results = append(results, *r)
		}
	}
	sortNewestFirst(results)
	return results, nil
}

func (m *mockReviewRepo) ListAll() ([]models.Review, error) {
	m.listAllCalls++
	var results []models.Review
	for _, r := range m.reviews {
		results = append(results, *r)
	}
	sortNewestFirst(results)
	return results, nil
}

func sortNewestFirst(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}

type followPair struct {
	follower, following string
}

type mockFollowRepo struct {
	edges map[followPair]bool
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{edges: make(map[followPair]bool)}
}

func (m *mockFollowRepo) CreateFollow(follow *models.Follow) error {
	pair := followPair{follow.FollowerID, follow.FollowingID}
	if m.edges[pair] {
		return apperror.Conflict("already following this user")
	}
	m.edges[pair] = true
	return nil
}

func (m *mockFollowRepo) DeleteFollow(followerID, followingID string) error {
	delete(m.edges, followPair{followerID, followingID})
	return nil
}

func (m *mockFollowRepo) IsFollowing(followerID, followingID string) (bool, error) {
	return m.edges[followPair{followerID, followingID}], nil
}

func (m *mockFollowRepo) GetFollowersCount(userID string) (int64, error) {
	var count int64
	for pair := range m.edges {
		if pair.following == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowRepo) GetFollowingCount(userID string) (int64, error) {
	var count int64
	for pair := range m.edges {
		if pair.follower == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowRepo) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	for pair := range m.edges {
		if pair.follower == userID {
			ids = append(ids, pair.following)
		}
	}
	return ids, nil
}

type favoritePair struct {
	profileID, reviewID uint
}

type mockFavoriteRepo struct {
	entries map[favoritePair]time.Time
}

func newMockFavoriteRepo() *mockFavoriteRepo {
	return &mockFavoriteRepo{entries: make(map[favoritePair]time.Time)}
}

func (m *mockFavoriteRepo) AddFavorite(fav *models.FavoriteReview) error {
	pair := favoritePair{fav.ProfileID, fav.ReviewID}
	if _, ok := m.entries[pair]; ok {
		return apperror.Conflict("review already favorited")
	}
	m.entries[pair] = time.Now().UTC()
	return nil
}

func (m *mockFavoriteRepo) RemoveFavorite(profileID, reviewID uint) error {
	delete(m.entries, favoritePair{profileID, reviewID})
	return nil
}

func (m *mockFavoriteRepo) IsFavorite(profileID, reviewID uint) (bool, error) {
	_, ok := m.entries[favoritePair{profileID, reviewID}]
	return ok, nil
}

func (m *mockFavoriteRepo) ListFavorites(profileID uint) ([]models.FavoriteReview, error) {
	var favorites []models.FavoriteReview
	for pair, created := range m.entries {
		if pair.profileID == profileID {
			favorites = append(favorites, models.FavoriteReview{
				ProfileID: pair.profileID,
				ReviewID:  pair.reviewID,
				CreatedAt: created,
			})
		}
	}
	return favorites, nil
}

type mockPlaceSearchRepo struct {
	searches []models.PlaceSearch
}

func newMockPlaceSearchRepo() *mockPlaceSearchRepo {
	return &mockPlaceSearchRepo{}
}

func (m *mockPlaceSearchRepo) RecordSearch(_ context.Context, search *models.PlaceSearch) error {
	m.searches = append(m.searches, *search)
	return nil
}

func (m *mockPlaceSearchRepo) RecentSearches(_ context.Context, userID string, limit int64) ([]models.PlaceSearch, error) {
	var results []models.PlaceSearch
	for i := len(m.searches) - 1; i >= 0 && int64(len(results)) < limit; i-- {
		if m.searches[i].UserID == userID {
			results = append(results, m.searches[i])
		}
	}
	return results, nil
}

// seedReview inserts a review with a fixed timestamp.
func seedReview(repo *mockReviewRepo, userID string, restaurantID uint, body string, rating int, createdAt time.Time) *models.Review {
	review := &models.Review{
		UserID:       userID,
		RestaurantID: restaurantID,
		Body:         body,
		Rating:       rating,
		CreatedAt:    createdAt,
	}
	if err := repo.CreateReview(review); err != nil {
		panic(fmt.Sprintf("seeding review: %v", err))
	}
	return review
}
