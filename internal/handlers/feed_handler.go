package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tavolo-app/backend/internal/models"
	"github.com/tavolo-app/backend/internal/repositories"
)

// Placeholder values used when a review's author profile or restaurant record
// is missing. The review is still shown instead of being dropped.
const (
	unknownAuthor     = "unknown"
	unknownRestaurant = "Restaurant"
)

// FeedHandler composes review feeds: it joins reviews with their authors'
// profiles and restaurant records in application code, ordered newest first.
// Clients re-request on every screen focus; the server holds no feed cache.
type FeedHandler struct {
	reviewRepository     repositories.ReviewRepository
	profileRepository    repositories.ProfileRepository
	restaurantRepository repositories.RestaurantRepository
	followRepository     repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
	restaurantRepo repositories.RestaurantRepository,
	followRepo repositories.FollowRepository,
) *FeedHandler {
	return &FeedHandler{
		reviewRepository:     reviewRepo,
		profileRepository:    profileRepo,
		restaurantRepository: restaurantRepo,
		followRepository:     followRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/following", h.GetFollowingFeed)
}

// FeedItem is a review enriched with author and restaurant info. HasLocation
// is set only when both coordinates parse as finite numbers, which is the
// condition for rendering the item as a map marker.
type FeedItem struct {
	ReviewID       uint      `json:"review_id"`
	AuthorUsername string    `json:"author_username"`
	RestaurantName string    `json:"restaurant_name"`
	Body           string    `json:"body"`
	Rating         int       `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	RestaurantLat  string    `json:"restaurant_lat,omitempty"`
	RestaurantLng  string    `json:"restaurant_lng,omitempty"`
	HasLocation    bool      `json:"has_location"`
}

// GetFeed returns the global feed: every review, newest first, joined with
// author username and restaurant name.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	reviews, err := h.reviewRepository.ListAll()
	if err != nil {
		return httpError(err)
	}

	items := h.compose(reviews)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"items": items}})
}

// GetFollowingFeed returns only reviews authored by users the viewer follows.
// When the viewer follows nobody the result is empty and no review query runs.
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return httpError(err)
	}
	if len(followingIDs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"items": []FeedItem{}}})
	}

	reviews, err := h.reviewRepository.ListByAuthors(followingIDs)
	if err != nil {
		return httpError(err)
	}

	items := h.compose(reviews)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"items": items}})
}

// compose joins reviews with author profiles and restaurant records via
// lookup maps built from the unique keys in the batch. A missing join falls
// back to placeholder text rather than dropping the review.
func (h *FeedHandler) compose(reviews []models.Review) []FeedItem {
	authorIDs := make(map[string]bool)
	restaurantIDs := make(map[uint]bool)
	for _, r := range reviews {
		authorIDs[r.UserID] = true
		restaurantIDs[r.RestaurantID] = true
	}

	profileMap := make(map[string]*models.Profile)
	for uid := range authorIDs {
		if profile, err := h.profileRepository.GetProfileByUserID(uid); err == nil {
			profileMap[uid] = profile
		}
	}

	restaurantMap := make(map[uint]*models.Restaurant)
	for rid := range restaurantIDs {
		if restaurant, err := h.restaurantRepository.GetRestaurantByID(rid); err == nil {
			restaurantMap[rid] = restaurant
		}
	}

	items := make([]FeedItem, 0, len(reviews))
	for _, r := range reviews {
		item := FeedItem{
			ReviewID:       r.ID,
			AuthorUsername: unknownAuthor,
			RestaurantName: unknownRestaurant,
			Body:           r.Body,
			Rating:         r.Rating,
			CreatedAt:      r.CreatedAt,
		}
		if profile, ok := profileMap[r.UserID]; ok {
			item.AuthorUsername = profile.Username
		}
		if restaurant, ok := restaurantMap[r.RestaurantID]; ok {
			item.RestaurantName = restaurant.Name
			item.RestaurantLat = restaurant.Latitude
			item.RestaurantLng = restaurant.Longitude
			item.HasLocation = finiteCoord(restaurant.Latitude) && finiteCoord(restaurant.Longitude)
		}
		items = append(items, item)
	}
	return items
}

// finiteCoord reports whether a stored coordinate parses as a finite float.
func finiteCoord(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
