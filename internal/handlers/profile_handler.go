package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo-app/backend/internal/repositories"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileRepository  repositories.ProfileRepository
	followRepository   repositories.FollowRepository
	favoriteRepository repositories.FavoriteRepository
	reviewRepository   repositories.ReviewRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(
	profileRepo repositories.ProfileRepository,
	followRepo repositories.FollowRepository,
	favoriteRepo repositories.FavoriteRepository,
	reviewRepo repositories.ReviewRepository,
) *ProfileHandler {
	return &ProfileHandler{
		profileRepository:  profileRepo,
		followRepository:   followRepo,
		favoriteRepository: favoriteRepo,
		reviewRepository:   reviewRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/profile/favorites", h.GetFavorites)
	g.GET("/users/search", h.SearchProfiles)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/reviews", h.GetUserReviews)
}

// GetProfile returns the authenticated user's profile with exact follower and
// following counts, recomputed on every call.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.profileRepository.GetProfileByUserID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	followers, err := h.followRepository.GetFollowersCount(currentUserID)
	if err != nil {
		return httpError(err)
	}
	following, err := h.followRepository.GetFollowingCount(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"profile":         profile,
			"follower_count":  followers,
			"following_count": following,
		},
	})
}

// GetUser returns another user's public profile, their counts and whether the
// viewer follows them.
func (h *ProfileHandler) GetUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID := c.Param("id")

	profile, err := h.profileRepository.GetProfileByUserID(targetID)
	if err != nil {
		return httpError(err)
	}

	followers, err := h.followRepository.GetFollowersCount(targetID)
	if err != nil {
		return httpError(err)
	}
	following, err := h.followRepository.GetFollowingCount(targetID)
	if err != nil {
		return httpError(err)
	}

	isFollowing := false
	if currentUserID != "" && currentUserID != targetID {
		isFollowing, err = h.followRepository.IsFollowing(currentUserID, targetID)
		if err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"profile":         echo.Map{"user_id": profile.UserID, "username": profile.Username},
			"follower_count":  followers,
			"following_count": following,
			"is_following":    isFollowing,
		},
	})
}

// GetUserReviews returns a user's reviews, newest first.
func (h *ProfileHandler) GetUserReviews(c echo.Context) error {
	targetID := c.Param("id")

	reviews, err := h.reviewRepository.ListByAuthor(targetID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"reviews": reviews}})
}

// SearchProfiles searches profiles by username, case-insensitively.
func (h *ProfileHandler) SearchProfiles(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	profiles, err := h.profileRepository.SearchProfiles(query, 10)
	if err != nil {
		return httpError(err)
	}

	results := make([]echo.Map, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, echo.Map{"user_id": p.UserID, "username": p.Username})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"profiles": results}})
}

// GetFavorites returns the reviews in the viewer's favorites set.
func (h *ProfileHandler) GetFavorites(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.profileRepository.GetProfileByUserID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	favorites, err := h.favoriteRepository.ListFavorites(profile.ID)
	if err != nil {
		return httpError(err)
	}

	reviews := make([]interface{}, 0, len(favorites))
	for _, f := range favorites {
		review, err := h.reviewRepository.GetReviewByID(f.ReviewID)
		if err != nil {
			continue // the review was deleted after being favorited
		}
		reviews = append(reviews, review)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"reviews": reviews}})
}
