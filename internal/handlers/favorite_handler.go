package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
	"github.com/tavolo-app/backend/internal/repositories"
)

// FavoriteHandler handles the favorite-review toggle. Favorites are a set:
// adding an already-favorited review and removing an absent one are both
// no-ops that report success.
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	reviewRepository   repositories.ReviewRepository
	profileRepository  repositories.ProfileRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(
	favoriteRepo repositories.FavoriteRepository,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		reviewRepository:   reviewRepo,
		profileRepository:  profileRepo,
	}
}

// RegisterFavoriteRoutes registers favorite-related routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/reviews/:id/favorite", h.AddFavorite)
	g.DELETE("/reviews/:id/favorite", h.RemoveFavorite)
}

// AddFavorite appends a review to the viewer's favorites set.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	profile, reviewID, err := h.resolveToggle(c)
	if err != nil {
		return err
	}

	fav := &models.FavoriteReview{
		ProfileID: profile.ID,
		ReviewID:  reviewID,
	}
	if err := h.favoriteRepository.AddFavorite(fav); err != nil {
		// A duplicate insert means the desired state already holds.
		if !errors.Is(err, apperror.ErrConflict) {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorited": true}})
}

// RemoveFavorite removes a review from the viewer's favorites set.
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	profile, reviewID, err := h.resolveToggle(c)
	if err != nil {
		return err
	}

	if err := h.favoriteRepository.RemoveFavorite(profile.ID, reviewID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorited": false}})
}

// resolveToggle authenticates the viewer, parses the review id and verifies
// the review exists.
func (h *FavoriteHandler) resolveToggle(c echo.Context) (*models.Profile, uint, error) {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return nil, 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reviewID, err := parseIDParam(c)
	if err != nil {
		return nil, 0, err
	}

	profile, err := h.profileRepository.GetProfileByUserID(currentUserID)
	if err != nil {
		return nil, 0, httpError(err)
	}

	if _, err := h.reviewRepository.GetReviewByID(reviewID); err != nil {
		return nil, 0, httpError(err)
	}

	return profile, reviewID, nil
}
