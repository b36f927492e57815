package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
	"github.com/tavolo-app/backend/internal/repositories"
)

// ReviewHandler handles review HTTP requests. All writes are scoped to the
// authenticated author; the data layer enforces ownership by matching on
// user_id, so another author's review reads as not-found.
type ReviewHandler struct {
	reviewRepository     repositories.ReviewRepository
	restaurantRepository repositories.RestaurantRepository
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewRepo repositories.ReviewRepository, restaurantRepo repositories.RestaurantRepository) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository:     reviewRepo,
		restaurantRepository: restaurantRepo,
	}
}

// RegisterReviewRoutes registers review-related routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", h.CreateReview)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
}

// validateReviewInput applies the domain rules shared by create and update:
// non-empty body and rating within bounds. Runs before any store call.
func validateReviewInput(body string, rating int) error {
	if strings.TrimSpace(body) == "" {
		return apperror.ValidationFailed("body", "review body must not be empty")
	}
	if rating < models.MinRating || rating > models.MaxRating {
		return apperror.ValidationFailed("rating", "rating must be between 1 and 5")
	}
	return nil
}

// CreateReview posts a review for an already-resolved restaurant. The caller
// must have obtained restaurant_id from the place resolver first.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateReviewInput(req.Body, req.Rating); err != nil {
		return httpError(err)
	}

	if _, err := h.restaurantRepository.GetRestaurantByID(req.RestaurantID); err != nil {
		return httpError(err)
	}

	review := &models.Review{
		UserID:       currentUserID,
		RestaurantID: req.RestaurantID,
		Body:         req.Body,
		Rating:       req.Rating,
	}

	if err := h.reviewRepository.CreateReview(review); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"review": review}})
}

// UpdateReview edits the body and rating of a review owned by the caller.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reviewID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req models.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validateReviewInput(req.Body, req.Rating); err != nil {
		return httpError(err)
	}

	review, err := h.reviewRepository.UpdateOwnedReview(reviewID, currentUserID, req.Body, req.Rating)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"review": review}})
}

// DeleteReview removes a review owned by the caller.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reviewID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.reviewRepository.DeleteOwnedReview(reviewID, currentUserID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}
	return uint(id), nil
}
