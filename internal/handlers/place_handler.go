package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tavolo-app/backend/internal/models"
	"github.com/tavolo-app/backend/internal/repositories"
	"github.com/tavolo-app/backend/pkg/places"
)

// PlaceHandler handles place search and resolution HTTP requests
type PlaceHandler struct {
	placesClient          *places.Client
	restaurantRepository  repositories.RestaurantRepository
	placeSearchRepository repositories.PlaceSearchRepository
	logger                zerolog.Logger
}

// NewPlaceHandler creates a new PlaceHandler
func NewPlaceHandler(
	placesClient *places.Client,
	restaurantRepo repositories.RestaurantRepository,
	placeSearchRepo repositories.PlaceSearchRepository,
	logger zerolog.Logger,
) *PlaceHandler {
	return &PlaceHandler{
		placesClient:          placesClient,
		restaurantRepository:  restaurantRepo,
		placeSearchRepository: placeSearchRepo,
		logger:                logger,
	}
}

// RegisterPlaceRoutes registers place-related routes
func (h *PlaceHandler) RegisterPlaceRoutes(g *echo.Group) {
	g.GET("/places/search", h.SearchPlaces)
	g.GET("/places/recent", h.RecentSearches)
	g.POST("/places/resolve", h.ResolvePlace)
}

// SearchPlaces returns establishment candidates for a free-text query. An
// empty query returns an empty list without calling the provider.
func (h *PlaceHandler) SearchPlaces(c echo.Context) error {
	query := c.QueryParam("q")

	candidates, err := h.placesClient.Search(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}

	// Best-effort history record; a failure here never fails the search.
	if userID := getUserIDFromContext(c); userID != "" && strings.TrimSpace(query) != "" {
		search := &models.PlaceSearch{
			UserID:    userID,
			Query:     strings.TrimSpace(query),
			Results:   len(candidates),
			CreatedAt: time.Now().UTC(),
		}
		if err := h.placeSearchRepository.RecordSearch(c.Request().Context(), search); err != nil {
			h.logger.Warn().Err(err).Str("query", search.Query).Msg("recording place search")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"candidates": candidates}})
}

// ResolvePlace fetches the details of a candidate and upserts the canonical
// restaurant record keyed on place_id, returning the row with its internal id.
func (h *PlaceHandler) ResolvePlace(c echo.Context) error {
	var req models.ResolvePlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	detail, err := h.placesClient.Details(c.Request().Context(), req.PlaceID)
	if err != nil {
		return httpError(err)
	}

	restaurant := &models.Restaurant{
		PlaceID:   detail.PlaceID,
		Name:      detail.Name,
		Address:   detail.FormattedAddress,
		Latitude:  strconv.FormatFloat(detail.Latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(detail.Longitude, 'f', -1, 64),
	}

	if err := h.restaurantRepository.Upsert(restaurant); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"restaurant": restaurant}})
}

// RecentSearches returns the viewer's most recent place searches.
func (h *PlaceHandler) RecentSearches(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	searches, err := h.placeSearchRepository.RecentSearches(c.Request().Context(), currentUserID, 10)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"searches": searches}})
}
