package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tavolo-app/backend/internal/apperror"
	"github.com/tavolo-app/backend/internal/models"
)

// httpError maps the domain error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is a 500; the request always gets an answer.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrRemote):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// getUserIDFromContext returns the authenticated identity set by the JWT
// middleware, or "" when the request carries no valid session.
func getUserIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return ""
	}
	return claims.UserID
}
