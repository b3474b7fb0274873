package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/MatiasBordenave/Practica-Backend/internal/auth"
	apperr "github.com/MatiasBordenave/Practica-Backend/internal/errors"
	"github.com/MatiasBordenave/Practica-Backend/internal/policy"
)

// callerFromContext extracts the authenticated caller that the JWT
// middleware stored on the request, or nil for anonymous requests.
func callerFromContext(c echo.Context) *policy.Caller {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	return &policy.Caller{ID: claims.UserID, Role: claims.Role}
}

// respondError translates a service error into the failure envelope.
func respondError(c echo.Context, err error) error {
	httpErr := apperr.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, apperr.ErrorResponse{Message: httpErr.Message})
}

// respondValidation reports a malformed or invalid request body.
func respondValidation(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{
		Message: "Error de validación",
		Error:   err.Error(),
	})
}
