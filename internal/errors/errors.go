package errors

import (
	"errors"
	"net/http"

	"github.com/MatiasBordenave/Practica-Backend/internal/policy"
)

var (
	// ErrUserNotFound is returned when no matching user record exists,
	// including login attempts against a deleted account.
	ErrUserNotFound = errors.New("Usuario no encontrado o cuenta eliminada")
	// ErrDuplicateUser is returned when username or email is already taken.
	ErrDuplicateUser = errors.New("El nombre de usuario o email ya está en uso")
	// ErrInvalidCredentials is returned on a password mismatch.
	ErrInvalidCredentials = errors.New("Contraseña incorrecta")
	// ErrInvalidRole is returned when a role outside the known set is supplied.
	ErrInvalidRole = errors.New("Rol no válido")
	// ErrInvalidStatus is returned when a status outside the known set is supplied.
	ErrInvalidStatus = errors.New("Estado no válido")
)

// ErrorResponse is the failure envelope for all 4xx/5xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HTTPError pairs an HTTP status with a user-facing message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP translates service errors to HTTP errors. Policy
// denials surface verbatim as 403; anything unrecognized becomes a
// generic 500 so store internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	var denial *policy.Denial
	if errors.As(err, &denial) {
		return NewHTTPError(http.StatusForbidden, denial.Reason)
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Error interno del servidor")
	}
}
