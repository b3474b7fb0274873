package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/MatiasBordenave/Practica-Backend/internal/auth"
	"github.com/MatiasBordenave/Practica-Backend/internal/config"
	apperr "github.com/MatiasBordenave/Practica-Backend/internal/errors"
	"github.com/MatiasBordenave/Practica-Backend/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/api/users")

	// Public routes
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	// Everything else requires a valid bearer token.
	secured := users.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{
				Message: "Acceso denegado, falta token o no es válido",
			})
		},
	}))

	secured.GET("", userHandler.List)
	secured.GET("/:id", userHandler.Get)
	secured.POST("/admin-create", userHandler.AdminCreate)
	secured.PUT("/:id", userHandler.Update)
	secured.DELETE("/:id", userHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
