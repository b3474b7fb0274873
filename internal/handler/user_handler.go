package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperr "github.com/MatiasBordenave/Practica-Backend/internal/errors"
	"github.com/MatiasBordenave/Practica-Backend/internal/policy"
	"github.com/MatiasBordenave/Practica-Backend/internal/service"
)

// UserHandler bundles the authenticated user CRUD endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// AdminCreateRequest is the administrative creation payload. Role is
// optional and defaults to usuario.
type AdminCreateRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=superadmin admin usuario"`
}

// UpdateRequest carries a partial change-set: nil fields are left
// untouched, not nulled.
type UpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=superadmin admin usuario"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive deleted"`
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// List godoc
// @Summary List all users with activity-derived status
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context(), callerFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Listado de usuarios",
		"users":   users,
	})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Message: "ID inválido"})
	}

	user, err := h.svc.GetByID(c.Request().Context(), callerFromContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Usuario encontrado",
		"user":    user,
	})
}

// AdminCreate godoc
// @Summary Create a user with an explicit role (admin/superadmin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdminCreateRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/admin-create [post]
func (h *UserHandler) AdminCreate(c echo.Context) error {
	var req AdminCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Message: "Cuerpo de la petición inválido"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.svc.AdminCreate(c.Request().Context(), callerFromContext(c), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Usuario creado por administrador",
		"user":    user,
	})
}

// Update godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Message: "ID inválido"})
	}

	caller := callerFromContext(c)
	if caller == nil {
		return c.JSON(http.StatusUnauthorized, apperr.ErrorResponse{Message: "Token no válido"})
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Message: "Cuerpo de la petición inválido"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.svc.Update(c.Request().Context(), *caller, id, policy.Changes{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Usuario actualizado correctamente",
		"user":    user,
	})
}

// Delete godoc
// @Summary Delete a user (hierarchy rules apply)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperr.ErrorResponse{Message: "ID inválido"})
	}

	if err := h.svc.Delete(c.Request().Context(), callerFromContext(c), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Usuario eliminado con éxito",
	})
}
