package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperr "github.com/MatiasBordenave/Practica-Backend/internal/errors"
	"github.com/MatiasBordenave/Practica-Backend/internal/model"
	"github.com/MatiasBordenave/Practica-Backend/internal/policy"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) AdminCreate(ctx context.Context, caller *policy.Caller, username, email, password, role string) (*model.User, error) {
	args := m.Called(ctx, caller, username, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, caller *policy.Caller) ([]model.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, caller *policy.Caller, id uint) (*model.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, caller policy.Caller, id uint, changes policy.Changes) (*model.User, error) {
	args := m.Called(ctx, caller, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, caller *policy.Caller, id uint) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockUserService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/register", h.Register)

	svc.On("Register", mock.Anything, "alice", "a@x.com", "pw123456").Return(&model.User{
		ID:       1,
		Username: "alice",
		Email:    "a@x.com",
		Role:     model.RoleUsuario,
		Status:   model.StatusActive,
	}, nil)

	rec := doRequest(e, http.MethodPost, "/api/users/register", `{"username":"alice","email":"a@x.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "¡Registro exitoso!")
	assert.Contains(t, rec.Body.String(), `"role":"usuario"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpointConflict(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/register", h.Register)

	svc.On("Register", mock.Anything, "alice", "a@x.com", "pw123456").Return(nil, apperr.ErrDuplicateUser)

	rec := doRequest(e, http.MethodPost, "/api/users/register", `{"username":"alice","email":"a@x.com","password":"pw123456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterEndpointValidation(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/register", h.Register)

	rec := doRequest(e, http.MethodPost, "/api/users/register", `{"username":"alice","email":"not-an-email","password":"pw123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginEndpoint(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/login", h.Login)

	svc.On("Login", mock.Anything, "alice", "pw123456").Return("signed-token", &model.User{
		Username:  "alice",
		Email:     "a@x.com",
		Role:      model.RoleUsuario,
		Status:    model.StatusActive,
		LastLogin: time.Now(),
	}, nil)

	rec := doRequest(e, http.MethodPost, "/api/users/login", `{"identifier":"alice","password":"pw123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"signed-token"`)
	assert.Contains(t, rec.Body.String(), `"lastLogin"`)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/login", h.Login)

	svc.On("Login", mock.Anything, "alice", "wrong").Return("", nil, apperr.ErrInvalidCredentials)

	rec := doRequest(e, http.MethodPost, "/api/users/login", `{"identifier":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginEndpointDeletedAccount(t *testing.T) {
	svc := new(MockUserService)
	e := newTestEcho()
	h := NewAuthHandler(svc)
	e.POST("/api/users/login", h.Login)

	svc.On("Login", mock.Anything, "ghost", "pw123456").Return("", nil, apperr.ErrUserNotFound)

	rec := doRequest(e, http.MethodPost, "/api/users/login", `{"identifier":"ghost","password":"pw123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
