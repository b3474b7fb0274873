package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MatiasBordenave/Practica-Backend/internal/auth"
	"github.com/MatiasBordenave/Practica-Backend/internal/cache"
	"github.com/MatiasBordenave/Practica-Backend/internal/config"
	apperr "github.com/MatiasBordenave/Practica-Backend/internal/errors"
	"github.com/MatiasBordenave/Practica-Backend/internal/model"
	"github.com/MatiasBordenave/Practica-Backend/internal/policy"
	"github.com/MatiasBordenave/Practica-Backend/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes the account operations.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	AdminCreate(ctx context.Context, caller *policy.Caller, username, email, password, role string) (*model.User, error)
	List(ctx context.Context, caller *policy.Caller) ([]model.User, error)
	GetByID(ctx context.Context, caller *policy.Caller, id uint) (*model.User, error)
	Update(ctx context.Context, caller policy.Caller, id uint, changes policy.Changes) (*model.User, error)
	Delete(ctx context.Context, caller *policy.Caller, id uint) error
	Login(ctx context.Context, identifier, password string) (token string, user *model.User, err error)
}

type userService struct {
	repo       repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
	deleteMode string
}

// NewUserService builds a UserService. deleteMode selects logical or
// physical deletion (config.DeleteModeSoft / config.DeleteModeHard).
func NewUserService(repo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client, deleteMode string) UserService {
	return &userService{
		repo:       repo,
		jwtService: jwtService,
		cache:      cache,
		deleteMode: deleteMode,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// createUser persists a new account, translating duplicate-key races
// from the store's unique indexes into the conflict error.
func (s *userService) createUser(ctx context.Context, username, email, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, apperr.ErrDuplicateUser
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Status:       model.StatusActive,
		LastLogin:    time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Register is public self-registration: any supplied role is ignored
// and the account always starts as an end user.
func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return s.createUser(ctx, username, email, password, model.RoleUsuario)
}

// AdminCreate creates an account with a caller-chosen role. Only
// admins and superadmins may use it, and only a superadmin may mint
// another superadmin.
func (s *userService) AdminCreate(ctx context.Context, caller *policy.Caller, username, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUsuario
	}
	if !model.ValidRole(role) {
		return nil, apperr.ErrInvalidRole
	}
	if err := policy.CanCreate(caller, role); err != nil {
		return nil, err
	}
	return s.createUser(ctx, username, email, password, role)
}

// List returns every record with the activity projection applied:
// accounts idle past the threshold present as inactive without being
// written back.
func (s *userService) List(ctx context.Context, caller *policy.Caller) ([]model.User, error) {
	if err := policy.CanRead(caller); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	now := time.Now()
	for i := range users {
		users[i].Status = users[i].EffectiveStatus(now)
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, caller *policy.Caller, id uint) (*model.User, error) {
	if err := policy.CanRead(caller); err != nil {
		return nil, err
	}

	user, err := s.findCached(ctx, id)
	if err != nil {
		return nil, err
	}

	// Projection on the returned copy only; the cached record keeps
	// the persisted status.
	user.Status = user.EffectiveStatus(time.Now())
	return user, nil
}

func (s *userService) findCached(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// Update applies a partial change-set to the target record. Absent
// fields stay untouched; a supplied password is re-hashed. The policy
// is consulted against the persisted record before anything is written.
func (s *userService) Update(ctx context.Context, caller policy.Caller, id uint, changes policy.Changes) (*model.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if changes.Role != nil && !model.ValidRole(*changes.Role) {
		return nil, apperr.ErrInvalidRole
	}
	if changes.Status != nil && !model.ValidStatus(*changes.Status) {
		return nil, apperr.ErrInvalidStatus
	}

	if err := policy.CanUpdate(caller, target, changes); err != nil {
		return nil, err
	}

	if changes.Username != nil {
		target.Username = strings.TrimSpace(*changes.Username)
	}
	if changes.Email != nil {
		target.Email = strings.TrimSpace(*changes.Email)
	}
	if changes.Role != nil {
		target.Role = *changes.Role
	}
	if changes.Status != nil {
		target.Status = *changes.Status
	}
	if changes.Password != nil {
		hashed, err := auth.HashPassword(*changes.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		target.PasswordHash = hashed
	}

	if err := s.repo.Save(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrDuplicateUser
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(target.ID))
	return target, nil
}

// Delete removes an account according to the hierarchy rules, either
// logically (status=deleted, row retained) or physically, depending on
// the configured mode.
func (s *userService) Delete(ctx context.Context, caller *policy.Caller, id uint) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := policy.CanDelete(caller, target); err != nil {
		return err
	}

	if s.deleteMode == config.DeleteModeHard {
		if err := s.repo.Delete(ctx, target.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
	} else {
		target.Status = model.StatusDeleted
		if err := s.repo.Save(ctx, target); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(target.ID))
	return nil
}

// Login authenticates by username or email among non-deleted accounts,
// records the login time, revives inactive accounts and issues a
// bearer token.
func (s *userService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	user.Status = model.StatusActive
	if err := s.repo.Save(ctx, user); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}
