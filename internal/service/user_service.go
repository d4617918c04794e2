package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/auth"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

// UserService backs the admin user-management screens. Every operation
// requires an admin principal; the HTTP layer enforces authentication, the
// service enforces the role.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Username string
	Password string
	Role     string
	FullName *string
	Email    *string
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.users.List(ctx)
}

func (s *UserService) Create(ctx context.Context, principal model.Principal, input CreateUserInput) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrInvalidInput)
	}
	role := input.Role
	if role == "" {
		role = string(model.RoleModerator)
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         model.UserRole(role),
		Status:       model.UserActive,
	})
}

func (s *UserService) ChangeRole(ctx context.Context, principal model.Principal, userID int64, role string) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}
	if err := s.users.UpdateRole(ctx, userID, model.UserRole(role)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return s.users.Get(ctx, userID)
}

func (s *UserService) ChangeStatus(ctx context.Context, principal model.Principal, userID int64, status string) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	target := model.UserStatus(status)
	if target != model.UserActive && target != model.UserDisabled {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}
	if err := s.users.UpdateStatus(ctx, userID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return s.users.Get(ctx, userID)
}

func (s *UserService) ResetPassword(ctx context.Context, principal model.Principal, userID int64, password string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	password = strings.TrimSpace(password)
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, userID int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if principal.UserID == userID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	return nil
}
