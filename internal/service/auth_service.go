package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/auth"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *auth.Tokens
}

func NewAuthService(users *repository.UserRepository, tokens *auth.Tokens) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login verifies credentials and issues an access token. Failed lookups and
// bad passwords return the same error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
	}
	if user.Status == model.UserDisabled {
		return nil, fmt.Errorf("%w: account disabled", ErrPermissionDenied)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// Identify resolves a bearer token to a live user: the token must parse, the
// user must still exist, and the account must be active.
func (s *AuthService) Identify(ctx context.Context, rawToken string) (*model.User, error) {
	username, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if user.Status == model.UserDisabled {
		return nil, fmt.Errorf("%w: account disabled", ErrPermissionDenied)
	}
	return user, nil
}
