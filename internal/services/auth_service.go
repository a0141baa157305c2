package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/models"
	"curtain_store/internal/redis"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// TokenStore is satisfied by *redis.Client.
type TokenStore interface {
	SaveAdminToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	AdminUserID(ctx context.Context, token string) (uint, error)
	DeleteAdminToken(ctx context.Context, token string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Verify(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users  UserService
	tokens TokenStore
	ttl    time.Duration
}

func NewAuthService(users UserService, tokens TokenStore, ttl time.Duration) AuthService {
	return &authService{users: users, tokens: tokens, ttl: ttl}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token := uuid.NewString()
	if err := s.tokens.SaveAdminToken(ctx, token, user.ID, s.ttl); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Verify resolves a bearer token to an active user.
func (s *authService) Verify(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}
	id, err := s.tokens.AdminUserID(ctx, token)
	if errors.Is(err, redis.ErrTokenNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if _, ok := apperr.CodeOf(err); ok {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokens.DeleteAdminToken(ctx, token)
}
