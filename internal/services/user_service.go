package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"curtain_store/internal/apperr"
	"curtain_store/internal/models"
	"curtain_store/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = apperr.InvalidArgument("invalid username or password")

type UserUpdate struct {
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"is_active"`
	Password    *string `json:"password"`
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	UpdateLastLogin(ctx context.Context, id uint) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, now: time.Now}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, password string) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Username == "" || user.Email == "" {
		return apperr.InvalidArgument("username and email are required")
	}
	if user.Role == "" {
		user.Role = string(models.Staff)
	}
	if !models.UserRole(user.Role).Valid() {
		return apperr.InvalidArgumentf("unknown role %q", user.Role)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.IsActive = true

	return s.userRepo.Create(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}

	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
		if user.Email == "" {
			return nil, apperr.InvalidArgument("email cannot be empty")
		}
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*update.PhoneNumber)
	}
	if update.Role != nil {
		if !models.UserRole(*update.Role).Valid() {
			return nil, apperr.InvalidArgumentf("unknown role %q", *update.Role)
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return notFound(s.userRepo.Delete(ctx, id), "user")
}

func (s *userService) UpdateLastLogin(ctx context.Context, id uint) error {
	return s.userRepo.UpdateLastLogin(ctx, id, s.now())
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.FailedPrecondition("user is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	return user, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperr.InvalidArgument("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
