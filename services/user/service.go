package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "medicore/database/repository/user"
	"medicore/models"
	"medicore/utils"
)

const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials is returned on a failed login attempt. The message
// is deliberately identical for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when a signup collides with an existing account.
var ErrEmailTaken = errors.New("email already registered")

// Service handles account registration and authentication.
type Service interface {
	Register(ctx context.Context, input models.RegisterUserInput) (*models.User, error)
	Authenticate(ctx context.Context, input models.LoginInput) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService implements Service.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(ctx context.Context, input models.RegisterUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}

	u := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RolePatient,
		Phone:        input.Phone,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("user insert failed: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("id", u.ID))
	return u, nil
}

func (s *DefaultUserService) Authenticate(ctx context.Context, input models.LoginInput) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("token generation failed: %w", err)
	}
	return u, token, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}
