package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"c2panel/internal/auth"
	apperrors "c2panel/internal/errors"
	"c2panel/internal/logging"
	"c2panel/internal/repository"
)

// AuthService verifies login credentials.
type AuthService interface {
	// VerifyCredentials returns the identity behind email and password.
	// Unknown emails and wrong passwords both yield ErrInvalidCredentials;
	// storage failures yield ErrStorageUnavailable.
	VerifyCredentials(ctx context.Context, email, password string) (*auth.Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	log      logging.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, log logging.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *authService) VerifyCredentials(ctx context.Context, email, password string) (*auth.Identity, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(ctx, "credential verification error", "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	if !auth.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &auth.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
