package service

import (
	"crypto/subtle"
	"strings"

	"lunacat/internal/repository"

	"go.uber.org/zap"
)

// AuthService guards the bot behind the parent's password
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
		logger:      logger,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(password)), []byte(s.botPassword)) == 1
}

// Login authorizes the user when the password matches
func (s *AuthService) Login(userID int64, password string) (bool, error) {
	if !s.CheckPassword(password) {
		s.logger.Info("Wrong password", zap.Int64("user_id", userID))
		return false, nil
	}
	if err := s.userRepo.AuthorizeUser(userID); err != nil {
		return false, err
	}
	s.logger.Info("User authorized", zap.Int64("user_id", userID))
	return true, nil
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(userID int64, name string) error {
	return s.userRepo.EnsureUserExists(userID, name)
}
