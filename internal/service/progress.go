package service

import (
	"errors"
	"fmt"
	"time"

	"lunacat/internal/domain"
	"lunacat/internal/repository"

	"go.uber.org/zap"
)

// ErrUserNotFound is returned when a profile is requested for an unknown user
var ErrUserNotFound = errors.New("user not found")

// ProgressService tracks level, points, streak and games won
type ProgressService struct {
	userRepo repository.UserRepository
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewProgressService creates a new progress service.
// Streak days are counted in loc.
func NewProgressService(userRepo repository.UserRepository, loc *time.Location, logger *zap.Logger) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		userRepo: userRepo,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// Now returns the current time in the streak timezone
func (s *ProgressService) Now() time.Time {
	return s.now().In(s.loc)
}

// Profile returns the user's current progress
func (s *ProgressService) Profile(userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetLevel stores the assessed level and completes onboarding
func (s *ProgressService) SetLevel(userID int64, level domain.Level) error {
	if !level.Valid() {
		return fmt.Errorf("invalid level %q", level)
	}
	if err := s.userRepo.SetLevel(userID, level); err != nil {
		return err
	}

	s.logger.Info("Level set",
		zap.Int64("user_id", userID),
		zap.String("level", string(level)),
	)
	return nil
}

// AwardPoints adds points for a learning activity and returns the new total
func (s *ProgressService) AwardPoints(userID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("points must be positive, got %d", amount)
	}

	total, err := s.userRepo.AddPoints(userID, amount)
	if err != nil {
		return 0, err
	}

	if _, err := s.TouchActivity(userID); err != nil {
		s.logger.Warn("Failed to update streak", zap.Int64("user_id", userID), zap.Error(err))
	}
	return total, nil
}

// RecordWin counts a finished matching game
func (s *ProgressService) RecordWin(userID int64) error {
	return s.userRepo.IncrementGamesWon(userID)
}

// TouchActivity records activity now and returns the resulting daily streak
func (s *ProgressService) TouchActivity(userID int64) (int, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	streak := domain.NextStreak(user.LastActiveAt, now, user.Streak, s.loc)
	if err := s.userRepo.UpdateStreak(userID, streak, now); err != nil {
		return 0, err
	}

	if streak != user.Streak {
		s.logger.Debug("Streak changed",
			zap.Int64("user_id", userID),
			zap.Int("from", user.Streak),
			zap.Int("to", streak),
		)
	}
	return streak, nil
}
