package service

import (
	"lunacat/internal/repository"

	"go.uber.org/zap"
)

// DefaultRetentionDays is how long learned words are kept
const DefaultRetentionDays = 60

// StatsService handles retention of learned words
type StatsService struct {
	wordRepo      repository.WordRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(wordRepo repository.WordRepository, retentionDays int, logger *zap.Logger) *StatsService {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &StatsService{
		wordRepo:      wordRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes words older than the retention period
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old words", zap.Int("retention_days", s.retentionDays))

	err := s.wordRepo.CleanOldWords(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old words", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
