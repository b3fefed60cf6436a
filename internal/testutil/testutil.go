package testutil

import (
	"time"

	"lunacat/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates an onboarded test user
func NewTestUser(userID int64, level domain.Level) *domain.User {
	return &domain.User{
		UserID:     userID,
		Name:       "Mei",
		Authorized: true,
		Onboarded:  true,
		Level:      level,
		CreatedAt:  time.Now(),
	}
}

// NewTestWord creates a test word
func NewTestWord(id int, userID int64, word, pinyin, translation string) *domain.Word {
	return &domain.Word{
		ID:          id,
		UserID:      userID,
		Word:        word,
		Pinyin:      pinyin,
		Translation: translation,
		CreatedAt:   time.Now(),
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, wordCount int) domain.Day {
	return domain.Day{
		Date:      date,
		WordCount: wordCount,
	}
}
