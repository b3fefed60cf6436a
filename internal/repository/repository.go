package repository

import (
	"time"

	"lunacat/internal/domain"
)

// UserRepository defines user and progress data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64, name string) error
	GetUser(userID int64) (*domain.User, error)
	SetLevel(userID int64, level domain.Level) error
	AddPoints(userID int64, amount int) (int, error)
	IncrementGamesWon(userID int64) error
	UpdateStreak(userID int64, streak int, activeAt time.Time) error
}

// WordRepository defines learned word data operations
type WordRepository interface {
	SaveWord(userID int64, word, pinyin, translation string) error
	GetRandomWord(userID int64) (*domain.Word, error)
	GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error)
	GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error)
	CleanOldWords(days int) error
	GetTotalDaysCount(userID int64) (int, error)
}
