package testutil

import (
	"context"
	"time"

	"lunacat/internal/domain"
	"lunacat/internal/game"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64, name string) error {
	args := m.Called(userID, name)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetLevel(userID int64, level domain.Level) error {
	args := m.Called(userID, level)
	return args.Error(0)
}

func (m *MockUserRepository) AddPoints(userID int64, amount int) (int, error) {
	args := m.Called(userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) IncrementGamesWon(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStreak(userID int64, streak int, activeAt time.Time) error {
	args := m.Called(userID, streak, activeAt)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) SaveWord(userID int64, word, pinyin, translation string) error {
	args := m.Called(userID, word, pinyin, translation)
	return args.Error(0)
}

func (m *MockWordRepository) GetRandomWord(userID int64) (*domain.Word, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockWordRepository) GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

func (m *MockWordRepository) CleanOldWords(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

func (m *MockWordRepository) GetTotalDaysCount(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// MockContentSource is a mock for content.Source
type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) FetchPairs(ctx context.Context, level domain.Level) ([]game.Pair, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]game.Pair), args.Error(1)
}

func (m *MockContentSource) GenerateFlashcards(ctx context.Context, level domain.Level, topic string) ([]domain.Flashcard, error) {
	args := m.Called(ctx, level, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockContentSource) AssessLevel(ctx context.Context, answers []string) (domain.Level, error) {
	args := m.Called(ctx, answers)
	return args.Get(0).(domain.Level), args.Error(1)
}

func (m *MockContentSource) Reply(ctx context.Context, level domain.Level, name string, history []domain.ChatMessage, message string) (string, error) {
	args := m.Called(ctx, level, name, history, message)
	return args.String(0), args.Error(1)
}
