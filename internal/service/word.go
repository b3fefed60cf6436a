package service

import (
	"fmt"
	"strings"
	"time"

	"lunacat/internal/domain"
	"lunacat/internal/repository"
)

// DaysPageSize is the number of days shown per history page
const DaysPageSize = 7

// WordService manages the student's learned words
type WordService struct {
	wordRepo repository.WordRepository
}

// NewWordService creates a new word service
func NewWordService(wordRepo repository.WordRepository) *WordService {
	return &WordService{wordRepo: wordRepo}
}

// SaveWordPair stores a learned word with its pinyin and translation
func (s *WordService) SaveWordPair(userID int64, word, pinyin, translation string) error {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" || translation == "" {
		return fmt.Errorf("word and translation cannot be empty")
	}
	return s.wordRepo.SaveWord(userID, word, strings.TrimSpace(pinyin), translation)
}

// GetRandomPair returns a random learned word for review
func (s *WordService) GetRandomPair(userID int64) (*domain.Word, error) {
	return s.wordRepo.GetRandomWord(userID)
}

// GetDaysList returns paginated list of days with word counts
func (s *WordService) GetDaysList(userID int64, page int) ([]domain.Day, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * DaysPageSize
	days, err := s.wordRepo.GetDaysWithWords(userID, DaysPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.wordRepo.GetTotalDaysCount(userID)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (totalDays + DaysPageSize - 1) / DaysPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return days, totalPages, nil
}

// GetWordsByDate returns all words learned on a day given as YYYYMMDD
func (s *WordService) GetWordsByDate(userID int64, dateStr string) ([]domain.Word, error) {
	date, err := time.Parse("20060102", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	return s.wordRepo.GetWordsByDate(userID, date)
}
