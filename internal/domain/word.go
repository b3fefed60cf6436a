package domain

import "time"

// Word is a flashcard the student marked as known
type Word struct {
	ID          int
	UserID      int64
	Word        string
	Pinyin      string
	Translation string
	CreatedAt   time.Time
}

// Flashcard is a single generated vocabulary card
type Flashcard struct {
	Hanzi    string `json:"hanzi"`
	Pinyin   string `json:"pinyin"`
	English  string `json:"english"`
	Category string `json:"category"`
}
