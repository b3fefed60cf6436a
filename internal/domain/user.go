package domain

import "time"

// User represents a student and their progress
type User struct {
	UserID       int64
	Name         string
	Authorized   bool
	Onboarded    bool
	Level        Level
	Points       int
	Streak       int
	GamesWon     int
	LastActiveAt *time.Time
	CreatedAt    time.Time
}

// Mode is the screen the user is currently on
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeOnboarding Mode = "onboarding"
	ModeDashboard  Mode = "dashboard"
	ModeFlashcards Mode = "flashcards"
	ModeChat       Mode = "chat"
	ModeGame       Mode = "game"
)

// StateData holds temporary data for user's current screen
type StateData struct {
	Mode           Mode
	OnboardingStep int
	ChatID         int64
	MessageID      int // board message, edited when the game changes
}
