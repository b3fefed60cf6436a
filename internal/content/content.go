// Package content is the boundary to the external generation service that
// supplies game pairs, flashcards, level assessment and mascot replies.
package content

import (
	"context"
	"errors"

	"lunacat/internal/domain"
	"lunacat/internal/game"
)

// ErrContentUnavailable is returned when the generation service fails or
// returns data that cannot be used
var ErrContentUnavailable = errors.New("content unavailable")

// PairSource supplies word pairs for the matching game
type PairSource interface {
	FetchPairs(ctx context.Context, level domain.Level) ([]game.Pair, error)
}

// FlashcardSource supplies vocabulary flashcards
type FlashcardSource interface {
	GenerateFlashcards(ctx context.Context, level domain.Level, topic string) ([]domain.Flashcard, error)
}

// LevelAssessor estimates proficiency from onboarding answers
type LevelAssessor interface {
	AssessLevel(ctx context.Context, answers []string) (domain.Level, error)
}

// ChatResponder produces the mascot's next chat message
type ChatResponder interface {
	Reply(ctx context.Context, level domain.Level, name string, history []domain.ChatMessage, message string) (string, error)
}

// Source is everything the bot needs from the generation service
type Source interface {
	PairSource
	FlashcardSource
	LevelAssessor
	ChatResponder
}
