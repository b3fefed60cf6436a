package content

import (
	"context"

	"lunacat/internal/domain"
	"lunacat/internal/game"
)

// Offline is a Source with no generation service behind it.
// Every call reports ErrContentUnavailable so callers use their fallbacks.
type Offline struct{}

func (Offline) FetchPairs(context.Context, domain.Level) ([]game.Pair, error) {
	return nil, ErrContentUnavailable
}

func (Offline) GenerateFlashcards(context.Context, domain.Level, string) ([]domain.Flashcard, error) {
	return nil, ErrContentUnavailable
}

func (Offline) AssessLevel(context.Context, []string) (domain.Level, error) {
	return domain.LevelBeginner, ErrContentUnavailable
}

func (Offline) Reply(context.Context, domain.Level, string, []domain.ChatMessage, string) (string, error) {
	return "", ErrContentUnavailable
}

var _ Source = Offline{}
