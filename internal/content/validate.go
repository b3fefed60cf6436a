package content

import (
	"fmt"
	"strconv"
	"strings"

	"lunacat/internal/domain"
	"lunacat/internal/game"
)

// MaxPairs is the largest board dealt: 48 cards plus the navigation rows
// stay well inside Telegram's 100-button inline keyboard
const MaxPairs = 24

// ValidatePairs keeps at most MaxPairs pairs, rejects empty lists, pairs
// with missing fields and duplicate ids, then re-keys the pairs to compact
// ids "1".."N"
func ValidatePairs(pairs []game.Pair) ([]game.Pair, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no pairs", ErrContentUnavailable)
	}
	if len(pairs) > MaxPairs {
		pairs = pairs[:MaxPairs]
	}

	for i, p := range pairs {
		if strings.TrimSpace(p.PairID) == "" || strings.TrimSpace(p.Item1) == "" || strings.TrimSpace(p.Item2) == "" {
			return nil, fmt.Errorf("%w: pair %d is missing a field", ErrContentUnavailable, i)
		}
	}
	if err := game.ValidatePairs(pairs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	out := make([]game.Pair, len(pairs))
	for i, p := range pairs {
		out[i] = game.Pair{
			PairID: strconv.Itoa(i + 1),
			Item1:  strings.TrimSpace(p.Item1),
			Item2:  strings.TrimSpace(p.Item2),
		}
	}
	return out, nil
}

// ValidateFlashcards rejects empty lists and cards without hanzi or english
func ValidateFlashcards(cards []domain.Flashcard) ([]domain.Flashcard, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no flashcards", ErrContentUnavailable)
	}
	for i, c := range cards {
		if strings.TrimSpace(c.Hanzi) == "" || strings.TrimSpace(c.English) == "" {
			return nil, fmt.Errorf("%w: flashcard %d is missing a field", ErrContentUnavailable, i)
		}
	}
	return cards, nil
}
