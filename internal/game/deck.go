package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidInput is returned when a pair list cannot produce a playable deck
var ErrInvalidInput = errors.New("invalid pair list")

// ValidatePairs checks that every pair has a non-empty, unique id
func ValidatePairs(pairs []Pair) error {
	seen := make(map[string]struct{}, len(pairs))
	for i, p := range pairs {
		if p.PairID == "" {
			return fmt.Errorf("%w: pair %d has empty id", ErrInvalidInput, i)
		}
		if _, dup := seen[p.PairID]; dup {
			return fmt.Errorf("%w: duplicate pair id %q", ErrInvalidInput, p.PairID)
		}
		seen[p.PairID] = struct{}{}
	}
	return nil
}

// BuildDeck expands pairs into face-down cards and shuffles them.
// An empty pair list yields an empty deck.
func BuildDeck(pairs []Pair, rng *rand.Rand) ([]Card, error) {
	if err := ValidatePairs(pairs); err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(pairs)*2)
	for _, p := range pairs {
		cards = append(cards,
			Card{ID: CardID(p.PairID, "a"), PairID: p.PairID, Content: p.Item1},
			Card{ID: CardID(p.PairID, "b"), PairID: p.PairID, Content: p.Item2},
		)
	}

	shuffle(cards, rng)
	return cards, nil
}

// shuffle is a Fisher-Yates shuffle; a nil rng uses the global source
func shuffle(cards []Card, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := intN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
