package service

import (
	"context"
	"sync"
	"time"

	"lunacat/internal/content"
	"lunacat/internal/domain"

	"go.uber.org/zap"
)

const (
	// DefaultFlashcardPoints is awarded for every card the student knows
	DefaultFlashcardPoints = 10
	// DefaultFlashcardTopic is requested when loading a new deck
	DefaultFlashcardTopic = "Animals and Colors"
)

// FlashcardView is what the student currently sees
type FlashcardView struct {
	Card    domain.Flashcard
	Index   int
	Total   int
	Flipped bool
	// Awarded is the number of points the last answer earned
	Awarded int
	// Reloaded is set when the last answer finished the deck
	Reloaded bool
}

type flashcardDeck struct {
	cards   []domain.Flashcard
	index   int
	flipped bool
}

func (d *flashcardDeck) view() FlashcardView {
	return FlashcardView{
		Card:    d.cards[d.index],
		Index:   d.index,
		Total:   len(d.cards),
		Flipped: d.flipped,
	}
}

// FlashcardService runs flashcard study decks per user
type FlashcardService struct {
	source   content.FlashcardSource
	words    *WordService
	progress *ProgressService
	points   int
	topic    string
	timeout  time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	decks map[int64]*flashcardDeck
}

// NewFlashcardService creates a new flashcard service
func NewFlashcardService(
	source content.FlashcardSource,
	words *WordService,
	progress *ProgressService,
	points int,
	logger *zap.Logger,
) *FlashcardService {
	if points <= 0 {
		points = DefaultFlashcardPoints
	}
	return &FlashcardService{
		source:   source,
		words:    words,
		progress: progress,
		points:   points,
		topic:    DefaultFlashcardTopic,
		timeout:  DefaultFetchTimeout,
		logger:   logger,
		decks:    make(map[int64]*flashcardDeck),
	}
}

// Start loads a fresh deck for the user
func (s *FlashcardService) Start(ctx context.Context, userID int64, level domain.Level) FlashcardView {
	deck := &flashcardDeck{cards: s.load(ctx, userID, level)}

	s.mu.Lock()
	s.decks[userID] = deck
	s.mu.Unlock()

	return deck.view()
}

// Current returns the card on top of the user's deck
func (s *FlashcardService) Current(userID int64) (FlashcardView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, ok := s.decks[userID]
	if !ok {
		return FlashcardView{}, false
	}
	return deck.view(), true
}

// Flip turns the current card over
func (s *FlashcardService) Flip(userID int64) (FlashcardView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, ok := s.decks[userID]
	if !ok {
		return FlashcardView{}, false
	}
	deck.flipped = !deck.flipped
	return deck.view(), true
}

// Answer records whether the student knew the current card and moves on.
// Known cards earn points and are saved to the learned words. A new deck is
// loaded after the last card.
func (s *FlashcardService) Answer(ctx context.Context, userID int64, level domain.Level, known bool) (FlashcardView, bool) {
	s.mu.Lock()
	deck, ok := s.decks[userID]
	if !ok {
		s.mu.Unlock()
		return FlashcardView{}, false
	}
	card := deck.cards[deck.index]
	last := deck.index >= len(deck.cards)-1
	if !last {
		deck.index++
		deck.flipped = false
	}
	s.mu.Unlock()

	awarded := 0
	if known {
		awarded = s.recordKnown(userID, card)
	}

	var view FlashcardView
	if last {
		view = s.Start(ctx, userID, level)
		view.Reloaded = true
	} else {
		s.mu.Lock()
		view = deck.view()
		s.mu.Unlock()
	}
	view.Awarded = awarded
	return view, true
}

// Stop drops the user's deck
func (s *FlashcardService) Stop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, userID)
}

func (s *FlashcardService) recordKnown(userID int64, card domain.Flashcard) int {
	if err := s.words.SaveWordPair(userID, card.Hanzi, card.Pinyin, card.English); err != nil {
		s.logger.Error("Failed to save learned word",
			zap.Int64("user_id", userID),
			zap.String("hanzi", card.Hanzi),
			zap.Error(err),
		)
	}

	if _, err := s.progress.AwardPoints(userID, s.points); err != nil {
		s.logger.Error("Failed to award flashcard points", zap.Int64("user_id", userID), zap.Error(err))
		return 0
	}
	return s.points
}

func (s *FlashcardService) load(ctx context.Context, userID int64, level domain.Level) []domain.Flashcard {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cards, err := s.source.GenerateFlashcards(ctx, level, s.topic)
	if err != nil || len(cards) == 0 {
		s.logger.Warn("Using fallback flashcards",
			zap.Int64("user_id", userID),
			zap.String("level", string(level)),
			zap.Error(err),
		)
		return content.FallbackFlashcards()
	}
	return cards
}
