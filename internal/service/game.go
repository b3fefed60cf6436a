package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"lunacat/internal/content"
	"lunacat/internal/domain"
	"lunacat/internal/game"

	"go.uber.org/zap"
)

// DefaultFetchTimeout bounds how long a new game waits for generated pairs
const DefaultFetchTimeout = 15 * time.Second

// ErrGameCancelled is returned when the game was ended while its board was
// being prepared
var ErrGameCancelled = errors.New("game cancelled")

// BoardObserver is told when a board changes without user input
type BoardObserver interface {
	BoardChanged(userID int64, snapshot game.Snapshot)
}

// GameService runs one matching game per user
type GameService struct {
	pairs        content.PairSource
	progress     *ProgressService
	logger       *zap.Logger
	fetchTimeout time.Duration
	options      []game.Option

	mu       sync.Mutex
	sessions map[int64]*gameSession
}

type gameSession struct {
	engine *game.Engine
	bridge *progressBridge
}

// NewGameService creates a new game service. Options are applied to every
// per-user engine.
func NewGameService(
	pairs content.PairSource,
	progress *ProgressService,
	fetchTimeout time.Duration,
	logger *zap.Logger,
	opts ...game.Option,
) *GameService {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &GameService{
		pairs:        pairs,
		progress:     progress,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		options:      opts,
		sessions:     make(map[int64]*gameSession),
	}
}

// StartGame deals a new board for the user. Generated pairs are used when
// available, the built-in list otherwise.
func (s *GameService) StartGame(ctx context.Context, userID int64, level domain.Level, observer BoardObserver) (game.Snapshot, error) {
	session := s.session(userID)
	session.bridge.setObserver(observer)

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	pairs, err := s.pairs.FetchPairs(ctx, level)
	if err != nil {
		s.logger.Warn("Using fallback pairs",
			zap.Int64("user_id", userID),
			zap.String("level", string(level)),
			zap.Error(err),
		)
		pairs = content.FallbackPairs()
	}

	err = session.engine.StartNewGame(pairs)
	if errors.Is(err, game.ErrInvalidInput) {
		s.logger.Warn("Generated pairs rejected, using fallback pairs",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		err = session.engine.StartNewGame(content.FallbackPairs())
	}
	if err != nil {
		return game.Snapshot{}, err
	}

	if !s.owns(userID, session) {
		session.engine.Close()
		s.logger.Info("Game ended while pairs were loading", zap.Int64("user_id", userID))
		return game.Snapshot{}, ErrGameCancelled
	}

	snapshot := session.engine.Snapshot()
	s.logger.Info("Game started",
		zap.Int64("user_id", userID),
		zap.Uint64("generation", snapshot.Generation),
		zap.Int("cards", snapshot.Total),
	)
	return snapshot, nil
}

// SelectCard flips a card on the board rendered at generation.
// Taps on stale boards or without a running game are ignored.
func (s *GameService) SelectCard(userID int64, generation uint64, cardID string) (game.Result, game.Snapshot) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return game.Result{Outcome: game.OutcomeIgnored}, game.Snapshot{}
	}

	result := session.engine.SelectCardAt(generation, cardID)
	return result, session.engine.Snapshot()
}

// Snapshot returns the user's current board
func (s *GameService) Snapshot(userID int64) (game.Snapshot, bool) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return game.Snapshot{}, false
	}
	return session.engine.Snapshot(), true
}

// EndGame drops the user's session and its pending flip-back
func (s *GameService) EndGame(userID int64) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if ok {
		session.engine.Close()
	}
}

// Close ends every running game
func (s *GameService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[int64]*gameSession)
	s.mu.Unlock()

	for _, session := range sessions {
		session.engine.Close()
	}
}

// owns reports whether session is still the user's current one
func (s *GameService) owns(userID int64, session *gameSession) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID] == session
}

func (s *GameService) session(userID int64) *gameSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session
	}

	bridge := &progressBridge{userID: userID, service: s}
	opts := append([]game.Option{}, s.options...)
	opts = append(opts, game.WithListener(bridge))

	session := &gameSession{engine: game.New(opts...), bridge: bridge}
	bridge.engine = session.engine
	s.sessions[userID] = session
	return session
}

// progressBridge turns engine signals into stored progress and redraws
type progressBridge struct {
	userID  int64
	service *GameService
	engine  *game.Engine

	mu       sync.Mutex
	observer BoardObserver
}

func (b *progressBridge) setObserver(o BoardObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = o
}

func (b *progressBridge) PointsAwarded(amount int) {
	if _, err := b.service.progress.AwardPoints(b.userID, amount); err != nil {
		b.service.logger.Error("Failed to award match points",
			zap.Int64("user_id", b.userID),
			zap.Int("points", amount),
			zap.Error(err),
		)
	}
}

func (b *progressBridge) GameWon() {
	b.service.logger.Info("Game won", zap.Int64("user_id", b.userID))
	if err := b.service.progress.RecordWin(b.userID); err != nil {
		b.service.logger.Error("Failed to record win", zap.Int64("user_id", b.userID), zap.Error(err))
	}
}

func (b *progressBridge) MismatchResolved(string, string) {
	b.mu.Lock()
	observer := b.observer
	b.mu.Unlock()

	if observer != nil {
		observer.BoardChanged(b.userID, b.engine.Snapshot())
	}
}
