package game

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultMatchPoints is awarded for every matched pair
	DefaultMatchPoints = 20
	// DefaultMismatchDelay is how long a mismatched pair stays face-up
	DefaultMismatchDelay = 1000 * time.Millisecond
)

// State is the engine's position in the selection state machine
type State int

const (
	StateNoGame State = iota
	StateIdle
	StateOneSelected
	StateResolving
	StateWon
)

func (s State) String() string {
	switch s {
	case StateNoGame:
		return "no_game"
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "one_selected"
	case StateResolving:
		return "resolving"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Outcome describes what a single selection did
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeFlipped
	OutcomeMatched
	OutcomeMismatched
)

// Result is returned by SelectCard
type Result struct {
	Outcome Outcome
	Points  int
	Won     bool
}

// Listener receives engine signals. Calls happen outside the engine lock.
type Listener interface {
	PointsAwarded(amount int)
	GameWon()
	MismatchResolved(firstID, secondID string)
}

type nopListener struct{}

func (nopListener) PointsAwarded(int)               {}
func (nopListener) GameWon()                        {}
func (nopListener) MismatchResolved(string, string) {}

// Snapshot is a read-only copy of the board for rendering
type Snapshot struct {
	Generation uint64
	State      State
	Cards      []Card
	Matched    int
	Total      int
}

// Option configures an Engine
type Option func(*Engine)

// WithMatchPoints sets the bonus awarded per matched pair.
// Non-positive values keep DefaultMatchPoints.
func WithMatchPoints(points int) Option {
	return func(e *Engine) {
		if points > 0 {
			e.matchPoints = points
		}
	}
}

// WithMismatchDelay sets how long a mismatched pair stays visible
func WithMismatchDelay(d time.Duration) Option {
	return func(e *Engine) { e.mismatchDelay = d }
}

// WithRand sets the shuffle source
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithListener sets the receiver of engine signals
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.listener = l
		}
	}
}

// WithScheduler replaces the wall-clock timer used for mismatch resolution
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// Engine owns one memory-matching session at a time
type Engine struct {
	mu sync.Mutex

	cards   []Card
	index   map[string]int
	pending []int
	state   State

	// generation identifies the current session; deferred actions
	// scheduled for an older generation are dropped
	generation uint64
	timer      Timer

	matchPoints   int
	mismatchDelay time.Duration
	rng           *rand.Rand
	listener      Listener
	scheduler     Scheduler
}

// New creates an engine with no game in progress
func New(opts ...Option) *Engine {
	e := &Engine{
		state:         StateNoGame,
		matchPoints:   DefaultMatchPoints,
		mismatchDelay: DefaultMismatchDelay,
		listener:      nopListener{},
		scheduler:     clockScheduler{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartNewGame rebuilds the deck from pairs and resets the session.
// On invalid input the current session is left untouched.
func (e *Engine) StartNewGame(pairs []Pair) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	deck, err := BuildDeck(pairs, e.rng)
	if err != nil {
		return err
	}

	e.resetLocked()
	e.cards = deck
	e.index = make(map[string]int, len(deck))
	for i, c := range deck {
		e.index[c.ID] = i
	}
	if len(deck) > 0 {
		e.state = StateIdle
	}
	return nil
}

// Close drops the current session and cancels any pending flip-back
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.cards = nil
	e.index = nil
	e.pending = e.pending[:0]
	e.state = StateNoGame
}

// SelectCard flips the card with the given id and resolves the pair
// once two cards are pending
func (e *Engine) SelectCard(id string) Result {
	e.mu.Lock()
	return e.selectLocked(id)
}

// SelectCardAt is SelectCard for a board rendered at the given generation.
// Selections made on the board of an earlier session are ignored.
func (e *Engine) SelectCardAt(generation uint64, id string) Result {
	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}
	return e.selectLocked(id)
}

// selectLocked must be called with e.mu held; it releases the lock
func (e *Engine) selectLocked(id string) Result {
	if e.state != StateIdle && e.state != StateOneSelected {
		e.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}

	i, ok := e.index[id]
	if !ok || e.cards[i].IsFlipped || e.cards[i].IsMatched {
		e.mu.Unlock()
		return Result{Outcome: OutcomeIgnored}
	}

	e.cards[i].IsFlipped = true
	e.pending = append(e.pending, i)

	if len(e.pending) < 2 {
		e.state = StateOneSelected
		e.mu.Unlock()
		return Result{Outcome: OutcomeFlipped}
	}

	e.state = StateResolving
	a, b := e.pending[0], e.pending[1]

	if e.cards[a].PairID != e.cards[b].PairID {
		gen := e.generation
		e.timer = e.scheduler.AfterFunc(e.mismatchDelay, func() {
			e.resolveMismatch(gen, a, b)
		})
		e.mu.Unlock()
		return Result{Outcome: OutcomeMismatched}
	}

	e.cards[a].IsMatched = true
	e.cards[b].IsMatched = true
	e.pending = e.pending[:0]
	e.state = StateIdle

	won := e.allMatchedLocked()
	if won {
		e.state = StateWon
	}
	points := e.matchPoints
	listener := e.listener
	e.mu.Unlock()

	listener.PointsAwarded(points)
	if won {
		listener.GameWon()
	}
	return Result{Outcome: OutcomeMatched, Points: points, Won: won}
}

func (e *Engine) resolveMismatch(gen uint64, a, b int) {
	e.mu.Lock()
	if gen != e.generation || e.state != StateResolving {
		e.mu.Unlock()
		return
	}

	e.cards[a].IsFlipped = false
	e.cards[b].IsFlipped = false
	e.pending = e.pending[:0]
	e.state = StateIdle
	e.timer = nil

	first, second := e.cards[a].ID, e.cards[b].ID
	listener := e.listener
	e.mu.Unlock()

	listener.MismatchResolved(first, second)
}

func (e *Engine) allMatchedLocked() bool {
	for _, c := range e.cards {
		if !c.IsMatched {
			return false
		}
	}
	return len(e.cards) > 0
}

// State returns the current engine state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Generation returns the current session identifier
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Snapshot returns a copy of the board
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	cards := make([]Card, len(e.cards))
	copy(cards, e.cards)

	matched := 0
	for _, c := range cards {
		if c.IsMatched {
			matched++
		}
	}

	return Snapshot{
		Generation: e.generation,
		State:      e.state,
		Cards:      cards,
		Matched:    matched,
		Total:      len(cards),
	}
}
