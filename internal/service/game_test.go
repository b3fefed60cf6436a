package service

import (
	"context"
	"sync"
	"testing"

	"lunacat/internal/content"
	"lunacat/internal/domain"
	"lunacat/internal/game"
	"lunacat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu      sync.Mutex
	changes []game.Snapshot
}

func (o *recordingObserver) BoardChanged(userID int64, snapshot game.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changes = append(o.changes, snapshot)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.changes)
}

var servicePairs = []game.Pair{
	{PairID: "1", Item1: "猫", Item2: "Cat"},
	{PairID: "2", Item1: "狗", Item2: "Dog"},
}

type gameFixture struct {
	service   *GameService
	source    *testutil.MockContentSource
	users     *testutil.MockUserRepository
	scheduler *testutil.ManualScheduler
	observer  *recordingObserver
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	f := &gameFixture{
		source:    new(testutil.MockContentSource),
		users:     new(testutil.MockUserRepository),
		scheduler: &testutil.ManualScheduler{},
		observer:  &recordingObserver{},
	}
	progress := NewProgressService(f.users, nil, testutil.NewTestLogger())
	f.service = NewGameService(f.source, progress, 0, testutil.NewTestLogger(),
		game.WithScheduler(f.scheduler),
	)
	t.Cleanup(f.service.Close)
	return f
}

func (f *gameFixture) start(t *testing.T, userID int64) game.Snapshot {
	t.Helper()
	snapshot, err := f.service.StartGame(context.Background(), userID, domain.LevelBeginner, f.observer)
	require.NoError(t, err)
	return snapshot
}

func (f *gameFixture) expectProgress(userID int64) {
	f.users.On("AddPoints", userID, game.DefaultMatchPoints).Return(20, nil)
	f.users.On("GetUser", userID).Return(testutil.NewTestUser(userID, domain.LevelBeginner), nil)
	f.users.On("UpdateStreak", userID, 1, mock.Anything).Return(nil)
}

func TestGameService_StartGame(t *testing.T) {
	tests := []struct {
		name          string
		pairs         []game.Pair
		fetchError    error
		expectedCards int
	}{
		{name: "generated pairs", pairs: servicePairs, expectedCards: 4},
		{name: "service unavailable", fetchError: content.ErrContentUnavailable, expectedCards: 12},
		{
			name:          "duplicate pair ids",
			pairs:         []game.Pair{{PairID: "1", Item1: "猫", Item2: "Cat"}, {PairID: "1", Item1: "狗", Item2: "Dog"}},
			expectedCards: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGameFixture(t)
			if tt.fetchError != nil {
				f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(nil, tt.fetchError)
			} else {
				f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(tt.pairs, nil)
			}

			snapshot := f.start(t, 1)

			assert.Equal(t, game.StateIdle, snapshot.State)
			assert.Equal(t, tt.expectedCards, snapshot.Total)
			f.source.AssertExpectations(t)
		})
	}
}

func TestGameService_MatchAndWin(t *testing.T) {
	f := newGameFixture(t)
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)
	f.expectProgress(1)
	f.users.On("IncrementGamesWon", int64(1)).Return(nil)

	gen := f.start(t, 1).Generation

	f.service.SelectCard(1, gen, "1-a")
	result, snapshot := f.service.SelectCard(1, gen, "1-b")
	assert.Equal(t, game.OutcomeMatched, result.Outcome)
	assert.Equal(t, 2, snapshot.Matched)

	f.service.SelectCard(1, gen, "2-b")
	result, snapshot = f.service.SelectCard(1, gen, "2-a")
	assert.True(t, result.Won)
	assert.Equal(t, game.StateWon, snapshot.State)

	f.users.AssertNumberOfCalls(t, "AddPoints", 2)
	f.users.AssertNumberOfCalls(t, "IncrementGamesWon", 1)
}

func TestGameService_StaleBoardIgnored(t *testing.T) {
	f := newGameFixture(t)
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)

	old := f.start(t, 1).Generation
	current := f.start(t, 1).Generation
	require.NotEqual(t, old, current)

	result, snapshot := f.service.SelectCard(1, old, "1-a")

	assert.Equal(t, game.OutcomeIgnored, result.Outcome)
	assert.Equal(t, current, snapshot.Generation)
	for _, c := range snapshot.Cards {
		assert.False(t, c.IsFlipped)
	}
}

func TestGameService_NoGame(t *testing.T) {
	f := newGameFixture(t)

	result, snapshot := f.service.SelectCard(7, 1, "1-a")

	assert.Equal(t, game.OutcomeIgnored, result.Outcome)
	assert.Empty(t, snapshot.Cards)

	_, ok := f.service.Snapshot(7)
	assert.False(t, ok)
}

func TestGameService_MismatchNotifiesObserver(t *testing.T) {
	f := newGameFixture(t)
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)

	gen := f.start(t, 1).Generation
	f.service.SelectCard(1, gen, "1-a")
	result, _ := f.service.SelectCard(1, gen, "2-a")
	require.Equal(t, game.OutcomeMismatched, result.Outcome)
	assert.Equal(t, 0, f.observer.count())

	assert.Equal(t, 1, f.scheduler.FirePending())

	require.Equal(t, 1, f.observer.count())
	assert.Equal(t, game.StateIdle, f.observer.changes[0].State)
	f.users.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything)
}

func TestGameService_EndGame(t *testing.T) {
	f := newGameFixture(t)
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)

	gen := f.start(t, 1).Generation
	f.service.SelectCard(1, gen, "1-a")
	f.service.SelectCard(1, gen, "2-b")

	f.service.EndGame(1)

	timers := f.scheduler.Timers()
	require.Len(t, timers, 1)
	assert.True(t, timers[0].Stopped())

	_, ok := f.service.Snapshot(1)
	assert.False(t, ok)
	assert.Equal(t, 0, f.observer.count())
}

func TestGameService_EndGameWhileLoading(t *testing.T) {
	f := newGameFixture(t)
	fetching := make(chan struct{})
	release := make(chan struct{})
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).
		Return(servicePairs, nil).
		Run(func(mock.Arguments) {
			close(fetching)
			<-release
		})

	type outcome struct {
		snapshot game.Snapshot
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		snapshot, err := f.service.StartGame(context.Background(), 1, domain.LevelBeginner, f.observer)
		done <- outcome{snapshot: snapshot, err: err}
	}()

	<-fetching
	f.service.EndGame(1)
	close(release)
	got := <-done

	assert.ErrorIs(t, got.err, ErrGameCancelled)
	assert.Empty(t, got.snapshot.Cards)
	_, ok := f.service.Snapshot(1)
	assert.False(t, ok)

	// the next game gets a fresh, playable session
	f.source.ExpectedCalls = nil
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)
	gen := f.start(t, 1).Generation
	result, _ := f.service.SelectCard(1, gen, "1-a")
	assert.Equal(t, game.OutcomeFlipped, result.Outcome)
}

func TestGameService_PerUserSessions(t *testing.T) {
	f := newGameFixture(t)
	f.source.On("FetchPairs", mock.Anything, domain.LevelBeginner).Return(servicePairs, nil)

	genA := f.start(t, 1).Generation
	f.start(t, 2)

	f.service.SelectCard(1, genA, "1-a")

	a, _ := f.service.Snapshot(1)
	b, _ := f.service.Snapshot(2)
	assert.Equal(t, game.StateOneSelected, a.State)
	assert.Equal(t, game.StateIdle, b.State)
}
