package handler

import (
	"strings"
	"testing"

	"lunacat/internal/domain"
	"lunacat/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapResponse(t *testing.T) {
	current := game.Snapshot{Generation: 5}

	tests := []struct {
		name       string
		result     game.Result
		snapshot   game.Snapshot
		generation uint64
		expected   string
	}{
		{name: "match shows points", result: game.Result{Outcome: game.OutcomeMatched, Points: 20}, snapshot: current, generation: 5, expected: "✨ Match! +20 ⭐"},
		{name: "winning match", result: game.Result{Outcome: game.OutcomeMatched, Points: 35, Won: true}, snapshot: current, generation: 5, expected: "✨ Match! +35 ⭐"},
		{name: "mismatch", result: game.Result{Outcome: game.OutcomeMismatched}, snapshot: current, generation: 5, expected: "🙀 Not a match!"},
		{name: "first card flipped", result: game.Result{Outcome: game.OutcomeFlipped}, snapshot: current, generation: 5},
		{name: "double tap on current board", result: game.Result{Outcome: game.OutcomeIgnored}, snapshot: current, generation: 5},
		{name: "tap on old board", result: game.Result{Outcome: game.OutcomeIgnored}, snapshot: current, generation: 4, expected: gameOverText},
		{name: "tap without a game", result: game.Result{Outcome: game.OutcomeIgnored}, snapshot: game.Snapshot{}, generation: 2, expected: gameOverText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tapResponse(tt.result, tt.snapshot, tt.generation)
			if tt.expected == "" {
				assert.Nil(t, resp)
				return
			}
			require.NotNil(t, resp)
			assert.Equal(t, tt.expected, resp.Text)
		})
	}
}

func TestBoardMessage(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.StateData
		expected bool
	}{
		{name: "game with board", state: domain.StateData{Mode: domain.ModeGame, ChatID: 99, MessageID: 12}, expected: true},
		{name: "game without stored message", state: domain.StateData{Mode: domain.ModeGame, ChatID: 99}, expected: false},
		{name: "left for the dashboard", state: domain.StateData{Mode: domain.ModeDashboard, ChatID: 99, MessageID: 12}, expected: false},
		{name: "chatting", state: domain.StateData{Mode: domain.ModeChat, ChatID: 99, MessageID: 12}, expected: false},
		{name: "no state", state: domain.StateData{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := boardMessage(tt.state)
			assert.Equal(t, tt.expected, ok)
			if ok {
				assert.Equal(t, "12", msg.MessageID)
				assert.Equal(t, int64(99), msg.ChatID)
			}
		})
	}
}

func TestCardCallbackRouting(t *testing.T) {
	snapshot := testSnapshot(game.StateIdle,
		game.Card{ID: "1-a", PairID: "1", Content: "猫"},
		game.Card{ID: "1-b", PairID: "1", Content: "Cat"},
	)
	markup := boardMarkup(snapshot)
	require.NotEmpty(t, markup.InlineKeyboard)

	for _, btn := range markup.InlineKeyboard[0] {
		data := cleanCallbackData("\f" + btn.Unique)
		require.Truef(t, strings.HasPrefix(data, prefixCard), "data %q", data)

		gen, cardID, ok := parseCardData(data)
		require.True(t, ok)
		assert.Equal(t, snapshot.Generation, gen)
		assert.Contains(t, []string{"1-a", "1-b"}, cardID)
	}
}
