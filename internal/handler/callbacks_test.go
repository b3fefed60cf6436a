package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "fixed button", input: dataFlashcards, expected: dataFlashcards},
		{name: "telebot unique prefix", input: "\fgame_new", expected: "game_new"},
		{name: "card with generation", input: "\fcard_3_1-a", expected: "card_3_1-a"},
		{name: "surrounding whitespace", input: "  page_2 ", expected: "page_2"},
		{name: "control characters inside", input: "fc_\x00known\x01", expected: "fc_known"},
		{name: "newline and tab", input: "onb_\nbeginner\t", expected: "onb_beginner"},
		{name: "hanzi survive", input: "day_猫", expected: "day_猫"},
		{name: "only whitespace", input: "   ", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanCallbackData(tt.input))
		})
	}
}

func TestCleanCallbackData_CardPayloadParses(t *testing.T) {
	gen, cardID, ok := parseCardData(cleanCallbackData("\f" + cardData(12, "4-b")))

	assert.True(t, ok)
	assert.Equal(t, uint64(12), gen)
	assert.Equal(t, "4-b", cardID)
}
