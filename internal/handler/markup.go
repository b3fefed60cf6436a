package handler

import (
	"fmt"

	"lunacat/internal/domain"
	"lunacat/internal/game"
	"lunacat/internal/service"

	tele "gopkg.in/telebot.v3"
)

// Callback data of the fixed buttons
const (
	dataHome         = "home"
	dataFlashcards   = "flashcards"
	dataGame         = "game_new"
	dataChat         = "chat"
	dataViewDays     = "view_days"
	dataRandomPair   = "random_pair"
	dataOnboardNext  = "onb_next"
	dataCardFlip     = "fc_flip"
	dataCardKnown    = "fc_known"
	dataCardUnknown  = "fc_unknown"
	prefixCard       = "card_"
	prefixOnboarding = "onb_"
	prefixPage       = "page_"
	prefixDay        = "day_"
)

const (
	boardColumns = 3
	faceDown     = "🟣"
	matchedFace  = "✅"
)

const passwordPrompt = "🔒 Hi! This is Luna's secret classroom. Please ask a grown-up to type the password:"

const errorText = "😿 Something went wrong. Please try again later."

const gameOverText = "This game is over. Start a new one! 🎮"

func homeRow(m *tele.ReplyMarkup) tele.Row {
	return m.Row(m.Data("🏠 Home", dataHome))
}

func dashboardMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data("🃏 Flashcards", dataFlashcards), m.Data("🎮 Match game", dataGame)),
		m.Row(m.Data("💬 Chat with Luna", dataChat)),
		m.Row(m.Data("📅 My words", dataViewDays), m.Data("🎲 Random word", dataRandomPair)),
	)
	return m
}

func dashboardText(user *domain.User, name string) string {
	return fmt.Sprintf(
		"🐱 Ni Hao, %s!\n\n⭐ Points: %d\n🔥 Streak: %d %s\n📚 Level: %s\n🏆 Games won: %d\n\nWhat shall we learn today?",
		name, user.Points, user.Streak, plural(user.Streak, "day", "days"), user.Level, user.GamesWon,
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func onboardingMarkup(step service.OnboardingStep) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	if len(step.Options) == 0 {
		m.Inline(m.Row(m.Data(step.Action, dataOnboardNext)))
		return m
	}

	rows := make([]tele.Row, 0, len(step.Options))
	for _, opt := range step.Options {
		rows = append(rows, m.Row(m.Data(opt.Label, prefixOnboarding+opt.Value)))
	}
	m.Inline(rows...)
	return m
}

func cardData(generation uint64, cardID string) string {
	return fmt.Sprintf("%s%d_%s", prefixCard, generation, cardID)
}

func cardFace(c game.Card) string {
	switch {
	case c.IsMatched:
		return matchedFace
	case c.IsFlipped:
		return c.Content
	default:
		return faceDown
	}
}

func boardMarkup(s game.Snapshot) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(s.Cards)/boardColumns+2)

	var row tele.Row
	for _, c := range s.Cards {
		row = append(row, m.Data(cardFace(c), cardData(s.Generation, c.ID)))
		if len(row) == boardColumns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if s.State == game.StateWon {
		rows = append(rows, m.Row(m.Data("🔄 Play again", dataGame)))
	}
	rows = append(rows, homeRow(m))

	m.Inline(rows...)
	return m
}

func boardText(s game.Snapshot) string {
	pairs := s.Total / 2
	found := s.Matched / 2

	var header string
	switch s.State {
	case game.StateWon:
		return fmt.Sprintf("🎉 You found all %d pairs! Luna is so proud of you! 🐱💜", pairs)
	case game.StateResolving:
		header = "🙀 Not a match! Try to remember where they are..."
	default:
		header = "🎮 Match each Chinese word with its meaning!"
	}
	return fmt.Sprintf("%s\n\nPairs found: %d/%d", header, found, pairs)
}

func flashcardText(v service.FlashcardView) string {
	text := fmt.Sprintf("🃏 Card %d/%d · %s\n\n%s", v.Index+1, v.Total, v.Card.Category, v.Card.Hanzi)
	if v.Flipped {
		text += fmt.Sprintf("\n\n🗣 %s\n📖 %s", v.Card.Pinyin, v.Card.English)
	} else {
		text += "\n\nDo you know this one? Tap Flip to check!"
	}
	return text
}

func flashcardMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data("🔄 Flip", dataCardFlip)),
		m.Row(m.Data("🤔 Study again", dataCardUnknown), m.Data("✅ I know it!", dataCardKnown)),
		homeRow(m),
	)
	return m
}

func chatMarkup() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(homeRow(m))
	return m
}
