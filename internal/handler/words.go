package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lunacat/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// daysMarkup lists days as buttons with page navigation
func daysMarkup(days []domain.Day, page, totalPages int, now time.Time) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(days)+2)

	for _, day := range days {
		text := fmt.Sprintf("%s (%d)", day.DisplayString(now), day.WordCount)
		rows = append(rows, m.Row(m.Data(text, prefixDay+day.DateString())))
	}

	if totalPages > 1 {
		nav := tele.Row{}
		if page > 1 {
			nav = append(nav, m.Data("⬅️", fmt.Sprintf("%s%d", prefixPage, page-1)))
		}
		if page < totalPages {
			nav = append(nav, m.Data("➡️", fmt.Sprintf("%s%d", prefixPage, page+1)))
		}
		if len(nav) > 0 {
			rows = append(rows, nav)
		}
	}

	rows = append(rows, homeRow(m))
	m.Inline(rows...)
	return m
}

func wordsText(words []domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 Words you learned that day (%d):\n\n", len(words))
	for i, w := range words {
		if w.Pinyin != "" {
			fmt.Fprintf(&b, "%d. %s (%s) - %s\n", i+1, w.Word, w.Pinyin, w.Translation)
		} else {
			fmt.Fprintf(&b, "%d. %s - %s\n", i+1, w.Word, w.Translation)
		}
	}
	return b.String()
}

// handleViewDays shows the first page of days with learned words
func (h *Handler) handleViewDays(c tele.Context) error {
	return h.showDaysPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	page, err := strconv.Atoi(strings.TrimPrefix(data, prefixPage))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown page"})
	}
	return h.showDaysPage(c, page)
}

func (h *Handler) showDaysPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	days, totalPages, err := h.words.GetDaysList(userID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	if len(days) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no learned words yet. Try the flashcards! 🃏",
			ShowAlert: true,
		})
	}

	return h.render(c, "📅 Your learning days:", daysMarkup(days, page, totalPages, h.progress.Now()))
}

// handleDaySelection shows words for selected day
func (h *Handler) handleDaySelection(c tele.Context, data string) error {
	userID := c.Sender().ID
	dateStr := strings.TrimPrefix(data, prefixDay)

	words, err := h.words.GetWordsByDate(userID, dateStr)
	if err != nil {
		h.logger.Error("Failed to get words by date", zap.String("date", dateStr), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No words for this day"})
	}

	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data("◀️ Back to days", dataViewDays)),
		homeRow(m),
	)
	return h.render(c, wordsText(words), m)
}

// handleRandomPair shows a random learned word for review
func (h *Handler) handleRandomPair(c tele.Context) error {
	userID := c.Sender().ID

	word, err := h.words.GetRandomPair(userID)
	if err != nil {
		h.logger.Error("Failed to get random word", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	if word == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "You have no learned words yet. Try the flashcards! 🃏",
			ShowAlert: true,
		})
	}

	text := fmt.Sprintf("🎲 Do you remember this one?\n\n%s\n🗣 %s\n📖 %s", word.Word, word.Pinyin, word.Translation)

	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(m.Data("🔄 Another one", dataRandomPair)),
		homeRow(m),
	)
	return h.render(c, text, m)
}
