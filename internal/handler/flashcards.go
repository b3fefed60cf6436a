package handler

import (
	"fmt"

	"lunacat/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func (h *Handler) handleStartFlashcards(c tele.Context) error {
	userID := c.Sender().ID

	user, err := h.progress.Profile(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	view := h.flashcards.Start(h.ctx, userID, user.Level)
	h.SetState(userID, domain.StateData{Mode: domain.ModeFlashcards})
	return h.render(c, flashcardText(view), flashcardMarkup())
}

func (h *Handler) handleFlip(c tele.Context) error {
	view, ok := h.flashcards.Flip(c.Sender().ID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Open the flashcards from the menu first 🃏"})
	}
	return h.render(c, flashcardText(view), flashcardMarkup())
}

func (h *Handler) handleAnswer(c tele.Context, known bool) error {
	userID := c.Sender().ID

	user, err := h.progress.Profile(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	view, ok := h.flashcards.Answer(h.ctx, userID, user.Level, known)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Open the flashcards from the menu first 🃏"})
	}

	var resp *tele.CallbackResponse
	switch {
	case view.Awarded > 0 && view.Reloaded:
		resp = &tele.CallbackResponse{Text: fmt.Sprintf("+%d ⭐ Deck finished, here come new cards!", view.Awarded)}
	case view.Awarded > 0:
		resp = &tele.CallbackResponse{Text: fmt.Sprintf("+%d ⭐", view.Awarded)}
	case view.Reloaded:
		resp = &tele.CallbackResponse{Text: "Deck finished, here come new cards!"}
	}
	return h.renderWith(c, flashcardText(view), flashcardMarkup(), resp)
}
