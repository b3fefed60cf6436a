package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// render edits the message a button belongs to, or sends a new one for
// commands and text
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return h.renderWith(c, text, markup, nil)
}

// renderWith is render with a toast shown to the user on callbacks
func (h *Handler) renderWith(c tele.Context, text string, markup *tele.ReplyMarkup, resp *tele.CallbackResponse) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() == nil {
		return c.Send(text, opts...)
	}

	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, opts...)
	}
	if resp != nil {
		return c.Respond(resp)
	}
	return c.Respond()
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	userID := c.Sender().ID
	lock := h.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// Telebot prefixes dynamic data with \f
	data := cleanCallbackData(callback.Data)
	if data == "" {
		data = cleanCallbackData(callback.Unique)
	}
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	switch data {
	case dataHome:
		h.leaveMode(userID)
		return h.showHome(c)
	case dataFlashcards:
		h.leaveMode(userID)
		return h.handleStartFlashcards(c)
	case dataGame:
		return h.handleNewGame(c)
	case dataChat:
		h.leaveMode(userID)
		return h.handleStartChat(c)
	case dataViewDays:
		return h.handleViewDays(c)
	case dataRandomPair:
		return h.handleRandomPair(c)
	case dataCardFlip:
		return h.handleFlip(c)
	case dataCardKnown:
		return h.handleAnswer(c, true)
	case dataCardUnknown:
		return h.handleAnswer(c, false)
	}

	// Dynamic buttons
	switch {
	case strings.HasPrefix(data, prefixCard):
		return h.handleCardTap(c, data)
	case strings.HasPrefix(data, prefixOnboarding):
		return h.handleOnboarding(c, data)
	case strings.HasPrefix(data, prefixPage):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, prefixDay):
		return h.handleDaySelection(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback", zap.String("data", data))
	return c.Respond()
}
