package handler

import (
	"errors"

	"lunacat/internal/domain"
	"lunacat/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func (h *Handler) handleStartChat(c tele.Context) error {
	userID := c.Sender().ID

	greeting := h.chat.Begin(userID, h.nameFor(c.Sender()))
	h.SetState(userID, domain.StateData{Mode: domain.ModeChat})

	return h.render(c, "😺 "+greeting.Text+"\n\n(Type your answer below)", chatMarkup())
}

func (h *Handler) handleChatMessage(c tele.Context) error {
	userID := c.Sender().ID

	user, err := h.progress.Profile(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(errorText)
	}

	if err := c.Notify(tele.Typing); err != nil {
		h.logger.Debug("Failed to send typing action", zap.Error(err))
	}

	reply, err := h.chat.Send(h.ctx, userID, h.nameFor(c.Sender()), user.Level, c.Text())
	if errors.Is(err, service.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		h.logger.Error("Failed to chat", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(errorText)
	}

	return c.Send("😺 "+reply.Text, chatMarkup())
}
