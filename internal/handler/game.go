package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lunacat/internal/domain"
	"lunacat/internal/game"
	"lunacat/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseCardData splits card_<generation>_<cardID> callback data
func parseCardData(data string) (uint64, string, bool) {
	rest, ok := strings.CutPrefix(data, prefixCard)
	if !ok {
		return 0, "", false
	}
	genStr, cardID, ok := strings.Cut(rest, "_")
	if !ok || cardID == "" {
		return 0, "", false
	}
	gen, err := strconv.ParseUint(genStr, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return gen, cardID, true
}

// handleNewGame deals a fresh board into the current message
func (h *Handler) handleNewGame(c tele.Context) error {
	userID := c.Sender().ID

	user, err := h.progress.Profile(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	if h.GetState(userID).Mode != domain.ModeGame {
		h.leaveMode(userID)
	}

	// Generating pairs can take a while; show the cat at work first
	msg := c.Message()
	if err := c.Edit("🐱 Luna is shuffling the cards..."); err != nil {
		msg, err = c.Bot().Send(c.Recipient(), "🐱 Luna is shuffling the cards...")
		if err != nil {
			return err
		}
	}
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	// /home or /start while pairs load ends this game through leaveMode
	h.SetState(userID, domain.StateData{
		Mode:      domain.ModeGame,
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	snapshot, err := h.games.StartGame(h.ctx, userID, user.Level, h)
	if errors.Is(err, service.ErrGameCancelled) {
		return nil
	}
	if err != nil {
		h.logger.Error("Failed to start game", zap.Int64("user_id", userID), zap.Error(err))
		_, err = c.Bot().Edit(msg, errorText, chatMarkup())
		return err
	}

	_, err = c.Bot().Edit(msg, boardText(snapshot), boardMarkup(snapshot))
	return err
}

// handleCardTap flips a card on the board
func (h *Handler) handleCardTap(c tele.Context, data string) error {
	userID := c.Sender().ID

	gen, cardID, ok := parseCardData(data)
	if !ok {
		h.logger.Warn("Malformed card callback", zap.String("data", data))
		return c.Respond()
	}

	result, snapshot := h.games.SelectCard(userID, gen, cardID)
	resp := tapResponse(result, snapshot, gen)
	if result.Outcome == game.OutcomeIgnored {
		if resp != nil {
			return c.Respond(resp)
		}
		return c.Respond()
	}

	if result.Won {
		h.logger.Info("Board cleared", zap.Int64("user_id", userID), zap.Uint64("generation", gen))
	}

	return h.renderWith(c, boardText(snapshot), boardMarkup(snapshot), resp)
}

// tapResponse is the toast shown for a tap on the board rendered at generation
func tapResponse(result game.Result, snapshot game.Snapshot, generation uint64) *tele.CallbackResponse {
	switch result.Outcome {
	case game.OutcomeMatched:
		return &tele.CallbackResponse{Text: fmt.Sprintf("✨ Match! +%d ⭐", result.Points)}
	case game.OutcomeMismatched:
		return &tele.CallbackResponse{Text: "🙀 Not a match!"}
	case game.OutcomeIgnored:
		if snapshot.Generation != generation {
			return &tele.CallbackResponse{Text: gameOverText}
		}
	}
	return nil
}

// boardMessage is the stored board message to redraw, if the user is still
// looking at one
func boardMessage(state domain.StateData) (tele.StoredMessage, bool) {
	if state.Mode != domain.ModeGame || state.MessageID == 0 {
		return tele.StoredMessage{}, false
	}
	return tele.StoredMessage{
		MessageID: strconv.Itoa(state.MessageID),
		ChatID:    state.ChatID,
	}, true
}

// BoardChanged redraws the board after a mismatched pair is turned back
func (h *Handler) BoardChanged(userID int64, snapshot game.Snapshot) {
	msg, ok := boardMessage(h.GetState(userID))
	if !ok {
		return
	}
	if _, err := h.bot.Edit(msg, boardText(snapshot), boardMarkup(snapshot)); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return
		}
		h.logger.Warn("Failed to redraw board",
			zap.Int64("user_id", userID),
			zap.Uint64("generation", snapshot.Generation),
			zap.Error(err),
		)
	}
}
