package handler

import (
	"lunacat/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.auth.EnsureUserExists(userID, c.Sender().FirstName); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(errorText)
	}

	// Check if authorized
	authorized, err := h.auth.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	h.leaveMode(userID)
	h.ResetState(userID)

	if !authorized {
		return c.Send(passwordPrompt)
	}
	return h.showHome(c)
}

// handleHome handles /home command
func (h *Handler) handleHome(c tele.Context) error {
	h.leaveMode(c.Sender().ID)
	return h.showHome(c)
}

// handleText handles password entry and chat messages
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID

	authorized, err := h.auth.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(errorText)
	}

	if !authorized {
		return h.handlePassword(c)
	}

	if h.GetState(userID).Mode == domain.ModeChat {
		return h.handleChatMessage(c)
	}

	return c.Send("🐾 Pick something to do below, or send /home to see your progress.", dashboardMarkup())
}

func (h *Handler) handlePassword(c tele.Context) error {
	userID := c.Sender().ID

	ok, err := h.auth.Login(userID, c.Text())
	if err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(errorText)
	}
	if !ok {
		return c.Send("🙀 That's not the magic word. Try again:")
	}

	if err := c.Send("🔓 Welcome to Luna's classroom!"); err != nil {
		return err
	}
	return h.showHome(c)
}

// showHome sends new students to onboarding and everyone else to the dashboard
func (h *Handler) showHome(c tele.Context) error {
	user, err := h.progress.Profile(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", c.Sender().ID), zap.Error(err))
		return h.render(c, errorText, nil)
	}

	if !user.Onboarded {
		return h.showOnboardingStep(c, 0)
	}
	return h.showDashboard(c, user)
}

func (h *Handler) showDashboard(c tele.Context, user *domain.User) error {
	userID := c.Sender().ID
	h.SetState(userID, domain.StateData{Mode: domain.ModeDashboard})

	if _, err := h.progress.TouchActivity(userID); err != nil {
		h.logger.Warn("Failed to update streak", zap.Int64("user_id", userID), zap.Error(err))
	} else if fresh, err := h.progress.Profile(userID); err == nil {
		user = fresh
	}

	return h.render(c, dashboardText(user, h.nameFor(c.Sender())), dashboardMarkup())
}

func (h *Handler) showOnboardingStep(c tele.Context, index int) error {
	step, ok := h.onboarding.Step(index, h.nameFor(c.Sender()))
	if !ok {
		return c.Respond()
	}

	h.SetState(c.Sender().ID, domain.StateData{Mode: domain.ModeOnboarding, OnboardingStep: index})
	return h.render(c, "🐱 "+step.Text, onboardingMarkup(step))
}

// handleOnboarding advances the introduction or finishes it with an answer
func (h *Handler) handleOnboarding(c tele.Context, data string) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	if state.Mode != domain.ModeOnboarding {
		return c.Respond()
	}

	if data == dataOnboardNext {
		if h.onboarding.IsLast(state.OnboardingStep) {
			return c.Respond()
		}
		return h.showOnboardingStep(c, state.OnboardingStep+1)
	}

	if !h.onboarding.IsLast(state.OnboardingStep) {
		return c.Respond()
	}

	answer := data[len(prefixOnboarding):]
	level, err := h.onboarding.Complete(h.ctx, userID, answer)
	if err != nil {
		h.logger.Error("Failed to complete onboarding", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}

	h.logger.Info("Onboarding completed",
		zap.Int64("user_id", userID),
		zap.String("level", string(level)),
	)

	user, err := h.progress.Profile(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: errorText})
	}
	return h.showDashboard(c, user)
}
