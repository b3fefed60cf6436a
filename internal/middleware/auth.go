package middleware

import (
	"lunacat/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	passwordPrompt = "🔒 Please ask a grown-up to type the password first."
	errorText      = "😿 Something went wrong. Please try again later."
)

// AuthMiddleware lets unauthorized users reach only /start and password
// entry. Buttons and other updates are rejected until the password is given.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			// Ensure user exists
			if err := authService.EnsureUserExists(sender.ID, sender.FirstName); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return reject(c, errorText)
			}

			authorized, err := authService.IsAuthorized(sender.ID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return reject(c, errorText)
			}

			if authorized {
				return next(c)
			}

			// Text (including /start) is handled downstream as a password attempt
			if c.Callback() == nil && c.Text() != "" {
				return next(c)
			}

			logger.Debug("Rejected update from unauthorized user", zap.Int64("user_id", sender.ID))
			return reject(c, passwordPrompt)
		}
	}
}

func reject(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
