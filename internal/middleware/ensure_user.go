package middleware

import (
	"context"
	"time"

	"shopbot/internal/repository"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// EnsureUser creates middleware that upserts the sender before any
// handler runs, so every handler can rely on the user row existing
func EnsureUser(users repository.UserRepository, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := users.EnsureUser(ctx, sender.ID); err != nil {
				logger.Error("failed to ensure user exists",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}
			return next(c)
		}
	}
}
