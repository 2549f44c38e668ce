package telegram

import (
	"log/slog"

	tb "gopkg.in/telebot.v3"
)

// PrivateOnly drops updates that did not arrive in a one-to-one chat.
// Subscription commands issued in groups are silent no-ops.
func PrivateOnly() tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != tb.ChatPrivate {
				return nil
			}
			return next(c)
		}
	}
}

// Recover keeps a panicking handler from taking the poller down; the update
// is dropped and the panic logged.
func Recover(log *slog.Logger) tb.MiddlewareFunc {
	return func(next tb.HandlerFunc) tb.HandlerFunc {
		return func(c tb.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("handler panicked", "panic", r, "update", c.Update().ID)
				}
			}()
			return next(c)
		}
	}
}
