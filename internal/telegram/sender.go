package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	tb "gopkg.in/telebot.v3"

	"github.com/rydey/attendance-bot/internal/service"
)

const btnTextOpenMessage = "Open message"

// Sender is the messaging gateway the fan-out engine talks to. It translates
// the platform's permanent-failure responses into service.ErrRecipientGone so
// domain code never depends on the bot framework for classification.
type Sender struct {
	bot *tb.Bot

	log *slog.Logger
}

func NewSender(bot *tb.Bot, log *slog.Logger) *Sender {
	return &Sender{
		bot: bot,
		log: log.With("component", "sender"),
	}
}

func (s *Sender) SendNotification(ctx context.Context, chatID int64, n service.Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send to chatID=%d: %w", chatID, err)
	}

	opts := make([]interface{}, 0, 1)
	if n.LinkURL != "" {
		markup := &tb.ReplyMarkup{}
		markup.Inline(markup.Row(markup.URL(btnTextOpenMessage, n.LinkURL)))
		opts = append(opts, markup)
	}

	_, err := s.bot.Send(tb.ChatID(chatID), n.Text, opts...)
	if err == nil {
		return nil
	}

	if isRecipientGone(err) {
		return fmt.Errorf("send to chatID=%d: %w: %w", chatID, service.ErrRecipientGone, err)
	}
	return fmt.Errorf("send to chatID=%d: %w", chatID, err)
}

// isRecipientGone reports whether the error means the recipient can never be
// reached again until they re-initiate contact: bot blocked, account
// deactivated, or conversation never started. Telegram reports all of these
// in the 403 family.
func isRecipientGone(err error) bool {
	if errors.Is(err, tb.ErrBlockedByUser) ||
		errors.Is(err, tb.ErrUserIsDeactivated) ||
		errors.Is(err, tb.ErrNotStartedByUser) {
		return true
	}

	var tbErr *tb.Error
	if errors.As(err, &tbErr) {
		return tbErr.Code == http.StatusForbidden
	}

	return false
}
