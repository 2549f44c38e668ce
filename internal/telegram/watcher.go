package telegram

import (
	"context"
	"log/slog"

	tb "gopkg.in/telebot.v3"

	"github.com/rydey/attendance-bot/internal/service"
)

// TriggerPipeline runs one inbound group message through keyword detection
// and fan-out.
type TriggerPipeline interface {
	HandleMessage(ctx context.Context, ev service.TriggerEvent) (service.Report, bool)
}

// Watcher turns group and supergroup messages into trigger events. Anything
// malformed or out of scope is acknowledged without error so the gateway
// never retries.
type Watcher struct {
	triggers TriggerPipeline

	log *slog.Logger
}

func NewWatcher(triggers TriggerPipeline, log *slog.Logger) *Watcher {
	return &Watcher{
		triggers: triggers,
		log:      log.With("component", "watcher"),
	}
}

func (w *Watcher) OnMessage(c tb.Context) error {
	msg := c.Message()
	chat := c.Chat()
	if msg == nil || chat == nil {
		return nil
	}
	if chat.Type != tb.ChatGroup && chat.Type != tb.ChatSuperGroup {
		return nil
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	ev := service.TriggerEvent{
		ChatID:       chat.ID,
		ChatTitle:    chat.Title,
		ChatUsername: chat.Username,
		MessageID:    msg.ID,
		Text:         text,
	}
	if msg.Sender != nil {
		ev.SenderID = msg.Sender.ID
	}

	report, matched := w.triggers.HandleMessage(context.Background(), ev)
	if matched {
		w.log.Info("trigger handled",
			"chatID", ev.ChatID,
			"messageID", ev.MessageID,
			"sent", report.Sent,
			"failed", report.Failed,
			"removed", report.Removed)
	}

	return nil
}
