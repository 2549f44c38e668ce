package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tb "gopkg.in/telebot.v3"
)

// NewClient builds the telebot client. telebot resolves the bot's own
// identity during construction, so by the time this returns the username used
// for deep links and logs is known — no traffic is served before that.
func NewClient(token string) (*tb.Bot, error) {
	bot, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: 5 * time.Second}, //nolint:mnd // it's ok
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return bot, nil
}

type Bot struct {
	bot *tb.Bot

	handler *Handler
	watcher *Watcher

	log *slog.Logger
}

func NewBot(bot *tb.Bot, handler *Handler, watcher *Watcher, log *slog.Logger) *Bot {
	return &Bot{
		bot: bot,

		handler: handler,
		watcher: watcher,

		log: log.With("component", "bot"),
	}
}

// Start registers routes and runs the poller until ctx is cancelled.
// Subscription commands and callbacks only work one-to-one; group chats are
// watched solely for trigger keywords.
func (b *Bot) Start(ctx context.Context) error {
	b.bot.Use(Recover(b.log))

	b.bot.Handle("/start", b.handler.Menu, PrivateOnly())
	b.bot.Handle("/notifications", b.handler.Menu, PrivateOnly())
	b.bot.Handle("/stop", b.handler.Stop, PrivateOnly())
	b.bot.Handle(tb.OnCallback, b.handler.Callback, PrivateOnly())

	b.bot.Handle(tb.OnText, b.watcher.OnMessage)
	b.bot.Handle(tb.OnMedia, b.watcher.OnMessage)

	go func() {
		<-ctx.Done()
		b.log.Info("Stopping bot")
		b.bot.Stop()
	}()

	b.log.Info("Starting bot", "username", b.bot.Me.Username)
	b.bot.Start()

	return nil
}
