package telegram_test

import (
	tb "gopkg.in/telebot.v3"
)

// stubContext implements the slice of tb.Context the handlers touch; any
// other method panics through the embedded nil interface, which is exactly
// what a test wants.
type stubContext struct {
	tb.Context

	chat     *tb.Chat
	sender   *tb.User
	message  *tb.Message
	callback *tb.Callback

	editErr error

	sent       []string
	edited     []string
	lastMarkup *tb.ReplyMarkup
	responded  bool
	nextCalled bool
}

func (c *stubContext) Chat() *tb.Chat         { return c.chat }
func (c *stubContext) Sender() *tb.User       { return c.sender }
func (c *stubContext) Message() *tb.Message   { return c.message }
func (c *stubContext) Callback() *tb.Callback { return c.callback }
func (c *stubContext) Update() tb.Update      { return tb.Update{} }

func (c *stubContext) Respond(_ ...*tb.CallbackResponse) error {
	c.responded = true
	return nil
}

func (c *stubContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	c.captureMarkup(opts)
	return nil
}

func (c *stubContext) Edit(what interface{}, opts ...interface{}) error {
	if c.editErr != nil {
		return c.editErr
	}
	c.edited = append(c.edited, what.(string))
	c.captureMarkup(opts)
	return nil
}

func (c *stubContext) captureMarkup(opts []interface{}) {
	c.lastMarkup = nil
	for _, opt := range opts {
		if m, ok := opt.(*tb.ReplyMarkup); ok {
			c.lastMarkup = m
		}
	}
}

func privateContext(chatID int64) *stubContext {
	return &stubContext{
		chat:   &tb.Chat{ID: chatID, Type: tb.ChatPrivate},
		sender: &tb.User{ID: chatID},
	}
}

func groupContext(chatID int64, chatType tb.ChatType) *stubContext {
	return &stubContext{
		chat:   &tb.Chat{ID: chatID, Type: chatType},
		sender: &tb.User{ID: 1},
	}
}
