package telegram

import (
	"context"
	"log/slog"

	tb "gopkg.in/telebot.v3"

	"github.com/rydey/attendance-bot/internal/dal"
)

const (
	cbAttendanceOnly = "sub_attendance"
	cbAll            = "sub_all"
	cbNone           = "sub_none"

	btnTextAttendanceOnly = "Attendance alerts"
	btnTextAll            = "Attendance + class reminders"
	btnTextNone           = "Notifications off"

	msgMenuHeader = "Pick what you want to be notified about:"
	msgStopped    = "You won't get any more notifications."
)

//go:generate mockgen -package mocks -destination mocks/subscriptions.go . Subscriptions

// Subscriptions is the slice of the subscriptions service the handler needs.
type Subscriptions interface {
	Subscribe(ctx context.Context, list string, chatID int64)
	Unsubscribe(ctx context.Context, list string, chatID int64)
	UnsubscribeAll(ctx context.Context, chatID int64)
	IsSubscribed(ctx context.Context, list string, chatID int64) bool
}

type Handler struct {
	subscriptions Subscriptions

	log *slog.Logger
}

func NewHandler(subscriptions Subscriptions, log *slog.Logger) *Handler {
	return &Handler{
		subscriptions: subscriptions,
		log:           log.With("component", "handler"),
	}
}

// Menu renders the current subscription state with the selection keyboard.
func (h *Handler) Menu(c tb.Context) error {
	chatID := c.Sender().ID
	h.log.Debug("menu handler called", "chatID", chatID)

	text, markup := h.renderMenu(context.Background(), chatID)
	return h.editOrSend(c, text, markup)
}

// Stop removes the user from every list, same as picking "Notifications off".
func (h *Handler) Stop(c tb.Context) error {
	chatID := c.Sender().ID

	h.subscriptions.UnsubscribeAll(context.Background(), chatID)
	h.log.Info("user stopped all notifications", "chatID", chatID)

	return h.editOrSend(c, msgStopped, nil)
}

// Callback routes menu button presses. Unknown callbacks are acknowledged and
// dropped so stale keyboards never error at the user.
func (h *Handler) Callback(c tb.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	chatID := c.Sender().ID

	if err := c.Respond(); err != nil {
		h.log.Warn("failed to respond to callback", "error", err, "chatID", chatID)
	}

	data := callback.Data
	if len(data) > 0 && data[0] == '\f' {
		data = data[1:]
	}

	ctx := context.Background()

	switch data {
	case cbAttendanceOnly:
		h.subscriptions.Subscribe(ctx, dal.ListAttendance, chatID)
		h.subscriptions.Unsubscribe(ctx, dal.ListClassReminders, chatID)
		h.log.Info("user enabled attendance alerts", "chatID", chatID)

	case cbAll:
		h.subscriptions.Subscribe(ctx, dal.ListAttendance, chatID)
		h.subscriptions.Subscribe(ctx, dal.ListClassReminders, chatID)
		h.log.Info("user enabled attendance alerts and class reminders", "chatID", chatID)

	case cbNone:
		h.subscriptions.UnsubscribeAll(ctx, chatID)
		h.log.Info("user disabled notifications", "chatID", chatID)

	default:
		h.log.Debug("no handler matched for callback", "data", data, "chatID", chatID)
		return nil
	}

	text, markup := h.renderMenu(ctx, chatID)
	return h.editOrSend(c, text, markup)
}

func (h *Handler) renderMenu(ctx context.Context, chatID int64) (string, *tb.ReplyMarkup) {
	attendance := h.subscriptions.IsSubscribed(ctx, dal.ListAttendance, chatID)
	reminders := h.subscriptions.IsSubscribed(ctx, dal.ListClassReminders, chatID)

	var state string
	switch {
	case attendance && reminders:
		state = "You get attendance alerts and class reminders."
	case attendance:
		state = "You get attendance alerts."
	default:
		state = "Notifications are off."
	}

	markup := buildMenuMarkup(attendance, reminders)
	return state + "\n\n" + msgMenuHeader, markup
}

// buildMenuMarkup marks the option matching the current list combination
// exactly; partial combinations mark nothing.
func buildMenuMarkup(attendance, reminders bool) *tb.ReplyMarkup {
	markup := &tb.ReplyMarkup{}

	attendanceOnly := markup.Data(mark(btnTextAttendanceOnly, attendance && !reminders), cbAttendanceOnly)
	all := markup.Data(mark(btnTextAll, attendance && reminders), cbAll)
	none := markup.Data(mark(btnTextNone, !attendance && !reminders), cbNone)

	markup.Inline(
		markup.Row(attendanceOnly),
		markup.Row(all),
		markup.Row(none),
	)

	return markup
}

func mark(text string, selected bool) string {
	if selected {
		return "✅ " + text
	}
	return text
}

// editOrSend prefers updating the message the keyboard lives on; when the
// gateway rejects the edit (too old, unchanged, gone) it falls back to a
// fresh message so the user never sees the failure.
func (h *Handler) editOrSend(c tb.Context, text string, markup *tb.ReplyMarkup) error {
	opts := make([]interface{}, 0, 1)
	if markup != nil {
		opts = append(opts, markup)
	}

	if c.Callback() != nil {
		err := c.Edit(text, opts...)
		if err == nil {
			return nil
		}
		h.log.Warn("failed to edit menu message, sending a new one",
			"error", err,
			"chatID", c.Sender().ID)
	}

	return c.Send(text, opts...)
}
