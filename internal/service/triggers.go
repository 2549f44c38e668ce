package service

import (
	"context"
	"log/slog"

	"github.com/rydey/attendance-bot/internal/dal"
)

//go:generate mockgen -package mocks -destination mocks/notifier.go . Notifier

// Notifier fans one notification out to a subscription list.
type Notifier interface {
	FanOut(ctx context.Context, list string, n Notification) Report
}

// TriggerEvent is one inbound group message, alive only for the duration of
// handling it.
type TriggerEvent struct {
	ChatID       int64
	ChatTitle    string
	ChatUsername string
	MessageID    int
	SenderID     int64
	Text         string
}

// Triggers is the keyword pipeline: detector, link resolver and formatter in
// front of the fan-out engine.
type Triggers struct {
	detector      *KeywordDetector
	notifications Notifier

	log *slog.Logger
}

func NewTriggers(detector *KeywordDetector, notifications Notifier, log *slog.Logger) *Triggers {
	return &Triggers{
		detector:      detector,
		notifications: notifications,

		log: log.With("component", "service").With("service", "triggers"),
	}
}

// HandleMessage runs one inbound group message through the pipeline. It
// returns the fan-out report and whether the keyword matched at all; a
// non-matching message is a silent no-op.
func (s *Triggers) HandleMessage(ctx context.Context, ev TriggerEvent) (Report, bool) {
	if !s.detector.Match(ev.Text) {
		return Report{}, false
	}

	s.log.InfoContext(ctx, "keyword trigger matched",
		"chatID", ev.ChatID,
		"chatTitle", ev.ChatTitle,
		"messageID", ev.MessageID,
		"senderID", ev.SenderID)

	link := MessageLink(ev.ChatUsername, ev.ChatID, ev.MessageID)
	alert := BuildAlert(ev.ChatTitle, ev.Text, link)

	return s.notifications.FanOut(ctx, dal.ListAttendance, alert), true
}
