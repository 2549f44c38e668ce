package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rydey/attendance-bot/internal/dal"
)

// reminderWindow is the tolerance around the configured reminder time that
// absorbs invocation jitter from external cron services.
const reminderWindow = time.Minute

type OutcomeStatus string

const (
	OutcomeExecuted         OutcomeStatus = "executed"
	OutcomeSkippedNoClass   OutcomeStatus = "skipped_no_class"
	OutcomeSkippedWrongTime OutcomeStatus = "skipped_wrong_time"
	OutcomeError            OutcomeStatus = "error"
)

// Outcome is the always-structured result of one reminder invocation. Faults
// never escape Run; they are reported here instead.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Class  string        `json:"class,omitempty"`
	Report Report        `json:"report"`
	Error  string        `json:"error,omitempty"`
}

type Clock interface {
	Now() time.Time
}

// Reminders decides whether "now" falls inside the reminder window for the
// current weekday and fans the class reminder out to the class-reminders
// list when it does.
type Reminders struct {
	notifications Notifier
	schedule      WeekSchedule
	clock         Clock

	loc            *time.Location
	reminderHour   int
	reminderMinute int

	log *slog.Logger
}

func NewReminders(
	notifications Notifier,
	schedule WeekSchedule,
	clock Clock,
	loc *time.Location,
	reminderHour, reminderMinute int,
	log *slog.Logger,
) *Reminders {
	return &Reminders{
		notifications: notifications,
		schedule:      schedule,
		clock:         clock,

		loc:            loc,
		reminderHour:   reminderHour,
		reminderMinute: reminderMinute,

		log: log.With("component", "service").With("service", "reminders"),
	}
}

// Run evaluates the reminder for the current instant. force bypasses the
// time-of-day window but not the weekday table: a day without a class never
// sends. The returned outcome classifies what happened; internal panics are
// recovered and reported as an error outcome.
func (s *Reminders) Run(ctx context.Context, force bool) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "reminder run panicked", "panic", r)
			out = Outcome{Status: OutcomeError, Error: fmt.Sprintf("internal fault: %v", r)}
		}
	}()

	now := s.clock.Now().In(s.loc)

	class, ok := s.schedule[now.Weekday()]
	if !ok {
		s.log.InfoContext(ctx, "no class today", "weekday", now.Weekday().String())
		return Outcome{Status: OutcomeSkippedNoClass}
	}

	if !force && !s.withinWindow(now) {
		s.log.InfoContext(ctx, "outside reminder window",
			"now", now.Format("15:04"),
			"target", fmt.Sprintf("%02d:%02d", s.reminderHour, s.reminderMinute))
		return Outcome{Status: OutcomeSkippedWrongTime, Class: class}
	}

	text := fmt.Sprintf("%s class starts in 5 mins", class)
	report := s.notifications.FanOut(ctx, dal.ListClassReminders, Notification{Text: text})

	s.log.InfoContext(ctx, "reminder sent", "class", class, "sent", report.Sent, "failed", report.Failed, "removed", report.Removed)
	return Outcome{Status: OutcomeExecuted, Class: class, Report: report}
}

// withinWindow compares whole minutes, symmetric around the target.
func (s *Reminders) withinWindow(now time.Time) bool {
	target := time.Date(now.Year(), now.Month(), now.Day(), s.reminderHour, s.reminderMinute, 0, 0, s.loc)
	now = now.Truncate(time.Minute)

	diff := now.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= reminderWindow
}
