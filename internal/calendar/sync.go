package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rydey/attendance-bot/internal/service"
)

const (
	syncWindowDays = 7
	classDuration  = time.Hour
	// reminders fire a few minutes before the class starts
	classStartOffset = 5 * time.Minute
)

// EventsClient is the slice of the Calendar API the sync needs.
type EventsClient interface {
	ListOurEvents(ctx context.Context, timeMin, timeMax time.Time) ([]string, error)
	DeleteEvent(ctx context.Context, eventID string) error
	InsertEvent(ctx context.Context, summary string, start, end time.Time) error
}

type Clock interface {
	Now() time.Time
}

// SyncService mirrors the week schedule into Google Calendar with a
// delete-then-recreate pass over the next seven days.
type SyncService struct {
	client   EventsClient
	schedule service.WeekSchedule
	clock    Clock

	loc         *time.Location
	startHour   int
	startMinute int

	log *slog.Logger
}

// NewSyncService creates a calendar sync service. reminderHour/reminderMinute
// is the reminder time of day; published events start classStartOffset later.
func NewSyncService(
	client EventsClient,
	schedule service.WeekSchedule,
	clock Clock,
	loc *time.Location,
	reminderHour, reminderMinute int,
	log *slog.Logger,
) *SyncService {
	start := time.Date(0, time.January, 1, reminderHour, reminderMinute, 0, 0, time.UTC).Add(classStartOffset)

	return &SyncService{
		client:   client,
		schedule: schedule,
		clock:    clock,

		loc:         loc,
		startHour:   start.Hour(),
		startMinute: start.Minute(),

		log: log.With("component", "calendar_sync"),
	}
}

// Sync deletes previously published events in [today 00:00, today+7d) and
// inserts one event per scheduled class in the window.
func (s *SyncService) Sync(ctx context.Context) error {
	now := s.clock.Now().In(s.loc)
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	windowEnd := windowStart.AddDate(0, 0, syncWindowDays)

	s.log.InfoContext(ctx, "Starting calendar sync",
		"timeMin", windowStart.Format(time.RFC3339), "timeMax", windowEnd.Format(time.RFC3339))

	ids, err := s.client.ListOurEvents(ctx, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("calendar sync failed: list: %w", err)
	}
	for _, id := range ids {
		if err := s.client.DeleteEvent(ctx, id); err != nil {
			return fmt.Errorf("calendar sync failed: delete %s: %w", id, err)
		}
	}
	s.log.DebugContext(ctx, "Deleted our events", "count", len(ids))

	var created int
	for offset := range syncWindowDays {
		day := windowStart.AddDate(0, 0, offset)

		class, ok := s.schedule[day.Weekday()]
		if !ok {
			continue
		}

		start := time.Date(day.Year(), day.Month(), day.Day(), s.startHour, s.startMinute, 0, 0, s.loc)
		if err := s.client.InsertEvent(ctx, class, start, start.Add(classDuration)); err != nil {
			return fmt.Errorf("calendar sync failed: insert: %w", err)
		}
		created++
	}

	s.log.InfoContext(ctx, "Calendar sync completed", "deleted", len(ids), "created", created)
	return nil
}
