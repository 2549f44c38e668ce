package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

//go:generate mockgen -package mocks -destination mocks/gateway.go . Gateway

// ErrRecipientGone is the gateway's permanent-failure signal: the recipient
// blocked the bot, was deactivated, or never started a conversation with it.
// A send failing this way can never succeed again until the user re-initiates
// contact, so the recipient is purged from every subscription list.
var ErrRecipientGone = errors.New("recipient gone")

type (
	// Gateway delivers one direct message to one recipient. A permanent
	// delivery failure is reported as ErrRecipientGone (possibly wrapped).
	Gateway interface {
		SendNotification(ctx context.Context, chatID int64, n Notification) error
	}

	// Report aggregates the outcome of one fan-out run.
	Report struct {
		Sent    int `json:"sent"`
		Failed  int `json:"failed"`
		Removed int `json:"removed"`
	}

	Notifications struct {
		subscriptions Memberships
		gateway       Gateway

		limiter *rate.Limiter
		log     *slog.Logger
	}

	// Memberships is the slice of the subscriptions adapter the fan-out
	// engine consumes: the list to iterate and the purge side effect.
	Memberships interface {
		Members(ctx context.Context, list string) []int64
		UnsubscribeAll(ctx context.Context, chatID int64)
	}
)

//go:generate mockgen -package mocks -destination mocks/memberships.go . Memberships

// NewNotifications builds the fan-out engine. sendInterval is the minimum
// spacing between outbound sends; the limiter is shared across every fan-out
// issued through this instance so the global rate ceiling holds even when the
// keyword and reminder paths overlap.
func NewNotifications(subscriptions Memberships, gateway Gateway, sendInterval time.Duration, log *slog.Logger) *Notifications {
	return &Notifications{
		subscriptions: subscriptions,
		gateway:       gateway,

		limiter: rate.NewLimiter(rate.Every(sendInterval), 1),
		log:     log.With("component", "service").With("service", "notifications"),
	}
}

// FanOut sends the notification to every member of the list, exactly one
// attempt per recipient. Individual failures never stop the loop: transient
// errors are counted and logged, a permanent-failure signal additionally
// purges the recipient from all lists. The report always accounts for the
// whole list.
func (s *Notifications) FanOut(ctx context.Context, list string, n Notification) Report {
	log := s.log.With("run", uuid.NewString(), "list", list)

	members := s.subscriptions.Members(ctx, list)
	if len(members) == 0 {
		log.InfoContext(ctx, "no subscribers to notify")
		return Report{}
	}

	log.InfoContext(ctx, "starting fan-out", "subscribers", len(members))

	var report Report
	for _, chatID := range members {
		if err := s.limiter.Wait(ctx); err != nil {
			// Context is gone; keep attempting the remaining sends so the
			// report still covers the whole list. They fail fast below.
			log.DebugContext(ctx, "pacing wait interrupted", "error", err)
		}

		err := s.gateway.SendNotification(ctx, chatID, n)
		switch {
		case err == nil:
			report.Sent++
		case errors.Is(err, ErrRecipientGone):
			report.Removed++
			log.InfoContext(ctx, "recipient unreachable, purging subscriptions", "chatID", chatID, "error", err)
			s.subscriptions.UnsubscribeAll(ctx, chatID)
		default:
			report.Failed++
			log.ErrorContext(ctx, "failed to send notification", "chatID", chatID, "error", err)
		}
	}

	log.InfoContext(ctx, "fan-out finished", "sent", report.Sent, "failed", report.Failed, "removed", report.Removed)
	return report
}
