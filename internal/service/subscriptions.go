package service

import (
	"context"
	"log/slog"

	"github.com/rydey/attendance-bot/internal/dal"
)

//go:generate mockgen -package mocks -destination mocks/subscriptions.go . SubscriberStore

// SubscriberStore is the persistence contract for named subscription lists.
// Implementations keep set semantics: adding an existing member or removing
// an absent one is a no-op.
type SubscriberStore interface {
	AddMember(ctx context.Context, list string, chatID int64) error
	RemoveMember(ctx context.Context, list string, chatID int64) error
	IsMember(ctx context.Context, list string, chatID int64) (bool, error)
	Members(ctx context.Context, list string) ([]int64, error)
}

// Subscriptions wraps the store with the delivery-path fault policy: a store
// failure is logged and degrades to a no-op, so it can never break fan-out or
// command handling. Reads degrade to "not a member" / empty list.
type Subscriptions struct {
	store SubscriberStore

	log *slog.Logger
}

func NewSubscriptions(store SubscriberStore, log *slog.Logger) *Subscriptions {
	return &Subscriptions{
		store: store,
		log:   log.With("component", "service").With("service", "subscriptions"),
	}
}

func (s *Subscriptions) Subscribe(ctx context.Context, list string, chatID int64) {
	if err := s.store.AddMember(ctx, list, chatID); err != nil {
		s.log.ErrorContext(ctx, "failed to add member", "list", list, "chatID", chatID, "error", err)
		return
	}
	s.log.DebugContext(ctx, "subscribed", "list", list, "chatID", chatID)
}

func (s *Subscriptions) Unsubscribe(ctx context.Context, list string, chatID int64) {
	if err := s.store.RemoveMember(ctx, list, chatID); err != nil {
		s.log.ErrorContext(ctx, "failed to remove member", "list", list, "chatID", chatID, "error", err)
		return
	}
	s.log.DebugContext(ctx, "unsubscribed", "list", list, "chatID", chatID)
}

// UnsubscribeAll removes the chat from every known list. Each removal is
// attempted even when an earlier one fails.
func (s *Subscriptions) UnsubscribeAll(ctx context.Context, chatID int64) {
	for _, list := range dal.KnownLists() {
		s.Unsubscribe(ctx, list, chatID)
	}
	s.log.InfoContext(ctx, "unsubscribed from all lists", "chatID", chatID)
}

func (s *Subscriptions) IsSubscribed(ctx context.Context, list string, chatID int64) bool {
	member, err := s.store.IsMember(ctx, list, chatID)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to check membership", "list", list, "chatID", chatID, "error", err)
		return false
	}
	return member
}

func (s *Subscriptions) Members(ctx context.Context, list string) []int64 {
	members, err := s.store.Members(ctx, list)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to list members", "list", list, "error", err)
		return nil
	}
	return members
}
