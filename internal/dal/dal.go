package dal

import (
	"fmt"
	"strconv"
	"time"
)

// Subscription list names. Every store backend keys memberships by these.
const (
	ListAttendance     = "attendance"
	ListClassReminders = "class-reminders"
)

// KnownLists returns all subscription lists the bot maintains.
func KnownLists() []string {
	return []string{ListAttendance, ListClassReminders}
}

// Membership is the stored record for a single list member.
type Membership struct {
	ChatID   int64     `json:"chat_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func i64tob(id int64) []byte {
	return []byte(fmt.Sprintf("%d", id))
}

func btoi64(b []byte) (int64, error) {
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chat id %q: %w", b, err)
	}
	return id, nil
}
