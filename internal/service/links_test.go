package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rydey/attendance-bot/internal/service"
)

func TestMessageLink(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		chatID    int64
		messageID int
		want      string
	}{
		{
			name:      "public_username",
			username:  "dance_campus",
			chatID:    -1001234567890,
			messageID: 42,
			want:      "https://t.me/dance_campus/42",
		},
		{
			name:      "username_wins_over_supergroup_id",
			username:  "somegroup",
			chatID:    -100555,
			messageID: 7,
			want:      "https://t.me/somegroup/7",
		},
		{
			name:      "private_supergroup",
			chatID:    -1001234567890,
			messageID: 42,
			want:      "https://t.me/c/1234567890/42",
		},
		{
			name:      "basic_private_group",
			chatID:    -987654,
			messageID: 42,
			want:      "",
		},
		{
			name:      "positive_chat_id",
			chatID:    123456,
			messageID: 1,
			want:      "",
		},
		{
			name:      "zero_chat",
			chatID:    0,
			messageID: 0,
			want:      "",
		},
		{
			name:      "marker_only_id",
			chatID:    -100,
			messageID: 5,
			want:      "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.MessageLink(tt.username, tt.chatID, tt.messageID))
		})
	}
}
