package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydey/attendance-bot/internal/service"
)

func TestParseWeekSchedule(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    service.WeekSchedule
		wantErr bool
	}{
		{
			name: "default_table",
			in:   "mon=Salsa,wed=Bachata,fri=Hip Hop",
			want: service.WeekSchedule{
				time.Monday:    "Salsa",
				time.Wednesday: "Bachata",
				time.Friday:    "Hip Hop",
			},
		},
		{
			name: "full_day_names_and_spaces",
			in:   " Monday = Salsa , Sunday = Yoga ",
			want: service.WeekSchedule{
				time.Monday: "Salsa",
				time.Sunday: "Yoga",
			},
		},
		{
			name: "empty_means_no_classes",
			in:   "",
			want: service.WeekSchedule{},
		},
		{
			name:    "missing_separator",
			in:      "mon-Salsa",
			wantErr: true,
		},
		{
			name:    "unknown_day",
			in:      "someday=Salsa",
			wantErr: true,
		},
		{
			name:    "empty_class",
			in:      "mon=",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseWeekSchedule(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := service.ParseWeekday("THU")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, day)

	_, err = service.ParseWeekday("t")
	assert.Error(t, err)
}
