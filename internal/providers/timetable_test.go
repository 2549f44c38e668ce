package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rydey/attendance-bot/internal/service"
)

const timetableHTML = `<html><body>
<h1>Weekly timetable</h1>
<table>
  <tr><th>Day</th><th>Class</th></tr>
  <tr><td>Monday</td><td>Salsa</td></tr>
  <tr><td>wed</td><td>Bachata</td></tr>
  <tr><td>Fri</td><td> Hip Hop </td></tr>
  <tr><td>Someday</td><td>Never</td></tr>
  <tr><td>Saturday</td><td></td></tr>
</table>
<table><tr><td>Sunday</td><td>Ignored second table</td></tr></table>
</body></html>`

func TestTimetableProvider_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		loadPage func(context.Context, string) ([]byte, error)
		want     service.WeekSchedule
		wantErr  assert.ErrorAssertionFunc
	}{
		{
			name: "success",
			loadPage: func(_ context.Context, _ string) ([]byte, error) {
				return []byte(timetableHTML), nil
			},
			want: service.WeekSchedule{
				time.Monday:    "Salsa",
				time.Wednesday: "Bachata",
				time.Friday:    "Hip Hop",
			},
			wantErr: assert.NoError,
		},
		{
			name: "load_error",
			loadPage: func(_ context.Context, _ string) ([]byte, error) {
				return nil, errors.New("connection refused")
			},
			wantErr: assert.Error,
		},
		{
			name: "page_without_table",
			loadPage: func(_ context.Context, _ string) ([]byte, error) {
				return []byte(`<html><body><p>maintenance</p></body></html>`), nil
			},
			wantErr: assert.Error,
		},
		{
			name: "table_without_day_rows",
			loadPage: func(_ context.Context, _ string) ([]byte, error) {
				return []byte(`<html><table><tr><td>???</td><td>Salsa</td></tr></table></html>`), nil
			},
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &TimetableProvider{
				url:      "https://example.com/timetable",
				loadPage: tt.loadPage,
			}

			got, err := p.Schedule(t.Context())
			tt.wantErr(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
