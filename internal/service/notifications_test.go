package service_test

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/rydey/attendance-bot/internal/dal"
	"github.com/rydey/attendance-bot/internal/service"
	"github.com/rydey/attendance-bot/internal/service/mocks"
)

func TestNotifications_FanOut(t *testing.T) {
	alert := service.Notification{Text: "In G: \"attendance\"", LinkURL: "https://t.me/g/1"}

	type fields struct {
		subscriptions func(*gomock.Controller) service.Memberships
		gateway       func(*gomock.Controller) service.Gateway
	}
	tests := []struct {
		name   string
		fields fields
		want   service.Report
	}{
		{
			name: "all_sends_succeed",
			fields: fields{
				subscriptions: func(ctrl *gomock.Controller) service.Memberships {
					res := mocks.NewMockMemberships(ctrl)
					res.EXPECT().Members(gomock.Any(), dal.ListAttendance).Return([]int64{1, 2, 3})
					return res
				},
				gateway: func(ctrl *gomock.Controller) service.Gateway {
					res := mocks.NewMockGateway(ctrl)
					res.EXPECT().SendNotification(gomock.Any(), int64(1), alert).Return(nil)
					res.EXPECT().SendNotification(gomock.Any(), int64(2), alert).Return(nil)
					res.EXPECT().SendNotification(gomock.Any(), int64(3), alert).Return(nil)
					return res
				},
			},
			want: service.Report{Sent: 3},
		},
		{
			name: "empty_list_is_a_no_op",
			fields: fields{
				subscriptions: func(ctrl *gomock.Controller) service.Memberships {
					res := mocks.NewMockMemberships(ctrl)
					res.EXPECT().Members(gomock.Any(), dal.ListAttendance).Return(nil)
					return res
				},
				gateway: func(ctrl *gomock.Controller) service.Gateway {
					return mocks.NewMockGateway(ctrl)
				},
			},
			want: service.Report{},
		},
		{
			name: "transient_failures_do_not_stop_the_loop",
			fields: fields{
				subscriptions: func(ctrl *gomock.Controller) service.Memberships {
					res := mocks.NewMockMemberships(ctrl)
					res.EXPECT().Members(gomock.Any(), dal.ListAttendance).Return([]int64{1, 2, 3, 4})
					return res
				},
				gateway: func(ctrl *gomock.Controller) service.Gateway {
					res := mocks.NewMockGateway(ctrl)
					res.EXPECT().SendNotification(gomock.Any(), int64(1), alert).Return(fmt.Errorf("telegram: internal server error"))
					res.EXPECT().SendNotification(gomock.Any(), int64(2), alert).Return(fmt.Errorf("telegram: internal server error"))
					res.EXPECT().SendNotification(gomock.Any(), int64(3), alert).Return(fmt.Errorf("telegram: internal server error"))
					res.EXPECT().SendNotification(gomock.Any(), int64(4), alert).Return(nil)
					return res
				},
			},
			want: service.Report{Sent: 1, Failed: 3},
		},
		{
			name: "permanent_failure_purges_and_continues",
			fields: fields{
				subscriptions: func(ctrl *gomock.Controller) service.Memberships {
					res := mocks.NewMockMemberships(ctrl)
					res.EXPECT().Members(gomock.Any(), dal.ListAttendance).Return([]int64{1, 2, 3})
					res.EXPECT().UnsubscribeAll(gomock.Any(), int64(2))
					return res
				},
				gateway: func(ctrl *gomock.Controller) service.Gateway {
					res := mocks.NewMockGateway(ctrl)
					res.EXPECT().SendNotification(gomock.Any(), int64(1), alert).Return(nil)
					res.EXPECT().SendNotification(gomock.Any(), int64(2), alert).Return(fmt.Errorf("send direct message: %w", service.ErrRecipientGone))
					res.EXPECT().SendNotification(gomock.Any(), int64(3), alert).Return(nil)
					return res
				},
			},
			want: service.Report{Sent: 2, Removed: 1},
		},
		{
			name: "all_failure_kinds_mixed",
			fields: fields{
				subscriptions: func(ctrl *gomock.Controller) service.Memberships {
					res := mocks.NewMockMemberships(ctrl)
					res.EXPECT().Members(gomock.Any(), dal.ListAttendance).Return([]int64{1, 2, 3, 4})
					res.EXPECT().UnsubscribeAll(gomock.Any(), int64(1))
					res.EXPECT().UnsubscribeAll(gomock.Any(), int64(4))
					return res
				},
				gateway: func(ctrl *gomock.Controller) service.Gateway {
					res := mocks.NewMockGateway(ctrl)
					res.EXPECT().SendNotification(gomock.Any(), int64(1), alert).Return(service.ErrRecipientGone)
					res.EXPECT().SendNotification(gomock.Any(), int64(2), alert).Return(fmt.Errorf("flood wait"))
					res.EXPECT().SendNotification(gomock.Any(), int64(3), alert).Return(nil)
					res.EXPECT().SendNotification(gomock.Any(), int64(4), alert).Return(service.ErrRecipientGone)
					return res
				},
			},
			want: service.Report{Sent: 1, Failed: 1, Removed: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service.NewNotifications(
				tt.fields.subscriptions(ctrl),
				tt.fields.gateway(ctrl),
				time.Nanosecond, // keep pacing out of the test's way
				slog.New(slog.DiscardHandler),
			)

			got := svc.FanOut(t.Context(), dal.ListAttendance, alert)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotifications_FanOut_PacesSends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const interval = 20 * time.Millisecond
	members := []int64{1, 2, 3}

	subscriptions := mocks.NewMockMemberships(ctrl)
	subscriptions.EXPECT().Members(gomock.Any(), dal.ListClassReminders).Return(members)

	gateway := mocks.NewMockGateway(ctrl)
	gateway.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(len(members))

	svc := service.NewNotifications(subscriptions, gateway, interval, slog.New(slog.DiscardHandler))

	start := time.Now()
	got := svc.FanOut(t.Context(), dal.ListClassReminders, service.Notification{Text: "Salsa class starts in 5 mins"})

	assert.Equal(t, service.Report{Sent: 3}, got)
	// first send may pass immediately; the remaining two must wait one
	// interval each
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}
