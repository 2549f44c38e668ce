package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.etcd.io/bbolt"

	"github.com/rydey/attendance-bot/internal/calendar"
	"github.com/rydey/attendance-bot/internal/config"
	"github.com/rydey/attendance-bot/internal/dal"
	"github.com/rydey/attendance-bot/internal/dal/migrations"
	"github.com/rydey/attendance-bot/internal/providers"
	"github.com/rydey/attendance-bot/internal/server"
	"github.com/rydey/attendance-bot/internal/service"
	"github.com/rydey/attendance-bot/internal/telegram"
	"github.com/rydey/attendance-bot/pkg/clock"
)

type subscriberStore interface {
	service.SubscriberStore
	Close() error
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.New(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := mustLogger(conf.Dev)
	if !conf.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore(ctx, conf, log)
	if err != nil {
		log.Error("Failed to open store", "driver", conf.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	client, err := telegram.NewClient(conf.TelegramToken)
	if err != nil {
		log.Error("Failed to create telegram client", "error", err)
		os.Exit(1)
	}

	detector, err := service.NewKeywordDetector(conf.TriggerWord)
	if err != nil {
		log.Error("Failed to build keyword detector", "word", conf.TriggerWord, "error", err)
		os.Exit(1)
	}

	loc := conf.Location()
	reminderHour, reminderMinute, err := conf.ReminderTimeOfDay()
	if err != nil {
		log.Error("Failed to parse reminder time", "error", err)
		os.Exit(1)
	}

	schedule := loadSchedule(ctx, conf, log)

	sender := telegram.NewSender(client, log)
	subscriptions := service.NewSubscriptions(store, log)
	notifications := service.NewNotifications(subscriptions, sender, conf.SendInterval, log)
	triggers := service.NewTriggers(detector, notifications, log)
	reminders := service.NewReminders(notifications, schedule, clock.New(), loc, reminderHour, reminderMinute, log)

	bot := telegram.NewBot(client, telegram.NewHandler(subscriptions, log), telegram.NewWatcher(triggers, log), log)
	api := server.New(reminders, conf.TriggerSecret, log)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := api.Serve(ctx, conf.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	scheduler := cron.New(cron.WithLocation(loc))

	if conf.CronEnabled {
		spec := fmt.Sprintf("%d %d * * *", reminderMinute, reminderHour)
		_, err = scheduler.AddFunc(spec, func() {
			reminders.Run(ctx, false)
		})
		if err != nil {
			log.Error("Failed to schedule reminder job", "spec", spec, "error", err)
			os.Exit(1)
		}
	}

	if conf.CalendarID != "" && conf.GoogleCredentialsPath != "" {
		calendarClient, cErr := calendar.NewClient(ctx, conf.GoogleCredentialsPath, conf.CalendarID, loc)
		if cErr != nil {
			log.Error("Failed to create calendar client", "error", cErr)
			os.Exit(1)
		}
		calSync := calendar.NewSyncService(calendarClient, schedule, clock.New(), loc, reminderHour, reminderMinute, log)

		if sErr := calSync.Sync(ctx); sErr != nil {
			log.Warn("Initial calendar sync failed", "error", sErr)
		}
		_, err = scheduler.AddFunc(conf.CalendarSyncCron, func() {
			if sErr := calSync.Sync(ctx); sErr != nil {
				log.Warn("Calendar sync failed", "error", sErr)
			}
		})
		if err != nil {
			log.Error("Failed to schedule calendar sync", "spec", conf.CalendarSyncCron, "error", err)
			os.Exit(1)
		}
	}

	scheduler.Start()

	log.Info("Starting bot")
	if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Failed to start bot", "error", err)
	}

	<-scheduler.Stop().Done()
	wg.Wait()
	log.Info("Stopped bot")
}

// openStore picks the subscriber store backend by driver name. The bolt
// backend runs its bucket migrations before first use.
func openStore(ctx context.Context, conf *config.Config, log *slog.Logger) (subscriberStore, error) {
	switch conf.StoreDriver {
	case "bolt":
		db, err := bbolt.Open(conf.DBPath, 0o600, nil)
		if err != nil {
			return nil, fmt.Errorf("open bolt db: %w", err)
		}
		if err := migrations.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return dal.NewBoltDB(db)
	case "redis":
		return dal.NewRedis(ctx, conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
	case "sqlite":
		return dal.NewSQLite(conf.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", conf.StoreDriver)
	}
}

// loadSchedule prefers the remote timetable when SCHEDULE_URL is set and
// falls back to the configured static table on any failure.
func loadSchedule(ctx context.Context, conf *config.Config, log *slog.Logger) service.WeekSchedule {
	static, err := service.ParseWeekSchedule(conf.ReminderSchedule)
	if err != nil {
		log.Error("Failed to parse reminder schedule", "error", err)
		os.Exit(1)
	}

	if conf.ScheduleURL == "" {
		return static
	}

	remote, err := providers.NewTimetableProvider(conf.ScheduleURL).Schedule(ctx)
	if err != nil {
		log.Warn("Failed to load remote timetable, using static schedule", "url", conf.ScheduleURL, "error", err)
		return static
	}

	log.Info("Loaded remote timetable", "url", conf.ScheduleURL, "days", len(remote))
	return remote
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
