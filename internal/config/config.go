package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Dev bool `envconfig:"DEV" default:"false"`

	TelegramToken string `envconfig:"TELEGRAM_TOKEN"`
	SSMTokenParam string `envconfig:"SSM_TOKEN_PARAM" default:"/attendance-bot/prod/telegram-token"`

	StoreDriver   string `envconfig:"STORE_DRIVER" default:"bolt"`
	DBPath        string `envconfig:"DB_PATH" default:"data/attendance-bot.db"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"data/attendance-bot.sqlite"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	TriggerWord  string        `envconfig:"TRIGGER_WORD" default:"attendance"`
	SendInterval time.Duration `envconfig:"SEND_INTERVAL" default:"55ms"`

	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	TriggerSecret string `envconfig:"TRIGGER_SECRET"`

	UTCOffsetHours   int    `envconfig:"UTC_OFFSET_HOURS" default:"8"`
	ReminderTime     string `envconfig:"REMINDER_TIME" default:"19:55"`
	ReminderSchedule string `envconfig:"REMINDER_SCHEDULE" default:"mon=Salsa,wed=Bachata,fri=Hip Hop"`
	ScheduleURL      string `envconfig:"SCHEDULE_URL"`

	CronEnabled bool `envconfig:"CRON_ENABLED" default:"false"`

	CalendarID            string `envconfig:"CALENDAR_ID"`
	GoogleCredentialsPath string `envconfig:"GOOGLE_CREDENTIALS_PATH"`
	CalendarSyncCron      string `envconfig:"CALENDAR_SYNC_CRON" default:"30 3 * * *"`
}

// New loads configuration from the environment (.env is read first, best
// effort). Outside dev mode a missing Telegram token falls back to the SSM
// parameter store; a token missing from both places is a startup failure.
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	res := &Config{}
	if err := envconfig.Process("", res); err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}

	if res.Dev {
		if res.TelegramToken == "" {
			return nil, errors.New("telegram token is required")
		}
		return res, nil
	}

	if res.TelegramToken == "" {
		token, err := getSSMToken(ctx, res.SSMTokenParam)
		if err != nil {
			return nil, err
		}
		res.TelegramToken = token
	}

	if res.TelegramToken == "" {
		return nil, errors.New("telegram token is required")
	}

	return res, nil
}

// Location is the fixed-offset timezone all reminder times are computed in.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC+%d", c.UTCOffsetHours), c.UTCOffsetHours*60*60)
}

// ReminderTimeOfDay parses REMINDER_TIME ("15:04") into hour and minute.
func (c *Config) ReminderTimeOfDay() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.ReminderTime)
	if err != nil {
		return 0, 0, fmt.Errorf("parse reminder time %q: %w", c.ReminderTime, err)
	}
	return t.Hour(), t.Minute(), nil
}

func getSSMToken(ctx context.Context, param string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	ssmClient := ssm.NewFromConfig(cfg)

	res, err := ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(param),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get SSM token: %w", err)
	}
	if res.Parameter.Value == nil {
		return "", errors.New("SSM token not found")
	}

	return *res.Parameter.Value, nil
}
