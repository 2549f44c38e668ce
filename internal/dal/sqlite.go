package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite keeps memberships in a single table keyed by (list, chat_id).
type SQLite struct {
	db  *gorm.DB
	now func() time.Time
}

type membershipRow struct {
	List     string    `gorm:"primaryKey"`
	ChatID   int64     `gorm:"primaryKey"`
	JoinedAt time.Time `gorm:"not null"`
}

func (membershipRow) TableName() string {
	return "memberships"
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&membershipRow{}); err != nil {
		return nil, fmt.Errorf("migrate memberships table: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) AddMember(ctx context.Context, list string, chatID int64) error {
	var row membershipRow
	res := s.db.WithContext(ctx).First(&row, "list = ? AND chat_id = ?", list, chatID)
	if res.Error == nil {
		return nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check membership for chatID=%d: %w", chatID, res.Error)
	}

	row = membershipRow{List: list, ChatID: chatID, JoinedAt: s.now()}
	if res := s.db.WithContext(ctx).Create(&row); res.Error != nil {
		return fmt.Errorf("create membership for chatID=%d: %w", chatID, res.Error)
	}

	return nil
}

func (s *SQLite) RemoveMember(ctx context.Context, list string, chatID int64) error {
	res := s.db.WithContext(ctx).Where("list = ? AND chat_id = ?", list, chatID).Delete(&membershipRow{})
	if res.Error != nil {
		return fmt.Errorf("delete membership for chatID=%d: %w", chatID, res.Error)
	}
	return nil
}

func (s *SQLite) IsMember(ctx context.Context, list string, chatID int64) (bool, error) {
	var row membershipRow
	res := s.db.WithContext(ctx).First(&row, "list = ? AND chat_id = ?", list, chatID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check membership for chatID=%d: %w", chatID, res.Error)
	}
	return true, nil
}

func (s *SQLite) Members(ctx context.Context, list string) ([]int64, error) {
	var rows []membershipRow
	res := s.db.WithContext(ctx).Where("list = ?", list).Order("chat_id").Find(&rows)
	if res.Error != nil {
		return nil, fmt.Errorf("members of list %q: %w", list, res.Error)
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ChatID)
	}

	return ids, nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql db: %w", err)
	}
	return sqlDB.Close()
}
