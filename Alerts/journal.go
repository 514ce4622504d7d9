package Alerts

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"SpeedWatch/Models"
)

const defaultJournalLimit = 50

// Journal keeps every notification shown during this run.
type Journal struct {
	DB *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{DB: db}
}

// Record appends n to the journal.
func (j *Journal) Record(ctx context.Context, n *Models.Notification) error {
	if err := j.DB.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// Recent returns up to limit notifications, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Models.Notification, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	var notifications []Models.Notification
	err := j.DB.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}
	return notifications, nil
}
