package Models

import (
	"strings"

	"gorm.io/gorm"
)

type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
)

// Notification is one operator-facing message. Rows live in the notification
// journal for the lifetime of the process.
type Notification struct {
	gorm.Model
	Level   NotificationLevel `json:"level" gorm:"size:16;index"`
	Source  string            `json:"source" gorm:"size:32"`
	Message string            `json:"message"`
}

// BeforeCreate normalizes the row before it is journaled
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.Level == "" {
		n.Level = LevelInfo
	}
	n.Message = strings.TrimSpace(n.Message)
	return nil
}
