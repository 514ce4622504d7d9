package Models

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the notification journal. The default DSN is an in-memory
// sqlite database, so nothing outlives the process.
func Connect(dsn string) (*gorm.DB, error) {
	connection, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %q: %w", dsn, err)
	}
	if err := connection.AutoMigrate(&Notification{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return connection, nil
}
