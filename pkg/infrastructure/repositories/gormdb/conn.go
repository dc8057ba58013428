package gormdb

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres with the given DSN. GORM's own logging is kept
// silent; the application logs through zap at the service layer.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the acknowledgment table. The shortage view and the
// work_orders table are owned by the ERP schema and are not migrated here.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&acknowledgmentRow{}); err != nil {
		return fmt.Errorf("failed to migrate acknowledgment schema: %w", err)
	}
	return nil
}
