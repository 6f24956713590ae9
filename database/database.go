package database

import (
	"fmt"

	"roster/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string, logLevel string) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(dsn), logLevel)
}

// OpenDialector opens any gorm dialector and migrates the schema.
func OpenDialector(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate auto-migrates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Team{}, &models.Person{}, &models.User{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error", "dpanic", "panic", "fatal":
		return logger.Error
	default:
		return logger.Warn
	}
}
