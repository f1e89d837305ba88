package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/config"
	"github.com/ethicraft/club-portal/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, the second signal isUniqueViolation checks.
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Session{},
		&models.Test{},
		&models.Question{},
		&models.AttendanceRecord{},
		&models.TestScore{},
	)
}
