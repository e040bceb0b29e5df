package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"airtrack-service/internal/interface/repository"
)

// NewPostgresDB opens the PostgreSQL connection and migrates the
// schema. TranslateError is on so repositories can classify duplicate
// keys with gorm.ErrDuplicatedKey instead of driver-specific codes.
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
