package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/repository"
)

// GormUserRepository implements UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository bound to db,
// which may be a transaction.
func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var row Users
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("user exists: %w", result.Error)
	}
	return true, nil
}

func (r *GormUserRepository) Add(ctx context.Context, userID int64) error {
	row := Users{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	return nil
}
