package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
)

// GormUserDirectionRepository implements UserDirectionRepository
type GormUserDirectionRepository struct {
	db *gorm.DB
}

// NewGormUserDirectionRepository creates a new GORM user-direction link
// repository bound to db, which may be a transaction.
func NewGormUserDirectionRepository(db *gorm.DB) repository.UserDirectionRepository {
	return &GormUserDirectionRepository{db: db}
}

func (r *GormUserDirectionRepository) Add(ctx context.Context, userID, directionID int64) error {
	row := UsersDirections{UserID: userID, DirectionID: directionID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrAlreadyTracked
		}
		return fmt.Errorf("add user direction: %w", err)
	}
	return nil
}

func (r *GormUserDirectionRepository) GetDirections(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&UsersDirections{}).
		Where("user_id = ?", userID).
		Pluck("direction_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("get user directions: %w", err)
	}
	return ids, nil
}

func (r *GormUserDirectionRepository) GetUsers(ctx context.Context, directionID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&UsersDirections{}).
		Where("direction_id = ?", directionID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("get direction users: %w", err)
	}
	return ids, nil
}

func (r *GormUserDirectionRepository) Remove(ctx context.Context, userID, directionID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND direction_id = ?", userID, directionID).
		Delete(&UsersDirections{}).Error
	if err != nil {
		return fmt.Errorf("remove user direction: %w", err)
	}
	return nil
}
