package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
)

// GormFlightDirectionRepository implements FlightDirectionRepository
type GormFlightDirectionRepository struct {
	db *gorm.DB
}

// NewGormFlightDirectionRepository creates a new GORM direction
// repository bound to db, which may be a transaction.
func NewGormFlightDirectionRepository(db *gorm.DB) repository.FlightDirectionRepository {
	return &GormFlightDirectionRepository{db: db}
}

func (r *GormFlightDirectionRepository) AddDirectionInfo(ctx context.Context, direction entity.FlightDirection, price *float64, now time.Time) (int64, error) {
	row := FlightDirections{
		StartCode:     direction.StartCode,
		StartName:     direction.StartName,
		EndCode:       direction.EndCode,
		EndName:       direction.EndName,
		WithTransfer:  direction.WithTransfer,
		DepartureAt:   direction.DepartureAt,
		ReturnAt:      direction.ReturnAt,
		Price:         price,
		LastUpdate:    now,
		LastUpdateTry: now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, entity.ErrDirectionExists
		}
		return 0, fmt.Errorf("add direction info: %w", err)
	}
	return row.ID, nil
}

func (r *GormFlightDirectionRepository) GetDirectionID(ctx context.Context, direction entity.FlightDirection) (int64, bool, error) {
	var row FlightDirections
	result := r.db.WithContext(ctx).
		Where("start_code = ? AND end_code = ? AND with_transfer = ? AND departure_at = ? AND return_at = ?",
			direction.StartCode, direction.EndCode, direction.WithTransfer, direction.DepartureAt, direction.ReturnAt).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get direction id: %w", result.Error)
	}
	return row.ID, true, nil
}

func (r *GormFlightDirectionRepository) GetDirectionsInfo(ctx context.Context, ids []int64) ([]entity.FlightDirectionInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []FlightDirections
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get directions info: %w", err)
	}
	infos := make([]entity.FlightDirectionInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, directionInfoFromModel(row))
	}
	return infos, nil
}

func (r *GormFlightDirectionRepository) GetDirectionsWithLastUpdateTryBefore(ctx context.Context, threshold time.Time, limit int) ([]entity.FlightDirectionInfo, error) {
	var rows []FlightDirections
	err := r.db.WithContext(ctx).
		Where("last_update_try < ?", threshold).
		Order("last_update ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get stale directions: %w", err)
	}
	infos := make([]entity.FlightDirectionInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, directionInfoFromModel(row))
	}
	return infos, nil
}

func (r *GormFlightDirectionRepository) UpdatePrice(ctx context.Context, id int64, price *float64, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&FlightDirections{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"price":           price,
			"last_update":     now,
			"last_update_try": now,
		})
	if result.Error != nil {
		return fmt.Errorf("update price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrDirectionNotFound
	}
	return nil
}

func (r *GormFlightDirectionRepository) UpdateLastUpdateTry(ctx context.Context, id int64, tryAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&FlightDirections{}).Where("id = ?", id).
		Update("last_update_try", tryAt).Error
	if err != nil {
		return fmt.Errorf("update last update try: %w", err)
	}
	return nil
}

// DeleteDirection archives the direction with deleted_by_user=true and
// removes the live row together with its user links and tickets. The
// cascade is explicit so it holds regardless of database foreign key
// setup; the caller provides the surrounding transaction.
func (r *GormFlightDirectionRepository) DeleteDirection(ctx context.Context, id int64, deletedAt time.Time) error {
	var row FlightDirections
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrDirectionNotFound
		}
		return fmt.Errorf("delete direction: %w", err)
	}
	return r.deleteRows(ctx, []FlightDirections{row}, deletedAt, true)
}

// DeleteOutdatedDirections archives (deleted_by_user=false) and removes
// every direction departing strictly before yesterday. Subtracting a
// full day keeps a direction alive while its departure date could still
// be in the future in some time zone. Month-only directions compare by
// month, full-date ones by date.
func (r *GormFlightDirectionRepository) DeleteOutdatedDirections(ctx context.Context, now time.Time) (int, error) {
	yesterday := now.AddDate(0, 0, -1)
	monthCutoff := yesterday.Format("2006-01")
	dateCutoff := yesterday.Format("2006-01-02")

	var rows []FlightDirections
	err := r.db.WithContext(ctx).
		Where("(length(departure_at) = 7 AND departure_at < ?) OR (length(departure_at) = 10 AND departure_at < ?)",
			monthCutoff, dateCutoff).
		Find(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("select outdated directions: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := r.deleteRows(ctx, rows, now, false); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *GormFlightDirectionRepository) deleteRows(ctx context.Context, rows []FlightDirections, deletedAt time.Time, deletedByUser bool) error {
	historic := make([]HistoricFlightDirections, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		historic = append(historic, historicFromModel(row, deletedAt, deletedByUser))
		ids = append(ids, row.ID)
	}
	db := r.db.WithContext(ctx)
	if err := db.Create(&historic).Error; err != nil {
		return fmt.Errorf("archive directions: %w", err)
	}
	if err := db.Where("direction_id IN ?", ids).Delete(&UsersDirections{}).Error; err != nil {
		return fmt.Errorf("delete user links: %w", err)
	}
	if err := db.Where("direction_id IN ?", ids).Delete(&Tickets{}).Error; err != nil {
		return fmt.Errorf("delete tickets: %w", err)
	}
	if err := db.Where("id IN ?", ids).Delete(&FlightDirections{}).Error; err != nil {
		return fmt.Errorf("delete directions: %w", err)
	}
	return nil
}
