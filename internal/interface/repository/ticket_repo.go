package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
)

// GormTicketRepository implements TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GORM ticket repository bound to
// db, which may be a transaction.
func NewGormTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Add(ctx context.Context, tickets []entity.Ticket, directionID int64) error {
	if len(tickets) == 0 {
		return nil
	}
	rows := make([]Tickets, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, ticketToModel(t, directionID))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("add tickets: %w", err)
	}
	return nil
}

func (r *GormTicketRepository) GetDirectionTickets(ctx context.Context, directionID int64, limit int) ([]entity.Ticket, error) {
	var rows []Tickets
	query := r.db.WithContext(ctx).
		Where("direction_id = ?", directionID).
		Order("price ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get direction tickets: %w", err)
	}
	tickets := make([]entity.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, ticketFromModel(row))
	}
	return tickets, nil
}

func (r *GormTicketRepository) RemoveForDirection(ctx context.Context, directionID int64) error {
	err := r.db.WithContext(ctx).
		Where("direction_id = ?", directionID).
		Delete(&Tickets{}).Error
	if err != nil {
		return fmt.Errorf("remove direction tickets: %w", err)
	}
	return nil
}
