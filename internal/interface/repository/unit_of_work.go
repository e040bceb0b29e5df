package repository

import (
	"context"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/repository"
)

// GormUnitOfWork implements UnitOfWork over a gorm transaction. The
// repositories handed to fn are bound to the transaction; fn returning
// nil commits, anything else (error or panic) rolls back.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GORM-backed unit of work.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.Repositories{
			Users:          NewGormUserRepository(tx),
			Directions:     NewGormFlightDirectionRepository(tx),
			UserDirections: NewGormUserDirectionRepository(tx),
			Tickets:        NewGormTicketRepository(tx),
		})
	})
}
