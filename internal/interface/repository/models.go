package repository

import (
	"time"

	"gorm.io/gorm"

	"airtrack-service/internal/domain/entity"
)

// FlightDirections GORM model for database mapping. return_at is stored
// as an empty string for one-way directions so the uniqueness constraint
// over the five key fields does not have to reason about NULLs.
type FlightDirections struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	StartCode     string    `gorm:"column:start_code;type:varchar(3);not null;uniqueIndex:flight_directions_uc,priority:1"`
	StartName     string    `gorm:"column:start_name;not null"`
	EndCode       string    `gorm:"column:end_code;type:varchar(3);not null;uniqueIndex:flight_directions_uc,priority:2"`
	EndName       string    `gorm:"column:end_name;not null"`
	WithTransfer  bool      `gorm:"column:with_transfer;not null;uniqueIndex:flight_directions_uc,priority:3"`
	DepartureAt   string    `gorm:"column:departure_at;type:varchar(10);not null;uniqueIndex:flight_directions_uc,priority:4"`
	ReturnAt      string    `gorm:"column:return_at;type:varchar(10);not null;default:'';uniqueIndex:flight_directions_uc,priority:5"`
	Price         *float64  `gorm:"column:price"`
	LastUpdate    time.Time `gorm:"column:last_update;not null"`
	LastUpdateTry time.Time `gorm:"column:last_update_try;not null;index"`
}

// TableName overrides the default table name
func (FlightDirections) TableName() string {
	return "flight_directions"
}

// Users GORM model for database mapping
type Users struct {
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
}

func (Users) TableName() string {
	return "users"
}

// UsersDirections GORM model for the user to direction link
type UsersDirections struct {
	UserID      int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	DirectionID int64 `gorm:"column:direction_id;primaryKey;autoIncrement:false"`
}

func (UsersDirections) TableName() string {
	return "users_directions"
}

// Tickets GORM model; durations are stored in minutes
type Tickets struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	DirectionID  int64      `gorm:"column:direction_id;not null;index"`
	Price        float64    `gorm:"column:price;not null"`
	DepartureAt  time.Time  `gorm:"column:departure_at;not null"`
	DurationTo   int64      `gorm:"column:duration_to;not null"`
	ReturnAt     *time.Time `gorm:"column:return_at"`
	DurationBack *int64     `gorm:"column:duration_back"`
	Link         string     `gorm:"column:link;not null"`
}

func (Tickets) TableName() string {
	return "tickets"
}

// HistoricFlightDirections GORM model; rows are written once on direction
// deletion and never touched again
type HistoricFlightDirections struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	DirectionID   int64     `gorm:"column:direction_id;not null"`
	StartCode     string    `gorm:"column:start_code;type:varchar(3);not null"`
	StartName     string    `gorm:"column:start_name;not null"`
	EndCode       string    `gorm:"column:end_code;type:varchar(3);not null"`
	EndName       string    `gorm:"column:end_name;not null"`
	WithTransfer  bool      `gorm:"column:with_transfer;not null"`
	DepartureAt   string    `gorm:"column:departure_at;type:varchar(10);not null"`
	ReturnAt      string    `gorm:"column:return_at;type:varchar(10);not null;default:''"`
	Price         *float64  `gorm:"column:price"`
	LastUpdate    time.Time `gorm:"column:last_update;not null"`
	DeletedAt     time.Time `gorm:"column:deleted_at;not null"`
	DeletedByUser bool      `gorm:"column:deleted_by_user;not null"`
}

func (HistoricFlightDirections) TableName() string {
	return "historic_flight_directions"
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&FlightDirections{},
		&Users{},
		&UsersDirections{},
		&Tickets{},
		&HistoricFlightDirections{},
	)
}

func directionInfoFromModel(m FlightDirections) entity.FlightDirectionInfo {
	return entity.FlightDirectionInfo{
		ID: m.ID,
		FlightDirection: entity.FlightDirection{
			StartCode:    m.StartCode,
			StartName:    m.StartName,
			EndCode:      m.EndCode,
			EndName:      m.EndName,
			WithTransfer: m.WithTransfer,
			DepartureAt:  m.DepartureAt,
			ReturnAt:     m.ReturnAt,
		},
		Price:         m.Price,
		LastUpdate:    m.LastUpdate,
		LastUpdateTry: m.LastUpdateTry,
	}
}

func historicFromModel(m FlightDirections, deletedAt time.Time, deletedByUser bool) HistoricFlightDirections {
	return HistoricFlightDirections{
		DirectionID:   m.ID,
		StartCode:     m.StartCode,
		StartName:     m.StartName,
		EndCode:       m.EndCode,
		EndName:       m.EndName,
		WithTransfer:  m.WithTransfer,
		DepartureAt:   m.DepartureAt,
		ReturnAt:      m.ReturnAt,
		Price:         m.Price,
		LastUpdate:    m.LastUpdate,
		DeletedAt:     deletedAt,
		DeletedByUser: deletedByUser,
	}
}

func ticketFromModel(m Tickets) entity.Ticket {
	t := entity.Ticket{
		Price:       m.Price,
		DepartureAt: m.DepartureAt,
		DurationTo:  time.Duration(m.DurationTo) * time.Minute,
		Link:        m.Link,
	}
	if m.ReturnAt != nil {
		returnAt := *m.ReturnAt
		t.ReturnAt = &returnAt
	}
	if m.DurationBack != nil {
		back := time.Duration(*m.DurationBack) * time.Minute
		t.DurationBack = &back
	}
	return t
}

func ticketToModel(t entity.Ticket, directionID int64) Tickets {
	m := Tickets{
		DirectionID: directionID,
		Price:       t.Price,
		DepartureAt: t.DepartureAt,
		DurationTo:  int64(t.DurationTo / time.Minute),
		Link:        t.Link,
	}
	if t.ReturnAt != nil {
		returnAt := *t.ReturnAt
		m.ReturnAt = &returnAt
	}
	if t.DurationBack != nil {
		back := int64(*t.DurationBack / time.Minute)
		m.DurationBack = &back
	}
	return m
}
