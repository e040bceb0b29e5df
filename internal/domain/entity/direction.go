package entity

import (
	"time"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// FlightDirection describes a route a user wants to watch. It is a value:
// two directions with the same fields are the same direction, and the
// five-field key (codes, transfer flag, dates) is the deduplication key
// in storage. ReturnAt is empty for one-way directions.
type FlightDirection struct {
	StartCode    string
	StartName    string
	EndCode      string
	EndName      string
	WithTransfer bool
	DepartureAt  string
	ReturnAt     string
}

// DepartureDate parses DepartureAt, which is either "YYYY-MM" or
// "YYYY-MM-DD". A month-only value parses to the first day of the month.
func (d FlightDirection) DepartureDate() (time.Time, error) {
	if len(d.DepartureAt) == len(monthLayout) {
		return time.Parse(monthLayout, d.DepartureAt)
	}
	return time.Parse(dateLayout, d.DepartureAt)
}

// ReturnDate parses ReturnAt; the second return value is false for
// one-way directions.
func (d FlightDirection) ReturnDate() (time.Time, bool, error) {
	if d.ReturnAt == "" {
		return time.Time{}, false, nil
	}
	if len(d.ReturnAt) == len(monthLayout) {
		t, err := time.Parse(monthLayout, d.ReturnAt)
		return t, err == nil, err
	}
	t, err := time.Parse(dateLayout, d.ReturnAt)
	return t, err == nil, err
}

// FlightDirectionInfo is the stored record for a direction: the direction
// itself plus the cached price state. Price is nil while no offer has
// ever been seen. LastUpdate is the time of the last successful refresh;
// LastUpdateTry is the time of the last refresh attempt, successful or
// not, and is what the updater polls by so a direction whose source calls
// keep failing does not crowd out the ones that succeed.
type FlightDirectionInfo struct {
	ID int64
	FlightDirection
	Price         *float64
	LastUpdate    time.Time
	LastUpdateTry time.Time
}

// UserDirection links a user to a tracked direction.
type UserDirection struct {
	UserID      int64
	DirectionID int64
}

// HistoricFlightDirection is a frozen snapshot of a deleted direction.
// DeletedByUser is true when the last subscriber removed it themselves
// and false when the outdated-direction sweep did. Rows are append-only.
type HistoricFlightDirection struct {
	ID int64
	FlightDirection
	Price         *float64
	LastUpdate    time.Time
	DeletedAt     time.Time
	DeletedByUser bool
}
