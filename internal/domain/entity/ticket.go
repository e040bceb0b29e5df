package entity

import (
	"time"
)

// Ticket is a single offer from the price source. ReturnAt and
// DurationBack are nil for one-way offers. Link points at the booking
// page on the source's side.
type Ticket struct {
	Price        float64
	DepartureAt  time.Time
	DurationTo   time.Duration
	ReturnAt     *time.Time
	DurationBack *time.Duration
	Link         string
}

// CheapestPrice returns the price of the first ticket of a batch sorted
// ascending by price, or nil for an empty batch.
func CheapestPrice(tickets []Ticket) *float64 {
	if len(tickets) == 0 {
		return nil
	}
	price := tickets[0].Price
	return &price
}
