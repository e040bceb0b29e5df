package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"airtrack-service/internal/domain/entity"
)

func TestFormatNotification_OneWay(t *testing.T) {
	direction := entity.FlightDirection{
		StartCode:   "MOW",
		StartName:   "Moscow",
		EndCode:     "LED",
		EndName:     "Saint Petersburg",
		DepartureAt: "2026-10-15",
	}
	tickets := []entity.Ticket{{
		Price:       4500,
		DepartureAt: time.Date(2026, 10, 15, 9, 5, 0, 0, time.UTC),
		DurationTo:  90 * time.Minute,
		Link:        "/search/MOW1510LED1",
	}}

	msg := formatNotification(tickets, direction)
	assert.Contains(t, msg, "Moscow")
	assert.Contains(t, msg, "Saint Petersburg")
	assert.Contains(t, msg, "one way")
	assert.Contains(t, msg, "direct only")
	assert.Contains(t, msg, "4500")
	assert.Contains(t, msg, "15.10.2026 09:05")
	assert.Contains(t, msg, `"https://www.aviasales.com/search/MOW1510LED1"`)
	assert.NotContains(t, msg, "Return")
}

func TestFormatNotification_RoundTripWithTransfers(t *testing.T) {
	direction := entity.FlightDirection{
		StartCode:    "MOW",
		StartName:    "Moscow",
		EndCode:      "AER",
		EndName:      "Sochi",
		WithTransfer: true,
		DepartureAt:  "2026-10",
		ReturnAt:     "2026-11",
	}
	returnAt := time.Date(2026, 11, 2, 18, 30, 0, 0, time.UTC)
	back := 200 * time.Minute
	tickets := []entity.Ticket{{
		Price:        12300,
		DepartureAt:  time.Date(2026, 10, 20, 6, 45, 0, 0, time.UTC),
		DurationTo:   210 * time.Minute,
		ReturnAt:     &returnAt,
		DurationBack: &back,
		Link:         "https://example.com/offer",
	}}

	msg := formatNotification(tickets, direction)
	assert.Contains(t, msg, "back 2026-11")
	assert.Contains(t, msg, "transfers allowed")
	assert.Contains(t, msg, "Return 02.11.2026 18:30")
	assert.Contains(t, msg, `"https://example.com/offer"`)
}

func TestBookingURL(t *testing.T) {
	assert.Equal(t, "https://www.aviasales.com/search/x", bookingURL("/search/x"))
	assert.Equal(t, "http://example.com/x", bookingURL("http://example.com/x"))
}
