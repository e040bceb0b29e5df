package aviasales

import (
	"encoding/json"
	"fmt"
	"time"

	"airtrack-service/internal/domain/entity"
)

// ticketPayload mirrors one offer in a Travelpayouts response.
// Durations come in minutes.
type ticketPayload struct {
	Price        float64 `json:"price"`
	DepartureAt  string  `json:"departure_at"`
	DurationTo   int     `json:"duration_to"`
	ReturnAt     string  `json:"return_at"`
	DurationBack int     `json:"duration_back"`
	Link         string  `json:"link"`
}

func parseTickets(body []byte) ([]entity.Ticket, error) {
	var payload struct {
		Error string           `json:"error"`
		Data  *[]ticketPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSourceResponse, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", entity.ErrSourceRejected, payload.Error)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: no data field", entity.ErrSourceResponse)
	}
	tickets := make([]entity.Ticket, 0, len(*payload.Data))
	for _, p := range *payload.Data {
		ticket, err := p.toTicket()
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func parseGroupedTickets(body []byte) (map[string]entity.Ticket, error) {
	var payload struct {
		Error string                    `json:"error"`
		Data  *map[string]ticketPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSourceResponse, err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", entity.ErrSourceRejected, payload.Error)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: no data field", entity.ErrSourceResponse)
	}
	tickets := make(map[string]entity.Ticket, len(*payload.Data))
	for date, p := range *payload.Data {
		ticket, err := p.toTicket()
		if err != nil {
			return nil, err
		}
		tickets[date] = ticket
	}
	return tickets, nil
}

func (p ticketPayload) toTicket() (entity.Ticket, error) {
	departureAt, err := parseFlightTime(p.DepartureAt)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("%w: departure_at %q", entity.ErrSourceResponse, p.DepartureAt)
	}
	ticket := entity.Ticket{
		Price:       p.Price,
		DepartureAt: departureAt,
		DurationTo:  time.Duration(p.DurationTo) * time.Minute,
		Link:        p.Link,
	}
	if p.ReturnAt != "" {
		returnAt, err := parseFlightTime(p.ReturnAt)
		if err != nil {
			return entity.Ticket{}, fmt.Errorf("%w: return_at %q", entity.ErrSourceResponse, p.ReturnAt)
		}
		ticket.ReturnAt = &returnAt
		back := time.Duration(p.DurationBack) * time.Minute
		ticket.DurationBack = &back
	}
	return ticket, nil
}

const flightTimeLayout = "2006-01-02T15:04"

// parseFlightTime reads a timestamp like "2023-06-01T09:05:00+03:00",
// dropping seconds and the zone offset the way the source formats them.
func parseFlightTime(s string) (time.Time, error) {
	if len(s) < len(flightTimeLayout) {
		return time.Time{}, fmt.Errorf("timestamp too short: %q", s)
	}
	return time.Parse(flightTimeLayout, s[:len(flightTimeLayout)])
}
