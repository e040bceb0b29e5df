package api

import (
	"time"

	"airtrack-service/internal/domain/entity"
)

type ticketResponse struct {
	Price           float64    `json:"price"`
	DepartureAt     time.Time  `json:"departure_at"`
	DurationToMin   int64      `json:"duration_to_minutes"`
	ReturnAt        *time.Time `json:"return_at,omitempty"`
	DurationBackMin *int64     `json:"duration_back_minutes,omitempty"`
	Link            string     `json:"link"`
}

func toTicketResponse(t entity.Ticket) ticketResponse {
	resp := ticketResponse{
		Price:         t.Price,
		DepartureAt:   t.DepartureAt,
		DurationToMin: int64(t.DurationTo / time.Minute),
		ReturnAt:      t.ReturnAt,
		Link:          t.Link,
	}
	if t.DurationBack != nil {
		back := int64(*t.DurationBack / time.Minute)
		resp.DurationBackMin = &back
	}
	return resp
}

func ticketResponses(tickets []entity.Ticket) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}
	return out
}

type directionResponse struct {
	ID           int64     `json:"id"`
	StartCode    string    `json:"start_code"`
	StartName    string    `json:"start_name"`
	EndCode      string    `json:"end_code"`
	EndName      string    `json:"end_name"`
	WithTransfer bool      `json:"with_transfer"`
	DepartureAt  string    `json:"departure_at"`
	ReturnAt     string    `json:"return_at,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	LastUpdate   time.Time `json:"last_update"`
}

func directionResponses(infos []entity.FlightDirectionInfo) []directionResponse {
	out := make([]directionResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, directionResponse{
			ID:           info.ID,
			StartCode:    info.StartCode,
			StartName:    info.StartName,
			EndCode:      info.EndCode,
			EndName:      info.EndName,
			WithTransfer: info.WithTransfer,
			DepartureAt:  info.DepartureAt,
			ReturnAt:     info.ReturnAt,
			Price:        info.Price,
			LastUpdate:   info.LastUpdate,
		})
	}
	return out
}
