package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"airtrack-service/internal/domain/entity"
)

type directionRepo struct {
	state *state
}

func (r *directionRepo) AddDirectionInfo(_ context.Context, direction entity.FlightDirection, price *float64, now time.Time) (int64, error) {
	for _, info := range r.state.directions {
		if info.FlightDirection == direction {
			return 0, entity.ErrDirectionExists
		}
	}
	id := r.state.nextDirectionID
	r.state.nextDirectionID++
	r.state.directions[id] = entity.FlightDirectionInfo{
		ID:              id,
		FlightDirection: direction,
		Price:           price,
		LastUpdate:      now,
		LastUpdateTry:   now,
	}
	return id, nil
}

func (r *directionRepo) GetDirectionID(_ context.Context, direction entity.FlightDirection) (int64, bool, error) {
	for id, info := range r.state.directions {
		if info.FlightDirection == direction {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (r *directionRepo) GetDirectionsInfo(_ context.Context, ids []int64) ([]entity.FlightDirectionInfo, error) {
	infos := make([]entity.FlightDirectionInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := r.state.directions[id]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (r *directionRepo) GetDirectionsWithLastUpdateTryBefore(_ context.Context, threshold time.Time, limit int) ([]entity.FlightDirectionInfo, error) {
	var infos []entity.FlightDirectionInfo
	for _, info := range r.state.directions {
		if info.LastUpdateTry.Before(threshold) {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastUpdate.Before(infos[j].LastUpdate)
	})
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

func (r *directionRepo) UpdatePrice(_ context.Context, id int64, price *float64, now time.Time) error {
	info, ok := r.state.directions[id]
	if !ok {
		return entity.ErrDirectionNotFound
	}
	info.Price = price
	info.LastUpdate = now
	info.LastUpdateTry = now
	r.state.directions[id] = info
	return nil
}

func (r *directionRepo) UpdateLastUpdateTry(_ context.Context, id int64, tryAt time.Time) error {
	info, ok := r.state.directions[id]
	if !ok {
		return entity.ErrDirectionNotFound
	}
	info.LastUpdateTry = tryAt
	r.state.directions[id] = info
	return nil
}

func (r *directionRepo) DeleteDirection(_ context.Context, id int64, deletedAt time.Time) error {
	info, ok := r.state.directions[id]
	if !ok {
		return entity.ErrDirectionNotFound
	}
	r.state.archive(info, deletedAt, true)
	r.state.removeDirection(id)
	return nil
}

func (r *directionRepo) DeleteOutdatedDirections(_ context.Context, now time.Time) (int, error) {
	yesterday := now.AddDate(0, 0, -1)
	monthCutoff := yesterday.Format("2006-01")
	dateCutoff := yesterday.Format("2006-01-02")

	var outdated []int64
	for id, info := range r.state.directions {
		cutoff := dateCutoff
		if len(info.DepartureAt) == len(monthCutoff) {
			cutoff = monthCutoff
		}
		if info.DepartureAt < cutoff {
			outdated = append(outdated, id)
		}
	}
	sort.Slice(outdated, func(i, j int) bool { return outdated[i] < outdated[j] })
	for _, id := range outdated {
		r.state.archive(r.state.directions[id], now, false)
		r.state.removeDirection(id)
	}
	return len(outdated), nil
}

func (st *state) archive(info entity.FlightDirectionInfo, deletedAt time.Time, deletedByUser bool) {
	st.historic = append(st.historic, entity.HistoricFlightDirection{
		ID:              info.ID,
		FlightDirection: info.FlightDirection,
		Price:           info.Price,
		LastUpdate:      info.LastUpdate,
		DeletedAt:       deletedAt,
		DeletedByUser:   deletedByUser,
	})
}

// removeDirection cascades through user links and tickets, mirroring
// what the persistent implementation does inside its transaction.
func (st *state) removeDirection(id int64) {
	delete(st.directions, id)
	delete(st.tickets, id)
	links := st.links[:0]
	for _, link := range st.links {
		if link.DirectionID != id {
			links = append(links, link)
		}
	}
	st.links = links
}

type userDirectionRepo struct {
	state *state
}

func (r *userDirectionRepo) Add(_ context.Context, userID, directionID int64) error {
	for _, link := range r.state.links {
		if link.UserID == userID && link.DirectionID == directionID {
			return entity.ErrAlreadyTracked
		}
	}
	r.state.links = append(r.state.links, entity.UserDirection{UserID: userID, DirectionID: directionID})
	return nil
}

func (r *userDirectionRepo) GetDirections(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for _, link := range r.state.links {
		if link.UserID == userID {
			ids = append(ids, link.DirectionID)
		}
	}
	return ids, nil
}

func (r *userDirectionRepo) GetUsers(_ context.Context, directionID int64) ([]int64, error) {
	var ids []int64
	for _, link := range r.state.links {
		if link.DirectionID == directionID {
			ids = append(ids, link.UserID)
		}
	}
	return ids, nil
}

func (r *userDirectionRepo) Remove(_ context.Context, userID, directionID int64) error {
	links := r.state.links[:0]
	for _, link := range r.state.links {
		if link.UserID != userID || link.DirectionID != directionID {
			links = append(links, link)
		}
	}
	r.state.links = links
	return nil
}

type ticketRepo struct {
	state *state
	store *Store
}

func (r *ticketRepo) Add(_ context.Context, tickets []entity.Ticket, directionID int64) error {
	for i, ticket := range tickets {
		if r.store.FailTicketAddAfter > 0 && i >= r.store.FailTicketAddAfter {
			return errors.New("injected ticket write failure")
		}
		r.state.tickets[directionID] = append(r.state.tickets[directionID], ticket)
	}
	return nil
}

func (r *ticketRepo) GetDirectionTickets(_ context.Context, directionID int64, limit int) ([]entity.Ticket, error) {
	batch := r.state.tickets[directionID]
	tickets := make([]entity.Ticket, len(batch))
	copy(tickets, batch)
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].Price < tickets[j].Price })
	if limit > 0 && len(tickets) > limit {
		tickets = tickets[:limit]
	}
	return tickets, nil
}

func (r *ticketRepo) RemoveForDirection(_ context.Context, directionID int64) error {
	delete(r.state.tickets, directionID)
	return nil
}

type userRepo struct {
	state *state
}

func (r *userRepo) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := r.state.users[userID]
	return ok, nil
}

func (r *userRepo) Add(_ context.Context, userID int64) error {
	r.state.users[userID] = struct{}{}
	return nil
}
