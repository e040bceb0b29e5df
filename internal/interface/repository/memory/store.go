// Package memory holds an in-memory implementation of the storage
// contracts with the same transactional behavior as the GORM one: every
// unit of work runs against a working copy of the state and the copy is
// thrown away when the work function fails, so partial writes are never
// observable. It backs the usecase tests and small deployments that do
// not want a database.
package memory

import (
	"context"
	"sync"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
)

// Store implements repository.UnitOfWork in memory.
type Store struct {
	mu    sync.Mutex
	state *state

	// FailTicketAddAfter makes TicketRepository.Add fail after
	// inserting that many tickets of a batch. Test hook for verifying
	// rollback atomicity; zero disables it.
	FailTicketAddAfter int
}

type state struct {
	nextDirectionID int64
	directions      map[int64]entity.FlightDirectionInfo
	users           map[int64]struct{}
	links           []entity.UserDirection
	tickets         map[int64][]entity.Ticket
	historic        []entity.HistoricFlightDirection
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{state: &state{
		nextDirectionID: 1,
		directions:      make(map[int64]entity.FlightDirectionInfo),
		users:           make(map[int64]struct{}),
		tickets:         make(map[int64][]entity.Ticket),
	}}
}

// Do runs fn against a copy of the state; the copy becomes current only
// when fn returns nil. The store lock is held for the whole scope, which
// gives serializable transactions.
func (s *Store) Do(ctx context.Context, fn func(r repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	err := fn(repository.Repositories{
		Users:          &userRepo{state: work},
		Directions:     &directionRepo{state: work},
		UserDirections: &userDirectionRepo{state: work},
		Tickets:        &ticketRepo{state: work, store: s},
	})
	if err != nil {
		return err
	}
	s.state = work
	return nil
}

// Historic returns a copy of the archive. Read helper for tests and the
// memory-backed deployments; the archive is append-only.
func (s *Store) Historic() []entity.HistoricFlightDirection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.HistoricFlightDirection, len(s.state.historic))
	copy(out, s.state.historic)
	return out
}

func (st *state) clone() *state {
	next := &state{
		nextDirectionID: st.nextDirectionID,
		directions:      make(map[int64]entity.FlightDirectionInfo, len(st.directions)),
		users:           make(map[int64]struct{}, len(st.users)),
		links:           make([]entity.UserDirection, len(st.links)),
		tickets:         make(map[int64][]entity.Ticket, len(st.tickets)),
		historic:        make([]entity.HistoricFlightDirection, len(st.historic)),
	}
	for id, info := range st.directions {
		next.directions[id] = info
	}
	for id := range st.users {
		next.users[id] = struct{}{}
	}
	copy(next.links, st.links)
	for id, batch := range st.tickets {
		tickets := make([]entity.Ticket, len(batch))
		copy(tickets, batch)
		next.tickets[id] = tickets
	}
	copy(next.historic, st.historic)
	return next
}
