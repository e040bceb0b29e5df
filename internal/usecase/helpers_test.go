package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/domain/repository"
	"airtrack-service/internal/interface/repository/memory"
	"airtrack-service/pkg/logger"
)

type MockTicketSource struct {
	mock.Mock
}

func (m *MockTicketSource) GetTickets(ctx context.Context, direction entity.FlightDirection, limit int) ([]entity.Ticket, error) {
	args := m.Called(ctx, direction, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Ticket), args.Error(1)
}

func (m *MockTicketSource) GetMonthPrices(ctx context.Context, direction entity.FlightDirection, year int, month int) (map[string]entity.Ticket, error) {
	args := m.Called(ctx, direction, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entity.Ticket), args.Error(1)
}

type MockUserNotifier struct {
	mock.Mock
}

func (m *MockUserNotifier) NotifyUser(ctx context.Context, userID int64, tickets []entity.Ticket, direction entity.FlightDirection, directionID int64) error {
	args := m.Called(ctx, userID, tickets, direction, directionID)
	return args.Error(0)
}

type fixedSettings struct {
	settings entity.Settings
}

func (f fixedSettings) Current() entity.Settings {
	return f.settings
}

func testSettings() entity.Settings {
	return entity.Settings{
		UpdateInterval:               1,
		UpdateIntervalUnit:           entity.IntervalMinutes,
		NeedsUpdateAfterMinutes:      60,
		MaxDirectionsForSingleUpdate: 30,
		MaxDirectionsPerUser:         10,
		PriceReductionThresholdPct:   10,
	}
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testDirection() entity.FlightDirection {
	return entity.FlightDirection{
		StartCode:    "MOW",
		StartName:    "Moscow",
		EndCode:      "LED",
		EndName:      "Saint Petersburg",
		WithTransfer: false,
		DepartureAt:  "2026-10-15",
	}
}

// seedDirection inserts a direction with an optional cached price and
// ticket batch, linking the given users, and reports the assigned id.
// lastUpdate controls staleness for updater tests.
func seedDirection(
	store *memory.Store,
	direction entity.FlightDirection,
	price *float64,
	tickets []entity.Ticket,
	lastUpdate time.Time,
	userIDs ...int64,
) int64 {
	var directionID int64
	err := store.Do(context.Background(), func(r repository.Repositories) error {
		id, err := r.Directions.AddDirectionInfo(context.Background(), direction, price, lastUpdate)
		if err != nil {
			return err
		}
		if err := r.Tickets.Add(context.Background(), tickets, id); err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := r.Users.Add(context.Background(), userID); err != nil {
				return err
			}
			if err := r.UserDirections.Add(context.Background(), userID, id); err != nil {
				return err
			}
		}
		directionID = id
		return nil
	})
	if err != nil {
		panic(err)
	}
	return directionID
}

func storedDirection(store *memory.Store, directionID int64) (entity.FlightDirectionInfo, bool) {
	var (
		info  entity.FlightDirectionInfo
		found bool
	)
	_ = store.Do(context.Background(), func(r repository.Repositories) error {
		infos, err := r.Directions.GetDirectionsInfo(context.Background(), []int64{directionID})
		if err != nil {
			return err
		}
		if len(infos) == 1 {
			info, found = infos[0], true
		}
		return nil
	})
	return info, found
}

func storedTickets(store *memory.Store, directionID int64) []entity.Ticket {
	var tickets []entity.Ticket
	_ = store.Do(context.Background(), func(r repository.Repositories) error {
		var err error
		tickets, err = r.Tickets.GetDirectionTickets(context.Background(), directionID, 0)
		return err
	})
	return tickets
}

func newTestUpdater(store *memory.Store, source repository.TicketSource, notifier repository.UserNotifier) *DirectionUpdater {
	u := NewDirectionUpdater(store, source, notifier, fixedSettings{testSettings()}, logger.NewNop(), nil)
	u.now = func() time.Time { return testNow }
	return u
}

func newTestTracker(store *memory.Store, source repository.TicketSource) *TrackerService {
	s := NewTrackerService(store, source, fixedSettings{testSettings()}, logger.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}
