package aviasales

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-token", "rub", 5*time.Second, logger.NewNop())
	client.baseURL = server.URL
	return client
}

func oneWayDirection() entity.FlightDirection {
	return entity.FlightDirection{
		StartCode:   "MOW",
		StartName:   "Moscow",
		EndCode:     "LED",
		EndName:     "Saint Petersburg",
		DepartureAt: "2026-10-15",
	}
}

func TestGetTickets_ParsesOffers(t *testing.T) {
	var gotQuery map[string]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pricesForDatesPath, r.URL.Path)
		gotQuery = map[string]string{
			"origin":       r.URL.Query().Get("origin"),
			"destination":  r.URL.Query().Get("destination"),
			"departure_at": r.URL.Query().Get("departure_at"),
			"direct":       r.URL.Query().Get("direct"),
			"limit":        r.URL.Query().Get("limit"),
			"sorting":      r.URL.Query().Get("sorting"),
			"token":        r.URL.Query().Get("token"),
			"return_at":    r.URL.Query().Get("return_at"),
		}
		w.Write([]byte(`{"success":true,"data":[
			{"price":4500,"departure_at":"2026-10-15T09:05:00+03:00","duration_to":90,"link":"/search/MOW1510LED1"},
			{"price":5200,"departure_at":"2026-10-15T18:40:00+03:00","duration_to":95,"return_at":"2026-10-20T11:00:00+03:00","duration_back":100,"link":"/search/MOW1510LED2010"}
		]}`))
	})

	direction := oneWayDirection()
	direction.ReturnAt = "2026-10-20"
	tickets, err := client.GetTickets(context.Background(), direction, 3)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, map[string]string{
		"origin":       "MOW",
		"destination":  "LED",
		"departure_at": "2026-10-15",
		"direct":       "true",
		"limit":        "3",
		"sorting":      "price",
		"token":        "test-token",
		"return_at":    "2026-10-20",
	}, gotQuery)

	assert.Equal(t, 4500.0, tickets[0].Price)
	assert.Equal(t, time.Date(2026, 10, 15, 9, 5, 0, 0, time.UTC), tickets[0].DepartureAt)
	assert.Equal(t, 90*time.Minute, tickets[0].DurationTo)
	assert.Nil(t, tickets[0].ReturnAt)
	assert.Equal(t, "/search/MOW1510LED1", tickets[0].Link)

	require.NotNil(t, tickets[1].ReturnAt)
	assert.Equal(t, time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC), *tickets[1].ReturnAt)
	require.NotNil(t, tickets[1].DurationBack)
	assert.Equal(t, 100*time.Minute, *tickets[1].DurationBack)
}

func TestGetTickets_EmptyDataIsNotAnError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	tickets, err := client.GetTickets(context.Background(), oneWayDirection(), 3)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestGetTickets_APIErrorIsRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":"token is invalid"}`))
	})
	_, err := client.GetTickets(context.Background(), oneWayDirection(), 3)
	require.ErrorIs(t, err, entity.ErrSourceRejected)
}

func TestGetTickets_BadStatusIsRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := client.GetTickets(context.Background(), oneWayDirection(), 3)
	require.ErrorIs(t, err, entity.ErrSourceRejected)
}

func TestGetTickets_MalformedBodyIsParsingError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"missing data", `{"success":true}`},
		{"bad timestamp", `{"data":[{"price":4500,"departure_at":"tomorrow","duration_to":90}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := client.GetTickets(context.Background(), oneWayDirection(), 3)
			require.ErrorIs(t, err, entity.ErrSourceResponse)
		})
	}
}

func TestGetTickets_ConnectionFailureIsUnavailability(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient("test-token", "rub", time.Second, logger.NewNop())
	client.baseURL = server.URL

	_, err := client.GetTickets(context.Background(), oneWayDirection(), 3)
	require.ErrorIs(t, err, entity.ErrSourceUnavailable)
}

func TestGetTickets_TransferFlagInvertsDirectParam(t *testing.T) {
	var direct string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		direct = r.URL.Query().Get("direct")
		w.Write([]byte(`{"data":[]}`))
	})

	direction := oneWayDirection()
	direction.WithTransfer = true
	_, err := client.GetTickets(context.Background(), direction, 3)
	require.NoError(t, err)
	assert.Equal(t, "false", direct)
}

func TestGetMonthPrices_ParsesGroupedOffers(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, groupedPricesPath, r.URL.Path)
		assert.Equal(t, "2026-10", r.URL.Query().Get("departure_at"))
		assert.Equal(t, "departure_at", r.URL.Query().Get("group_by"))
		w.Write([]byte(`{"success":true,"data":{
			"2026-10-01":{"price":3900,"departure_at":"2026-10-01T07:10:00+03:00","duration_to":85,"link":"/search/a"},
			"2026-10-02":{"price":4100,"departure_at":"2026-10-02T08:20:00+03:00","duration_to":85,"link":"/search/b"}
		}}`))
	})

	direction := oneWayDirection()
	direction.DepartureAt = "2026-10"
	prices, err := client.GetMonthPrices(context.Background(), direction, 2026, 10)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, 3900.0, prices["2026-10-01"].Price)
	assert.Equal(t, 4100.0, prices["2026-10-02"].Price)
}

func TestGetMonthPrices_MissingDataIsParsingError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	direction := oneWayDirection()
	direction.DepartureAt = "2026-10"
	_, err := client.GetMonthPrices(context.Background(), direction, 2026, 10)
	require.ErrorIs(t, err, entity.ErrSourceResponse)
}
