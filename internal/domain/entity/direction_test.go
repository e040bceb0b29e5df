package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartureDate(t *testing.T) {
	d := FlightDirection{DepartureAt: "2026-10-15"}
	parsed, err := d.DepartureDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), parsed)

	d.DepartureAt = "2026-10"
	parsed, err = d.DepartureDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), parsed)

	d.DepartureAt = "next month"
	_, err = d.DepartureDate()
	assert.Error(t, err)
}

func TestReturnDate(t *testing.T) {
	d := FlightDirection{DepartureAt: "2026-10-15"}
	_, ok, err := d.ReturnDate()
	require.NoError(t, err)
	assert.False(t, ok)

	d.ReturnAt = "2026-10-20"
	parsed, ok, err := d.ReturnDate()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), parsed)

	d.ReturnAt = "2026-11"
	_, ok, err = d.ReturnDate()
	require.NoError(t, err)
	assert.True(t, ok)

	d.ReturnAt = "soon"
	_, _, err = d.ReturnDate()
	assert.Error(t, err)
}

func TestCheapestPrice(t *testing.T) {
	assert.Nil(t, CheapestPrice(nil))
	assert.Nil(t, CheapestPrice([]Ticket{}))

	price := CheapestPrice([]Ticket{{Price: 4500}, {Price: 5200}})
	require.NotNil(t, price)
	assert.Equal(t, 4500.0, *price)
}
