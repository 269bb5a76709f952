package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelFor(t *testing.T) {
	tests := []struct {
		in       ActivityType
		wantID   string
		hasPanel bool
	}{
		{"hotel", "hotelOffcanvas", true},
		{"Flight", "flightOffcanvas", true},
		{"TRAIN", "trainOffcanvas", true},
		{"bus", "busOffcanvas", true},
		{"itinerary", "itineraryOffcanvas", true},
		{"cab", "", false},
		{"museum", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			p, ok := PanelFor(tt.in)
			assert.Equal(t, tt.hasPanel, ok)
			assert.Equal(t, tt.wantID, p.ID)
			if !ok {
				assert.Equal(t, "View Details", p.Label)
			}
		})
	}
}

func TestParseActivityType(t *testing.T) {
	at, ok := ParseActivityType("  Hotel ")
	assert.True(t, ok)
	assert.Equal(t, ActivityHotel, at)
	assert.Equal(t, "hotels", at.Collection())

	_, ok = ParseActivityType("spaceship")
	assert.False(t, ok)
}

func TestDecodeDetail(t *testing.T) {
	raw := []byte(`{"name":"Grand Plaza","rating":4.5,"amenities":["pool","wifi"]}`)
	d, err := DecodeDetail(ActivityHotel, "h-42", raw)
	require.NoError(t, err)
	require.NotNil(t, d.Hotel)
	assert.Equal(t, "h-42", d.ID)
	assert.Equal(t, "Grand Plaza", d.Hotel.Name)
	assert.Equal(t, []string{"pool", "wifi"}, d.Hotel.Amenities)
	assert.Nil(t, d.Flight)

	bus, err := DecodeDetail(ActivityBus, "b-1", []byte(`{"number":"KA-01"}`))
	require.NoError(t, err)
	require.NotNil(t, bus.Cab)
	assert.Equal(t, "KA-01", bus.Cab.Number)

	_, err = DecodeDetail("spaceship", "x", raw)
	assert.Error(t, err)

	_, err = DecodeDetail(ActivityFlight, "f", []byte(`not json`))
	assert.Error(t, err)
}
