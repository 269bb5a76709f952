package activity

import (
	"context"
	"errors"
	"testing"

	"tripmate/database/repository"
	"tripmate/models"
	"tripmate/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityService(t *testing.T) *DefaultActivityService {
	t.Helper()
	catalog := repository.NewMemoryCatalogRepo()
	catalog.Seed(models.ActivityHotel, "hotel_0042", []byte(`{"name":"Casa Azul","rating":4.7}`))
	catalog.Seed(models.ActivityFlight, "FL-77", []byte(`{"number":"TP 1354","airline":{"name":"TAP","code":"TP"}}`))

	its := repository.NewMemoryItineraryRepo()
	rec := models.BlankItinerary()
	rec.State.Itinerary.TripName = "Lisbon"
	require.NoError(t, its.Put(context.Background(), "u1", rec))

	return NewDefaultActivityService(catalog, its)
}

func TestOpenPassesRefThrough(t *testing.T) {
	svc := newActivityService(t)

	opened, err := svc.Open(context.Background(), "u1", "Hotel", "hotel_0042")
	require.NoError(t, err)
	assert.Equal(t, "hotel_0042", opened.Ref)
	assert.Equal(t, "hotel_0042", opened.Detail.ID)
	assert.True(t, opened.HasPanel)
	assert.Equal(t, "hotelOffcanvas", opened.Panel.ID)
	require.NotNil(t, opened.Detail.Hotel)
	assert.Equal(t, "Casa Azul", opened.Detail.Hotel.Name)

	opened, err = svc.Open(context.Background(), "u1", "flight", "FL-77")
	require.NoError(t, err)
	assert.Equal(t, "flightOffcanvas", opened.Panel.ID)
	assert.Equal(t, "TAP", opened.Detail.Flight.Airline.Name)
}

func TestOpenItineraryReference(t *testing.T) {
	svc := newActivityService(t)

	opened, err := svc.Open(context.Background(), "u1", "itinerary", models.InitialItineraryID)
	require.NoError(t, err)
	assert.Equal(t, "itineraryOffcanvas", opened.Panel.ID)
	require.NotNil(t, opened.Detail.Itinerary)
	assert.Equal(t, "Lisbon", opened.Detail.Itinerary.Itinerary.TripName)

	_, err = svc.Open(context.Background(), "someone-else", "itinerary", models.InitialItineraryID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestOpenErrors(t *testing.T) {
	svc := newActivityService(t)
	ctx := context.Background()

	_, err := svc.Open(ctx, "u1", "spaceship", "x")
	assert.True(t, errors.Is(err, utils.ErrValidation))

	_, err = svc.Open(ctx, "u1", "hotel", "")
	assert.True(t, errors.Is(err, utils.ErrValidation))

	_, err = svc.Open(ctx, "u1", "hotel", "missing")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestPanelUnknownType(t *testing.T) {
	svc := newActivityService(t)
	p, ok := svc.Panel("cab")
	assert.False(t, ok)
	assert.Equal(t, models.DefaultPanel, p)
}
