package itinerary

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

type recordingPublisher struct {
	published []string
}

func (p *recordingPublisher) PublishState(ctx context.Context, uid, itineraryID string) {
	p.published = append(p.published, itineraryID)
}

func record(id string, msgs ...string) models.ItineraryRecord {
	rec := models.BlankItinerary()
	rec.ID = id
	for i, m := range msgs {
		rec.Messages = append(rec.Messages, models.ChatMessage{
			ID:        id + "-" + string(rune('a'+i)),
			Message:   m,
			Timestamp: "2026-01-0" + string(rune('1'+i)) + "T10:00:00Z",
		})
	}
	return rec
}

func TestPickDefault(t *testing.T) {
	tests := []struct {
		name string
		recs []models.ItineraryRecord
		want string
		ok   bool
	}{
		{"none", nil, "", false},
		{"no messages anywhere picks first by key", []models.ItineraryRecord{record("a"), record("b")}, "a", true},
		{"first with messages wins", []models.ItineraryRecord{record("a"), record("b", "hi"), record("c", "yo")}, "b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickDefault(tt.recs)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func newService(t *testing.T, recs ...models.ItineraryRecord) (*DefaultItineraryService, *recordingPublisher) {
	t.Helper()
	repo := repository.NewMemoryItineraryRepo()
	for _, r := range recs {
		require.NoError(t, repo.Put(context.Background(), "u1", r))
	}
	pub := &recordingPublisher{}
	return NewDefaultItineraryService(repo, pub), pub
}

func TestSelectDefault(t *testing.T) {
	svc, _ := newService(t, record("a"), record("b", "hello"))
	ctx := context.Background()

	rec, err := svc.SelectDefault(ctx, "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)

	rec, err = svc.SelectDefault(ctx, "u1", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.ID, "an existing explicit id wins")

	rec, err = svc.SelectDefault(ctx, "u1", "gone")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID, "an unknown explicit id falls back to the default")

	_, err = svc.SelectDefault(ctx, "nobody", "")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestListSummaries(t *testing.T) {
	named := record("b", "first", "second")
	named.State.Itinerary.TripName = "Kyoto"
	svc, _ := newService(t, record("a"), named)

	list, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Itinerary 1", list[0].TripName)
	assert.Equal(t, "No messages yet", list[0].LastMessage)
	assert.Equal(t, 0, list[0].MessageCount)

	assert.Equal(t, "Kyoto", list[1].TripName)
	assert.Equal(t, "second", list[1].LastMessage)
	assert.Equal(t, 2, list[1].MessageCount)
}

func TestLastMessageByTimestamp(t *testing.T) {
	msgs := []models.ChatMessage{
		{ID: "a", Message: "newest", Timestamp: "2026-02-01T10:00:00Z"},
		{ID: "b", Message: "older", Timestamp: "2026-01-01T10:00:00Z"},
	}
	last, ok := LastMessage(msgs)
	require.True(t, ok)
	assert.Equal(t, "newest", last.Message)

	_, ok = LastMessage(nil)
	assert.False(t, ok)
}

func TestCreateAndRename(t *testing.T) {
	svc, pub := newService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, "u1")
	require.NoError(t, err)
	rec, err := svc.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, models.UntitledItinerary, rec.State.Itinerary.TripName)

	_, err = svc.RenameTrip(ctx, "u1", id, "   ")
	assert.True(t, errors.Is(err, utils.ErrValidation))

	st, err := svc.RenameTrip(ctx, "u1", id, "  Patagonia ")
	require.NoError(t, err)
	assert.Equal(t, "Patagonia", st.Itinerary.TripName)
	assert.Equal(t, []string{id}, pub.published)
}

func TestDayResolvesPanels(t *testing.T) {
	rec := record("a")
	rec.State.Itinerary.Days = []models.Day{{
		DayNumber: 1,
		Date:      "2026-06-01",
		Schedule: []models.ScheduleItem{
			{ActivityType: models.ActivityFlight, ActivityObject: "f-1", Description: "Fly out"},
			{ActivityType: models.ActivityGeneric, Description: "Walk"},
		},
	}}
	svc, _ := newService(t, rec)

	day, err := svc.Day(context.Background(), "u1", "a", 1)
	require.NoError(t, err)
	require.Len(t, day.Schedule, 2)
	assert.True(t, day.Schedule[0].HasPanel)
	assert.Equal(t, "flightOffcanvas", day.Schedule[0].Panel.ID)
	assert.False(t, day.Schedule[1].HasPanel)

	_, err = svc.Day(context.Background(), "u1", "a", 3)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestMergeState(t *testing.T) {
	st := models.BlankState()
	st.Itinerary.Origin = "Nairobi"
	st.Budget.Currency = "KES"

	merged, err := MergeState(st, map[string]any{
		"itinerary": map[string]any{"destination": "Zanzibar"},
		"preferences": map[string]any{
			"interests": []any{"diving"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", merged.Itinerary.Origin, "nested objects merge key by key")
	assert.Equal(t, "Zanzibar", merged.Itinerary.Destination)
	assert.Equal(t, []string{"diving"}, merged.Preferences.Interests)
	assert.Equal(t, "KES", merged.Budget.Currency)

	_, err = MergeState(st, map[string]any{"itinerary": "not an object"})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}
