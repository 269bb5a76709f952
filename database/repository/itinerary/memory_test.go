package itineraryRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoLifecycle(t *testing.T) {
	repo := NewMemoryItineraryRepo()
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "u1", models.BlankItinerary()))
	id, err := repo.Create(ctx, "u1", models.UntitledRecord())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].ID < list[1].ID, "list is in key order")

	k1, err := repo.PushMessage(ctx, "u1", id, models.ChatMessage{Message: "first"})
	require.NoError(t, err)
	k2, err := repo.PushMessage(ctx, "u1", id, models.ChatMessage{Message: "second"})
	require.NoError(t, err)
	assert.True(t, k1 < k2, "push keys are time ordered")

	msgs, err := repo.Messages(ctx, "u1", id)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Message)

	reply := models.ReplyStatus{}.Begin("r1", time.Now(), time.Minute)
	require.NoError(t, repo.SetReply(ctx, "u1", id, reply))
	rec, err := repo.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.True(t, rec.Typing)
	assert.Equal(t, "r1", rec.Reply.RequestID)
}

func TestMemoryRepoIsolatesCallers(t *testing.T) {
	repo := NewMemoryItineraryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "u1", models.BlankItinerary()))

	rec, err := repo.Get(ctx, "u1", models.InitialItineraryID)
	require.NoError(t, err)
	rec.State.Preferences.Interests = append(rec.State.Preferences.Interests, "hiking")
	rec.State.Itinerary.TripName = "mutated"

	again, err := repo.Get(ctx, "u1", models.InitialItineraryID)
	require.NoError(t, err)
	assert.Empty(t, again.State.Preferences.Interests)
	assert.Empty(t, again.State.Itinerary.TripName)
}

func TestMemoryRepoNotFound(t *testing.T) {
	repo := NewMemoryItineraryRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "u1", "nope")
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	_, err = repo.PushMessage(ctx, "u1", "nope", models.ChatMessage{})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
	assert.True(t, errors.Is(repo.SetReply(ctx, "u1", "nope", models.ReplyStatus{}), utils.ErrNotFound))
	assert.True(t, errors.Is(repo.Put(ctx, "u1", models.ItineraryRecord{}), utils.ErrValidation))
}
