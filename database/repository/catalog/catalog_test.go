package catalogRepo

import (
	"context"
	"errors"
	"testing"

	"tripmate/models"
	"tripmate/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalogRepo(t *testing.T) {
	repo := NewMemoryCatalogRepo()
	repo.Seed(models.ActivityTrain, "TR-9", []byte(`{"number":"TR-9","operator":"SGR"}`))
	ctx := context.Background()

	d, err := repo.Get(ctx, models.ActivityTrain, "TR-9")
	require.NoError(t, err)
	require.NotNil(t, d.Cab)
	assert.Equal(t, "SGR", d.Cab.Operator)

	_, err = repo.Get(ctx, models.ActivityTrain, "missing")
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = repo.Get(ctx, "zeppelin", "x")
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "catalog:hotel:h1", cacheKey(models.ActivityHotel, "h1"))
}
