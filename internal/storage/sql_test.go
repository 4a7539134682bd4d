package storage_test

import (
	"context"
	"testing"

	"github.com/oshilog/oshilog/internal/storage"
	"github.com/oshilog/oshilog/internal/test_utils"
	"github.com/stretchr/testify/assert"
)

func TestSQLStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewSQLStore(test_utils.NewStorageDB(t))

	value, ok, err := store.Get(ctx, "nope")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", value)
}

func TestSQLStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := storage.NewSQLStore(test_utils.NewStorageDB(t))

	err := store.Set(ctx, "cheki-data", `{"2024-01-01":{"eventName":"","counts":{}}}`)
	assert.NoError(t, err)

	value, ok, err := store.Get(ctx, "cheki-data")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"2024-01-01":{"eventName":"","counts":{}}}`, value)
}

func TestSQLStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := storage.NewSQLStore(test_utils.NewStorageDB(t))

	assert.NoError(t, store.Set(ctx, "mmScheduleViewMode", "calendar"))
	assert.NoError(t, store.Set(ctx, "mmScheduleViewMode", "list"))

	value, ok, err := store.Get(ctx, "mmScheduleViewMode")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "list", value)
}

func TestSQLStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := storage.NewSQLStore(test_utils.NewStorageDB(t))

	assert.NoError(t, store.Set(ctx, "cheki-idols", `["Alice"]`))
	assert.NoError(t, store.Delete(ctx, "cheki-idols"))

	_, ok, err := store.Get(ctx, "cheki-idols")
	assert.NoError(t, err)
	assert.False(t, ok)
}
