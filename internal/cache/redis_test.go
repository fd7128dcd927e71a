package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrgen/manuscript/internal/model"
)

func newTestCache(t *testing.T) *RedisDocumentCache {
	t.Helper()
	server := miniredis.RunT(t)
	return NewRedisDocumentCache(Options{Addr: server.Addr()})
}

func TestRedisDocumentCache(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.TODO()

	id := uuid.New()

	_, err := cache.GetDocument(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = cache.GetVersion(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)

	doc := &model.Document{
		ID:            id.String(),
		Content:       `{"title":"cached"}`,
		Version:       3,
		SchemaVersion: "2.0.0",
	}
	require.NoError(t, cache.SetDocument(ctx, id, doc))

	got, err := cache.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Version, got.Version)

	version, err := cache.GetVersion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	require.NoError(t, cache.DeleteDocument(ctx, id))

	_, err = cache.GetDocument(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.GetVersion(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisDocumentCache_Overwrite(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.TODO()

	id := uuid.New()

	require.NoError(t, cache.SetDocument(ctx, id, &model.Document{ID: id.String(), Version: 1}))
	require.NoError(t, cache.SetDocument(ctx, id, &model.Document{ID: id.String(), Version: 2}))

	version, err := cache.GetVersion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}
