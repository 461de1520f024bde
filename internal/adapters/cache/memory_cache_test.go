package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/ports"
)

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	task := entities.Task{ID: "t1", Title: "Plans", Comments: []entities.Comment{{ID: "c1", Content: "first"}}}
	require.NoError(t, c.Set(ctx, "task:t1", task, 0))

	var got entities.Task
	require.NoError(t, c.Get(ctx, "task:t1", &got))
	got.Comments[0].Content = "changed"

	var again entities.Task
	require.NoError(t, c.Get(ctx, "task:t1", &again))
	assert.Equal(t, "first", again.Comments[0].Content)
}

func TestMemoryCache_Miss(t *testing.T) {
	var dest entities.Task
	err := NewMemoryCache().Get(context.Background(), "task:none", &dest)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	var v string
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ports.ErrCacheMiss)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	for _, key := range []string{"task:1", "task:2", "project:1", "index:tasks:all"} {
		require.NoError(t, c.Set(ctx, key, key, 0))
	}

	require.NoError(t, c.DeletePattern(ctx, "task:*"))

	for key, want := range map[string]bool{"task:1": false, "task:2": false, "project:1": true, "index:tasks:all": true} {
		ok, err := c.Exists(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, ok, key)
	}

	assert.Error(t, c.DeletePattern(ctx, "task:["))
}
