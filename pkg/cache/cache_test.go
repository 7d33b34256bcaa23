package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, Service) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewService(client)
}

func TestAutosaveKey(t *testing.T) {
	assert.Equal(t, "autosave:work:w1", AutosaveKey("work", "w1"))
	assert.Equal(t, "autosave:template:t1", AutosaveKey("template", "t1"))
}

func TestAutosave_SetGetDelete(t *testing.T) {
	mr, svc := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, svc.SetAutosave(ctx, "work", "w1", []byte(`{"id":"w1"}`), 0))

	got, err := svc.GetAutosave(ctx, "work", "w1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"w1"}`, string(got))
	assert.Equal(t, TTLAutosave, mr.TTL("autosave:work:w1"))

	require.NoError(t, svc.DeleteAutosave(ctx, "work", "w1"))
	_, err = svc.GetAutosave(ctx, "work", "w1")
	assert.True(t, IsMiss(err))
}

func TestAutosave_Expires(t *testing.T) {
	mr, svc := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, svc.SetAutosave(ctx, "template", "t1", []byte(`{}`), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := svc.GetAutosave(ctx, "template", "t1")
	assert.True(t, IsMiss(err))
}

func TestTemplates_Invalidate(t *testing.T) {
	mr, svc := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTemplates(ctx, "", 1, 10, []string{"a"}))
	require.NoError(t, svc.SetTemplates(ctx, "business", 1, 10, []string{"b"}))
	assert.True(t, mr.Exists("templates:all:1:10"))

	require.NoError(t, svc.InvalidateTemplates(ctx))
	assert.False(t, mr.Exists("templates:all:1:10"))
	assert.False(t, mr.Exists("templates:business:1:10"))
}

func TestNilClient(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	assert.NoError(t, svc.SetTemplates(ctx, "", 1, 10, []string{"a"}))
	_, err := svc.GetTemplates(ctx, "", 1, 10)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, svc.InvalidateTemplates(ctx))
	assert.ErrorIs(t, svc.SetAutosave(ctx, "work", "w1", []byte(`{}`), 0), ErrUnavailable)
	_, err = svc.GetAutosave(ctx, "work", "w1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, svc.DeleteAutosave(ctx, "work", "w1"))
}
