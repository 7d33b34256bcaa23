package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cardnews/cardnews-backend/internal/autosave"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutosaveService_OwnerChecked(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", true)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := autosave.NewCacheStore(cache.NewService(client))
	deb := autosave.NewDebouncer(store, autosave.WithWindow(time.Millisecond))
	svc := NewAutosaveService(autosave.NewService(deb, store), r.works, r.templates)
	ctx := context.Background()

	_, err := svc.Save(ctx, "u2", domain.AutosaveKindWork, "w1", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.Save(ctx, "u1", domain.AutosaveKindTemplate, "w1", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, common.ErrTemplateNotFound)
	_, err = svc.Save(ctx, "u1", "page", "w1", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, common.ErrInvalidAutosaveKind)

	res, err := svc.Save(ctx, "u1", domain.AutosaveKindWork, "w1", json.RawMessage(`{"title":"draft"}`))
	require.NoError(t, err)
	assert.True(t, res.Queued)

	rec, err := svc.Load(ctx, "u1", domain.AutosaveKindWork, "w1")
	require.NoError(t, err)
	assert.Nil(t, rec, "not written until the window closes")

	deb.FlushAll(ctx)
	rec, err = svc.Load(ctx, "u1", domain.AutosaveKindWork, "w1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"title":"draft"}`, string(rec.Data))

	require.NoError(t, svc.Discard(ctx, "u1", domain.AutosaveKindWork, "w1"))
	assert.False(t, mr.Exists("autosave:work:w1"))
}
