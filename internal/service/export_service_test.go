package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_ExportAndImport(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")
	seedWork(t, db, "w1", "u1", true, domain.NewSlide("s1"))
	seedWork(t, db, "private", "u1", false)
	svc := NewExportService(r.works, nil)
	ctx := context.Background()

	data, err := svc.Export(ctx, "w1", "")
	require.NoError(t, err)
	assert.Equal(t, "title-w1", data.Title)
	assert.Equal(t, "desc-w1", data.Description)
	assert.Equal(t, "name-u1", data.Author.Name)
	assert.NotNil(t, data.Translations)

	_, err = svc.Export(ctx, "private", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	_, err = svc.Export(ctx, "private", "u2")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestExportService_ImportCreatesPrivateCopy(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")
	seedWork(t, db, "w1", "u1", true, domain.NewSlide("s1"))
	svc := NewExportService(r.works, nil)
	ctx := context.Background()

	data, err := svc.Export(ctx, "w1", "u2")
	require.NoError(t, err)

	imported, err := svc.Import(ctx, "u2", data)
	require.NoError(t, err)
	assert.NotEqual(t, "w1", imported.ID)
	assert.False(t, imported.IsPublic)
	assert.Equal(t, "u2", imported.Author.ID)
	assert.Equal(t, "title-w1", imported.Title)
	require.Len(t, imported.Slides, 1)
	assert.Equal(t, "s1", imported.Slides[0].ID)
}

func TestExportService_Archive(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	ctx := context.Background()

	_, err := NewExportService(r.works, nil).Archive(ctx, "w1", "u1")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	store := &fakeObjectStore{}
	svc := &exportService{workRepo: r.works, store: store, now: func() time.Time {
		return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	}}

	_, err = svc.Archive(ctx, "w1", "u2")
	assert.ErrorIs(t, err, common.ErrNotWorkOwner)

	res, err := svc.Archive(ctx, "w1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "works/w1/2024/03/05/w1_1709632800000.json", res.Key)
	assert.Equal(t, "https://objects.test/"+res.Key+"?signed=1", res.URL)

	var archived domain.CardNewsData
	require.NoError(t, json.Unmarshal(store.objects[res.Key], &archived))
	assert.Equal(t, "title-w1", archived.Title)
	assert.Len(t, archived.Slides, 1)
}

func TestExportService_ImportValidatesDocument(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	svc := NewExportService(r.works, nil)
	ctx := context.Background()

	_, err := svc.Import(ctx, "u1", &domain.CardNewsData{Title: " "})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Import(ctx, "u1", &domain.CardNewsData{
		Title: "imported",
		Translations: domain.Translations{
			"en": {Title: "x", Slides: []domain.Slide{domain.NewSlide("x"), domain.NewSlide("x")}},
		},
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&domain.Work{}).Count(&count).Error)
	assert.Zero(t, count)
}
