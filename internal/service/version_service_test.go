package service

import (
	"context"
	"testing"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionService_NumbersAndListsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	svc := NewVersionService(r.versions, r.works, nil)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		v, err := svc.CreateVersion(ctx, "w1", domain.WorkSnapshot{Title: "t"})
		require.NoError(t, err)
		assert.Equal(t, i, v.Version)
	}
	other, err := svc.CreateVersion(ctx, "w2", domain.WorkSnapshot{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, 1, other.Version, "numbering is per work")

	list, err := svc.ListVersions(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Version)
	assert.Equal(t, 1, list[2].Version)
}

func TestVersionService_RestoreMissingLeavesWorkUntouched(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	drafts := &fakeDrafts{}
	svc := NewVersionService(r.versions, r.works, drafts)
	ctx := context.Background()

	_, err := svc.RestoreVersion(ctx, "w1", 7)
	assert.ErrorIs(t, err, common.ErrNotFound)

	w, err := r.works.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "title-w1", w.Title)
	assert.Len(t, codec.DecodeSlides(w.Slides), 1)
	assert.Empty(t, drafts.cleared)
}

func TestVersionService_RestoreIsFullReplace(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	drafts := &fakeDrafts{}
	svc := NewVersionService(r.versions, r.works, drafts)
	ctx := context.Background()

	v1, err := svc.SnapshotWork(ctx, "w1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Version)

	// diverge: new title, extra slide, public, translations
	w, err := r.works.FindByID(ctx, "w1")
	require.NoError(t, err)
	codec.ApplySnapshot(w, domain.WorkSnapshot{
		Title:        "changed",
		IsPublic:     true,
		Language:     "en",
		Slides:       []domain.Slide{domain.NewSlide("s1"), domain.NewSlide("s2")},
		Translations: domain.Translations{"ja": {Title: "jp"}},
	})
	require.NoError(t, r.works.Update(ctx, w))

	restored, err := svc.RestoreForUser(ctx, "w1", "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, "title-w1", restored.Title)
	assert.False(t, restored.IsPublic)
	assert.Equal(t, "ko", restored.Language)
	require.Len(t, restored.Slides, 1)
	assert.Equal(t, "s1", restored.Slides[0].ID)
	assert.Nil(t, restored.Translations, "the key is omitted again, as before the divergence")
	assert.Equal(t, []string{"work:w1"}, drafts.cleared)

	stored, err := r.works.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Nil(t, stored.Translations, "a work without translations stays NULL after restore")

	versions, err := svc.ListForUser(ctx, "w1", "u1")
	require.NoError(t, err)
	assert.Len(t, versions, 1, "restore does not create a version")
}

func TestVersionService_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", true)
	svc := NewVersionService(r.versions, r.works, nil)
	ctx := context.Background()

	_, err := svc.SnapshotWork(ctx, "w1", "intruder")
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.ListForUser(ctx, "w1", "intruder")
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.RestoreForUser(ctx, "w1", "intruder", 1)
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.GetForUser(ctx, "missing", "u1", 1)
	assert.ErrorIs(t, err, common.ErrWorkNotFound)
}

func TestVersionService_GetForUserDecodesSnapshot(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	svc := NewVersionService(r.versions, r.works, nil)
	ctx := context.Background()

	_, err := svc.SnapshotWork(ctx, "w1", "u1")
	require.NoError(t, err)

	v, err := svc.GetForUser(ctx, "w1", "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, "title-w1", v.Snapshot.Title)
	require.Len(t, v.Snapshot.Slides, 1)
}

func TestVersionService_CorruptSnapshotIsNotApplied(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false)
	require.NoError(t, r.versions.Create(context.Background(), &domain.WorkVersion{WorkID: "w1", Version: 1, Data: "{broken"}))
	svc := NewVersionService(r.versions, r.works, nil)

	_, err := svc.RestoreVersion(context.Background(), "w1", 1)
	assert.ErrorIs(t, err, common.ErrSerialization)

	w, err := r.works.FindByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "title-w1", w.Title)
}
