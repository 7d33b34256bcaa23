package service

import (
	"context"
	"testing"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkService_ReadAccess(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "owner")
	seedWork(t, db, "public", "owner", true)
	seedWork(t, db, "private", "owner", false)
	svc := NewWorkService(r.works, nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		viewer     string
		getErr     error
		previewErr error
	}{
		{"public anonymous", "public", "", nil, nil},
		{"public other", "public", "other", nil, nil},
		{"private owner", "private", "owner", nil, nil},
		{"private anonymous", "private", "", common.ErrUnauthorized, common.ErrForbidden},
		{"private other", "private", "other", common.ErrForbidden, common.ErrForbidden},
		{"missing", "nope", "owner", common.ErrNotFound, common.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, tt.id, tt.viewer, "")
			if tt.getErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.getErr)
			}
			_, err = svc.Preview(ctx, tt.id, tt.viewer, "")
			if tt.previewErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.previewErr)
			}
		})
	}
}

func TestWorkService_CreateAndListMine(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	svc := NewWorkService(r.works, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", &domain.CreateWorkRequest{
		Title:  "  hello ",
		Slides: []domain.Slide{domain.NewSlide("a")},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Title)
	assert.Equal(t, "ko", created.Language)
	assert.False(t, created.IsPublic)
	require.NotNil(t, created.Author)
	assert.Equal(t, "u1", created.Author.ID)

	_, err = svc.Create(ctx, "u1", &domain.CreateWorkRequest{
		Title:  "dup",
		Slides: []domain.Slide{domain.NewSlide("a"), domain.NewSlide("a")},
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	works, total, err := svc.ListMine(ctx, "u1", common.NormalizePagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, works, 1)
	assert.Equal(t, created.ID, works[0].ID)
}

func TestWorkService_UpdateReplacesAndClearsDraft(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"), domain.NewSlide("s2"))
	drafts := &fakeDrafts{}
	svc := NewWorkService(r.works, drafts)
	ctx := context.Background()

	_, err := svc.Update(ctx, "w1", "u2", &domain.UpdateWorkRequest{Title: "x"})
	assert.ErrorIs(t, err, common.ErrNotWorkOwner)
	assert.Empty(t, drafts.cleared)

	updated, err := svc.Update(ctx, "w1", "u1", &domain.UpdateWorkRequest{
		Title:    "new",
		Slides:   []domain.Slide{domain.NewSlide("only")},
		IsPublic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Nil(t, updated.Description, "full replace drops the old description")
	require.Len(t, updated.Slides, 1)
	assert.Equal(t, "only", updated.Slides[0].ID)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, []string{"work:w1"}, drafts.cleared)
}

func TestWorkService_Localize(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	w := seedWork(t, db, "w1", "u1", true, domain.NewSlide("ko-1"))
	tr := codec.EncodeTranslations(domain.Translations{
		"en": {Title: "English", Slides: []domain.Slide{domain.NewSlide("en-1"), domain.NewSlide("en-2")}},
	})
	w.Translations = &tr
	require.NoError(t, db.Save(w).Error)
	svc := NewWorkService(r.works, nil)

	data, err := svc.Get(context.Background(), "w1", "", "en")
	require.NoError(t, err)
	assert.Equal(t, "English", data.Title)
	assert.Equal(t, "en", data.Language)
	require.NotNil(t, data.Description)
	assert.Equal(t, "", *data.Description)
	assert.Len(t, data.Slides, 2)

	data, err = svc.Get(context.Background(), "w1", "", "ja")
	require.NoError(t, err)
	assert.Equal(t, "title-w1", data.Title)
}

func TestWorkService_ShareAndDelete(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false)
	drafts := &fakeDrafts{}
	svc := NewWorkService(r.works, drafts)
	ctx := context.Background()

	res, err := svc.Share(ctx, "w1", "u1", true)
	require.NoError(t, err)
	assert.True(t, res.IsPublic)

	_, err = svc.Share(ctx, "w1", "u2", false)
	assert.ErrorIs(t, err, common.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, "w1", "u2"), common.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "w1", "u1"))
	_, err = svc.Get(ctx, "w1", "u1", "")
	assert.ErrorIs(t, err, common.ErrWorkNotFound)
	assert.Equal(t, []string{"work:w1"}, drafts.cleared)
}

func TestWorkService_ApplyActions(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	drafts := &fakeDrafts{}
	ids := []string{"n1", "n2"}
	svc := &workService{workRepo: r.works, drafts: drafts, reducer: editor.Reducer{NewID: func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}}}
	ctx := context.Background()

	res, err := svc.ApplyActions(ctx, "w1", "u1", []byte(`[
		{"type":"ADD_SLIDE"},
		{"type":"UPDATE_SLIDE","payload":{"id":"n1","data":{"title":"added","fontSize":32}}},
		{"type":"DELETE_SLIDE","payload":{"id":"s1"}},
		{"type":"UPDATE_TITLE","payload":"edited"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, "edited", res.Work.Title)
	require.Len(t, res.Work.Slides, 1)
	assert.Equal(t, "n1", res.Work.Slides[0].ID)
	assert.Equal(t, "added", res.Work.Slides[0].Title)
	assert.Equal(t, 32, res.Work.Slides[0].FontSize)
	assert.Equal(t, 0, res.State.CurrentSlideIndex)
	assert.Equal(t, []string{"work:w1"}, drafts.cleared)

	// a bad action rejects the whole batch
	_, err = svc.ApplyActions(ctx, "w1", "u1", []byte(`[{"type":"UPDATE_TITLE","payload":"x"},{"type":"NOPE"}]`))
	assert.ErrorIs(t, err, common.ErrValidation)
	w, err := r.works.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "edited", w.Title)

	_, err = svc.ApplyActions(ctx, "w1", "u2", []byte(`[{"type":"RESET"}]`))
	assert.ErrorIs(t, err, common.ErrNotWorkOwner)
}

func TestWorkService_RejectsInvalidDocuments(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	seedWork(t, db, "w1", "u1", false, domain.NewSlide("s1"))
	svc := NewWorkService(r.works, nil)
	ctx := context.Background()

	zeroFont := domain.NewSlide("z")
	zeroFont.FontSize = 0

	tests := []struct {
		name         string
		title        string
		slides       []domain.Slide
		translations domain.Translations
	}{
		{"blank title", "   ", nil, nil},
		{"zero font size", "t", []domain.Slide{zeroFont}, nil},
		{"translated duplicate ids", "t", nil, domain.Translations{
			"en": {Title: "x", Slides: []domain.Slide{domain.NewSlide("x"), domain.NewSlide("x")}},
		}},
		{"translated zero font size", "t", nil, domain.Translations{
			"en": {Title: "x", Slides: []domain.Slide{zeroFont}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", &domain.CreateWorkRequest{
				Title: tt.title, Slides: tt.slides, Translations: tt.translations,
			})
			assert.ErrorIs(t, err, common.ErrValidation)

			_, err = svc.Update(ctx, "w1", "u1", &domain.UpdateWorkRequest{
				Title: tt.title, Slides: tt.slides, Translations: tt.translations,
			})
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	_, total, err := svc.ListMine(ctx, "u1", common.NormalizePagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "nothing was created")
	w, err := r.works.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "title-w1", w.Title)
	assert.Nil(t, w.Translations)
}

func TestWorkService_EmptyTranslationsStoredAsNull(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "u1")
	svc := NewWorkService(r.works, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", &domain.CreateWorkRequest{
		Title:        "t",
		Translations: domain.Translations{},
	})
	require.NoError(t, err)
	assert.Nil(t, created.Translations)

	w, err := r.works.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, w.Translations)
}
