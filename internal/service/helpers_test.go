package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/internal/ws"
	"github.com/cardnews/cardnews-backend/pkg/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Work{}, &domain.Template{},
		&domain.WorkVersion{}, &domain.Comment{}, &domain.Like{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&domain.User{ID: id, Email: id + "@example.com", Name: "name-" + id}).Error)
}

func seedWork(t *testing.T, db *gorm.DB, id, authorID string, public bool, slides ...domain.Slide) *domain.Work {
	t.Helper()
	desc := "desc-" + id
	w := &domain.Work{
		ID:          id,
		Title:       "title-" + id,
		Description: &desc,
		Slides:      codec.EncodeSlides(slides),
		Language:    domain.DefaultLanguage,
		IsPublic:    public,
		AuthorID:    authorID,
	}
	require.NoError(t, db.Create(w).Error)
	return w
}

type fakeDrafts struct {
	mu      sync.Mutex
	cleared []string
}

func (f *fakeDrafts) Clear(_ context.Context, id string, kind domain.AutosaveKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, string(kind)+":"+id)
	return nil
}

type publishedEvent struct {
	UserID string
	Event  *ws.Event
}

type fakeActivity struct {
	events []publishedEvent
}

func (f *fakeActivity) Publish(_ context.Context, userID string, event *ws.Event) {
	f.events = append(f.events, publishedEvent{UserID: userID, Event: event})
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body []byte, contentType string) (*storage.Object, error) {
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = body
	return &storage.Object{Key: key, URL: "https://objects.test/" + key, ContentType: contentType, Size: int64(len(body))}, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://objects.test/" + key + "?signed=1", nil
}

type repos struct {
	users     repository.UserRepository
	works     repository.WorkRepository
	templates repository.TemplateRepository
	versions  repository.VersionRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		users:     repository.NewUserRepository(db),
		works:     repository.NewWorkRepository(db),
		templates: repository.NewTemplateRepository(db),
		versions:  repository.NewVersionRepository(db),
		comments:  repository.NewCommentRepository(db),
		likes:     repository.NewLikeRepository(db),
	}
}
