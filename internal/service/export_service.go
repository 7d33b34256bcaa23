package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/pkg/storage"
)

const archiveURLExpiry = 15 * time.Minute

// ExportService moves works in and out as CardNewsData documents
type ExportService interface {
	Export(ctx context.Context, id, viewerID string) (*domain.CardNewsData, error)
	// Import creates a new private work owned by userID
	Import(ctx context.Context, userID string, data *domain.CardNewsData) (*domain.WorkData, error)
	// Archive uploads the export document to object storage and returns a download URL
	Archive(ctx context.Context, id, userID string) (*domain.ArchiveResponse, error)
}

type exportService struct {
	workRepo repository.WorkRepository
	store    storage.ObjectStore
	now      func() time.Time
}

// NewExportService creates a new ExportService; store may be nil when storage is disabled
func NewExportService(workRepo repository.WorkRepository, store storage.ObjectStore) ExportService {
	return &exportService{workRepo: workRepo, store: store, now: time.Now}
}

func (s *exportService) Export(ctx context.Context, id, viewerID string) (*domain.CardNewsData, error) {
	w, err := s.workRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	if err := canRead(w, viewerID); err != nil {
		return nil, err
	}
	data := codec.CardNewsData(w)
	return &data, nil
}

func (s *exportService) Import(ctx context.Context, userID string, data *domain.CardNewsData) (*domain.WorkData, error) {
	if err := validateDocument(data.Title, data.Slides, data.Translations); err != nil {
		return nil, err
	}
	w := &domain.Work{
		Title:    strings.TrimSpace(data.Title),
		Slides:   codec.EncodeSlides(data.Slides),
		Language: languageOrDefault(data.Language),
		IsPublic: false,
		AuthorID: userID,
	}
	if data.Description != "" {
		desc := data.Description
		w.Description = &desc
	}
	if len(data.Translations) > 0 {
		t := codec.EncodeTranslations(data.Translations)
		w.Translations = &t
	}
	if err := s.workRepo.Create(ctx, w); err != nil {
		return nil, storageErr("import work", err)
	}
	created, err := s.workRepo.FindByID(ctx, w.ID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	out := codec.WorkData(created)
	return &out, nil
}

func (s *exportService) Archive(ctx context.Context, id, userID string) (*domain.ArchiveResponse, error) {
	if s.store == nil {
		return nil, common.ErrStorageUnavailable
	}
	w, err := s.workRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	if !w.IsOwnedBy(userID) {
		return nil, common.ErrNotWorkOwner
	}

	body, err := json.MarshalIndent(codec.CardNewsData(w), "", "  ")
	if err != nil {
		return nil, err
	}
	obj, err := s.store.Put(ctx, storage.GenerateKey("works/"+w.ID, w.ID+".json", s.now()), body, "application/json")
	if err != nil {
		return nil, common.Storage("upload archive", err)
	}
	url, err := s.store.PresignGet(ctx, obj.Key, archiveURLExpiry)
	if err != nil {
		return nil, common.Storage("presign archive", err)
	}
	return &domain.ArchiveResponse{Key: obj.Key, URL: url}, nil
}
