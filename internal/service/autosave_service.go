package service

import (
	"context"
	"encoding/json"

	"github.com/cardnews/cardnews-backend/internal/autosave"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
)

// AutosaveService owner-checked access to autosave drafts
type AutosaveService interface {
	// Save queues a draft; the write happens once edits pause for the debounce window
	Save(ctx context.Context, userID string, kind domain.AutosaveKind, id string, data json.RawMessage) (*domain.AutosaveResponse, error)
	// Load returns the last written draft, nil when there is none
	Load(ctx context.Context, userID string, kind domain.AutosaveKind, id string) (*autosave.Record, error)
	Discard(ctx context.Context, userID string, kind domain.AutosaveKind, id string) error
}

type autosaveService struct {
	drafts       *autosave.Service
	workRepo     repository.WorkRepository
	templateRepo repository.TemplateRepository
}

// NewAutosaveService creates a new AutosaveService
func NewAutosaveService(drafts *autosave.Service, workRepo repository.WorkRepository, templateRepo repository.TemplateRepository) AutosaveService {
	return &autosaveService{drafts: drafts, workRepo: workRepo, templateRepo: templateRepo}
}

func (s *autosaveService) Save(ctx context.Context, userID string, kind domain.AutosaveKind, id string, data json.RawMessage) (*domain.AutosaveResponse, error) {
	if err := s.authorize(ctx, userID, kind, id); err != nil {
		return nil, err
	}
	flushAt, err := s.drafts.Autosave(id, kind, data)
	if err != nil {
		return nil, err
	}
	return &domain.AutosaveResponse{Queued: true, FlushAt: flushAt}, nil
}

func (s *autosaveService) Load(ctx context.Context, userID string, kind domain.AutosaveKind, id string) (*autosave.Record, error) {
	if err := s.authorize(ctx, userID, kind, id); err != nil {
		return nil, err
	}
	return s.drafts.Get(ctx, id, kind)
}

func (s *autosaveService) Discard(ctx context.Context, userID string, kind domain.AutosaveKind, id string) error {
	if err := s.authorize(ctx, userID, kind, id); err != nil {
		return err
	}
	return s.drafts.Clear(ctx, id, kind)
}

func (s *autosaveService) authorize(ctx context.Context, userID string, kind domain.AutosaveKind, id string) error {
	switch kind {
	case domain.AutosaveKindWork:
		w, err := s.workRepo.FindByID(ctx, id)
		if err != nil {
			return storageErr("find work", err)
		}
		if !w.IsOwnedBy(userID) {
			return common.ErrNotWorkOwner
		}
	case domain.AutosaveKindTemplate:
		t, err := s.templateRepo.FindByID(ctx, id)
		if err != nil {
			return storageErr("find template", err)
		}
		if !t.IsOwnedBy(userID) {
			return common.ErrNotTemplateOwner
		}
	default:
		return common.ErrInvalidAutosaveKind
	}
	return nil
}
