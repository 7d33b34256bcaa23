package autosave

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
)

// Service drafts of in-progress edits. Writes go through the debouncer; reads and
// clears hit the store directly.
type Service struct {
	debouncer *Debouncer
	store     Store
}

// NewService wires a debouncer and the store it writes to
func NewService(debouncer *Debouncer, store Store) *Service {
	return &Service{debouncer: debouncer, store: store}
}

// Autosave queues data; the returned time is when the coalesced write happens.
// Only an unknown kind is an error: write failures never reach the editor.
func (s *Service) Autosave(id string, kind domain.AutosaveKind, data json.RawMessage) (time.Time, error) {
	if !kind.Valid() {
		return time.Time{}, common.ErrInvalidAutosaveKind
	}
	if id == "" {
		return time.Time{}, common.Validation("autosave id is required")
	}
	return s.debouncer.Submit(kind, id, data), nil
}

// Get returns the last written draft, nil when none or expired
func (s *Service) Get(ctx context.Context, id string, kind domain.AutosaveKind) (*Record, error) {
	if !kind.Valid() {
		return nil, common.ErrInvalidAutosaveKind
	}
	rec, err := s.store.Get(ctx, kind, id)
	if err != nil {
		return nil, common.Storage("get autosave", err)
	}
	return rec, nil
}

// Clear removes the pending and the stored draft; called after a manual save
func (s *Service) Clear(ctx context.Context, id string, kind domain.AutosaveKind) error {
	if !kind.Valid() {
		return common.ErrInvalidAutosaveKind
	}
	if err := s.debouncer.Discard(ctx, kind, id); err != nil {
		return common.Storage("clear autosave", err)
	}
	return nil
}
