package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/cache"
)

// Record latest debounced draft of a document
type Record struct {
	ID        string              `json:"id"`
	Type      domain.AutosaveKind `json:"type"`
	Data      json.RawMessage     `json:"data"`
	LastSaved time.Time           `json:"lastSaved"`
}

// Store persists records with a retention window
type Store interface {
	Put(ctx context.Context, rec Record, ttl time.Duration) error
	// Get returns nil, nil when nothing is stored or the record expired
	Get(ctx context.Context, kind domain.AutosaveKind, id string) (*Record, error)
	Delete(ctx context.Context, kind domain.AutosaveKind, id string) error
}

type cacheStore struct {
	cache cache.Service
}

// NewCacheStore stores records under autosave:{kind}:{id} in the Redis cache
func NewCacheStore(c cache.Service) Store {
	return &cacheStore{cache: c}
}

func (s *cacheStore) Put(ctx context.Context, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal autosave record: %w", err)
	}
	return s.cache.SetAutosave(ctx, string(rec.Type), rec.ID, data, ttl)
}

func (s *cacheStore) Get(ctx context.Context, kind domain.AutosaveKind, id string) (*Record, error) {
	data, err := s.cache.GetAutosave(ctx, string(kind), id)
	if cache.IsMiss(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// a corrupt draft is treated as absent
		return nil, nil //nolint:nilerr
	}
	return &rec, nil
}

func (s *cacheStore) Delete(ctx context.Context, kind domain.AutosaveKind, id string) error {
	return s.cache.DeleteAutosave(ctx, string(kind), id)
}
