package domain

import (
	"encoding/json"
	"time"
)

// AutosaveKind document kind an autosave draft belongs to
type AutosaveKind string

const (
	AutosaveKindWork     AutosaveKind = "work"
	AutosaveKindTemplate AutosaveKind = "template"
)

// Valid reports whether k is a known kind
func (k AutosaveKind) Valid() bool {
	return k == AutosaveKindWork || k == AutosaveKindTemplate
}

// AutosaveRequest represents request for saving a draft
type AutosaveRequest struct {
	Data json.RawMessage `json:"data" binding:"required"`
}

// AutosaveResponse represents the response after queueing a draft
type AutosaveResponse struct {
	Queued  bool      `json:"queued"`
	FlushAt time.Time `json:"flushAt"`
}
