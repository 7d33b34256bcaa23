package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/logger"
)

var errLoginRequired = fmt.Errorf("private work needs a logged-in owner: %w", common.ErrUnauthorized)

// DraftClearer drops autosave drafts once a document is saved for real
type DraftClearer interface {
	Clear(ctx context.Context, id string, kind domain.AutosaveKind) error
}

// canRead public works are readable by anyone, private ones only by their author.
// Anonymous readers of a private work are told to log in first.
func canRead(w *domain.Work, viewerID string) error {
	if w.IsPublic || w.IsOwnedBy(viewerID) {
		return nil
	}
	if viewerID == "" {
		return errLoginRequired
	}
	return common.ErrPrivateWork
}

// canPreview like canRead, but anonymous viewers get forbidden rather than unauthorized
func canPreview(w *domain.Work, viewerID string) error {
	if w.IsPublic || w.IsOwnedBy(viewerID) {
		return nil
	}
	return common.ErrPrivateWork
}

// validateDocument rejects a blank title and invalid base or translated slide sequences
func validateDocument(title string, slides []domain.Slide, translations domain.Translations) error {
	if strings.TrimSpace(title) == "" {
		return common.Validation("title must not be blank")
	}
	if err := domain.ValidateSlides(slides); err != nil {
		return common.Validation(err.Error())
	}
	if err := translations.Validate(); err != nil {
		return common.Validation(err.Error())
	}
	return nil
}

func clearDraft(ctx context.Context, drafts DraftClearer, id string, kind domain.AutosaveKind) {
	if drafts == nil {
		return
	}
	if err := drafts.Clear(ctx, id, kind); err != nil {
		logger.GetLogger().Warn().Err(err).
			Str("kind", string(kind)).
			Str("id", id).
			Msg("autosave clear failed after save")
	}
}

// storageErr keeps taxonomy errors from repositories and wraps everything else as storage
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, kind := common.Classify(err); kind != common.KindServerError {
		return err
	}
	return common.Storage(op, err)
}
