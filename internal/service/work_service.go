package service

import (
	"context"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/editor"
	"github.com/cardnews/cardnews-backend/internal/repository"
)

// EditorResult document and session state after applying editor actions
type EditorResult struct {
	Work  domain.WorkData `json:"work"`
	State editor.State    `json:"state"`
}

// WorkService work business logic
type WorkService interface {
	ListMine(ctx context.Context, userID string, p common.Pagination) ([]domain.WorkData, int64, error)
	Create(ctx context.Context, userID string, req *domain.CreateWorkRequest) (*domain.WorkData, error)
	// Get returns the work localized to lang ("" for the stored language)
	Get(ctx context.Context, id, viewerID, lang string) (*domain.WorkData, error)
	Preview(ctx context.Context, id, viewerID, lang string) (*domain.WorkData, error)
	Update(ctx context.Context, id, userID string, req *domain.UpdateWorkRequest) (*domain.WorkData, error)
	Delete(ctx context.Context, id, userID string) error
	Share(ctx context.Context, id, userID string, isPublic bool) (*domain.ShareResponse, error)
	// ApplyActions replays a batch of editor actions on the stored work and saves the result.
	// The batch is validated as a whole before anything is applied.
	ApplyActions(ctx context.Context, id, userID string, raw []byte) (*EditorResult, error)
}

type workService struct {
	workRepo repository.WorkRepository
	drafts   DraftClearer
	reducer  editor.Reducer
}

// NewWorkService creates a new WorkService; drafts may be nil
func NewWorkService(workRepo repository.WorkRepository, drafts DraftClearer) WorkService {
	return &workService{workRepo: workRepo, drafts: drafts}
}

func (s *workService) ListMine(ctx context.Context, userID string, p common.Pagination) ([]domain.WorkData, int64, error) {
	works, total, err := s.workRepo.FindByAuthor(ctx, userID, p)
	if err != nil {
		return nil, 0, storageErr("list works", err)
	}
	out := make([]domain.WorkData, len(works))
	for i, w := range works {
		out[i] = codec.WorkData(w)
	}
	return out, total, nil
}

func (s *workService) Create(ctx context.Context, userID string, req *domain.CreateWorkRequest) (*domain.WorkData, error) {
	if err := validateDocument(req.Title, req.Slides, req.Translations); err != nil {
		return nil, err
	}
	w := &domain.Work{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Slides:      codec.EncodeSlides(req.Slides),
		Language:    languageOrDefault(req.Language),
		IsPublic:    req.IsPublic,
		AuthorID:    userID,
	}
	if len(req.Translations) > 0 {
		t := codec.EncodeTranslations(req.Translations)
		w.Translations = &t
	}
	if err := s.workRepo.Create(ctx, w); err != nil {
		return nil, storageErr("create work", err)
	}
	return s.reload(ctx, w.ID)
}

func (s *workService) Get(ctx context.Context, id, viewerID, lang string) (*domain.WorkData, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canRead(w, viewerID); err != nil {
		return nil, err
	}
	data := codec.WorkData(w).Localize(lang)
	return &data, nil
}

func (s *workService) Preview(ctx context.Context, id, viewerID, lang string) (*domain.WorkData, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canPreview(w, viewerID); err != nil {
		return nil, err
	}
	data := codec.WorkData(w).Localize(lang)
	return &data, nil
}

// Update full replace of the mutable fields; clears the work's autosave draft
func (s *workService) Update(ctx context.Context, id, userID string, req *domain.UpdateWorkRequest) (*domain.WorkData, error) {
	if err := validateDocument(req.Title, req.Slides, req.Translations); err != nil {
		return nil, err
	}
	w, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	snap := req.Snapshot()
	snap.Title = strings.TrimSpace(snap.Title)
	codec.ApplySnapshot(w, snap)
	if err := s.workRepo.Update(ctx, w); err != nil {
		return nil, storageErr("update work", err)
	}
	clearDraft(ctx, s.drafts, id, domain.AutosaveKindWork)
	return s.reload(ctx, id)
}

func (s *workService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.workRepo.Delete(ctx, id); err != nil {
		return storageErr("delete work", err)
	}
	clearDraft(ctx, s.drafts, id, domain.AutosaveKindWork)
	return nil
}

func (s *workService) Share(ctx context.Context, id, userID string, isPublic bool) (*domain.ShareResponse, error) {
	w, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	w.IsPublic = isPublic
	if err := s.workRepo.Update(ctx, w); err != nil {
		return nil, storageErr("share work", err)
	}
	return &domain.ShareResponse{IsPublic: w.IsPublic}, nil
}

func (s *workService) ApplyActions(ctx context.Context, id, userID string, raw []byte) (*EditorResult, error) {
	actions, err := editor.DecodeActions(raw)
	if err != nil {
		return nil, err
	}
	w, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	state := s.replay(editor.FromWork(w), actions)

	var translations domain.Translations
	if w.Translations != nil {
		translations = codec.DecodeTranslations(w.Translations)
	}
	codec.ApplySnapshot(w, state.Snapshot(translations))
	if err := s.workRepo.Update(ctx, w); err != nil {
		return nil, storageErr("apply editor actions", err)
	}
	clearDraft(ctx, s.drafts, id, domain.AutosaveKindWork)

	data, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EditorResult{Work: *data, State: state}, nil
}

func (s *workService) replay(st editor.State, actions []editor.Action) editor.State {
	if s.reducer.NewID != nil {
		return s.reducer.Replay(st, actions)
	}
	return editor.Replay(st, actions)
}

func (s *workService) find(ctx context.Context, id string) (*domain.Work, error) {
	w, err := s.workRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	return w, nil
}

func (s *workService) findOwned(ctx context.Context, id, userID string) (*domain.Work, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.IsOwnedBy(userID) {
		return nil, common.ErrNotWorkOwner
	}
	return w, nil
}

func (s *workService) reload(ctx context.Context, id string) (*domain.WorkData, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data := codec.WorkData(w)
	return &data, nil
}

func languageOrDefault(lang string) string {
	if lang == "" {
		return domain.DefaultLanguage
	}
	return lang
}
