package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/pkg/cache"
	"github.com/cardnews/cardnews-backend/pkg/logger"
)

// TemplateService template business logic
type TemplateService interface {
	ListPublic(ctx context.Context, category string, p common.Pagination) ([]domain.TemplateData, int64, error)
	Get(ctx context.Context, id, viewerID string) (*domain.TemplateData, error)
	Create(ctx context.Context, userID string, req *domain.TemplateRequest) (*domain.TemplateData, error)
	Update(ctx context.Context, id, userID string, req *domain.TemplateRequest) (*domain.TemplateData, error)
	Delete(ctx context.Context, id, userID string) error
	// Use copies the template into a new work owned by userID
	Use(ctx context.Context, id, userID string) (*domain.WorkData, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	workRepo     repository.WorkRepository
	cache        cache.Service
	drafts       DraftClearer
}

// templatePage cached page of public templates
type templatePage struct {
	Items []domain.TemplateData `json:"items"`
	Total int64                 `json:"total"`
}

// NewTemplateService creates a new TemplateService; cacheService and drafts may be nil
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	workRepo repository.WorkRepository,
	cacheService cache.Service,
	drafts DraftClearer,
) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		workRepo:     workRepo,
		cache:        cacheService,
		drafts:       drafts,
	}
}

// ListPublic serves from the cache when it can; the cache is only an accelerator
func (s *templateService) ListPublic(ctx context.Context, category string, p common.Pagination) ([]domain.TemplateData, int64, error) {
	if s.cache != nil {
		if raw, err := s.cache.GetTemplates(ctx, category, p.Page, p.Limit); err == nil {
			var page templatePage
			if json.Unmarshal(raw, &page) == nil {
				return page.Items, page.Total, nil
			}
		}
	}

	templates, total, err := s.templateRepo.ListPublic(ctx, category, p)
	if err != nil {
		return nil, 0, storageErr("list templates", err)
	}
	items := make([]domain.TemplateData, len(templates))
	for i, t := range templates {
		items[i] = codec.TemplateData(t)
	}

	if s.cache != nil {
		if err := s.cache.SetTemplates(ctx, category, p.Page, p.Limit, templatePage{Items: items, Total: total}); err != nil {
			logger.GetLogger().Warn().Err(err).Msg("template list cache write failed")
		}
	}
	return items, total, nil
}

func (s *templateService) Get(ctx context.Context, id, viewerID string) (*domain.TemplateData, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsPublic && !t.IsOwnedBy(viewerID) {
		return nil, common.ErrNotTemplateOwner
	}
	data := codec.TemplateData(t)
	return &data, nil
}

func (s *templateService) Create(ctx context.Context, userID string, req *domain.TemplateRequest) (*domain.TemplateData, error) {
	if err := validateDocument(req.Name, req.Slides, req.Translations); err != nil {
		return nil, err
	}
	t := &domain.Template{AuthorID: userID}
	applyTemplateRequest(t, req)
	if err := s.templateRepo.Create(ctx, t); err != nil {
		return nil, storageErr("create template", err)
	}
	s.invalidate(ctx)
	return s.reload(ctx, t.ID)
}

// Update full replace; clears the template's autosave draft
func (s *templateService) Update(ctx context.Context, id, userID string, req *domain.TemplateRequest) (*domain.TemplateData, error) {
	if err := validateDocument(req.Name, req.Slides, req.Translations); err != nil {
		return nil, err
	}
	t, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	applyTemplateRequest(t, req)
	if err := s.templateRepo.Update(ctx, t); err != nil {
		return nil, storageErr("update template", err)
	}
	s.invalidate(ctx)
	clearDraft(ctx, s.drafts, id, domain.AutosaveKindTemplate)
	return s.reload(ctx, id)
}

func (s *templateService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return storageErr("delete template", err)
	}
	s.invalidate(ctx)
	clearDraft(ctx, s.drafts, id, domain.AutosaveKindTemplate)
	return nil
}

func (s *templateService) Use(ctx context.Context, id, userID string) (*domain.WorkData, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsPublic && !t.IsOwnedBy(userID) {
		return nil, common.ErrNotTemplateOwner
	}

	if err := s.templateRepo.IncrementUsage(ctx, id); err != nil {
		return nil, storageErr("increment template usage", err)
	}

	templateID := t.ID
	w := &domain.Work{
		Title:      t.Name + domain.CopyTitleSuffix,
		Slides:     codec.EncodeSlides(codec.DecodeSlides(t.Slides)),
		Language:   domain.DefaultLanguage,
		AuthorID:   userID,
		TemplateID: &templateID,
	}
	if t.Description != "" {
		desc := t.Description
		w.Description = &desc
	}
	if err := s.workRepo.Create(ctx, w); err != nil {
		return nil, storageErr("create work from template", err)
	}
	s.invalidate(ctx)

	created, err := s.workRepo.FindByID(ctx, w.ID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	data := codec.WorkData(created)
	return &data, nil
}

func (s *templateService) find(ctx context.Context, id string) (*domain.Template, error) {
	t, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find template", err)
	}
	return t, nil
}

func (s *templateService) findOwned(ctx context.Context, id, userID string) (*domain.Template, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsOwnedBy(userID) {
		return nil, common.ErrNotTemplateOwner
	}
	return t, nil
}

func (s *templateService) reload(ctx context.Context, id string) (*domain.TemplateData, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data := codec.TemplateData(t)
	return &data, nil
}

func (s *templateService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTemplates(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("template list cache invalidation failed")
	}
}

func applyTemplateRequest(t *domain.Template, req *domain.TemplateRequest) {
	t.Name = strings.TrimSpace(req.Name)
	t.Description = req.Description
	t.Thumbnail = req.Thumbnail
	t.Category = req.Category
	t.Tags = codec.EncodeTags(req.Tags)
	t.Slides = codec.EncodeSlides(req.Slides)
	t.Language = languageOrDefault(req.Language)
	t.IsPublic = req.IsPublic
	if len(req.Translations) == 0 {
		t.Translations = nil
	} else {
		tr := codec.EncodeTranslations(req.Translations)
		t.Translations = &tr
	}
}
