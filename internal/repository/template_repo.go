package repository

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"gorm.io/gorm"
)

// TemplateRepository template data access
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.Template) error
	FindByID(ctx context.Context, id string) (*domain.Template, error)
	// ListPublic returns public templates, optionally of one category, newest first
	ListPublic(ctx context.Context, category string, p common.Pagination) ([]*domain.Template, int64, error)
	Update(ctx context.Context, tpl *domain.Template) error
	Delete(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, tpl *domain.Template) error {
	if tpl.ID == "" {
		tpl.ID = newID()
	}
	return r.db.WithContext(ctx).Omit("Author").Create(tpl).Error
}

func (r *templateRepository) FindByID(ctx context.Context, id string) (*domain.Template, error) {
	var tpl domain.Template
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&tpl).Error
	if err != nil {
		return nil, notFound(err, common.ErrTemplateNotFound)
	}
	return &tpl, nil
}

func (r *templateRepository) ListPublic(ctx context.Context, category string, p common.Pagination) ([]*domain.Template, int64, error) {
	var (
		templates []*domain.Template
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Template{}).Where("is_public = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Author").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&templates).Error
	return templates, total, err
}

func (r *templateRepository) Update(ctx context.Context, tpl *domain.Template) error {
	result := r.db.WithContext(ctx).Model(tpl).
		Select("name", "description", "thumbnail", "category", "tags", "slides", "language", "translations", "is_public", "updated_at").
		Updates(tpl)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Template{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) IncrementUsage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}

func (r *templateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Template{}).Count(&count).Error
	return count, err
}
