package repository

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"gorm.io/gorm"
)

// WorkRepository work data access
type WorkRepository interface {
	Create(ctx context.Context, work *domain.Work) error
	FindByID(ctx context.Context, id string) (*domain.Work, error)
	// FindByAuthor returns a page of the author's works, most recently updated first
	FindByAuthor(ctx context.Context, authorID string, p common.Pagination) ([]*domain.Work, int64, error)
	// Update writes every mutable column of work
	Update(ctx context.Context, work *domain.Work) error
	// Delete removes the work with its versions, comments and likes
	Delete(ctx context.Context, id string) error
}

type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new WorkRepository
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(ctx context.Context, work *domain.Work) error {
	if work.ID == "" {
		work.ID = newID()
	}
	return r.db.WithContext(ctx).Omit("Author").Create(work).Error
}

func (r *workRepository) FindByID(ctx context.Context, id string) (*domain.Work, error) {
	var work domain.Work
	err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&work).Error
	if err != nil {
		return nil, notFound(err, common.ErrWorkNotFound)
	}
	return &work, nil
}

func (r *workRepository) FindByAuthor(ctx context.Context, authorID string, p common.Pagination) ([]*domain.Work, int64, error) {
	var (
		works []*domain.Work
		total int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Work{}).Where("author_id = ?", authorID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("updated_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&works).Error
	return works, total, err
}

func (r *workRepository) Update(ctx context.Context, work *domain.Work) error {
	result := r.db.WithContext(ctx).Model(work).
		Select("title", "description", "slides", "language", "translations", "is_public", "template_id", "updated_at").
		Updates(work)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrWorkNotFound
	}
	return nil
}

func (r *workRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&domain.WorkVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Work{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrWorkNotFound
		}
		return nil
	})
}
