package repository

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/domain"
	"gorm.io/gorm"
)

// LikeRepository like data access
type LikeRepository interface {
	// Toggle adds the like when absent and removes it otherwise; returns the new state
	Toggle(ctx context.Context, workID, userID string) (bool, error)
	Exists(ctx context.Context, workID, userID string) (bool, error)
	CountByWork(ctx context.Context, workID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, workID, userID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("work_id = ? AND user_id = ?", workID, userID).Delete(&domain.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		err := tx.Create(&domain.Like{ID: newID(), WorkID: workID, UserID: userID}).Error
		if isDuplicate(err) {
			// a concurrent toggle inserted first
			liked = true
			return nil
		}
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *likeRepository) Exists(ctx context.Context, workID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("work_id = ? AND user_id = ?", workID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountByWork(ctx context.Context, workID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).Where("work_id = ?", workID).Count(&count).Error
	return count, err
}
