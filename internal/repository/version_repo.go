package repository

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository work version data access
type VersionRepository interface {
	// Create inserts a version; a taken (work_id, version) returns common.ErrVersionConflict
	Create(ctx context.Context, v *domain.WorkVersion) error
	// MaxVersion returns the highest version of a work, 0 when it has none
	MaxVersion(ctx context.Context, workID string) (int, error)
	// ListByWork returns all versions newest first
	ListByWork(ctx context.Context, workID string) ([]*domain.WorkVersion, error)
	FindByWorkAndVersion(ctx context.Context, workID string, version int) (*domain.WorkVersion, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(ctx context.Context, v *domain.WorkVersion) error {
	if v.ID == "" {
		v.ID = newID()
	}
	err := r.db.WithContext(ctx).Create(v).Error
	if isDuplicate(err) {
		return common.ErrVersionConflict
	}
	return err
}

func (r *versionRepository) MaxVersion(ctx context.Context, workID string) (int, error) {
	var maxVersion *int
	err := r.db.WithContext(ctx).Model(&domain.WorkVersion{}).
		Where("work_id = ?", workID).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	if maxVersion == nil {
		return 0, nil
	}
	return *maxVersion, nil
}

func (r *versionRepository) ListByWork(ctx context.Context, workID string) ([]*domain.WorkVersion, error) {
	var versions []*domain.WorkVersion
	err := r.db.WithContext(ctx).Where("work_id = ?", workID).Order("version DESC").Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByWorkAndVersion(ctx context.Context, workID string, version int) (*domain.WorkVersion, error) {
	var v domain.WorkVersion
	err := r.db.WithContext(ctx).Where("work_id = ? AND version = ?", workID, version).First(&v).Error
	if err != nil {
		return nil, notFound(err, common.ErrVersionNotFound)
	}
	return &v, nil
}
