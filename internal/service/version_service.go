package service

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
)

// VersionService numbered snapshots of works.
// The plain methods trust the caller; the ForUser variants check authorship first.
type VersionService interface {
	CreateVersion(ctx context.Context, workID string, snapshot domain.WorkSnapshot) (*domain.WorkVersion, error)
	ListVersions(ctx context.Context, workID string) ([]*domain.WorkVersion, error)
	GetVersion(ctx context.Context, workID string, version int) (*domain.WorkVersion, error)
	// RestoreVersion overwrites the work with the stored snapshot; it does not create a version
	RestoreVersion(ctx context.Context, workID string, version int) (*domain.Work, error)

	SnapshotWork(ctx context.Context, workID, userID string) (*domain.VersionData, error)
	ListForUser(ctx context.Context, workID, userID string) ([]domain.VersionSummary, error)
	GetForUser(ctx context.Context, workID, userID string, version int) (*domain.VersionData, error)
	RestoreForUser(ctx context.Context, workID, userID string, version int) (*domain.WorkData, error)
}

type versionService struct {
	versionRepo repository.VersionRepository
	workRepo    repository.WorkRepository
	drafts      DraftClearer
}

// NewVersionService creates a new VersionService; drafts may be nil
func NewVersionService(versionRepo repository.VersionRepository, workRepo repository.WorkRepository, drafts DraftClearer) VersionService {
	return &versionService{versionRepo: versionRepo, workRepo: workRepo, drafts: drafts}
}

// CreateVersion stores snapshot as max+1. Two concurrent callers can read the same max;
// the unique (work_id, version) index rejects the slower one with ErrVersionConflict.
func (s *versionService) CreateVersion(ctx context.Context, workID string, snapshot domain.WorkSnapshot) (*domain.WorkVersion, error) {
	data, err := codec.EncodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	latest, err := s.versionRepo.MaxVersion(ctx, workID)
	if err != nil {
		return nil, storageErr("read latest version", err)
	}
	v := &domain.WorkVersion{
		WorkID:  workID,
		Version: latest + 1,
		Data:    data,
	}
	if err := s.versionRepo.Create(ctx, v); err != nil {
		return nil, storageErr("create version", err)
	}
	return v, nil
}

func (s *versionService) ListVersions(ctx context.Context, workID string) ([]*domain.WorkVersion, error) {
	versions, err := s.versionRepo.ListByWork(ctx, workID)
	if err != nil {
		return nil, storageErr("list versions", err)
	}
	return versions, nil
}

func (s *versionService) GetVersion(ctx context.Context, workID string, version int) (*domain.WorkVersion, error) {
	v, err := s.versionRepo.FindByWorkAndVersion(ctx, workID, version)
	if err != nil {
		return nil, storageErr("find version", err)
	}
	return v, nil
}

func (s *versionService) RestoreVersion(ctx context.Context, workID string, version int) (*domain.Work, error) {
	v, err := s.GetVersion(ctx, workID, version)
	if err != nil {
		return nil, err
	}
	snapshot, err := codec.DecodeSnapshot(v.Data)
	if err != nil {
		return nil, err
	}
	w, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	codec.ApplySnapshot(w, snapshot)
	if err := s.workRepo.Update(ctx, w); err != nil {
		return nil, storageErr("restore version", err)
	}
	clearDraft(ctx, s.drafts, workID, domain.AutosaveKindWork)
	return w, nil
}

func (s *versionService) SnapshotWork(ctx context.Context, workID, userID string) (*domain.VersionData, error) {
	w, err := s.owned(ctx, workID, userID)
	if err != nil {
		return nil, err
	}
	snapshot := codec.Snapshot(w)
	v, err := s.CreateVersion(ctx, workID, snapshot)
	if err != nil {
		return nil, err
	}
	return &domain.VersionData{
		ID:        v.ID,
		WorkID:    v.WorkID,
		Version:   v.Version,
		Snapshot:  snapshot,
		CreatedAt: v.CreatedAt,
	}, nil
}

func (s *versionService) ListForUser(ctx context.Context, workID, userID string) ([]domain.VersionSummary, error) {
	if _, err := s.owned(ctx, workID, userID); err != nil {
		return nil, err
	}
	versions, err := s.ListVersions(ctx, workID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VersionSummary, len(versions))
	for i, v := range versions {
		out[i] = domain.VersionSummary{ID: v.ID, Version: v.Version, CreatedAt: v.CreatedAt}
	}
	return out, nil
}

func (s *versionService) GetForUser(ctx context.Context, workID, userID string, version int) (*domain.VersionData, error) {
	if _, err := s.owned(ctx, workID, userID); err != nil {
		return nil, err
	}
	v, err := s.GetVersion(ctx, workID, version)
	if err != nil {
		return nil, err
	}
	snapshot, err := codec.DecodeSnapshot(v.Data)
	if err != nil {
		return nil, err
	}
	return &domain.VersionData{
		ID:        v.ID,
		WorkID:    v.WorkID,
		Version:   v.Version,
		Snapshot:  snapshot,
		CreatedAt: v.CreatedAt,
	}, nil
}

func (s *versionService) RestoreForUser(ctx context.Context, workID, userID string, version int) (*domain.WorkData, error) {
	if _, err := s.owned(ctx, workID, userID); err != nil {
		return nil, err
	}
	if _, err := s.RestoreVersion(ctx, workID, version); err != nil {
		return nil, err
	}
	w, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	data := codec.WorkData(w)
	return &data, nil
}

func (s *versionService) owned(ctx context.Context, workID, userID string) (*domain.Work, error) {
	w, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	if !w.IsOwnedBy(userID) {
		return nil, common.ErrNotWorkOwner
	}
	return w, nil
}
