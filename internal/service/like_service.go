package service

import (
	"context"

	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/internal/ws"
)

// LikeService like business logic
type LikeService interface {
	Toggle(ctx context.Context, workID, userID string) (*domain.LikeStatus, error)
	// Status anonymous callers are never "liked"
	Status(ctx context.Context, workID, userID string) (*domain.LikeStatus, error)
}

type likeService struct {
	repo     repository.LikeRepository
	workRepo repository.WorkRepository
	activity ActivityPublisher
}

// NewLikeService creates a new LikeService; activity may be nil
func NewLikeService(repo repository.LikeRepository, workRepo repository.WorkRepository, activity ActivityPublisher) LikeService {
	return &likeService{repo: repo, workRepo: workRepo, activity: activity}
}

func (s *likeService) Toggle(ctx context.Context, workID, userID string) (*domain.LikeStatus, error) {
	w, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	if err := canRead(w, userID); err != nil {
		return nil, err
	}
	liked, err := s.repo.Toggle(ctx, workID, userID)
	if err != nil {
		return nil, storageErr("toggle like", err)
	}
	count, err := s.repo.CountByWork(ctx, workID)
	if err != nil {
		return nil, storageErr("count likes", err)
	}

	if liked && s.activity != nil && w.AuthorID != userID {
		s.activity.Publish(ctx, w.AuthorID, &ws.Event{
			Type:    ws.EventLikeCreated,
			WorkID:  workID,
			ActorID: userID,
			Payload: domain.LikeStatus{Liked: true, Count: count},
		})
	}
	return &domain.LikeStatus{Liked: liked, Count: count}, nil
}

func (s *likeService) Status(ctx context.Context, workID, userID string) (*domain.LikeStatus, error) {
	count, err := s.repo.CountByWork(ctx, workID)
	if err != nil {
		return nil, storageErr("count likes", err)
	}
	status := &domain.LikeStatus{Count: count}
	if userID == "" {
		return status, nil
	}
	status.Liked, err = s.repo.Exists(ctx, workID, userID)
	if err != nil {
		return nil, storageErr("find like", err)
	}
	return status, nil
}
