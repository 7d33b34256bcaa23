package service

import (
	"context"
	"strings"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/repository"
	"github.com/cardnews/cardnews-backend/internal/ws"
)

// ActivityPublisher pushes activity events to a user's live connections
type ActivityPublisher interface {
	Publish(ctx context.Context, userID string, event *ws.Event)
}

// CommentService comment business logic
type CommentService interface {
	List(ctx context.Context, workID string) ([]domain.CommentData, error)
	// Create comments only on public works
	Create(ctx context.Context, workID, userID string, req *domain.CreateCommentRequest) (*domain.CommentData, error)
	// Delete allowed for the comment author and the work author
	Delete(ctx context.Context, workID, commentID, userID string) error
}

type commentService struct {
	repo     repository.CommentRepository
	workRepo repository.WorkRepository
	activity ActivityPublisher
}

// NewCommentService creates a new CommentService; activity may be nil
func NewCommentService(repo repository.CommentRepository, workRepo repository.WorkRepository, activity ActivityPublisher) CommentService {
	return &commentService{repo: repo, workRepo: workRepo, activity: activity}
}

func (s *commentService) List(ctx context.Context, workID string) ([]domain.CommentData, error) {
	if _, err := s.workRepo.FindByID(ctx, workID); err != nil {
		return nil, storageErr("find work", err)
	}
	comments, err := s.repo.ListByWork(ctx, workID)
	if err != nil {
		return nil, storageErr("list comments", err)
	}
	out := make([]domain.CommentData, len(comments))
	for i, c := range comments {
		out[i] = commentData(c)
	}
	return out, nil
}

func (s *commentService) Create(ctx context.Context, workID, userID string, req *domain.CreateCommentRequest) (*domain.CommentData, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.ErrEmptyComment
	}
	w, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, storageErr("find work", err)
	}
	if !w.IsPublic {
		return nil, common.ErrPrivateWork
	}

	comment := &domain.Comment{
		Content:  content,
		WorkID:   workID,
		AuthorID: userID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, storageErr("create comment", err)
	}
	created, err := s.repo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, storageErr("find comment", err)
	}
	data := commentData(created)

	if s.activity != nil && w.AuthorID != userID {
		s.activity.Publish(ctx, w.AuthorID, &ws.Event{
			Type:    ws.EventCommentCreated,
			WorkID:  workID,
			ActorID: userID,
			Payload: data,
		})
	}
	return &data, nil
}

func (s *commentService) Delete(ctx context.Context, workID, commentID, userID string) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return storageErr("find comment", err)
	}
	if comment.WorkID != workID {
		return common.ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		w, err := s.workRepo.FindByID(ctx, workID)
		if err != nil {
			return storageErr("find work", err)
		}
		if !w.IsOwnedBy(userID) {
			return common.ErrNotCommentOwner
		}
	}
	if err := s.repo.Delete(ctx, commentID); err != nil {
		return storageErr("delete comment", err)
	}
	return nil
}

func commentData(c *domain.Comment) domain.CommentData {
	data := domain.CommentData{
		ID:        c.ID,
		Content:   c.Content,
		WorkID:    c.WorkID,
		CreatedAt: c.CreatedAt,
		Author:    domain.AuthorSummary{ID: c.AuthorID},
	}
	if c.Author != nil {
		data.Author.Name = c.Author.Name
	}
	return data
}
