package service

import (
	"context"
	"testing"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "author")
	seedUser(t, db, "reader")
	seedWork(t, db, "public", "author", true)
	seedWork(t, db, "private", "author", false)
	activity := &fakeActivity{}
	svc := NewCommentService(r.comments, r.works, activity)
	ctx := context.Background()

	_, err := svc.Create(ctx, "public", "reader", &domain.CreateCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, common.ErrEmptyComment)
	_, err = svc.Create(ctx, "private", "reader", &domain.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.Create(ctx, "missing", "reader", &domain.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, common.ErrWorkNotFound)
	assert.Empty(t, activity.events)

	c, err := svc.Create(ctx, "public", "reader", &domain.CreateCommentRequest{Content: " nice "})
	require.NoError(t, err)
	assert.Equal(t, "nice", c.Content)
	assert.Equal(t, "name-reader", c.Author.Name)

	require.Len(t, activity.events, 1)
	assert.Equal(t, "author", activity.events[0].UserID)
	assert.Equal(t, ws.EventCommentCreated, activity.events[0].Event.Type)
	assert.Equal(t, "reader", activity.events[0].Event.ActorID)

	// the author commenting on their own work is not an event
	_, err = svc.Create(ctx, "public", "author", &domain.CreateCommentRequest{Content: "thanks"})
	require.NoError(t, err)
	assert.Len(t, activity.events, 1)

	list, err := svc.List(ctx, "public")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCommentService_DeletePermissions(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	for _, id := range []string{"author", "commenter", "stranger"} {
		seedUser(t, db, id)
	}
	seedWork(t, db, "w1", "author", true)
	svc := NewCommentService(r.comments, r.works, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, "w1", "commenter", &domain.CreateCommentRequest{Content: "one"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "w1", "commenter", &domain.CreateCommentRequest{Content: "two"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "w1", first.ID, "stranger"), common.ErrNotCommentOwner)
	assert.ErrorIs(t, svc.Delete(ctx, "other-work", first.ID, "commenter"), common.ErrCommentNotFound)
	require.NoError(t, svc.Delete(ctx, "w1", first.ID, "commenter"))
	require.NoError(t, svc.Delete(ctx, "w1", second.ID, "author"))
	assert.ErrorIs(t, svc.Delete(ctx, "w1", second.ID, "author"), common.ErrCommentNotFound)
}

func TestLikeService_ToggleAndStatus(t *testing.T) {
	db := setupTestDB(t)
	r := newRepos(db)
	seedUser(t, db, "author")
	seedWork(t, db, "w1", "author", true)
	seedWork(t, db, "hidden", "author", false)
	activity := &fakeActivity{}
	svc := NewLikeService(r.likes, r.works, activity)
	ctx := context.Background()

	status, err := svc.Toggle(ctx, "w1", "fan")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatus{Liked: true, Count: 1}, *status)
	require.Len(t, activity.events, 1)
	assert.Equal(t, ws.EventLikeCreated, activity.events[0].Event.Type)

	status, err = svc.Status(ctx, "w1", "")
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)

	status, err = svc.Toggle(ctx, "w1", "fan")
	require.NoError(t, err)
	assert.Equal(t, domain.LikeStatus{Liked: false, Count: 0}, *status)
	assert.Len(t, activity.events, 1, "unlike is not an event")

	_, err = svc.Toggle(ctx, "hidden", "fan")
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = svc.Toggle(ctx, "missing", "fan")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
