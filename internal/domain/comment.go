package domain

import "time"

// Comment on a public work (comments table)
type Comment struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	WorkID    string    `gorm:"column:work_id;type:varchar(36);index" json:"workId"`
	AuthorID  string    `gorm:"column:author_id;type:varchar(36);index" json:"authorId"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string { return "comments" }

// CommentData API projection of a comment
type CommentData struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	WorkID    string        `json:"workId"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    AuthorSummary `json:"author"`
}

// CreateCommentRequest comment body; emptiness is checked after trimming
type CreateCommentRequest struct {
	Content string `json:"content" binding:"max=2000"`
}

// Like a user's like of a work (likes table)
type Like struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	WorkID    string    `gorm:"column:work_id;type:varchar(36);uniqueIndex:idx_likes_work_user"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);uniqueIndex:idx_likes_work_user"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Like) TableName() string { return "likes" }

// LikeStatus toggle/status response
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
