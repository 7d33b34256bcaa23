package domain

import "time"

// Template reusable document pattern (templates table)
type Template struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name         string    `gorm:"column:name;type:varchar(255)"`
	Description  string    `gorm:"column:description;type:text"`
	Thumbnail    string    `gorm:"column:thumbnail;type:varchar(500)"`
	Category     string    `gorm:"column:category;type:varchar(50);index"`
	Tags         string    `gorm:"column:tags;type:text"` // JSON array
	Slides       string    `gorm:"column:slides;type:longtext"`
	Language     string    `gorm:"column:language;type:varchar(10);default:ko"`
	Translations *string   `gorm:"column:translations;type:longtext"`
	IsPublic     bool      `gorm:"column:is_public;default:false;index"`
	UsageCount   int       `gorm:"column:usage_count;default:0"`
	AuthorID     string    `gorm:"column:author_id;type:varchar(36);index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Template) TableName() string { return "templates" }

// IsOwnedBy author == requester
func (t *Template) IsOwnedBy(userID string) bool {
	return userID != "" && t.AuthorID == userID
}

// CopyTitleSuffix appended to works created from a template
const CopyTitleSuffix = " (복사본)"

// TemplateData API projection of a template
type TemplateData struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Thumbnail    string         `json:"thumbnail"`
	Category     string         `json:"category"`
	Tags         []string       `json:"tags"`
	Slides       []Slide        `json:"slides"`
	Language     string         `json:"language"`
	Translations Translations   `json:"translations"`
	IsPublic     bool           `json:"isPublic"`
	UsageCount   int            `json:"usageCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Author       *AuthorSummary `json:"author,omitempty"`
}

// TemplateRequest create/update body
type TemplateRequest struct {
	Name         string       `json:"name" binding:"required,max=255"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail" binding:"omitempty,max=500"`
	Category     string       `json:"category" binding:"required,max=50"`
	Tags         []string     `json:"tags"`
	Slides       []Slide      `json:"slides" binding:"omitempty,dive"`
	Language     string       `json:"language" binding:"omitempty,max=10"`
	Translations Translations `json:"translations"`
	IsPublic     bool         `json:"isPublic"`
}
