package domain

import "time"

// Work card-news document row (works table).
// Slides and Translations hold codec-encoded text; use the codec package to read them.
type Work struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Title        string    `gorm:"column:title;type:varchar(255)"`
	Description  *string   `gorm:"column:description;type:text"`
	Slides       string    `gorm:"column:slides;type:longtext"`
	Language     string    `gorm:"column:language;type:varchar(10);default:ko"`
	Translations *string   `gorm:"column:translations;type:longtext"`
	IsPublic     bool      `gorm:"column:is_public;default:false;index"`
	AuthorID     string    `gorm:"column:author_id;type:varchar(36);index"`
	TemplateID   *string   `gorm:"column:template_id;type:varchar(36)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;index"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Work) TableName() string { return "works" }

// IsOwnedBy author == requester
func (w *Work) IsOwnedBy(userID string) bool {
	return userID != "" && w.AuthorID == userID
}

// WorkTranslation locale override of title, description and slides
type WorkTranslation struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Slides      []Slide `json:"slides"`
}

// Translations locale tag → override
type Translations map[string]WorkTranslation

// WorkData API projection of a work with decoded document blobs
type WorkData struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description"`
	IsPublic     bool           `json:"isPublic"`
	Language     string         `json:"language"`
	Slides       []Slide        `json:"slides"`
	Translations Translations   `json:"translations,omitempty"`
	TemplateID   *string        `json:"templateId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Author       *AuthorSummary `json:"author,omitempty"`
}

// Localize returns the document as seen in lang.
// A translation replaces title, description and slides wholesale; absent fields are not
// filled from the default locale.
func (d WorkData) Localize(lang string) WorkData {
	if lang == "" || lang == d.Language {
		return d
	}
	t, ok := d.Translations[lang]
	if !ok {
		return d
	}
	desc := t.Description
	d.Title = t.Title
	d.Description = &desc
	d.Slides = CloneSlides(t.Slides)
	d.Language = lang
	return d
}

// CardNewsData export/import projection; translations are always present
type CardNewsData struct {
	ID           string        `json:"id"`
	Title        string        `json:"title" binding:"required,max=255"`
	Description  string        `json:"description"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Author       AuthorSummary `json:"author"`
	Language     string        `json:"language"`
	Slides       []Slide       `json:"slides" binding:"omitempty,dive"`
	Translations Translations  `json:"translations"`
}

// WorkSnapshot full mutable content of a work; what a version stores
type WorkSnapshot struct {
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Language     string       `json:"language"`
	IsPublic     bool         `json:"isPublic"`
	Slides       []Slide      `json:"slides"`
	Translations Translations `json:"translations"`
}

// CreateWorkRequest new work body
type CreateWorkRequest struct {
	Title        string       `json:"title" binding:"required,max=255"`
	Description  *string      `json:"description"`
	Slides       []Slide      `json:"slides" binding:"omitempty,dive"`
	Language     string       `json:"language" binding:"omitempty,max=10"`
	Translations Translations `json:"translations"`
	IsPublic     bool         `json:"isPublic"`
}

// UpdateWorkRequest full replace of a work's mutable fields
type UpdateWorkRequest struct {
	Title        string       `json:"title" binding:"required,max=255"`
	Description  *string      `json:"description"`
	Slides       []Slide      `json:"slides" binding:"omitempty,dive"`
	Language     string       `json:"language" binding:"omitempty,max=10"`
	Translations Translations `json:"translations"`
	IsPublic     bool         `json:"isPublic"`
}

// Snapshot converts the request to the stored snapshot shape
func (r UpdateWorkRequest) Snapshot() WorkSnapshot {
	return WorkSnapshot{
		Title:        r.Title,
		Description:  r.Description,
		Language:     r.Language,
		IsPublic:     r.IsPublic,
		Slides:       r.Slides,
		Translations: r.Translations,
	}
}

// ShareRequest visibility change body
type ShareRequest struct {
	IsPublic *bool `json:"isPublic" binding:"required"`
}

// ShareResponse visibility after a share change
type ShareResponse struct {
	IsPublic bool `json:"isPublic"`
}

// ArchiveResponse location of an exported archive
type ArchiveResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
