package codec

import (
	"encoding/json"

	"github.com/cardnews/cardnews-backend/internal/domain"
)

// WorkData decodes a stored work into its API projection.
// Translations are only present when the row has them.
func WorkData(w *domain.Work) domain.WorkData {
	data := domain.WorkData{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		IsPublic:    w.IsPublic,
		Language:    w.Language,
		Slides:      DecodeSlides(w.Slides),
		TemplateID:  w.TemplateID,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.Translations != nil {
		data.Translations = DecodeTranslations(w.Translations)
	}
	if w.Author != nil {
		data.Author = &domain.AuthorSummary{ID: w.Author.ID, Name: w.Author.Name, Email: w.Author.Email}
	}
	return data
}

// CardNewsData export projection; a missing author name becomes "Anonymous"
func CardNewsData(w *domain.Work) domain.CardNewsData {
	out := domain.CardNewsData{
		ID:           w.ID,
		Title:        w.Title,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
		Author:       domain.AuthorSummary{ID: w.AuthorID, Name: "Anonymous"},
		Language:     w.Language,
		Slides:       DecodeSlides(w.Slides),
		Translations: DecodeTranslations(w.Translations),
	}
	if w.Description != nil {
		out.Description = *w.Description
	}
	if w.Author != nil && w.Author.Name != "" {
		out.Author.Name = w.Author.Name
	}
	return out
}

// Snapshot captures the mutable content of a stored work
func Snapshot(w *domain.Work) domain.WorkSnapshot {
	return domain.WorkSnapshot{
		Title:        w.Title,
		Description:  w.Description,
		Language:     w.Language,
		IsPublic:     w.IsPublic,
		Slides:       DecodeSlides(w.Slides),
		Translations: DecodeTranslations(w.Translations),
	}
}

// ApplySnapshot overwrites the mutable fields of w with s (full replace, not merge).
// An empty translation set is stored as NULL.
func ApplySnapshot(w *domain.Work, s domain.WorkSnapshot) {
	w.Title = s.Title
	w.Description = s.Description
	w.IsPublic = s.IsPublic
	w.Slides = EncodeSlides(s.Slides)
	if s.Language != "" {
		w.Language = s.Language
	} else {
		w.Language = domain.DefaultLanguage
	}
	if len(s.Translations) == 0 {
		w.Translations = nil
	} else {
		t := EncodeTranslations(s.Translations)
		w.Translations = &t
	}
}

// TemplateData decodes a stored template
func TemplateData(t *domain.Template) domain.TemplateData {
	out := domain.TemplateData{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Thumbnail:    t.Thumbnail,
		Category:     t.Category,
		Tags:         DecodeTags(t.Tags),
		Slides:       DecodeSlides(t.Slides),
		Language:     t.Language,
		Translations: DecodeTranslations(t.Translations),
		IsPublic:     t.IsPublic,
		UsageCount:   t.UsageCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Author != nil {
		out.Author = &domain.AuthorSummary{ID: t.Author.ID, Name: t.Author.Name}
	}
	return out
}

// EncodeTags stores template tags as a JSON array
func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	return mustMarshal(tags)
}

// DecodeTags fail-soft like the document blobs
func DecodeTags(text string) []string {
	tags := []string{}
	if text == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(text), &tags); err != nil {
		warn("tags", "array", err)
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}
