package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/go-playground/validator/v10"
)

// ErrDuplicateSlideID a slide id appears twice in one sequence
var ErrDuplicateSlideID = errors.New("slide ids must be unique")

// same tag name as gin binding so request DTOs and editor actions share rules
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// ValidateStruct checks v against its binding tags
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}

// ValidateSlides checks one slide sequence: field rules and unique ids
func ValidateSlides(slides []Slide) error {
	if !HasUniqueSlideIDs(slides) {
		return ErrDuplicateSlideID
	}
	for i := range slides {
		if err := validate.Struct(slides[i]); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return nil
}

// Validate applies ValidateSlides to every locale's sequence.
// Locales are checked in sorted order so the reported one is stable.
func (t Translations) Validate() error {
	for _, lang := range slices.Sorted(maps.Keys(t)) {
		if lang == "" || len(lang) > 10 {
			return fmt.Errorf("translations: invalid language tag %q", lang)
		}
		if err := ValidateSlides(t[lang].Slides); err != nil {
			return fmt.Errorf("translations[%s]: %w", lang, err)
		}
	}
	return nil
}
