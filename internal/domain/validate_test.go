package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlides(t *testing.T) {
	zeroFont := NewSlide("z")
	zeroFont.FontSize = 0
	noID := NewSlide("")

	tests := []struct {
		name    string
		slides  []Slide
		wantErr bool
	}{
		{"nil", nil, false},
		{"defaults", []Slide{NewSlide("a"), NewSlide("b")}, false},
		{"duplicate ids", []Slide{NewSlide("a"), NewSlide("a")}, true},
		{"zero font size", []Slide{zeroFont}, true},
		{"missing id", []Slide{noID}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlides(tt.slides)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.ErrorIs(t, ValidateSlides([]Slide{NewSlide("a"), NewSlide("a")}), ErrDuplicateSlideID)
}

func TestTranslations_Validate(t *testing.T) {
	zeroFont := NewSlide("z")
	zeroFont.FontSize = 0

	assert.NoError(t, Translations(nil).Validate())
	assert.NoError(t, Translations{
		"en": {Title: "Hello", Slides: []Slide{NewSlide("x"), NewSlide("y")}},
		"ja": {Title: "こんにちは"},
	}.Validate())

	err := Translations{"en": {Slides: []Slide{NewSlide("x"), NewSlide("x")}}}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlideID)
	assert.Contains(t, err.Error(), "translations[en]")

	err = Translations{"ja": {Slides: []Slide{zeroFont}}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translations[ja]")

	assert.Error(t, Translations{"": {Title: "blank tag"}}.Validate())
}
