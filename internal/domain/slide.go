package domain

// Slide default styling
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
	DefaultFontSize        = 24
	DefaultFontFamily      = "Inter"
	DefaultLanguage        = "ko"
)

// Slide one page of a card-news document. Order within a sequence is render order.
type Slide struct {
	ID              string `json:"id" binding:"required,max=64"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	BackgroundColor string `json:"backgroundColor" binding:"max=32"`
	TextColor       string `json:"textColor" binding:"max=32"`
	FontSize        int    `json:"fontSize" binding:"gt=0,lte=400"`
	FontFamily      string `json:"fontFamily" binding:"max=100"`
	ImageURL        string `json:"imageUrl,omitempty" binding:"omitempty,max=1000"`
}

// NewSlide returns a slide with the default styling
func NewSlide(id string) Slide {
	return Slide{
		ID:              id,
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,
		FontSize:        DefaultFontSize,
		FontFamily:      DefaultFontFamily,
	}
}

// SlidePatch partial slide update; nil fields are left untouched
type SlidePatch struct {
	Title           *string `json:"title,omitempty"`
	Content         *string `json:"content,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty" binding:"omitempty,max=32"`
	TextColor       *string `json:"textColor,omitempty" binding:"omitempty,max=32"`
	FontSize        *int    `json:"fontSize,omitempty" binding:"omitempty,gt=0,lte=400"`
	FontFamily      *string `json:"fontFamily,omitempty" binding:"omitempty,max=100"`
	ImageURL        *string `json:"imageUrl,omitempty" binding:"omitempty,max=1000"`
}

// Apply returns s with the patch merged in; the id never changes
func (p SlidePatch) Apply(s Slide) Slide {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		s.TextColor = *p.TextColor
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.ImageURL != nil {
		s.ImageURL = *p.ImageURL
	}
	return s
}

// CloneSlides copies a slide sequence; nil stays nil
func CloneSlides(slides []Slide) []Slide {
	if slides == nil {
		return nil
	}
	out := make([]Slide, len(slides))
	copy(out, slides)
	return out
}

// HasUniqueSlideIDs reports whether every slide id appears once
func HasUniqueSlideIDs(slides []Slide) bool {
	seen := make(map[string]struct{}, len(slides))
	for _, s := range slides {
		if _, ok := seen[s.ID]; ok {
			return false
		}
		seen[s.ID] = struct{}{}
	}
	return true
}
