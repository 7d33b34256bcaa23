// Package editor holds the editing-session state machine for a card-news document.
// Reduce is pure: it never mutates its input and never fails.
package editor

import (
	"github.com/cardnews/cardnews-backend/internal/codec"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/google/uuid"
)

// State editing session state
type State struct {
	Slides            []domain.Slide `json:"slides"`
	CurrentSlideIndex int            `json:"currentSlideIndex"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Language          string         `json:"language"`
	IsPublic          bool           `json:"isPublic"`
}

// InitialState canonical empty state, also the result of Reset
func InitialState() State {
	return State{
		Slides:            []domain.Slide{},
		CurrentSlideIndex: 0,
		Language:          domain.DefaultLanguage,
		IsPublic:          false,
	}
}

// CurrentSlide returns the active slide, false when the index is out of range
func (s State) CurrentSlide() (domain.Slide, bool) {
	if s.CurrentSlideIndex < 0 || s.CurrentSlideIndex >= len(s.Slides) {
		return domain.Slide{}, false
	}
	return s.Slides[s.CurrentSlideIndex], true
}

// FromWork loads a stored work into an editing session
func FromWork(w *domain.Work) State {
	st := InitialState()
	st.Slides = codec.DecodeSlides(w.Slides)
	st.Title = w.Title
	if w.Description != nil {
		st.Description = *w.Description
	}
	if w.Language != "" {
		st.Language = w.Language
	}
	st.IsPublic = w.IsPublic
	return st
}

// Snapshot converts the session to the persisted snapshot shape
func (s State) Snapshot(translations domain.Translations) domain.WorkSnapshot {
	desc := s.Description
	return domain.WorkSnapshot{
		Title:        s.Title,
		Description:  &desc,
		Language:     s.Language,
		IsPublic:     s.IsPublic,
		Slides:       domain.CloneSlides(s.Slides),
		Translations: translations,
	}
}

// Reducer applies actions. NewID generates ids for added slides.
type Reducer struct {
	NewID func() string
}

var defaultReducer = Reducer{NewID: uuid.NewString}

// Reduce applies a with uuid-generated slide ids
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

// Replay folds actions over s in order
func Replay(s State, actions []Action) State {
	return defaultReducer.Replay(s, actions)
}

// Replay folds actions over s in order
func (r Reducer) Replay(s State, actions []Action) State {
	for _, a := range actions {
		s = r.Reduce(s, a)
	}
	return s
}

// Reduce returns the state after a. Unknown actions return s unchanged.
func (r Reducer) Reduce(s State, a Action) State {
	next := s
	next.Slides = domain.CloneSlides(s.Slides)

	switch act := a.(type) {
	case AddSlide:
		next.Slides = append(next.Slides, domain.NewSlide(r.newID()))
		next.CurrentSlideIndex = len(next.Slides) - 1

	case DeleteSlide:
		idx := indexOf(next.Slides, act.ID)
		if idx < 0 {
			return next
		}
		next.Slides = append(next.Slides[:idx], next.Slides[idx+1:]...)
		next.CurrentSlideIndex = clampIndex(s.CurrentSlideIndex, len(next.Slides))

	case UpdateSlide:
		if idx := indexOf(next.Slides, act.ID); idx >= 0 {
			next.Slides[idx] = act.Patch.Apply(next.Slides[idx])
		}

	case SetSlides:
		next.Slides = domain.CloneSlides(act.Slides)
		if next.Slides == nil {
			next.Slides = []domain.Slide{}
		}

	case SetCurrentSlide:
		next.CurrentSlideIndex = act.Index

	case UpdateTitle:
		next.Title = act.Title

	case UpdateDescription:
		next.Description = act.Description

	case SetLanguage:
		next.Language = act.Language

	case SetPublic:
		next.IsPublic = act.IsPublic

	case Reset:
		return InitialState()
	}
	return next
}

func (r Reducer) newID() string {
	if r.NewID == nil {
		return uuid.NewString()
	}
	return r.NewID()
}

func indexOf(slides []domain.Slide, id string) int {
	for i, s := range slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// clampIndex min(idx, count-1), never below 0; -1 once no slides remain
func clampIndex(idx, count int) int {
	if count == 0 {
		return -1
	}
	if idx > count-1 {
		idx = count - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
