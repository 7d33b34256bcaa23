package editor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
)

// ActionType wire name of an action
type ActionType string

const (
	TypeAddSlide          ActionType = "ADD_SLIDE"
	TypeDeleteSlide       ActionType = "DELETE_SLIDE"
	TypeUpdateSlide       ActionType = "UPDATE_SLIDE"
	TypeSetSlides         ActionType = "SET_SLIDES"
	TypeSetCurrentSlide   ActionType = "SET_CURRENT_SLIDE"
	TypeUpdateTitle       ActionType = "UPDATE_TITLE"
	TypeUpdateDescription ActionType = "UPDATE_DESCRIPTION"
	TypeSetLanguage       ActionType = "SET_LANGUAGE"
	TypeSetPublic         ActionType = "SET_PUBLIC"
	TypeReset             ActionType = "RESET"
)

// Action a typed editor command. The set is closed.
type Action interface {
	Type() ActionType
	isAction()
}

type AddSlide struct{}

type DeleteSlide struct {
	ID string `json:"id" binding:"required"`
}

type UpdateSlide struct {
	ID    string            `json:"id" binding:"required"`
	Patch domain.SlidePatch `json:"data"`
}

type SetSlides struct {
	Slides []domain.Slide `binding:"dive"`
}

type SetCurrentSlide struct {
	Index int
}

type UpdateTitle struct {
	Title string `binding:"max=255"`
}

type UpdateDescription struct {
	Description string
}

type SetLanguage struct {
	Language string `binding:"required,max=10"`
}

type SetPublic struct {
	IsPublic bool
}

type Reset struct{}

func (AddSlide) Type() ActionType          { return TypeAddSlide }
func (DeleteSlide) Type() ActionType       { return TypeDeleteSlide }
func (UpdateSlide) Type() ActionType       { return TypeUpdateSlide }
func (SetSlides) Type() ActionType         { return TypeSetSlides }
func (SetCurrentSlide) Type() ActionType   { return TypeSetCurrentSlide }
func (UpdateTitle) Type() ActionType       { return TypeUpdateTitle }
func (UpdateDescription) Type() ActionType { return TypeUpdateDescription }
func (SetLanguage) Type() ActionType       { return TypeSetLanguage }
func (SetPublic) Type() ActionType         { return TypeSetPublic }
func (Reset) Type() ActionType             { return TypeReset }

func (AddSlide) isAction()          {}
func (DeleteSlide) isAction()       {}
func (UpdateSlide) isAction()       {}
func (SetSlides) isAction()         {}
func (SetCurrentSlide) isAction()   {}
func (UpdateTitle) isAction()       {}
func (UpdateDescription) isAction() {}
func (SetLanguage) isAction()       {}
func (SetPublic) isAction()         {}
func (Reset) isAction()             {}

type wireAction struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses {"type":"...","payload":...} into a validated Action.
// Unknown types, unknown fields and invalid payloads fail with common.ErrValidation.
func DecodeAction(raw []byte) (Action, error) {
	var w wireAction
	if err := strictUnmarshal(raw, &w); err != nil {
		return nil, common.Validation(fmt.Sprintf("malformed action: %v", err))
	}
	return w.decode()
}

// DecodeActions parses a JSON array of actions; the first invalid one fails the batch
func DecodeActions(raw []byte) ([]Action, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, common.Validation(fmt.Sprintf("actions must be an array: %v", err))
	}
	actions := make([]Action, 0, len(items))
	for i, item := range items {
		a, err := DecodeAction(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func (w wireAction) decode() (Action, error) {
	var (
		a   Action
		err error
	)
	switch w.Type {
	case TypeAddSlide:
		a, err = AddSlide{}, w.noPayload()
	case TypeReset:
		a, err = Reset{}, w.noPayload()
	case TypeDeleteSlide:
		var p DeleteSlide
		err = w.payload(&p)
		a = p
	case TypeUpdateSlide:
		var p UpdateSlide
		err = w.payload(&p)
		a = p
	case TypeSetSlides:
		var p SetSlides
		err = w.payload(&p.Slides)
		a = p
	case TypeSetCurrentSlide:
		var p SetCurrentSlide
		err = w.payload(&p.Index)
		a = p
	case TypeUpdateTitle:
		var p UpdateTitle
		err = w.payload(&p.Title)
		a = p
	case TypeUpdateDescription:
		var p UpdateDescription
		err = w.payload(&p.Description)
		a = p
	case TypeSetLanguage:
		var p SetLanguage
		err = w.payload(&p.Language)
		a = p
	case TypeSetPublic:
		var p SetPublic
		err = w.payload(&p.IsPublic)
		a = p
	default:
		return nil, common.Validation(fmt.Sprintf("unknown action type %q", w.Type))
	}
	if err != nil {
		return nil, common.Validation(fmt.Sprintf("%s: %v", w.Type, err))
	}
	if err := domain.ValidateStruct(a); err != nil {
		return nil, common.Validation(fmt.Sprintf("%s: %v", w.Type, err))
	}
	if s, ok := a.(SetSlides); ok && !domain.HasUniqueSlideIDs(s.Slides) {
		return nil, common.Validation(fmt.Sprintf("%s: duplicate slide id", w.Type))
	}
	return a, nil
}

func (w wireAction) noPayload() error {
	if len(w.Payload) != 0 && !bytes.Equal(bytes.TrimSpace(w.Payload), []byte("null")) {
		return fmt.Errorf("takes no payload")
	}
	return nil
}

func (w wireAction) payload(dst interface{}) error {
	if len(w.Payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	return strictUnmarshal(w.Payload, dst)
}

func strictUnmarshal(raw []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data")
	}
	return nil
}
