package editor

import (
	"testing"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction_Valid(t *testing.T) {
	size := 40
	title := "t"
	tests := []struct {
		name string
		raw  string
		want Action
	}{
		{"add", `{"type":"ADD_SLIDE"}`, AddSlide{}},
		{"add null payload", `{"type":"ADD_SLIDE","payload":null}`, AddSlide{}},
		{"reset", `{"type":"RESET"}`, Reset{}},
		{"delete", `{"type":"DELETE_SLIDE","payload":{"id":"s1"}}`, DeleteSlide{ID: "s1"}},
		{"update", `{"type":"UPDATE_SLIDE","payload":{"id":"s1","data":{"fontSize":40,"title":"t"}}}`,
			UpdateSlide{ID: "s1", Patch: domain.SlidePatch{FontSize: &size, Title: &title}}},
		{"set current", `{"type":"SET_CURRENT_SLIDE","payload":3}`, SetCurrentSlide{Index: 3}},
		{"title", `{"type":"UPDATE_TITLE","payload":"제목"}`, UpdateTitle{Title: "제목"}},
		{"description", `{"type":"UPDATE_DESCRIPTION","payload":""}`, UpdateDescription{}},
		{"language", `{"type":"SET_LANGUAGE","payload":"en"}`, SetLanguage{Language: "en"}},
		{"public", `{"type":"SET_PUBLIC","payload":true}`, SetPublic{IsPublic: true}},
		{"set slides", `{"type":"SET_SLIDES","payload":[{"id":"a","title":"","content":"","backgroundColor":"#fff","textColor":"#000","fontSize":24,"fontFamily":"Inter"}]}`,
			SetSlides{Slides: []domain.Slide{{ID: "a", BackgroundColor: "#fff", TextColor: "#000", FontSize: 24, FontFamily: "Inter"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAction_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `nope`},
		{"unknown type", `{"type":"MOVE_SLIDE","payload":{}}`},
		{"unknown top-level field", `{"type":"ADD_SLIDE","extra":1}`},
		{"payload on add", `{"type":"ADD_SLIDE","payload":{"id":"x"}}`},
		{"missing payload", `{"type":"DELETE_SLIDE"}`},
		{"missing id", `{"type":"DELETE_SLIDE","payload":{}}`},
		{"unknown payload field", `{"type":"DELETE_SLIDE","payload":{"id":"s1","force":true}}`},
		{"unknown patch field", `{"type":"UPDATE_SLIDE","payload":{"id":"s1","data":{"color":"red"}}}`},
		{"zero font size", `{"type":"UPDATE_SLIDE","payload":{"id":"s1","data":{"fontSize":0}}}`},
		{"negative font size", `{"type":"UPDATE_SLIDE","payload":{"id":"s1","data":{"fontSize":-3}}}`},
		{"wrong payload type", `{"type":"SET_PUBLIC","payload":"yes"}`},
		{"empty language", `{"type":"SET_LANGUAGE","payload":""}`},
		{"slide without id", `{"type":"SET_SLIDES","payload":[{"fontSize":24}]}`},
		{"duplicate slide ids", `{"type":"SET_SLIDES","payload":[{"id":"a","fontSize":24},{"id":"a","fontSize":24}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := DecodeAction([]byte(tt.raw))
			assert.Nil(t, a)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestDecodeActions(t *testing.T) {
	actions, err := DecodeActions([]byte(`[{"type":"ADD_SLIDE"},{"type":"UPDATE_TITLE","payload":"A"}]`))
	require.NoError(t, err)
	assert.Equal(t, []Action{AddSlide{}, UpdateTitle{Title: "A"}}, actions)

	_, err = DecodeActions([]byte(`[{"type":"ADD_SLIDE"},{"type":"BOGUS"}]`))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = DecodeActions([]byte(`{"type":"ADD_SLIDE"}`))
	assert.ErrorIs(t, err, common.ErrValidation)
}
