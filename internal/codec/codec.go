// Package codec converts card-news documents to and from the text stored in the
// slides and translations columns.
//
// Stored form is a versioned envelope:
//
//	{"schemaVersion":1,"slides":[...]}
//	{"schemaVersion":1,"translations":{...}}
//
// Rows written before the envelope existed hold a bare JSON array / object; both
// decoders accept that legacy form. Slide and translation decoding is fail-soft:
// malformed input is logged and decodes to an empty value.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cardnews/cardnews-backend/internal/common"
	"github.com/cardnews/cardnews-backend/internal/domain"
	"github.com/cardnews/cardnews-backend/pkg/logger"
)

// SchemaVersion current envelope version
const SchemaVersion = 1

type slidesEnvelope struct {
	SchemaVersion int            `json:"schemaVersion"`
	Slides        []domain.Slide `json:"slides"`
}

type translationsEnvelope struct {
	SchemaVersion int                 `json:"schemaVersion"`
	Translations  domain.Translations `json:"translations"`
}

type snapshotEnvelope struct {
	SchemaVersion int                 `json:"schemaVersion"`
	Snapshot      domain.WorkSnapshot `json:"snapshot"`
}

// EncodeSlides nil encodes as an empty sequence
func EncodeSlides(slides []domain.Slide) string {
	if slides == nil {
		slides = []domain.Slide{}
	}
	return mustMarshal(slidesEnvelope{SchemaVersion: SchemaVersion, Slides: slides})
}

// DecodeSlides never fails; the result is non-nil
func DecodeSlides(text string) []domain.Slide {
	raw := bytes.TrimSpace([]byte(text))
	if len(raw) == 0 {
		warn("slides", "empty input", nil)
		return []domain.Slide{}
	}

	var slides []domain.Slide
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &slides); err != nil {
			warn("slides", "legacy array", err)
			return []domain.Slide{}
		}
		return nonNilSlides(slides)
	}

	var env slidesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		warn("slides", "envelope", err)
		return []domain.Slide{}
	}
	if env.SchemaVersion != SchemaVersion {
		warn("slides", fmt.Sprintf("unsupported schemaVersion %d", env.SchemaVersion), nil)
		return []domain.Slide{}
	}
	return nonNilSlides(env.Slides)
}

// EncodeTranslations nil encodes as the empty mapping
func EncodeTranslations(t domain.Translations) string {
	if t == nil {
		t = domain.Translations{}
	}
	return mustMarshal(translationsEnvelope{SchemaVersion: SchemaVersion, Translations: t})
}

// DecodeTranslations never fails; nil and malformed input yield an empty mapping
func DecodeTranslations(text *string) domain.Translations {
	if text == nil {
		return domain.Translations{}
	}
	raw := bytes.TrimSpace([]byte(*text))
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Translations{}
	}

	// an envelope carries schemaVersion; anything else is a legacy bare mapping
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		warn("translations", "not an object", err)
		return domain.Translations{}
	}
	if _, ok := probe["schemaVersion"]; !ok {
		var legacy domain.Translations
		if err := json.Unmarshal(raw, &legacy); err != nil {
			warn("translations", "legacy object", err)
			return domain.Translations{}
		}
		return nonNilTranslations(legacy)
	}

	var env translationsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		warn("translations", "envelope", err)
		return domain.Translations{}
	}
	if env.SchemaVersion != SchemaVersion {
		warn("translations", fmt.Sprintf("unsupported schemaVersion %d", env.SchemaVersion), nil)
		return domain.Translations{}
	}
	return nonNilTranslations(env.Translations)
}

// EncodeSnapshot encodes a version snapshot
func EncodeSnapshot(s domain.WorkSnapshot) (string, error) {
	if s.Slides == nil {
		s.Slides = []domain.Slide{}
	}
	if s.Translations == nil {
		s.Translations = domain.Translations{}
	}
	b, err := json.Marshal(snapshotEnvelope{SchemaVersion: SchemaVersion, Snapshot: s})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w: %w", common.ErrSerialization, err)
	}
	return string(b), nil
}

// DecodeSnapshot is strict: a corrupt snapshot must not overwrite a live document
func DecodeSnapshot(text string) (domain.WorkSnapshot, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return domain.WorkSnapshot{}, fmt.Errorf("decode snapshot: %w: %w", common.ErrSerialization, err)
	}
	if env.SchemaVersion != SchemaVersion {
		return domain.WorkSnapshot{}, fmt.Errorf("decode snapshot: schemaVersion %d: %w",
			env.SchemaVersion, common.ErrSerialization)
	}
	env.Snapshot.Slides = nonNilSlides(env.Snapshot.Slides)
	env.Snapshot.Translations = nonNilTranslations(env.Snapshot.Translations)
	return env.Snapshot, nil
}

func mustMarshal(v interface{}) string {
	// only plain structs, strings, ints and maps keyed by string reach here
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("codec: marshal %T: %v", v, err))
	}
	return string(b)
}

func nonNilSlides(s []domain.Slide) []domain.Slide {
	if s == nil {
		return []domain.Slide{}
	}
	return s
}

func nonNilTranslations(t domain.Translations) domain.Translations {
	if t == nil {
		return domain.Translations{}
	}
	return t
}

func warn(field, reason string, err error) {
	ev := logger.GetLogger().Warn().Str("field", field).Str("reason", reason)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("failed to decode document blob, using empty value")
}
