package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Locale represents a supported language
type Locale string

const (
	LocaleKo Locale = "ko"
	LocaleEn Locale = "en"
	LocaleJa Locale = "ja"
)

var defaultLocale = LocaleKo

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the process-wide bundle preloaded with DefaultMessages
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		defaultBundle = NewBundle(defaultLocale)
		for locale, msgs := range DefaultMessages() {
			defaultBundle.LoadMessages(locale, msgs)
		}
	})
	return defaultBundle
}

// Bundle holds message tables per locale
type Bundle struct {
	mu           sync.RWMutex
	translations map[Locale]map[string]string
	fallback     Locale
}

// NewBundle creates an empty bundle; lookups missing in a locale fall back to fallback
func NewBundle(fallback Locale) *Bundle {
	return &Bundle{
		translations: make(map[Locale]map[string]string),
		fallback:     fallback,
	}
}

// LoadDir merges message overrides from <locale>.yaml, <locale>.yml or <locale>.json files.
// Keys present in a file replace the built-in message; others are kept.
func (b *Bundle) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read i18n dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		switch ext {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		// JSON is a subset of YAML
		var msgs map[string]string
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		b.LoadMessages(Locale(strings.TrimSuffix(entry.Name(), ext)), msgs)
	}

	return nil
}

// LoadMessages merges messages into locale
func (b *Bundle) LoadMessages(locale Locale, messages map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	table, ok := b.translations[locale]
	if !ok {
		table = make(map[string]string, len(messages))
		b.translations[locale] = table
	}
	for k, v := range messages {
		table[k] = v
	}
}

// T translates key for locale, trying the fallback locale next and finally
// returning the key itself. args are applied with fmt.Sprintf.
func (b *Bundle) T(locale Locale, key string, args ...interface{}) string {
	msg, ok := b.lookup(locale, key)
	if !ok && locale != b.fallback {
		msg, ok = b.lookup(b.fallback, key)
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func (b *Bundle) lookup(locale Locale, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	msg, ok := b.translations[locale][key]
	return msg, ok
}

type weightedTag struct {
	locale Locale
	q      float64
}

// ParseAcceptLanguage picks the supported locale with the highest q value.
// Ties keep header order; nothing supported yields the default locale.
func ParseAcceptLanguage(header string) Locale {
	var tags []weightedTag
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		locale, ok := matchLocale(strings.ToLower(strings.TrimSpace(fields[0])))
		if !ok {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if v, found := strings.CutPrefix(param, "q="); found {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		if q <= 0 {
			continue
		}
		tags = append(tags, weightedTag{locale: locale, q: q})
	}
	if len(tags) == 0 {
		return defaultLocale
	}
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].q > tags[j].q })
	return tags[0].locale
}

func matchLocale(tag string) (Locale, bool) {
	switch {
	case strings.HasPrefix(tag, "ko"):
		return LocaleKo, true
	case strings.HasPrefix(tag, "en"):
		return LocaleEn, true
	case strings.HasPrefix(tag, "ja"):
		return LocaleJa, true
	}
	return "", false
}
