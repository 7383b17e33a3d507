package i18n

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// DefaultLanguage is the fallback for every text resolution.
const DefaultLanguage = "en-US"

// SupportedLanguages are the locales the catalogs ship translations for.
var SupportedLanguages = []string{"en-US", "fr-FR", "es-ES"}

// Text is either a plain string or a per-language map. Catalog data mixes
// both shapes, so the distinction is kept explicit instead of being
// re-checked at every call site.
type Text struct {
	plain     string
	localized map[string]string
}

func Plain(s string) Text {
	return Text{plain: s}
}

func Localized(m map[string]string) Text {
	return Text{localized: m}
}

func (t Text) IsLocalized() bool {
	return t.localized != nil
}

// Resolve returns the text for lang, falling back to fallback, then to the
// closest supported match, then to any available translation.
func (t Text) Resolve(lang, fallback string) string {
	if t.localized == nil {
		return t.plain
	}
	if s, ok := t.localized[lang]; ok {
		return s
	}
	if s, ok := t.matchClosest(lang); ok {
		return s
	}
	if s, ok := t.localized[fallback]; ok {
		return s
	}
	keys := make([]string, 0, len(t.localized))
	for k := range t.localized {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return t.localized[keys[0]]
}

// matchClosest lets "en" or "en-GB" pick up the stored "en-US" entry.
func (t Text) matchClosest(lang string) (string, bool) {
	want, err := language.Parse(lang)
	if err != nil {
		return "", false
	}

	keys := make([]string, 0, len(t.localized))
	tags := make([]language.Tag, 0, len(t.localized))
	for k := range t.localized {
		tag, err := language.Parse(k)
		if err != nil {
			continue
		}
		keys = append(keys, k)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return "", false
	}

	sort.Sort(&tagSort{keys: keys, tags: tags})

	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return "", false
	}
	return t.localized[keys[idx]], true
}

func (t Text) MarshalJSON() ([]byte, error) {
	if t.localized != nil {
		return json.Marshal(t.localized)
	}
	return json.Marshal(t.plain)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text{plain: s}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("text must be a string or a language map: %w", err)
	}
	*t = Text{localized: m}
	return nil
}

// tagSort keeps the matcher input deterministic regardless of map order.
type tagSort struct {
	keys []string
	tags []language.Tag
}

func (s *tagSort) Len() int           { return len(s.keys) }
func (s *tagSort) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s *tagSort) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.tags[i], s.tags[j] = s.tags[j], s.tags[i]
}
