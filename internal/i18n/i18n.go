// Package i18n provides the translation lookup contract for the tour engine
// together with a builtin English fallback table, so the tour never renders a
// raw translation key.
package i18n

import (
	"embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translation keys used by the engine.
const (
	KeyWelcomeTitle       = "tour.welcome.title"
	KeyWelcomeDescription = "tour.welcome.description"
	KeyDoneTitle          = "tour.done.title"
	KeyDoneDescription    = "tour.done.description"
	KeyButtonNext         = "tour.button.next"
	KeyButtonPrevious     = "tour.button.previous"
	KeyButtonFinish       = "tour.button.finish"
	KeyProgress           = "tour.progress"
)

// Translator is the host application's translation lookup. ok is false when
// the host has no entry for the key.
type Translator interface {
	Translate(key string) (text string, ok bool)
}

// Static is a map-backed Translator.
type Static map[string]string

// Translate implements Translator.
func (s Static) Translate(key string) (string, bool) {
	text, ok := s[key]
	return text, ok && text != ""
}

var (
	builtinOnce  sync.Once
	builtinTable Static
)

// Builtin returns the embedded English fallback table.
func Builtin() Static {
	builtinOnce.Do(func() {
		logger := logging.Component("i18n")
		data, err := localeFS.ReadFile("locales/en.yaml")
		if err != nil {
			logger.Error().Err(err).Msg("missing builtin locale")
			builtinTable = Static{}
			return
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			logger.Error().Err(err).Msg("malformed builtin locale")
			builtinTable = Static{}
			return
		}
		builtinTable = table
	})
	return builtinTable
}

// Lookup asks the host translator first and falls back to the builtin table.
// A nil translator is allowed. Unknown keys resolve to "".
func Lookup(t Translator, key string) string {
	if t != nil {
		if text, ok := t.Translate(key); ok {
			return text
		}
	}
	text, _ := Builtin().Translate(key)
	return text
}
