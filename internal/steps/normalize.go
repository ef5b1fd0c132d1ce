// Package steps turns authored step definitions into the localized,
// device-filtered sequence the tour sequencer runs. Malformed author input is
// never an error: the builtin list for the visitor class takes its place.
package steps

import (
	"encoding/json"
	"strings"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/i18n"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// Input carries the context a normalization pass needs.
type Input struct {
	// Class selects the builtin fallback list and bookend overrides.
	Class models.VisitorClass

	// Language is the visitor's current language tag.
	Language string

	// FallbackLanguage backs localized-text resolution.
	FallbackLanguage string

	// ViewportWidth drives device filtering. Zero or negative means the
	// viewport is unknown and is treated as desktop.
	ViewportWidth int

	// MobileBreakpoint is the width below which "mobile" steps are kept.
	MobileBreakpoint int

	// Bookends are the operator's welcome/done text overrides for Class.
	Bookends models.BookendOverrides

	// Translator resolves the bookend default texts.
	Translator i18n.Translator
}

// Normalize parses the raw JSON step list, substitutes the builtin list when
// the input is absent, empty or malformed, localizes every text field,
// filters by device, and wraps the result in the synthesized welcome/done
// bookends. Input order is preserved; downstream indices count only the steps
// returned here.
func Normalize(raw string, in Input) []models.NormalizedStep {
	logger := logging.Component("steps")

	defs, fromAuthor := parseRaw(raw)
	if !fromAuthor {
		builtin, err := Builtin(in.Class)
		if err != nil {
			logger.Error().Err(err).Str("class", string(in.Class)).Msg("builtin steps unavailable")
			builtin = nil
		}
		defs = builtin
	}

	breakpoint := in.MobileBreakpoint
	if breakpoint <= 0 {
		breakpoint = models.DefaultMobileBreakpoint
	}

	normalized := make([]models.NormalizedStep, 0, len(defs)+2)

	if welcome, ok := bookend(in, in.Bookends.WelcomeTitle, in.Bookends.WelcomeDescription, i18n.KeyWelcomeTitle, i18n.KeyWelcomeDescription); ok {
		normalized = append(normalized, welcome)
	}

	for i, def := range defs {
		if !deviceApplies(models.ParseDeviceScope(def.Device), in.ViewportWidth, breakpoint) {
			continue
		}

		title := def.Text.Resolve(in.Language, in.FallbackLanguage)
		description := def.AuxText.Resolve(in.Language, in.FallbackLanguage)
		if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
			logger.Debug().Int("step", i).Msg("dropping step with no resolvable text")
			continue
		}

		locator := strings.TrimSpace(def.Locator)
		normalized = append(normalized, models.NormalizedStep{
			Centered:    locator == "",
			Locator:     locator,
			Title:       title,
			Description: description,
			Placement:   models.ParseSide(def.Placement),
			Alignment:   models.ParseAlign(def.Alignment),
			Reveal:      def.Reveal && locator != "",
		})
	}

	if done, ok := bookend(in, in.Bookends.DoneTitle, in.Bookends.DoneDescription, i18n.KeyDoneTitle, i18n.KeyDoneDescription); ok {
		normalized = append(normalized, done)
	}

	return normalized
}

// RealCount reports how many steps are authored content rather than
// synthesized bookends.
func RealCount(normalized []models.NormalizedStep) int {
	count := 0
	for _, step := range normalized {
		if !step.Synthetic {
			count++
		}
	}
	return count
}

// parseRaw returns the authored step list and whether it should be used.
// Absent input, the empty-array sentinel, parse failures and valid-but-empty
// lists all mean "fall back to builtin".
func parseRaw(raw string) ([]models.StepDefinition, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == models.EmptyStepsSentinel {
		return nil, false
	}

	var defs []models.StepDefinition
	if err := json.Unmarshal([]byte(trimmed), &defs); err != nil {
		logger := logging.Component("steps")
		logger.Warn().Err(err).Msg("step list failed to parse; using builtin defaults")
		return nil, false
	}
	if len(defs) == 0 {
		return nil, false
	}
	return defs, true
}

func deviceApplies(scope models.DeviceScope, width, breakpoint int) bool {
	switch scope {
	case models.DeviceMobile:
		return width > 0 && width < breakpoint
	case models.DeviceDesktop:
		return width <= 0 || width >= breakpoint
	default:
		return true
	}
}

// bookend synthesizes a centered welcome/done step. The step is omitted when
// its resolved title and description are both blank, which is how authors
// suppress it.
func bookend(in Input, titleOverride, descriptionOverride *string, titleKey, descriptionKey string) (models.NormalizedStep, bool) {
	title := bookendText(in.Translator, titleOverride, titleKey)
	description := bookendText(in.Translator, descriptionOverride, descriptionKey)
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return models.NormalizedStep{}, false
	}

	return models.NormalizedStep{
		Centered:    true,
		Title:       title,
		Description: description,
		Placement:   models.SideBottom,
		Alignment:   models.AlignCenter,
		Synthetic:   true,
	}, true
}

func bookendText(t i18n.Translator, override *string, key string) string {
	if override != nil {
		return *override
	}
	return i18n.Lookup(t, key)
}
