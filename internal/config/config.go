// Package config loads and resolves tour settings. Every field has a default
// and resolution never fails: malformed input degrades to defaults with a
// logged diagnostic.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// Load reads settings from an optional YAML file plus TOUR_* environment
// variables and resolves them. A missing file is not an error; the defaults
// apply.
func Load(path string) (models.TourSettings, error) {
	v := viper.New()
	v.SetEnvPrefix("TOUR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return models.TourSettings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tour")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return models.TourSettings{}, fmt.Errorf("read settings: %w", err)
			}
		}
	}

	return Resolve(v), nil
}

// Resolve merges the raw settings with builtin defaults into an immutable
// TourSettings. Resolution is total: bad values degrade silently, except that
// malformed step JSON is logged here so operators get one diagnostic.
func Resolve(v *viper.Viper) models.TourSettings {
	logger := logging.Component("config")

	settings := models.TourSettings{
		Enabled:           true,
		Delay:             models.DefaultDelay,
		TrustLevelCeiling: models.DefaultTrustLevelCeiling,
		MobileBreakpoint:  models.DefaultMobileBreakpoint,
		RevealControl:     models.DefaultRevealControl,
		SettleWait:        models.DefaultSettleWait,
		FallbackLanguage:  models.DefaultFallbackLanguage,
		RawSteps:          map[models.VisitorClass]string{},
		Bookends:          map[models.VisitorClass]models.BookendOverrides{},
		CompletionKeys: map[models.VisitorClass]string{
			models.VisitorAnonymous:     models.CompletionKeyAnonymous,
			models.VisitorAuthenticated: models.CompletionKeyAuthenticated,
		},
		Overlay: models.DefaultOverlayOptions(),
	}

	// Opt-out semantics: only a literal false disables the tour. Unparseable
	// values must not collapse to disabled.
	if v.IsSet("enabled") {
		raw := strings.TrimSpace(fmt.Sprint(v.Get("enabled")))
		if strings.EqualFold(raw, "false") {
			settings.Enabled = false
		}
	}

	if delay := v.GetInt("delay_ms"); delay > 0 {
		settings.Delay = time.Duration(delay) * time.Millisecond
	}
	if v.IsSet("max_trust_level") {
		settings.TrustLevelCeiling = v.GetInt("max_trust_level")
	}
	if breakpoint := v.GetInt("mobile_breakpoint"); breakpoint > 0 {
		settings.MobileBreakpoint = breakpoint
	}
	if control := strings.TrimSpace(v.GetString("reveal_control")); control != "" {
		settings.RevealControl = control
	}
	if settle := v.GetInt("settle_wait_ms"); settle > 0 {
		settings.SettleWait = time.Duration(settle) * time.Millisecond
	}
	if lang := strings.TrimSpace(v.GetString("fallback_language")); lang != "" {
		settings.FallbackLanguage = lang
	}

	stepKeys := map[models.VisitorClass]string{
		models.VisitorAnonymous:     "steps_anonymous",
		models.VisitorAuthenticated: "steps_authenticated",
	}
	for class, key := range stepKeys {
		raw := strings.TrimSpace(v.GetString(key))
		if raw == "" {
			raw = models.EmptyStepsSentinel
		} else if !json.Valid([]byte(raw)) {
			logger.Warn().Str("setting", key).Msg("step list is not valid JSON; builtin defaults will be used")
		}
		settings.RawSteps[class] = raw
	}

	for _, class := range models.VisitorClasses() {
		settings.Bookends[class] = models.BookendOverrides{
			WelcomeTitle:       override(v, "welcome_title", class),
			WelcomeDescription: override(v, "welcome_description", class),
			DoneTitle:          override(v, "done_title", class),
			DoneDescription:    override(v, "done_description", class),
		}
	}

	resolveOverlay(v, &settings.Overlay)

	return settings
}

// override looks up a per-class bookend text override, falling back to the
// shared key. nil means "not set"; an explicitly empty value is preserved so
// authors can blank a bookend out.
func override(v *viper.Viper, key string, class models.VisitorClass) *string {
	for _, candidate := range []string{key + "_" + string(class), key} {
		if v.IsSet(candidate) {
			text := v.GetString(candidate)
			return &text
		}
	}
	return nil
}

func resolveOverlay(v *viper.Viper, opts *models.OverlayOptions) {
	if v.IsSet("overlay.padding") {
		opts.Padding = v.GetInt("overlay.padding")
	}
	if v.IsSet("overlay.corner_radius") {
		opts.CornerRadius = v.GetInt("overlay.corner_radius")
	}
	if v.IsSet("overlay.offset_x") {
		opts.OffsetX = v.GetInt("overlay.offset_x")
	}
	if v.IsSet("overlay.offset_y") {
		opts.OffsetY = v.GetInt("overlay.offset_y")
	}
	if color := strings.TrimSpace(v.GetString("overlay.color")); color != "" {
		opts.OverlayColor = color
	}
	if v.IsSet("overlay.opacity") {
		if opacity := v.GetFloat64("overlay.opacity"); opacity >= 0 && opacity <= 1 {
			opts.OverlayOpacity = opacity
		}
	}
}
