package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

func TestResolveDefaults(t *testing.T) {
	settings := Resolve(viper.New())

	if !settings.Enabled {
		t.Fatal("enabled should default to true")
	}
	if settings.Delay != 1500*time.Millisecond {
		t.Fatalf("delay default: got %v", settings.Delay)
	}
	if settings.TrustLevelCeiling != models.DefaultTrustLevelCeiling {
		t.Fatalf("trust ceiling default: got %d", settings.TrustLevelCeiling)
	}
	if settings.MobileBreakpoint != 768 {
		t.Fatalf("breakpoint default: got %d", settings.MobileBreakpoint)
	}
	for _, class := range models.VisitorClasses() {
		if got := settings.RawSteps[class]; got != models.EmptyStepsSentinel {
			t.Fatalf("raw steps for %s: got %q", class, got)
		}
		if settings.CompletionKeys[class] == "" {
			t.Fatalf("missing completion key for %s", class)
		}
		bookends := settings.Bookends[class]
		if bookends.WelcomeTitle != nil || bookends.DoneTitle != nil {
			t.Fatalf("bookend overrides should default to unset for %s", class)
		}
	}
}

func TestResolveExplicitDisable(t *testing.T) {
	disabled := []interface{}{false, "false", "FALSE"}
	for _, value := range disabled {
		v := viper.New()
		v.Set("enabled", value)
		if Resolve(v).Enabled {
			t.Fatalf("explicit false must disable the tour, got enabled for %v", value)
		}
	}

	// Values GetBool would reject must not collapse to disabled.
	enabled := []interface{}{"yes", "on", "0", 1, true}
	for _, value := range enabled {
		v := viper.New()
		v.Set("enabled", value)
		if !Resolve(v).Enabled {
			t.Fatalf("non-false values must leave the tour enabled, got disabled for %v", value)
		}
	}
}

func TestResolveNonPositiveDelay(t *testing.T) {
	v := viper.New()
	v.Set("delay_ms", -200)

	if got := Resolve(v).Delay; got != 1500*time.Millisecond {
		t.Fatalf("non-positive delay should fall back, got %v", got)
	}
}

func TestResolveBookendOverrides(t *testing.T) {
	v := viper.New()
	v.Set("welcome_title", "Hi there")
	v.Set("welcome_title_authenticated", "Welcome back")
	v.Set("done_title", "")

	settings := Resolve(v)

	anon := settings.Bookends[models.VisitorAnonymous]
	if anon.WelcomeTitle == nil || *anon.WelcomeTitle != "Hi there" {
		t.Fatalf("anonymous welcome title: got %v", anon.WelcomeTitle)
	}
	auth := settings.Bookends[models.VisitorAuthenticated]
	if auth.WelcomeTitle == nil || *auth.WelcomeTitle != "Welcome back" {
		t.Fatalf("authenticated welcome title: got %v", auth.WelcomeTitle)
	}
	if anon.DoneTitle == nil || *anon.DoneTitle != "" {
		t.Fatal("explicitly blank done title must stay set and empty")
	}
	if anon.DoneDescription != nil {
		t.Fatal("untouched override should stay nil")
	}
}

func TestResolveMalformedStepJSONPassesThrough(t *testing.T) {
	v := viper.New()
	v.Set("steps_anonymous", "{not json")

	settings := Resolve(v)

	// Resolution only diagnoses; substitution happens in the normalizer.
	if got := settings.RawSteps[models.VisitorAnonymous]; got != "{not json" {
		t.Fatalf("raw steps should pass through, got %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")

	yaml := `enabled: true
delay_ms: 250
max_trust_level: 2
steps_authenticated: '[{"locator": ".badge", "text": "Badges!"}]'
overlay:
  padding: 16
  opacity: 0.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if settings.Delay != 250*time.Millisecond {
		t.Fatalf("delay: got %v", settings.Delay)
	}
	if settings.TrustLevelCeiling != 2 {
		t.Fatalf("trust ceiling: got %d", settings.TrustLevelCeiling)
	}
	if settings.Overlay.Padding != 16 {
		t.Fatalf("overlay padding: got %d", settings.Overlay.Padding)
	}
	if settings.Overlay.OverlayOpacity != 0.5 {
		t.Fatalf("overlay opacity: got %v", settings.Overlay.OverlayOpacity)
	}
	if settings.RawSteps[models.VisitorAnonymous] != models.EmptyStepsSentinel {
		t.Fatal("absent anonymous steps should resolve to the sentinel")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("explicitly named missing file should error")
	}
}
