package models

import (
	"encoding/json"
	"testing"
)

func TestLocalizedTextResolvePlain(t *testing.T) {
	text := PlainText("Welcome aboard")

	for _, lang := range []string{"en", "de", "pt_BR", ""} {
		if got := text.Resolve(lang, "en"); got != "Welcome aboard" {
			t.Fatalf("plain text under %q: got %q", lang, got)
		}
	}
}

func TestLocalizedTextResolveMap(t *testing.T) {
	text := TextByLanguage(map[string]string{
		"en": "Hello",
		"de": "Hallo",
		"fr": "Bonjour",
	})

	if got := text.Resolve("de", "en"); got != "Hallo" {
		t.Fatalf("requested language: got %q", got)
	}
	if got := text.Resolve("es", "en"); got != "Hello" {
		t.Fatalf("fallback language: got %q", got)
	}
}

func TestLocalizedTextResolveAnyNonEmpty(t *testing.T) {
	text := TextByLanguage(map[string]string{"fr": "Bonjour"})

	if got := text.Resolve("de", "en"); got != "Bonjour" {
		t.Fatalf("expected any non-empty entry, got %q", got)
	}

	blank := TextByLanguage(map[string]string{"fr": "  "})
	if got := blank.Resolve("de", "en"); got != "" {
		t.Fatalf("expected empty result for all-blank map, got %q", got)
	}
}

func TestLocalizedTextUnmarshalJSON(t *testing.T) {
	var plain LocalizedText
	if err := json.Unmarshal([]byte(`"Just text"`), &plain); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if got := plain.Resolve("de", "en"); got != "Just text" {
		t.Fatalf("plain form: got %q", got)
	}

	var byLang LocalizedText
	if err := json.Unmarshal([]byte(`{"en":"Hi","sv":"Hej"}`), &byLang); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if got := byLang.Resolve("sv", "en"); got != "Hej" {
		t.Fatalf("map form: got %q", got)
	}

	var bad LocalizedText
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Fatal("expected error for numeric localized text")
	}
}

func TestStepDefinitionUnmarshal(t *testing.T) {
	raw := `{
		"locator": ".topic-list",
		"text": {"en": "Topics live here"},
		"aux_text": "Click any row to read.",
		"placement": "TOP",
		"alignment": "start",
		"device": "desktop",
		"reveal": true
	}`

	var step StepDefinition
	if err := json.Unmarshal([]byte(raw), &step); err != nil {
		t.Fatalf("unmarshal step: %v", err)
	}

	if step.Locator != ".topic-list" {
		t.Fatalf("locator: got %q", step.Locator)
	}
	if got := step.Text.Resolve("en", "en"); got != "Topics live here" {
		t.Fatalf("text: got %q", got)
	}
	if ParseSide(step.Placement) != SideTop {
		t.Fatalf("placement: got %q", step.Placement)
	}
	if ParseDeviceScope(step.Device) != DeviceDesktop {
		t.Fatalf("device: got %q", step.Device)
	}
	if !step.Reveal {
		t.Fatal("reveal flag lost")
	}
}

func TestParseDefaults(t *testing.T) {
	if got := ParseSide("diagonal"); got != SideBottom {
		t.Fatalf("side default: got %q", got)
	}
	if got := ParseAlign(""); got != AlignCenter {
		t.Fatalf("align default: got %q", got)
	}
	if got := ParseDeviceScope("tablet"); got != DeviceAll {
		t.Fatalf("device default: got %q", got)
	}
}

func TestClassOf(t *testing.T) {
	if got := ClassOf(nil); got != VisitorAnonymous {
		t.Fatalf("nil visitor: got %q", got)
	}
	if got := ClassOf(&Visitor{Username: "eve", TrustLevel: 2}); got != VisitorAuthenticated {
		t.Fatalf("visitor: got %q", got)
	}
}
