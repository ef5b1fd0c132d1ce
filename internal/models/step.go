// Package models defines the shared data types for the onboarding tour engine.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Side is the popover placement relative to the highlighted element.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// ParseSide normalizes a raw placement value, defaulting to bottom.
func ParseSide(raw string) Side {
	switch Side(strings.ToLower(strings.TrimSpace(raw))) {
	case SideTop:
		return SideTop
	case SideLeft:
		return SideLeft
	case SideRight:
		return SideRight
	default:
		return SideBottom
	}
}

// Align is the popover alignment along the placement side.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// ParseAlign normalizes a raw alignment value, defaulting to center.
func ParseAlign(raw string) Align {
	switch Align(strings.ToLower(strings.TrimSpace(raw))) {
	case AlignStart:
		return AlignStart
	case AlignEnd:
		return AlignEnd
	default:
		return AlignCenter
	}
}

// DeviceScope restricts a step to a viewport class.
type DeviceScope string

const (
	DeviceAll     DeviceScope = "all"
	DeviceMobile  DeviceScope = "mobile"
	DeviceDesktop DeviceScope = "desktop"
)

// ParseDeviceScope normalizes a raw device value, defaulting to all.
func ParseDeviceScope(raw string) DeviceScope {
	switch DeviceScope(strings.ToLower(strings.TrimSpace(raw))) {
	case DeviceMobile:
		return DeviceMobile
	case DeviceDesktop:
		return DeviceDesktop
	default:
		return DeviceAll
	}
}

// LocalizedText is an author-facing text value: either a plain string applied
// to every language, or a map from language tag to string.
type LocalizedText struct {
	plain  string
	byLang map[string]string
}

// PlainText builds a LocalizedText from a single string.
func PlainText(s string) LocalizedText {
	return LocalizedText{plain: s}
}

// TextByLanguage builds a LocalizedText from per-language entries.
func TextByLanguage(entries map[string]string) LocalizedText {
	copied := make(map[string]string, len(entries))
	for lang, text := range entries {
		copied[lang] = text
	}
	return LocalizedText{byLang: copied}
}

// IsZero reports whether no text was provided at all.
func (t LocalizedText) IsZero() bool {
	return t.plain == "" && len(t.byLang) == 0
}

// Resolve picks the text for the requested language. A plain string wins
// outright; a map is tried for the requested language, then the fallback
// language, then any non-empty entry. Missing everything yields "".
func (t LocalizedText) Resolve(language, fallback string) string {
	if t.plain != "" {
		return t.plain
	}
	if len(t.byLang) == 0 {
		return ""
	}
	if text := strings.TrimSpace(t.byLang[language]); text != "" {
		return text
	}
	if text := strings.TrimSpace(t.byLang[fallback]); text != "" {
		return text
	}
	for _, text := range t.byLang {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// UnmarshalJSON accepts either a JSON string or an object of language → text.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = LocalizedText{plain: plain}
		return nil
	}
	var byLang map[string]string
	if err := json.Unmarshal(data, &byLang); err != nil {
		return fmt.Errorf("localized text must be a string or a language map: %w", err)
	}
	*t = LocalizedText{byLang: byLang}
	return nil
}

// MarshalJSON emits the compact author-facing form.
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if len(t.byLang) > 0 {
		return json.Marshal(t.byLang)
	}
	return json.Marshal(t.plain)
}

// UnmarshalYAML mirrors UnmarshalJSON for the embedded builtin step lists.
func (t *LocalizedText) UnmarshalYAML(unmarshal func(any) error) error {
	var plain string
	if err := unmarshal(&plain); err == nil {
		*t = LocalizedText{plain: plain}
		return nil
	}
	var byLang map[string]string
	if err := unmarshal(&byLang); err != nil {
		return fmt.Errorf("localized text must be a string or a language map: %w", err)
	}
	*t = LocalizedText{byLang: byLang}
	return nil
}

// StepDefinition is one authored tour step, before normalization. An empty
// locator makes the step a centered modal with no highlight anchor.
type StepDefinition struct {
	Locator   string        `json:"locator" yaml:"locator"`
	Text      LocalizedText `json:"text" yaml:"text"`
	AuxText   LocalizedText `json:"aux_text" yaml:"aux_text"`
	Placement string        `json:"placement" yaml:"placement"`
	Alignment string        `json:"alignment" yaml:"alignment"`
	Device    string        `json:"device" yaml:"device"`
	Reveal    bool          `json:"reveal" yaml:"reveal"`
}

// NormalizedStep is a fully localized, device-filtered step ready for the
// sequencer. Sequence position is the slice index.
type NormalizedStep struct {
	// Centered marks a modal step with no anchor element.
	Centered bool

	// Locator holds the anchor selector alternatives; empty when Centered.
	Locator string

	// Title and Description are resolved for the visitor's language.
	Title       string
	Description string

	Placement Side
	Alignment Align

	// Reveal requires opening a collapsed container before resolving Locator.
	Reveal bool

	// Synthetic marks the welcome/done bookend steps the engine adds itself.
	Synthetic bool
}
