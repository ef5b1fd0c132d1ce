package models

import "time"

// Default values applied by the configuration resolver.
const (
	DefaultDelay             = 1500 * time.Millisecond
	DefaultTrustLevelCeiling = 4
	DefaultMobileBreakpoint  = 768
	DefaultSettleWait        = 300 * time.Millisecond
	DefaultFallbackLanguage  = "en"

	// DefaultRevealControl is the selector for the collapsed-panel toggle
	// tried before resolving a reveal step's anchor.
	DefaultRevealControl = "#toggle-hamburger-menu,.hamburger-dropdown summary"

	CompletionKeyAnonymous     = "tour-done-anon"
	CompletionKeyAuthenticated = "tour-done-user"
)

// EmptyStepsSentinel is the raw step value meaning "use the builtin list".
const EmptyStepsSentinel = "[]"

// BookendOverrides carries operator-supplied text for the synthesized
// welcome/done steps. A nil field means "use the translated default"; a
// pointer to "" explicitly blanks the field, which is how authors suppress a
// bookend entirely.
type BookendOverrides struct {
	WelcomeTitle       *string
	WelcomeDescription *string
	DoneTitle          *string
	DoneDescription    *string
}

// OverlayOptions are pass-through cosmetics handed to the rendering
// collaborator unmodified.
type OverlayOptions struct {
	Padding        int
	CornerRadius   int
	OffsetX        int
	OffsetY        int
	OverlayColor   string
	OverlayOpacity float64
}

// DefaultOverlayOptions returns the documented cosmetic defaults.
func DefaultOverlayOptions() OverlayOptions {
	return OverlayOptions{
		Padding:        10,
		CornerRadius:   5,
		OffsetX:        0,
		OffsetY:        0,
		OverlayColor:   "#000000",
		OverlayOpacity: 0.75,
	}
}

// TourSettings is the fully resolved configuration, built once per startup
// and passed explicitly into every component. Read-only after construction.
type TourSettings struct {
	// Enabled gates the whole feature; only an explicit false disables it.
	Enabled bool

	// Delay is how long after a qualifying navigation the tour starts.
	Delay time.Duration

	// TrustLevelCeiling denies authenticated visitors above this rank.
	TrustLevelCeiling int

	// MobileBreakpoint is the viewport width below which "mobile" steps show.
	MobileBreakpoint int

	// RevealControl is the selector tried to open collapsed containers.
	RevealControl string

	// SettleWait is the single fixed pause after a reveal action.
	SettleWait time.Duration

	// FallbackLanguage backs localized-text resolution.
	FallbackLanguage string

	// RawSteps holds the operator's JSON step list per visitor class;
	// EmptyStepsSentinel means "use the builtin list".
	RawSteps map[VisitorClass]string

	// Bookends holds per-class welcome/done text overrides.
	Bookends map[VisitorClass]BookendOverrides

	// CompletionKeys names the persisted flag key per visitor class.
	CompletionKeys map[VisitorClass]string

	Overlay OverlayOptions
}
