// Package tour owns the run state machine: it converts normalized steps into
// render directives, skips steps whose anchors never resolve, and drives the
// overlay collaborator through next/previous/finish/abort transitions.
package tour

import (
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/dom"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// DirectiveKind tags the two renderable step shapes.
type DirectiveKind string

const (
	// DirectiveCentered is a modal step with no highlight anchor.
	DirectiveCentered DirectiveKind = "centered"

	// DirectiveAnchored highlights a resolved element.
	DirectiveAnchored DirectiveKind = "anchored"
)

// Directive is everything the rendering collaborator needs for one step. The
// centered-versus-anchored decision is made exactly once, here.
type Directive struct {
	Kind DirectiveKind

	// Element is the resolved anchor; nil for centered directives.
	Element dom.Element

	Title       string
	Description string
	Placement   models.Side
	Alignment   models.Align

	// Position is 1-based; Total counts the run's resolved steps.
	Position int
	Total    int

	// Progress is the localized position indicator, e.g. "2 of 5".
	Progress string

	// ShowPrevious is false on the first step.
	ShowPrevious bool

	// NextLabel reads as "finish" on the last step.
	NextLabel     string
	PreviousLabel string
}

// Callbacks are the navigation hooks the renderer invokes on user input. They
// are thin adapters into the sequencer's transitions; renderers must invoke
// them from their event loop, never synchronously from inside ShowStep.
type Callbacks struct {
	OnNext     func()
	OnPrevious func()
	OnDismiss  func()
}

// Renderer is the overlay collaborator, driven one step at a time so the
// engine controls per-step labels and reveal sequencing. Destroy is
// idempotent and safe to call before the first ShowStep.
type Renderer interface {
	ShowStep(directive Directive, opts models.OverlayOptions, callbacks Callbacks) error
	Destroy()
}
