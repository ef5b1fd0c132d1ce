package dom

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// Resolver finds step anchor elements. A locator may carry comma-separated
// alternative selectors; the first alternative with a match wins, in the
// order the author wrote them.
type Resolver struct {
	doc           Document
	revealControl string
	settle        time.Duration
	wait          func(time.Duration)
	logger        zerolog.Logger
}

// NewResolver builds a resolver over doc. revealControl is the selector for
// the collapsed-container toggle tried before resolving reveal steps; settle
// is the single fixed pause after activating it.
func NewResolver(doc Document, revealControl string, settle time.Duration) *Resolver {
	return &Resolver{
		doc:           doc,
		revealControl: revealControl,
		settle:        settle,
		wait:          time.Sleep,
		logger:        logging.Component("dom"),
	}
}

// SetWait replaces the settle-wait sleeper. Tests use this to avoid real
// delays.
func (r *Resolver) SetWait(wait func(time.Duration)) {
	if wait != nil {
		r.wait = wait
	}
}

// Resolve tries each alternative selector in author order and returns the
// first match. ok=false means no alternative matched.
func (r *Resolver) Resolve(locator string) (Element, bool) {
	for _, selector := range Alternatives(locator) {
		if el, ok := r.doc.Query(selector); ok {
			return el, true
		}
	}
	return nil, false
}

// ResolveStep resolves a normalized step's anchor, honoring its reveal
// precondition. Centered steps resolve to a nil element with ok=true. A
// missing reveal control degrades to direct resolution.
func (r *Resolver) ResolveStep(step models.NormalizedStep) (Element, bool) {
	if step.Centered {
		return nil, true
	}

	if step.Reveal {
		if control, ok := r.Resolve(r.revealControl); ok {
			control.Activate()
			if r.settle > 0 {
				r.wait(r.settle)
			}
		} else {
			r.logger.Debug().Str("control", r.revealControl).Msg("reveal control not found; resolving directly")
		}
	}

	el, ok := r.Resolve(step.Locator)
	if !ok {
		r.logger.Debug().Str("locator", step.Locator).Msg("no element matched step locator")
	}
	return el, ok
}

// Alternatives splits a locator into its trimmed alternative selectors.
func Alternatives(locator string) []string {
	parts := strings.Split(locator, ",")
	selectors := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			selectors = append(selectors, trimmed)
		}
	}
	return selectors
}
