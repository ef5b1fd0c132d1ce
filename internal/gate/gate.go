// Package gate decides whether a tour run may start for the current visitor
// and records completion when one ends. Storage failures never block the
// decision: unreadable flags count as "not completed" and failed writes are
// logged and dropped.
package gate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
)

// completedValue is what a set completion flag holds.
const completedValue = "true"

// Gate wraps the persisted completion flags.
type Gate struct {
	store  storage.Store
	keys   map[models.VisitorClass]string
	logger zerolog.Logger
}

// New creates a gate over the given store. keys maps each visitor class to
// its flag key; missing entries fall back to the builtin key names.
func New(store storage.Store, keys map[models.VisitorClass]string) *Gate {
	resolved := map[models.VisitorClass]string{
		models.VisitorAnonymous:     models.CompletionKeyAnonymous,
		models.VisitorAuthenticated: models.CompletionKeyAuthenticated,
	}
	for class, key := range keys {
		if key != "" {
			resolved[class] = key
		}
	}
	return &Gate{
		store:  store,
		keys:   resolved,
		logger: logging.Component("gate"),
	}
}

// MayStart reports whether the sequencer should run for this visitor. Checks
// short-circuit in a fixed order for predictable diagnostics: enabled flag,
// completion flag, then the trust ceiling for authenticated visitors only.
func (g *Gate) MayStart(ctx context.Context, class models.VisitorClass, settings models.TourSettings, trustLevel int) bool {
	if !settings.Enabled {
		g.logger.Debug().Msg("tour disabled by settings")
		return false
	}
	if g.Completed(ctx, class) {
		g.logger.Debug().Str("class", string(class)).Msg("tour already completed")
		return false
	}
	if class == models.VisitorAuthenticated && trustLevel > settings.TrustLevelCeiling {
		g.logger.Debug().
			Int("trust_level", trustLevel).
			Int("ceiling", settings.TrustLevelCeiling).
			Msg("visitor above trust ceiling")
		return false
	}
	return true
}

// Completed reports whether the class's completion flag is set.
func (g *Gate) Completed(ctx context.Context, class models.VisitorClass) bool {
	if g.store == nil {
		return false
	}
	value, ok := g.store.Get(ctx, g.keys[class])
	return ok && value == completedValue
}

// RecordCompletion sets the class's completion flag. Idempotent; write
// failures are logged and swallowed.
func (g *Gate) RecordCompletion(ctx context.Context, class models.VisitorClass) {
	if g.store == nil {
		return
	}
	if err := g.store.Set(ctx, g.keys[class], completedValue); err != nil {
		g.logger.Warn().Err(err).Str("class", string(class)).Msg("could not persist completion flag")
	}
}

// Reset clears the class's completion flag so the tour shows again.
func (g *Gate) Reset(ctx context.Context, class models.VisitorClass) {
	if g.store == nil {
		return
	}
	if err := g.store.Remove(ctx, g.keys[class]); err != nil {
		g.logger.Warn().Err(err).Str("class", string(class)).Msg("could not clear completion flag")
	}
}
