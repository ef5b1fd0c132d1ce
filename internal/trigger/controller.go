// Package trigger listens to the host's navigation events and decides when a
// tour run should be scheduled: landing routes only, at most once per page
// session, after the configured delay.
package trigger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/gate"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// landingRoutes is the fixed allow-list of paths that may trigger the tour.
var landingRoutes = map[string]struct{}{
	"/":           {},
	"/latest":     {},
	"/top":        {},
	"/categories": {},
	"/new":        {},
	"/unread":     {},
}

// IsLandingRoute reports whether a path is on the landing allow-list. One
// trailing slash is tolerated; queries and fragments are ignored. An empty
// path is not a route.
func IsLandingRoute(path string) bool {
	if path == "" {
		return false
	}
	trimmed := path
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	if trimmed == "" {
		trimmed = "/"
	}
	_, ok := landingRoutes[trimmed]
	return ok
}

// VisitorFunc returns the current visitor; nil means anonymous.
type VisitorFunc func() *models.Visitor

// StartFunc launches a tour run for the visitor class once the delay elapsed.
type StartFunc func(class models.VisitorClass)

// Controller schedules at most one tour run per page session.
type Controller struct {
	settings models.TourSettings
	gate     *gate.Gate
	visitor  VisitorFunc
	start    StartFunc
	logger   zerolog.Logger

	mu        sync.Mutex
	triggered bool
	stopped   bool
	timer     *time.Timer
}

// New creates a controller. The caller wires HandleNavigation into the host's
// route-change event stream.
func New(settings models.TourSettings, g *gate.Gate, visitor VisitorFunc, start StartFunc) *Controller {
	return &Controller{
		settings: settings,
		gate:     g,
		visitor:  visitor,
		start:    start,
		logger:   logging.Component("trigger"),
	}
}

// HandleNavigation processes one route change. The triggered flag is set
// before the delay elapses so a second navigation cannot double-schedule.
func (c *Controller) HandleNavigation(ctx context.Context, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.triggered || c.stopped {
		return
	}
	if !IsLandingRoute(path) {
		c.logger.Debug().Str("path", path).Msg("not a landing route")
		return
	}

	var current *models.Visitor
	if c.visitor != nil {
		current = c.visitor()
	}
	class := models.ClassOf(current)
	trustLevel := 0
	if current != nil {
		trustLevel = current.TrustLevel
	}

	if c.gate != nil && !c.gate.MayStart(ctx, class, c.settings, trustLevel) {
		return
	}

	c.triggered = true
	c.logger.Info().
		Str("path", path).
		Str("class", string(class)).
		Dur("delay", c.settings.Delay).
		Msg("tour scheduled")

	c.timer = time.AfterFunc(c.settings.Delay, func() {
		c.mu.Lock()
		stopped := c.stopped
		c.mu.Unlock()
		if stopped || c.start == nil {
			return
		}
		c.start(class)
	})
}

// Triggered reports whether a run has been scheduled this session.
func (c *Controller) Triggered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.triggered
}

// Stop cancels any pending scheduled start; the pending callback becomes a
// no-op. Page teardown and tour aborts call this.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
