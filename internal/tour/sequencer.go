package tour

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/dom"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/i18n"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/steps"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/telemetry"
)

// Sequencer errors.
var (
	ErrRendererRequired = errors.New("renderer is required")
	ErrResolverRequired = errors.New("resolver is required")
	ErrAlreadyStarted   = errors.New("tour already started")
	ErrNoSteps          = errors.New("step sequence is empty")
	ErrNoRealContent    = errors.New("no real steps to show")
)

// Status is the sequencer's lifecycle state.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
	StatusAborted  Status = "aborted"
)

// Options configure a Sequencer.
type Options struct {
	Renderer   Renderer
	Resolver   *dom.Resolver
	Translator i18n.Translator
	Overlay    models.OverlayOptions

	// Class tags telemetry events with the visitor class of the run.
	Class models.VisitorClass

	// Recorder receives run telemetry; nil discards it.
	Recorder telemetry.Recorder

	// OnTerminal fires once when the run reaches Finished or Aborted. The
	// completion gate's write-back hooks in here.
	OnTerminal func(Status)
}

// Sequencer owns one tour run. All state mutation is confined behind one
// mutex; transition methods are safe to call from any goroutine.
type Sequencer struct {
	mu         sync.Mutex
	status     Status
	steps      []models.NormalizedStep
	index      int
	runID      string
	ctx        context.Context
	renderer   Renderer
	resolver   *dom.Resolver
	translator i18n.Translator
	overlay    models.OverlayOptions
	class      models.VisitorClass
	recorder   telemetry.Recorder
	onTerminal func(Status)
	logger     zerolog.Logger
}

// New creates an idle sequencer.
func New(opts Options) (*Sequencer, error) {
	if opts.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if opts.Resolver == nil {
		return nil, ErrResolverRequired
	}
	return &Sequencer{
		status:     StatusIdle,
		renderer:   opts.Renderer,
		resolver:   opts.Resolver,
		translator: opts.Translator,
		overlay:    opts.Overlay,
		class:      opts.Class,
		recorder:   opts.Recorder,
		onTerminal: opts.OnTerminal,
		logger:     logging.Component("tour"),
	}, nil
}

// Start begins a run over the normalized steps. Anchored steps without a
// reveal precondition are resolved up front; the ones with no matching
// element are dropped so progress counts reflect only showable steps. The run
// is skipped entirely (the renderer is never touched) when no authored step
// survives.
func (s *Sequencer) Start(ctx context.Context, sequence []models.NormalizedStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusIdle {
		return ErrAlreadyStarted
	}
	if len(sequence) == 0 {
		return ErrNoSteps
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.runID = telemetry.NewRunID()

	survivors := make([]models.NormalizedStep, 0, len(sequence))
	for i, step := range sequence {
		// Reveal steps are kept optimistically: probing them here would
		// open their container before the tour even starts.
		if !step.Centered && !step.Reveal {
			if _, ok := s.resolver.Resolve(step.Locator); !ok {
				s.logger.Debug().Int("step", i).Str("locator", step.Locator).Msg("dropping unresolvable step")
				_ = telemetry.LogStepSkipped(ctx, s.recorder, s.runID, s.class, i, step.Locator)
				continue
			}
		}
		survivors = append(survivors, step)
	}

	if steps.RealCount(survivors) < 1 {
		return ErrNoRealContent
	}

	s.steps = survivors
	s.index = 0
	s.status = StatusRunning

	_ = telemetry.LogRunStarted(ctx, s.recorder, s.runID, s.class)

	// The first step is normally the centered welcome bookend, but a
	// suppressed bookend can leave a reveal step in front.
	if !s.renderLocked(s.index) {
		s.advanceLocked()
	}
	return nil
}

// Advance moves to the next resolvable step, or finishes the run when none
// remains.
func (s *Sequencer) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return
	}
	s.advanceLocked()
}

func (s *Sequencer) advanceLocked() {
	for next := s.index + 1; next < len(s.steps); next++ {
		if s.renderLocked(next) {
			s.index = next
			return
		}
	}
	s.terminateLocked(StatusFinished)
}

// Retreat moves to the previous resolvable step; it is a no-op on the first
// step or when nothing behind the cursor resolves.
func (s *Sequencer) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return
	}
	for prev := s.index - 1; prev >= 0; prev-- {
		if s.renderLocked(prev) {
			s.index = prev
			return
		}
	}
}

// Abort ends the run early; the dismiss signal from the overlay lands here.
// Equivalent to finishing for completion purposes.
func (s *Sequencer) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return
	}
	s.terminateLocked(StatusAborted)
}

// Status returns the current lifecycle state.
func (s *Sequencer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentIndex returns the cursor into the run's resolved step list.
func (s *Sequencer) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// StepCount returns the number of steps surviving the start-time filter.
func (s *Sequencer) StepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// renderLocked resolves and renders the step at index. It reports false when
// the anchor cannot be resolved, leaving the cursor untouched. Unresolvable
// steps found mid-run are logged once as skipped.
func (s *Sequencer) renderLocked(index int) bool {
	step := s.steps[index]

	element, ok := s.resolver.ResolveStep(step)
	if !ok {
		_ = telemetry.LogStepSkipped(s.ctx, s.recorder, s.runID, s.class, index, step.Locator)
		return false
	}

	directive := s.directive(index, step, element)

	// Tear down the previous overlay first so highlight boxes never overlap.
	s.renderer.Destroy()
	callbacks := Callbacks{
		OnNext:     s.Advance,
		OnPrevious: s.Retreat,
		OnDismiss:  s.Abort,
	}
	if err := s.renderer.ShowStep(directive, s.overlay, callbacks); err != nil {
		// Renderer unavailable is fatal to the run: no degraded UI, no
		// completion write, no retry.
		s.logger.Error().Err(err).Int("step", index).Msg("overlay renderer failed; abandoning run")
		s.renderer.Destroy()
		s.status = StatusAborted
		return true
	}

	_ = telemetry.LogStepShown(s.ctx, s.recorder, s.runID, s.class, index, step.Locator)
	return true
}

func (s *Sequencer) directive(index int, step models.NormalizedStep, element dom.Element) Directive {
	kind := DirectiveAnchored
	if step.Centered {
		kind = DirectiveCentered
	}

	nextLabel := i18n.Lookup(s.translator, i18n.KeyButtonNext)
	if index == len(s.steps)-1 {
		nextLabel = i18n.Lookup(s.translator, i18n.KeyButtonFinish)
	}

	format := i18n.Lookup(s.translator, i18n.KeyProgress)
	if format == "" {
		format = "%d of %d"
	}

	return Directive{
		Kind:          kind,
		Element:       element,
		Title:         step.Title,
		Description:   step.Description,
		Placement:     step.Placement,
		Alignment:     step.Alignment,
		Position:      index + 1,
		Total:         len(s.steps),
		Progress:      fmt.Sprintf(format, index+1, len(s.steps)),
		ShowPrevious:  index > 0,
		NextLabel:     nextLabel,
		PreviousLabel: i18n.Lookup(s.translator, i18n.KeyButtonPrevious),
	}
}

func (s *Sequencer) terminateLocked(status Status) {
	s.renderer.Destroy()
	s.status = status

	switch status {
	case StatusFinished:
		_ = telemetry.LogRunFinished(s.ctx, s.recorder, s.runID, s.class)
	case StatusAborted:
		_ = telemetry.LogRunAborted(s.ctx, s.recorder, s.runID, s.class, s.index)
	}

	s.logger.Info().Str("status", string(status)).Int("steps", len(s.steps)).Msg("tour run ended")

	if s.onTerminal != nil {
		s.onTerminal(status)
	}
}
