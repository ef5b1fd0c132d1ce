// Package telemetry records tour run events. Finish and abort are equivalent
// for completion gating; this log is the only place they are told apart.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// Recorder accepts tour events. Implementations must tolerate being called
// from the engine's UI callback chain; recording failures never propagate
// into the tour itself.
type Recorder interface {
	Record(ctx context.Context, event *models.TourEvent) error
}

// Nop discards every event.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, *models.TourEvent) error { return nil }

// NewRunID returns a fresh identifier grouping one tour run's events.
func NewRunID() string {
	return uuid.New().String()
}

func record(ctx context.Context, rec Recorder, event *models.TourEvent) error {
	if rec == nil {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return rec.Record(ctx, event)
}

// LogRunStarted records the start of a tour run.
func LogRunStarted(ctx context.Context, rec Recorder, runID string, class models.VisitorClass) error {
	return record(ctx, rec, &models.TourEvent{
		RunID:        runID,
		Type:         models.TourEventRunStarted,
		VisitorClass: class,
		StepIndex:    -1,
	})
}

// LogRunFinished records a run reaching its final step.
func LogRunFinished(ctx context.Context, rec Recorder, runID string, class models.VisitorClass) error {
	return record(ctx, rec, &models.TourEvent{
		RunID:        runID,
		Type:         models.TourEventRunFinished,
		VisitorClass: class,
		StepIndex:    -1,
	})
}

// LogRunAborted records a run dismissed before its final step.
func LogRunAborted(ctx context.Context, rec Recorder, runID string, class models.VisitorClass, stepIndex int) error {
	return record(ctx, rec, &models.TourEvent{
		RunID:        runID,
		Type:         models.TourEventRunAborted,
		VisitorClass: class,
		StepIndex:    stepIndex,
	})
}

// LogStepShown records a step being rendered.
func LogStepShown(ctx context.Context, rec Recorder, runID string, class models.VisitorClass, stepIndex int, locator string) error {
	return record(ctx, rec, &models.TourEvent{
		RunID:        runID,
		Type:         models.TourEventStepShown,
		VisitorClass: class,
		StepIndex:    stepIndex,
		Locator:      locator,
	})
}

// LogStepSkipped records a step dropped because its anchor never resolved.
func LogStepSkipped(ctx context.Context, rec Recorder, runID string, class models.VisitorClass, stepIndex int, locator string) error {
	return record(ctx, rec, &models.TourEvent{
		RunID:        runID,
		Type:         models.TourEventStepSkipped,
		VisitorClass: class,
		StepIndex:    stepIndex,
		Locator:      locator,
	})
}
