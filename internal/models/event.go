package models

import "time"

// TourEventType categorizes tour telemetry events.
type TourEventType string

const (
	// Run lifecycle events
	TourEventRunStarted  TourEventType = "run.started"
	TourEventRunFinished TourEventType = "run.finished"
	TourEventRunAborted  TourEventType = "run.aborted"

	// Step events
	TourEventStepShown   TourEventType = "step.shown"
	TourEventStepSkipped TourEventType = "step.skipped"
)

// TourEvent is one append-only telemetry entry. Finished and aborted runs are
// equivalent for completion gating; only this log tells them apart.
type TourEvent struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// RunID groups every event of one tour run.
	RunID string `json:"run_id"`

	// Type categorizes the event.
	Type TourEventType `json:"type"`

	// VisitorClass is the class the run was shown to.
	VisitorClass VisitorClass `json:"visitor_class"`

	// StepIndex is the 0-based step position for step events, -1 otherwise.
	StepIndex int `json:"step_index"`

	// Locator is the step's anchor selector for step events, empty otherwise.
	Locator string `json:"locator,omitempty"`

	// CreatedAt is when the event was recorded.
	CreatedAt time.Time `json:"created_at"`
}
