package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "tour.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(db)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo
}

func TestRepositoryRecordAndListByRun(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	runID := NewRunID()

	if err := LogRunStarted(ctx, repo, runID, models.VisitorAnonymous); err != nil {
		t.Fatalf("LogRunStarted: %v", err)
	}
	if err := LogStepShown(ctx, repo, runID, models.VisitorAnonymous, 0, ""); err != nil {
		t.Fatalf("LogStepShown: %v", err)
	}
	if err := LogStepSkipped(ctx, repo, runID, models.VisitorAnonymous, 1, ".missing"); err != nil {
		t.Fatalf("LogStepSkipped: %v", err)
	}
	if err := LogRunAborted(ctx, repo, runID, models.VisitorAnonymous, 1); err != nil {
		t.Fatalf("LogRunAborted: %v", err)
	}

	events, err := repo.ListByRun(ctx, runID)
	if err != nil {
		t.Fatalf("ListByRun: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].Type != models.TourEventRunStarted {
		t.Fatalf("first event: got %s", events[0].Type)
	}
	if events[2].Type != models.TourEventStepSkipped || events[2].Locator != ".missing" {
		t.Fatalf("skip event: %+v", events[2])
	}
	if events[3].Type != models.TourEventRunAborted || events[3].StepIndex != 1 {
		t.Fatalf("abort event: %+v", events[3])
	}
}

func TestRepositoryRejectsIncompleteEvents(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Record(context.Background(), &models.TourEvent{Type: models.TourEventRunStarted})
	if err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestNopRecorder(t *testing.T) {
	if err := LogRunFinished(context.Background(), Nop{}, NewRunID(), models.VisitorAuthenticated); err != nil {
		t.Fatalf("nop recorder: %v", err)
	}
	if err := LogRunFinished(context.Background(), nil, NewRunID(), models.VisitorAuthenticated); err != nil {
		t.Fatalf("nil recorder: %v", err)
	}
}
