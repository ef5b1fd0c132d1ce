package tui

import (
	"strings"
	"testing"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/tour"
)

func TestRendererHoldsOneStep(t *testing.T) {
	r := NewRenderer()

	if r.snapshot() != nil {
		t.Fatal("fresh renderer should be empty")
	}

	first := tour.Directive{Title: "One", Progress: "1 of 2"}
	if err := r.ShowStep(first, models.DefaultOverlayOptions(), tour.Callbacks{}); err != nil {
		t.Fatalf("ShowStep: %v", err)
	}

	second := tour.Directive{Title: "Two", Progress: "2 of 2"}
	if err := r.ShowStep(second, models.DefaultOverlayOptions(), tour.Callbacks{}); err != nil {
		t.Fatalf("ShowStep: %v", err)
	}
	if got := r.snapshot().directive.Title; got != "Two" {
		t.Fatalf("latest step should win, got %q", got)
	}

	r.Destroy()
	r.Destroy() // idempotent
	if r.snapshot() != nil {
		t.Fatal("destroyed renderer should be empty")
	}
}

func TestViewRendersDirective(t *testing.T) {
	r := NewRenderer()
	_ = r.ShowStep(tour.Directive{
		Kind:          tour.DirectiveCentered,
		Title:         "Welcome!",
		Description:   "A quick look around.",
		Progress:      "1 of 4",
		NextLabel:     "Next",
		PreviousLabel: "Previous",
	}, models.DefaultOverlayOptions(), tour.Callbacks{})

	m := newModel(r, func() tour.Status { return tour.StatusRunning })
	view := m.View()

	for _, want := range []string{"Welcome!", "A quick look around.", "1 of 4", "[n] Next", "[q] dismiss"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "[p]") {
		t.Fatal("first step must hide the previous button")
	}
}

func TestViewEmptyAfterDestroy(t *testing.T) {
	r := NewRenderer()
	m := newModel(r, func() tour.Status { return tour.StatusFinished })

	if got := m.View(); got != "" {
		t.Fatalf("expected empty view, got %q", got)
	}
}
