package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/gate"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
)

type startRecorder struct {
	mu      sync.Mutex
	classes []models.VisitorClass
	ch      chan models.VisitorClass
}

func newStartRecorder() *startRecorder {
	return &startRecorder{ch: make(chan models.VisitorClass, 4)}
}

func (r *startRecorder) start(class models.VisitorClass) {
	r.mu.Lock()
	r.classes = append(r.classes, class)
	r.mu.Unlock()
	r.ch <- class
}

func (r *startRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.classes)
}

func (r *startRecorder) waitForStart(t *testing.T) models.VisitorClass {
	t.Helper()
	select {
	case class := <-r.ch:
		return class
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled start never fired")
		return ""
	}
}

func testSettings(delay time.Duration) models.TourSettings {
	return models.TourSettings{
		Enabled:           true,
		Delay:             delay,
		TrustLevelCeiling: models.DefaultTrustLevelCeiling,
	}
}

func TestIsLandingRoute(t *testing.T) {
	allowed := []string{"/", "/latest", "/latest/", "/top", "/categories", "/new", "/unread", "/latest?order=activity", "/top#weekly"}
	for _, path := range allowed {
		require.True(t, IsLandingRoute(path), "expected %q to be a landing route", path)
	}

	denied := []string{"/search", "/t/some-topic/42", "/latest/extra", "/u/alice", "", "/tops"}
	for _, path := range denied {
		require.False(t, IsLandingRoute(path), "expected %q to be denied", path)
	}
}

func TestNavigationSchedulesDelayedStart(t *testing.T) {
	recorder := newStartRecorder()
	g := gate.New(storage.NewMemoryStore(), nil)
	c := New(testSettings(10*time.Millisecond), g, func() *models.Visitor { return nil }, recorder.start)

	c.HandleNavigation(context.Background(), "/latest")

	require.True(t, c.Triggered(), "triggered flag must be set before the delay elapses")
	require.Equal(t, models.VisitorAnonymous, recorder.waitForStart(t))
}

func TestNonLandingRouteIgnored(t *testing.T) {
	recorder := newStartRecorder()
	g := gate.New(storage.NewMemoryStore(), nil)
	c := New(testSettings(time.Millisecond), g, nil, recorder.start)

	c.HandleNavigation(context.Background(), "/search")
	require.False(t, c.Triggered())

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, recorder.count())
}

func TestAtMostOncePerSession(t *testing.T) {
	recorder := newStartRecorder()
	g := gate.New(storage.NewMemoryStore(), nil)
	c := New(testSettings(5*time.Millisecond), g, nil, recorder.start)

	ctx := context.Background()
	c.HandleNavigation(ctx, "/latest")
	c.HandleNavigation(ctx, "/top")
	c.HandleNavigation(ctx, "/")

	recorder.waitForStart(t)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 1, recorder.count(), "only one run per session")
}

func TestGateDeniesScheduling(t *testing.T) {
	recorder := newStartRecorder()
	store := storage.NewMemoryStore()
	g := gate.New(store, nil)
	g.RecordCompletion(context.Background(), models.VisitorAuthenticated)

	visitor := func() *models.Visitor { return &models.Visitor{Username: "eve", TrustLevel: 1} }
	c := New(testSettings(time.Millisecond), g, visitor, recorder.start)

	c.HandleNavigation(context.Background(), "/latest")
	require.False(t, c.Triggered(), "completed visitors are not rescheduled")

	time.Sleep(10 * time.Millisecond)
	require.Zero(t, recorder.count())
}

func TestStopCancelsPendingStart(t *testing.T) {
	recorder := newStartRecorder()
	g := gate.New(storage.NewMemoryStore(), nil)
	c := New(testSettings(30*time.Millisecond), g, nil, recorder.start)

	c.HandleNavigation(context.Background(), "/latest")
	require.True(t, c.Triggered())

	c.Stop()
	time.Sleep(60 * time.Millisecond)
	require.Zero(t, recorder.count(), "pending callback must become a no-op")

	// Navigation after stop is ignored too.
	c.HandleNavigation(context.Background(), "/top")
	require.Equal(t, 0, recorder.count())
}

func TestVisitorClassPassedToStart(t *testing.T) {
	recorder := newStartRecorder()
	g := gate.New(storage.NewMemoryStore(), nil)
	visitor := func() *models.Visitor { return &models.Visitor{Username: "eve", TrustLevel: 2} }
	c := New(testSettings(time.Millisecond), g, visitor, recorder.start)

	c.HandleNavigation(context.Background(), "/categories")
	require.Equal(t, models.VisitorAuthenticated, recorder.waitForStart(t))
}
