package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
)

func enabledSettings(ceiling int) models.TourSettings {
	return models.TourSettings{Enabled: true, TrustLevelCeiling: ceiling}
}

func TestMayStartDisabled(t *testing.T) {
	g := New(storage.NewMemoryStore(), nil)

	settings := enabledSettings(4)
	settings.Enabled = false

	if g.MayStart(context.Background(), models.VisitorAnonymous, settings, 0) {
		t.Fatal("disabled settings must deny")
	}
}

func TestMayStartTrustCeiling(t *testing.T) {
	ctx := context.Background()
	g := New(storage.NewMemoryStore(), nil)
	settings := enabledSettings(2)

	if g.MayStart(ctx, models.VisitorAuthenticated, settings, 3) {
		t.Fatal("trust level 3 over ceiling 2 must deny")
	}
	if !g.MayStart(ctx, models.VisitorAuthenticated, settings, 2) {
		t.Fatal("trust level equal to the ceiling must allow")
	}
	if !g.MayStart(ctx, models.VisitorAnonymous, settings, 99) {
		t.Fatal("anonymous visitors are never trust-checked")
	}
}

func TestRecordCompletionIdempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	g := New(store, nil)
	settings := enabledSettings(4)

	g.RecordCompletion(ctx, models.VisitorAuthenticated)
	g.RecordCompletion(ctx, models.VisitorAuthenticated)

	if !g.Completed(ctx, models.VisitorAuthenticated) {
		t.Fatal("completion flag not set")
	}
	if g.MayStart(ctx, models.VisitorAuthenticated, settings, 0) {
		t.Fatal("completed class must be denied")
	}

	// Classes are independent.
	if !g.MayStart(ctx, models.VisitorAnonymous, settings, 0) {
		t.Fatal("anonymous class should be unaffected")
	}
}

func TestResetClearsFlag(t *testing.T) {
	ctx := context.Background()
	g := New(storage.NewMemoryStore(), nil)

	g.RecordCompletion(ctx, models.VisitorAnonymous)
	g.Reset(ctx, models.VisitorAnonymous)

	if g.Completed(ctx, models.VisitorAnonymous) {
		t.Fatal("reset did not clear the flag")
	}
}

// failingStore simulates unavailable persistence.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool) { return "", false }
func (failingStore) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}
func (failingStore) Remove(context.Context, string) error {
	return errors.New("storage unavailable")
}

func TestGateDegradesWithoutStorage(t *testing.T) {
	ctx := context.Background()
	settings := enabledSettings(4)

	g := New(failingStore{}, nil)
	if !g.MayStart(ctx, models.VisitorAnonymous, settings, 0) {
		t.Fatal("unreadable flags must count as not completed")
	}
	// Writes are silently dropped.
	g.RecordCompletion(ctx, models.VisitorAnonymous)
	g.Reset(ctx, models.VisitorAnonymous)

	nilGate := New(nil, nil)
	if !nilGate.MayStart(ctx, models.VisitorAnonymous, settings, 0) {
		t.Fatal("nil store must behave as empty")
	}
	nilGate.RecordCompletion(ctx, models.VisitorAnonymous)
}

func TestCustomKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	g := New(store, map[models.VisitorClass]string{
		models.VisitorAnonymous: "custom-anon-key",
	})

	g.RecordCompletion(ctx, models.VisitorAnonymous)

	if value, ok := store.Get(ctx, "custom-anon-key"); !ok || value != "true" {
		t.Fatalf("custom key not used: %q %v", value, ok)
	}
}
