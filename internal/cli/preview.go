// Package cli interactive tour preview command.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/dom"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/gate"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/i18n"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/steps"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/telemetry"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/tour"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/trigger"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/tui"
)

var (
	previewSnapshot   string
	previewRoute      string
	previewTrustLevel int
	previewUsername   string
	previewLanguage   string
	previewImmediate  bool
	previewNoEvents   bool
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewSnapshot, "snapshot", "", "page snapshot YAML (default: bundled sample page)")
	previewCmd.Flags().StringVar(&previewRoute, "route", "", "override the snapshot's route")
	previewCmd.Flags().IntVar(&previewTrustLevel, "trust-level", 0, "visitor trust level")
	previewCmd.Flags().StringVar(&previewUsername, "username", "", "authenticated username (empty: anonymous visitor)")
	previewCmd.Flags().StringVar(&previewLanguage, "language", "en", "visitor language tag")
	previewCmd.Flags().BoolVar(&previewImmediate, "immediate", false, "skip the configured start delay")
	previewCmd.Flags().BoolVar(&previewNoEvents, "no-events", false, "don't record telemetry events")
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the tour interactively against a page snapshot",
	Long: `Run the onboarding tour in the terminal.

The snapshot stands in for the host page: it declares which elements exist,
which collapsed containers they live in, and which controls open those
containers. Navigation keys: n/enter next, p previous, q dismiss.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if previewImmediate {
			settings.Delay = time.Millisecond
		}

		doc, err := loadPreviewDocument()
		if err != nil {
			return err
		}

		route := previewRoute
		if route == "" {
			route = doc.Route()
		}
		if route == "" {
			route = "/"
		}

		store, db, err := openStore(!previewNoEvents)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		var recorder telemetry.Recorder = telemetry.Nop{}
		if db != nil {
			repo, err := telemetry.NewRepository(db)
			if err != nil {
				return err
			}
			recorder = repo
		}

		var visitor *models.Visitor
		if previewUsername != "" {
			visitor = &models.Visitor{Username: previewUsername, TrustLevel: previewTrustLevel}
		}
		class := models.ClassOf(visitor)

		g := gate.New(store, settings.CompletionKeys)
		renderer := tui.NewRenderer()
		resolver := dom.NewResolver(doc, settings.RevealControl, settings.SettleWait)

		seq, err := tour.New(tour.Options{
			Renderer:   renderer,
			Resolver:   resolver,
			Translator: i18n.Builtin(),
			Overlay:    settings.Overlay,
			Class:      class,
			Recorder:   recorder,
			OnTerminal: func(tour.Status) {
				g.RecordCompletion(ctx, class)
			},
		})
		if err != nil {
			return err
		}

		started := make(chan error, 1)
		controller := trigger.New(settings, g, func() *models.Visitor { return visitor }, func(class models.VisitorClass) {
			normalized := steps.Normalize(settings.RawSteps[class], steps.Input{
				Class:            class,
				Language:         previewLanguage,
				FallbackLanguage: settings.FallbackLanguage,
				ViewportWidth:    viewportWidth(doc),
				MobileBreakpoint: settings.MobileBreakpoint,
				Bookends:         settings.Bookends[class],
				Translator:       i18n.Builtin(),
			})
			started <- seq.Start(ctx, normalized)
		})
		defer controller.Stop()

		controller.HandleNavigation(ctx, route)
		if !controller.Triggered() {
			fmt.Fprintf(cmd.OutOrStdout(), "Tour not triggered for %s on %q (disabled, completed, trust level, or not a landing route).\n", class, route)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tour scheduled for %s on %q, starting in %s...\n", class, route, settings.Delay)

		if err := <-started; err != nil {
			if errors.Is(err, tour.ErrNoRealContent) {
				fmt.Fprintln(cmd.OutOrStdout(), "Tour skipped: no resolvable steps on this page.")
				return nil
			}
			return err
		}

		if err := tui.Run(renderer, seq.Status); err != nil {
			return fmt.Errorf("run preview: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tour %s after %d steps; completion recorded for %s.\n",
			seq.Status(), seq.StepCount(), class)
		return nil
	},
}

func loadPreviewDocument() (*dom.SnapshotDocument, error) {
	if previewSnapshot != "" {
		return dom.LoadSnapshot(previewSnapshot)
	}
	return dom.NewSnapshotDocument(dom.SampleSnapshot()), nil
}

// viewportWidth prefers the snapshot's declared width and falls back to the
// terminal size, so device filtering in the preview tracks the real window.
func viewportWidth(doc *dom.SnapshotDocument) int {
	if width := doc.ViewportWidth(); width > 0 {
		return width
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return models.DefaultMobileBreakpoint
}

// openStore builds the completion store selected by --store, plus the
// database handle shared by the sqlite backend and the telemetry repository.
// The handle is nil when neither needs it.
func openStore(wantEvents bool) (storage.Store, *sql.DB, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, err
	}

	var db *sql.DB
	if rootStore == "sqlite" || wantEvents {
		db, err = storage.OpenDB(filepath.Join(dir, "tour.db"))
		if err != nil {
			return nil, nil, err
		}
	}

	switch rootStore {
	case "memory":
		return storage.NewMemoryStore(), db, nil
	case "file":
		return storage.NewFileStore(filepath.Join(dir, "flags.json")), db, nil
	case "cookie":
		return storage.NewTTLStore(filepath.Join(dir, "cookies.json"), storage.DefaultTTL), db, nil
	case "sqlite":
		store, err := storage.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db, nil
	default:
		if db != nil {
			db.Close()
		}
		return nil, nil, fmt.Errorf("unknown store backend %q", rootStore)
	}
}
