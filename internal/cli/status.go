// Package cli completion flag inspection commands.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/gate"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/storage"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/telemetry"
)

var eventsLimit int

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "maximum events to show")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted completion flags per visitor class",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := loadSettings()
		if err != nil {
			return err
		}

		store, db, err := openStore(false)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		g := gate.New(store, settings.CompletionKeys)

		rows := make([][]string, 0, 2)
		for _, class := range models.VisitorClasses() {
			rows = append(rows, []string{
				string(class),
				settings.CompletionKeys[class],
				formatYesNo(g.Completed(ctx, class)),
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Store: %s\nEnabled: %s\n\n", rootStore, formatYesNo(settings.Enabled))
		return writeTable(cmd.OutOrStdout(), []string{"CLASS", "KEY", "COMPLETED"}, rows)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [class]",
	Short: "Clear completion flags so the tour offers itself again",
	Long: `Clear persisted completion flags.

With no argument both classes are reset; otherwise pass "anonymous" or
"authenticated".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		settings, err := loadSettings()
		if err != nil {
			return err
		}

		classes := models.VisitorClasses()
		if len(args) == 1 {
			classes = []models.VisitorClass{models.ParseVisitorClass(args[0])}
		}

		store, db, err := openStore(false)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		g := gate.New(store, settings.CompletionKeys)
		for _, class := range classes {
			g.Reset(ctx, class)
			fmt.Fprintf(cmd.OutOrStdout(), "Reset completion flag for %s.\n", class)
		}
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent telemetry events",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dir, err := dataDir()
		if err != nil {
			return err
		}
		db, err := storage.OpenDB(filepath.Join(dir, "tour.db"))
		if err != nil {
			return err
		}
		defer db.Close()

		repo, err := telemetry.NewRepository(db)
		if err != nil {
			return err
		}

		events, err := repo.Recent(ctx, eventsLimit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events recorded.")
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, event := range events {
			step := "-"
			if event.StepIndex >= 0 {
				step = strconv.Itoa(event.StepIndex)
			}
			locator := clip(event.Locator)
			if locator == "" {
				locator = "-"
			}
			rows = append(rows, []string{
				event.CreatedAt.Local().Format(time.DateTime),
				shortRunID(event.RunID),
				string(event.Type),
				string(event.VisitorClass),
				step,
				locator,
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"TIME", "RUN", "TYPE", "CLASS", "STEP", "LOCATOR"}, rows)
	},
}

// shortRunID keeps the run column readable; the full UUID is in the database.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
