// Package cli provides the tour command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/config"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/logging"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogPretty  bool
	rootDataDir    string
	rootStore      string
)

var rootCmd = &cobra.Command{
	Use:   "tour",
	Short: "Onboarding tour engine tools",
	Long: `Tools for the forum onboarding tour engine.

Validate authored step lists, preview a tour against a page snapshot, and
inspect or reset persisted completion flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(rootLogLevel, rootLogPretty)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "settings file (default: ./tour.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootLogPretty, "pretty", false, "human-readable log output")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "directory for persisted flags and telemetry (default: ~/.config/tour)")
	rootCmd.PersistentFlags().StringVar(&rootStore, "store", "file", "completion flag backend (memory, file, cookie, sqlite)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadSettings() (models.TourSettings, error) {
	return config.Load(rootConfigPath)
}

func dataDir() (string, error) {
	dir := rootDataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "tour")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return dir, nil
}
