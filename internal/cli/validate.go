// Package cli step list validation command.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/i18n"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/steps"
)

var (
	validateClass    string
	validateLanguage string
	validateWidth    int
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateClass, "class", "anonymous", "visitor class (anonymous, authenticated)")
	validateCmd.Flags().StringVar(&validateLanguage, "language", "en", "visitor language tag")
	validateCmd.Flags().IntVar(&validateWidth, "width", 1280, "viewport width for device filtering")
}

var validateCmd = &cobra.Command{
	Use:   "validate [step-file]",
	Short: "Parse and normalize a step list",
	Long: `Parse an authored JSON step list and show the normalized sequence.

Without a file argument the configured step list for the visitor class is
validated instead. Malformed input falls back to the builtin defaults, the
same way the engine behaves at runtime.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		class := models.ParseVisitorClass(validateClass)

		raw := settings.RawSteps[class]
		source := "settings"
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read step file: %w", err)
			}
			raw = string(data)
			source = args[0]
		}

		if !json.Valid([]byte(raw)) && raw != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: input is not valid JSON; builtin defaults substituted\n\n")
		}

		normalized := steps.Normalize(raw, steps.Input{
			Class:            class,
			Language:         validateLanguage,
			FallbackLanguage: settings.FallbackLanguage,
			ViewportWidth:    validateWidth,
			MobileBreakpoint: settings.MobileBreakpoint,
			Bookends:         settings.Bookends[class],
			Translator:       i18n.Builtin(),
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Source: %s\nClass: %s\nSteps: %d (%d authored)\n\n",
			source, class, len(normalized), steps.RealCount(normalized))

		rows := make([][]string, 0, len(normalized))
		for i, step := range normalized {
			kind := "anchored"
			if step.Centered {
				kind = "centered"
			}
			if step.Synthetic {
				kind += " (bookend)"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				kind,
				clip(step.Locator),
				clip(step.Title),
				formatYesNo(step.Reveal),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"#", "KIND", "LOCATOR", "TITLE", "REVEAL"}, rows)
	},
}
