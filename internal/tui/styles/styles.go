// Package styles defines the lipgloss styles for the tour preview.
package styles

import "github.com/charmbracelet/lipgloss"

// ThemeTokens defines the semantic color roles for the preview.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Border    string
	Accent    string
	Highlight string
	Overlay   string
}

// DefaultTokens is the baseline palette.
var DefaultTokens = ThemeTokens{
	Text:      "#E6EDF3",
	TextMuted: "#8B9AAE",
	Border:    "#223043",
	Accent:    "#5B8DEF",
	Highlight: "#D29922",
	Overlay:   "#121821",
}

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Tokens    ThemeTokens
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Highlight lipgloss.Style
	Popover   lipgloss.Style
	KeyHint   lipgloss.Style
}

// DefaultStyles builds styles from the default tokens.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTokens)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(tokens ThemeTokens) Styles {
	return Styles{
		Tokens:    tokens,
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Highlight)).Bold(true),
		Popover: lipgloss.NewStyle().
			Foreground(lipgloss.Color(tokens.Text)).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(tokens.Border)).
			Padding(1, 2),
		KeyHint: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Italic(true),
	}
}
