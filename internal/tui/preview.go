// Package tui implements the terminal tour preview: a real overlay-renderer
// implementation that draws each step as a popover box and feeds key presses
// back through the sequencer's navigation callbacks.
package tui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/tour"
	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/tui/styles"
)

// Renderer implements tour.Renderer for the terminal. It holds at most one
// live step; Destroy is idempotent.
type Renderer struct {
	mu      sync.Mutex
	current *shownStep
}

type shownStep struct {
	directive tour.Directive
	opts      models.OverlayOptions
	callbacks tour.Callbacks
}

// NewRenderer creates an empty preview renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ShowStep implements tour.Renderer.
func (r *Renderer) ShowStep(directive tour.Directive, opts models.OverlayOptions, callbacks tour.Callbacks) error {
	r.mu.Lock()
	r.current = &shownStep{directive: directive, opts: opts, callbacks: callbacks}
	r.mu.Unlock()
	return nil
}

// Destroy implements tour.Renderer.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	r.current = nil
	r.mu.Unlock()
}

func (r *Renderer) snapshot() *shownStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Run drives the preview program until the sequencer reaches a terminal
// state or the user quits.
func Run(renderer *Renderer, status func() tour.Status) error {
	program := tea.NewProgram(newModel(renderer, status), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	renderer *Renderer
	status   func() tour.Status
	styles   styles.Styles
	width    int
	height   int
}

func newModel(renderer *Renderer, status func() tour.Status) model {
	return model{
		renderer: renderer,
		status:   status,
		styles:   styles.DefaultStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		step := m.renderer.snapshot()
		if step == nil {
			return m, tea.Quit
		}
		switch msg.String() {
		case "n", "enter", "right", "l":
			if step.callbacks.OnNext != nil {
				step.callbacks.OnNext()
			}
		case "p", "left", "h":
			if step.directive.ShowPrevious && step.callbacks.OnPrevious != nil {
				step.callbacks.OnPrevious()
			}
		case "q", "esc", "ctrl+c":
			if step.callbacks.OnDismiss != nil {
				step.callbacks.OnDismiss()
			}
			return m, tea.Quit
		}
		if status := m.status(); status == tour.StatusFinished || status == tour.StatusAborted {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) View() string {
	step := m.renderer.snapshot()
	if step == nil {
		return ""
	}

	popover := m.renderPopover(step)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popover)
	}
	return popover + "\n"
}

func (m model) renderPopover(step *shownStep) string {
	d := step.directive

	var b strings.Builder
	if d.Kind == tour.DirectiveAnchored && d.Element != nil {
		b.WriteString(m.styles.Highlight.Render("▣ " + d.Element.Selector()))
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  (%s/%s)", d.Placement, d.Alignment)))
		b.WriteString("\n\n")
	}
	if d.Title != "" {
		b.WriteString(m.styles.Title.Render(d.Title))
		b.WriteString("\n")
	}
	if d.Description != "" {
		b.WriteString(m.styles.Body.Render(d.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(d.Progress))
	b.WriteString("\n\n")

	hints := make([]string, 0, 3)
	if d.ShowPrevious {
		hints = append(hints, "[p] "+d.PreviousLabel)
	}
	hints = append(hints, "[n] "+d.NextLabel, "[q] dismiss")
	b.WriteString(m.styles.KeyHint.Render(strings.Join(hints, "  ")))

	width := 48
	if step.opts.Padding > 0 {
		width += step.opts.Padding
	}
	return m.styles.Popover.Width(width).Render(b.String())
}
