package discriminator

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tablekit/internal/theme"
)

// Separator sits between the username and its discriminator.
const Separator = "."

// Widget draws a Machine inside a text-entry row. The spinner animates
// while the mode is spinning; animation never changes the mode.
type Widget struct {
	*Machine

	spinner spinner.Model
	theme   theme.Provider
}

// New creates a widget starting from initial.
func New(initial string, provider theme.Provider) *Widget {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &Widget{
		Machine: NewMachine(initial),
		spinner: s,
		theme:   provider,
	}
}

// TickCmd starts the spinner animation when the widget is spinning.
func (w *Widget) TickCmd() tea.Cmd {
	if !w.Mode().IsSpinning() {
		return nil
	}
	return w.spinner.Tick
}

// Update advances the spinner. Ticks that arrive after the widget stopped
// spinning are dropped, which ends the animation loop.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !w.Mode().IsSpinning() {
		return nil
	}
	var cmd tea.Cmd
	w.spinner, cmd = w.spinner.Update(tick)
	return cmd
}

// View renders the current mode.
func (w *Widget) View() string {
	a := theme.NewAppearance(true, 1)
	if w.theme != nil {
		a = w.theme.Appearance()
	}
	valueStyle := lipgloss.NewStyle().Foreground(a.Palette.Text)
	pendingStyle := a.AccessoryStyle()
	spin := lipgloss.NewStyle().Foreground(a.Palette.Primary).Render(w.spinner.View())

	m := w.Mode()
	switch m.Kind {
	case ModeSpinning:
		return spin
	case ModeSpinningWithValue:
		return strings.Join([]string{pendingStyle.Render(Separator + m.Value), spin}, " ")
	case ModeValue:
		return valueStyle.Render(Separator + m.Value)
	default:
		return ""
	}
}
