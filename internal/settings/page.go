package settings

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/availability"
	"github.com/muurk/tablekit/internal/config"
	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/pasteboard"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/table"
	"github.com/muurk/tablekit/internal/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 2 * time.Second

// Deps are the collaborators shared by every screen.
type Deps struct {
	Config     *config.Config
	Theme      *theme.Preferences
	Pasteboard pasteboard.Writer
	Checker    availability.Checker
	Screens    *screen.Registry
}

// withDefaults fills in collaborators left unset.
func (d *Deps) withDefaults() *Deps {
	if d.Config == nil {
		d.Config = config.New()
	}
	if d.Theme == nil {
		prefs := d.Config.Preferences
		d.Theme = theme.NewPreferences(theme.ParseMode(prefs.Theme), prefs.TextScale)
	}
	if d.Pasteboard == nil {
		d.Pasteboard = &pasteboard.Memory{}
	}
	if d.Checker == nil {
		d.Checker = availability.NewLocal()
	}
	if d.Screens == nil {
		d.Screens = screen.NewRegistry()
	}
	return d
}

func (d *Deps) factory() *table.Factory {
	return table.NewFactory(table.Env{
		Theme:      d.Theme,
		Pasteboard: d.Pasteboard,
		Screens:    d.Screens,
	})
}

// save persists the config. Failures are logged and reported to the user.
func (d *Deps) save(toasts *Toaster) {
	if d.Config == nil {
		return
	}
	if err := d.Config.Save(); err != nil {
		logging.Warn("Failed to save config",
			zap.String("path", d.Config.Path()),
			zap.Error(err),
		)
		toasts.Show("Could not save settings")
	}
}

// Page is a screen hosted by the App.
type Page interface {
	screen.Screen

	// Attach hands the page its registry handle.
	Attach(h screen.Handle)
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	HelpView() string
	SetSize(width, height int)
	// Resume is called when the page returns to the foreground.
	Resume()
	// CapturesText reports whether plain keys are text input.
	CapturesText() bool
}

// Navigation messages returned as commands by pages.
type pushMsg struct{ page Page }
type popMsg struct{}

func push(p Page) tea.Cmd {
	return func() tea.Msg { return pushMsg{page: p} }
}

func pop() tea.Msg { return popMsg{} }

type toastExpiredMsg struct{ seq int }

// Toaster holds the current toast. Show may be called from inside an
// Update; the expiry timer is collected by the App afterwards.
type Toaster struct {
	text    string
	seq     int
	pending tea.Cmd
}

// Show replaces the current toast.
func (t *Toaster) Show(text string) {
	if t == nil {
		return
	}
	t.seq++
	seq := t.seq
	t.text = text
	t.pending = tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
	logging.Debug("Toast shown", zap.String("text", text))
}

// Text returns the visible toast, if any.
func (t *Toaster) Text() string {
	if t == nil {
		return ""
	}
	return t.text
}

func (t *Toaster) take() tea.Cmd {
	cmd := t.pending
	t.pending = nil
	return cmd
}

// expire clears the toast unless a newer one replaced it.
func (t *Toaster) expire(seq int) {
	if seq == t.seq {
		t.text = ""
	}
}
