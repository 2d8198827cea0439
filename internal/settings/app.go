package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/surface"
	"github.com/muurk/tablekit/internal/theme"
)

// appKeyMap defines the global key bindings
type appKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

type entry struct {
	handle screen.Handle
	page   Page
}

// App is the top-level coordinator model. It owns the screen stack; the
// foreground screen is the top of the stack.
type App struct {
	deps   *Deps
	toasts *Toaster
	stack  []entry
	keys   appKeyMap

	width  int
	height int
}

// NewApp creates the app with the settings screen in the foreground.
func NewApp(deps *Deps) *App {
	deps.withDefaults()
	a := &App{
		deps:   deps,
		toasts: &Toaster{},
		keys: appKeyMap{
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
			Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
	a.width, a.height = theme.GetTerminalSize()
	a.push(NewSettingsScreen(deps, a.toasts))
	return a
}

// Toasts exposes the toast state.
func (a *App) Toasts() *Toaster { return a.toasts }

// Foreground returns the page on top of the stack.
func (a *App) Foreground() Page {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1].page
}

// Depth returns the number of stacked pages.
func (a *App) Depth() int { return len(a.stack) }

func (a *App) push(p Page) tea.Cmd {
	h := a.deps.Screens.Register(p)
	a.deps.Screens.Push(h)
	p.Attach(h)
	p.SetSize(a.width, a.pageHeight())
	a.stack = append(a.stack, entry{handle: h, page: p})
	logging.Debug("Screen pushed", zap.String("title", p.ScreenTitle()), zap.Int("depth", len(a.stack)))
	return p.Init()
}

// pop removes the foreground page. Popping the last page quits.
func (a *App) pop() tea.Cmd {
	if len(a.stack) <= 1 {
		return tea.Quit
	}
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.deps.Screens.Unregister(top.handle)
	logging.Debug("Screen popped", zap.String("title", top.page.ScreenTitle()), zap.Int("depth", len(a.stack)))

	a.Foreground().Resume()
	return nil
}

// pageHeight is the space left for a page after the title, toast and help.
func (a *App) pageHeight() int {
	return max(a.height-8, 3)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.Foreground().Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		for _, e := range a.stack {
			e.page.SetSize(a.width, a.pageHeight())
		}
		return a, nil

	case toastExpiredMsg:
		a.toasts.expire(msg.seq)
		return a, nil

	case pushMsg:
		cmd = a.push(msg.page)

	case popMsg:
		cmd = a.pop()

	case tea.KeyMsg:
		top := a.Foreground()
		switch {
		case msg.Type == tea.KeyCtrlC:
			return a, tea.Quit
		case !top.CapturesText() && key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case !top.CapturesText() && key.Matches(msg, a.keys.Back):
			cmd = a.pop()
		default:
			cmd = top.Update(msg)
		}

	default:
		cmd = a.Foreground().Update(msg)
	}

	return a, tea.Batch(cmd, a.toasts.take())
}

// View implements tea.Model.
func (a *App) View() string {
	top := a.Foreground()
	appearance := a.deps.Theme.Appearance()

	title := surface.NewPrinter(nil, a.deps.Theme).SetWidth(a.width).RenderTitle(top.ScreenTitle())

	toast := ""
	if text := a.toasts.Text(); text != "" {
		toast = appearance.ToastStyle().Render(text)
	}

	helpText := top.HelpView()
	if !top.CapturesText() {
		helpText += appearance.FooterStyle().Render(" • esc back • q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		top.View(),
		"",
		toast,
		strings.TrimRight(helpText, " "),
	)
}
