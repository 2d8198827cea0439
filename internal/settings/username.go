package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/availability"
	"github.com/muurk/tablekit/internal/discriminator"
	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/screen"
)

const (
	titleUsername = "Username"
	checkTimeout  = 5 * time.Second
)

// usernameKeyMap defines key bindings for the username editor
type usernameKeyMap struct {
	Save key.Binding
	Back key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k usernameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k usernameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Back}}
}

// checkResultMsg carries an availability answer back to the editor.
type checkResultMsg struct {
	opID   uint64
	result availability.Result
	err    error
}

// UsernameScreen edits the account username. Every edit starts a new check;
// answers for older edits are dropped.
type UsernameScreen struct {
	deps   *Deps
	toasts *Toaster

	input  textinput.Model
	widget *discriminator.Widget
	keys   usernameKeyMap
	help   help.Model

	opID      uint64
	last      string
	candidate string
	status    string
	width     int
}

// NewUsernameScreen creates an editor seeded with the saved account.
func NewUsernameScreen(deps *Deps, toasts *Toaster) *UsernameScreen {
	deps.withDefaults()
	input := textinput.New()
	input.Placeholder = "username"
	input.CharLimit = availability.MaxUsernameLength
	input.Prompt = "@ "

	var username, disc string
	if acct := deps.Config.Account; acct != nil {
		username, disc = acct.Username, acct.Discriminator
	}
	input.SetValue(username)

	u := &UsernameScreen{
		deps:   deps,
		toasts: toasts,
		input:  input,
		widget: discriminator.New(disc, deps.Theme),
		keys: usernameKeyMap{
			Save: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
		help: help.New(),
		last: username,
	}
	if username != "" && disc != "" {
		u.candidate = username
	}
	return u
}

// ScreenTitle implements screen.Screen.
func (u *UsernameScreen) ScreenTitle() string { return titleUsername }

// PresentToast implements screen.Screen.
func (u *UsernameScreen) PresentToast(text string) { u.toasts.Show(text) }

// Attach implements Page.
func (u *UsernameScreen) Attach(screen.Handle) {}

// Resume implements Page.
func (u *UsernameScreen) Resume() {}

// CapturesText implements Page.
func (u *UsernameScreen) CapturesText() bool { return true }

// SetSize implements Page.
func (u *UsernameScreen) SetSize(width, _ int) {
	u.width = width
	u.help.Width = width
}

// Widget exposes the discriminator widget.
func (u *UsernameScreen) Widget() *discriminator.Widget { return u.widget }

// Status returns the last check message shown under the input.
func (u *UsernameScreen) Status() string { return u.status }

// Init implements Page.
func (u *UsernameScreen) Init() tea.Cmd {
	return tea.Batch(u.input.Focus(), textinput.Blink)
}

// Update implements Page.
func (u *UsernameScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case checkResultMsg:
		u.handleResult(msg)
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, u.keys.Back):
			return pop
		case key.Matches(msg, u.keys.Save):
			return u.save()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	cmds = append(cmds, cmd)

	if value := u.value(); value != u.last {
		u.last = value
		cmds = append(cmds, u.edited(value))
	}

	cmds = append(cmds, u.widget.Update(msg))
	return tea.Batch(cmds...)
}

func (u *UsernameScreen) value() string {
	return strings.ToLower(strings.TrimSpace(u.input.Value()))
}

// edited starts a check for value. An empty value clears the widget.
func (u *UsernameScreen) edited(value string) tea.Cmd {
	u.opID++
	u.candidate = ""

	if value == "" {
		u.status = ""
		u.widget.Confirm("")
		return nil
	}

	wasSpinning := u.widget.Mode().IsSpinning()
	u.widget.BeginPendingOperation()
	u.status = "Checking…"

	cmds := []tea.Cmd{u.check(u.opID, value)}
	if !wasSpinning {
		cmds = append(cmds, u.widget.TickCmd())
	}
	return tea.Batch(cmds...)
}

func (u *UsernameScreen) check(opID uint64, username string) tea.Cmd {
	checker := u.deps.Checker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		result, err := checker.Check(ctx, username)
		return checkResultMsg{opID: opID, result: result, err: err}
	}
}

func (u *UsernameScreen) handleResult(msg checkResultMsg) {
	if msg.opID != u.opID {
		logging.Debug("Dropping stale availability result",
			zap.Uint64("op", msg.opID),
			zap.Uint64("current", u.opID),
		)
		return
	}

	switch {
	case msg.err != nil:
		u.widget.ReportFailure()
		u.status = failureText(msg.err)
		logging.Debug("Availability check failed", zap.Error(msg.err))
	case !msg.result.Available:
		u.widget.ReportFailure()
		u.status = "That username is taken"
	default:
		u.candidate = msg.result.Username
		u.widget.Confirm(msg.result.Discriminator)
		u.status = "Available"
	}
}

func failureText(err error) string {
	var checkErr *availability.CheckError
	if errors.As(err, &checkErr) {
		if checkErr.Kind == availability.ErrKindInvalid {
			return checkErr.Message
		}
		if checkErr.Retryable {
			return "Could not check right now, try again"
		}
	}
	return "Could not check username"
}

// save stores a confirmed username and leaves the editor.
func (u *UsernameScreen) save() tea.Cmd {
	disc, ok := u.widget.LastKnownGoodValue()
	if u.candidate == "" || u.candidate != u.value() || !ok || u.widget.Mode().Kind != discriminator.ModeValue {
		u.toasts.Show("Wait for an available username")
		return nil
	}

	u.deps.Config.SetAccount(u.candidate, disc)
	u.deps.save(u.toasts)
	logging.Info("Username saved", zap.String("username", u.candidate), zap.String("discriminator", disc))
	u.toasts.Show("Username saved")
	return pop
}

// View implements Page.
func (u *UsernameScreen) View() string {
	a := u.deps.Theme.Appearance()
	line := lipgloss.JoinHorizontal(lipgloss.Top, u.input.View(), " ", u.widget.View())

	status := a.FooterStyle().Render(u.status)
	if u.widget.Mode().Kind == discriminator.ModeValue && u.candidate != "" {
		status = a.OnStyle().Render(u.status)
	}

	rules := a.FooterStyle().Render("3 to 32 lowercase letters, digits or underscores.")
	return lipgloss.JoinVertical(lipgloss.Left, "", "  "+line, "  "+status, "", "  "+rules)
}

// HelpView implements Page.
func (u *UsernameScreen) HelpView() string {
	return u.help.View(u.keys)
}
