package settings

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/config"
	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/surface"
	"github.com/muurk/tablekit/internal/table"
	"github.com/muurk/tablekit/internal/theme"
	"github.com/muurk/tablekit/internal/urls"
	"github.com/muurk/tablekit/internal/version"
)

const (
	titleSettings  = "Settings"
	deviceReuseID  = "linked-device"
	statusGlyphOn  = "●"
	statusGlyphOff = "○"
)

// SettingsScreen lists every preference. Its contents are rebuilt from the
// config after each change.
type SettingsScreen struct {
	deps    *Deps
	toasts  *Toaster
	factory *table.Factory
	list    *surface.ListModel

	dirty   bool
	pending tea.Cmd
}

// NewSettingsScreen creates the screen and builds its first contents.
func NewSettingsScreen(deps *Deps, toasts *Toaster) *SettingsScreen {
	deps.withDefaults()
	s := &SettingsScreen{
		deps:    deps,
		toasts:  toasts,
		factory: deps.factory(),
		list:    surface.NewListModel(deps.Theme),
	}
	s.list.SetContents(s.Build())
	return s
}

// ScreenTitle implements screen.Screen.
func (s *SettingsScreen) ScreenTitle() string { return titleSettings }

// PresentToast implements screen.Screen.
func (s *SettingsScreen) PresentToast(text string) { s.toasts.Show(text) }

// Attach implements Page.
func (s *SettingsScreen) Attach(h screen.Handle) { s.list.SetOwner(h) }

// Init implements Page.
func (s *SettingsScreen) Init() tea.Cmd { return nil }

// CapturesText implements Page.
func (s *SettingsScreen) CapturesText() bool { return false }

// SetSize implements Page.
func (s *SettingsScreen) SetSize(width, height int) { s.list.SetSize(width, height) }

// Resume implements Page.
func (s *SettingsScreen) Resume() { s.rebuild() }

// List exposes the list surface.
func (s *SettingsScreen) List() *surface.ListModel { return s.list }

// Update implements Page. Row actions mark the screen dirty; the contents
// are replaced once the action has returned.
func (s *SettingsScreen) Update(msg tea.Msg) tea.Cmd {
	cmd := s.list.Update(msg)
	if s.dirty {
		s.rebuild()
	}
	if s.pending != nil {
		cmd = tea.Batch(cmd, s.pending)
		s.pending = nil
	}
	return cmd
}

func (s *SettingsScreen) changed() {
	s.dirty = true
}

func (s *SettingsScreen) rebuild() {
	s.dirty = false
	s.list.SetContents(s.Build())
}

// View implements Page.
func (s *SettingsScreen) View() string { return s.list.View() }

// HelpView implements Page.
func (s *SettingsScreen) HelpView() string { return s.list.HelpView() }

// Build creates the contents from the current config.
func (s *SettingsScreen) Build() *table.Contents {
	cfg := s.deps.Config
	return table.NewContents(titleSettings,
		s.accountSection(cfg),
		s.appearanceSection(cfg.Preferences),
		s.privacySection(cfg.Preferences),
		s.devicesSection(cfg),
		s.aboutSection(),
	)
}

func (s *SettingsScreen) accountSection(cfg *config.Config) *table.Section {
	handle := cfg.Account.Handle()
	display := handle
	if display == "" {
		display = "Not set"
	}

	section := table.NewSection("Account", "Your username is how people find you.")
	section.Add(s.factory.Disclosure("Username", display, nil,
		table.WithIcon("@"),
		table.WithScreenAction(func(owner screen.Screen) {
			if owner, ok := owner.(*SettingsScreen); ok {
				owner.openUsername()
			}
		}),
	))
	if handle != "" {
		section.Add(s.factory.Copy(table.CopyRow{
			Title:           "Profile link",
			DisplayValue:    urls.ProfileDisplay(handle),
			PasteboardValue: urls.Profile(handle),
		}))
	}
	return section
}

func (s *SettingsScreen) openUsername() {
	s.pending = push(NewUsernameScreen(s.deps, s.toasts))
}

func (s *SettingsScreen) appearanceSection(prefs *config.Preferences) *table.Section {
	current := theme.ParseMode(prefs.Theme)
	section := table.NewSection("Appearance", "")
	for _, opt := range []struct {
		label string
		mode  theme.Mode
	}{
		{"Match terminal", theme.ModeAuto},
		{"Dark", theme.ModeDark},
		{"Light", theme.ModeLight},
	} {
		section.Add(s.factory.Checkmark(opt.label, current == opt.mode, func() {
			s.setTheme(opt.mode)
		}))
	}
	section.Add(s.factory.Switch("Large text",
		func() bool { return prefs.TextScale > 1 },
		nil,
		func(on bool) { s.setLargeText(on) },
	))
	return section
}

func (s *SettingsScreen) setTheme(mode theme.Mode) {
	s.deps.Config.Preferences.Theme = string(mode)
	if s.deps.Theme != nil {
		s.deps.Theme.SetMode(mode)
	}
	logging.Debug("Theme changed", zap.String("mode", string(mode)))
	s.deps.save(s.toasts)
	s.changed()
}

func (s *SettingsScreen) setLargeText(on bool) {
	scale := 1
	if on {
		scale = 2
	}
	s.deps.Config.Preferences.TextScale = scale
	if s.deps.Theme != nil {
		s.deps.Theme.SetTextScale(scale)
	}
	s.deps.save(s.toasts)
	s.changed()
}

func (s *SettingsScreen) privacySection(prefs *config.Preferences) *table.Section {
	section := table.NewSection("Privacy",
		"Typing indicators are only shared while read receipts are on.")
	section.Add(s.factory.Switch("Read receipts",
		func() bool { return prefs.ReadReceipts },
		nil,
		func(on bool) {
			prefs.ReadReceipts = on
			s.deps.save(s.toasts)
			s.changed()
		},
	))
	section.Add(s.factory.Switch("Typing indicators",
		func() bool { return prefs.TypingIndicators },
		func() bool { return prefs.ReadReceipts },
		func(on bool) {
			prefs.TypingIndicators = on
			s.deps.save(s.toasts)
			s.changed()
		},
	))
	return section
}

func (s *SettingsScreen) devicesSection(cfg *config.Config) *table.Section {
	footer := ""
	if len(cfg.LinkedDevices) == 0 {
		footer = "No other devices are linked."
	}
	section := table.NewSection("Linked devices", footer)
	for _, device := range cfg.LinkedDevices {
		section.Add(s.factory.Pooled(device.Name, deviceReuseID,
			func(row *table.Row) {
				row.Icon = statusGlyphOff
				if !device.LastSeen.IsZero() && time.Since(device.LastSeen) < 5*time.Minute {
					row.Icon = statusGlyphOn
				}
				row.Accessory = table.AccessoryText
				row.AccessoryText = deviceDetail(device)
				row.TextLines, row.AccessoryLines = table.WrapLines(row.Text, row.AccessoryText)
			},
			table.WithDeleteAction("Unlink", func() { s.unlink(device) }),
		))
	}
	return section
}

func deviceDetail(d *config.LinkedDevice) string {
	if d.LastSeen.IsZero() {
		return d.Platform
	}
	seen := d.LastSeen.Format("Jan 2 15:04")
	if d.Platform == "" {
		return seen
	}
	return d.Platform + ", " + seen
}

func (s *SettingsScreen) unlink(d *config.LinkedDevice) {
	if !s.deps.Config.UnlinkDevice(d.ID) {
		return
	}
	logging.Info("Device unlinked", zap.String("id", d.ID), zap.String("name", d.Name))
	s.deps.save(s.toasts)
	s.toasts.Show(fmt.Sprintf("Unlinked %s", d.Name))
	s.changed()
}

func (s *SettingsScreen) aboutSection() *table.Section {
	info := version.Get()

	checker := "Local"
	glyph := statusGlyphOff
	if s.deps.Config.Preferences.AvailabilityURL != "" {
		checker = "Remote"
		glyph = statusGlyphOn
	}

	return table.NewSection("About", "",
		s.factory.Label("Version", info.Version),
		s.factory.Copy(table.CopyRow{Title: "Commit", DisplayValue: info.ShortCommit()}),
		s.factory.Copy(table.CopyRow{Title: "Source", DisplayValue: "github.com/muurk/tablekit", PasteboardValue: urls.Repository}),
		s.factory.Image("Username checks: "+checker, glyph, nil),
	)
}
