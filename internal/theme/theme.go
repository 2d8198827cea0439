// Package theme is the appearance provider rows consult while they are built.
//
// Rows read the appearance once, at build time. Nothing here pushes changes
// into already built rows: a theme change only shows after the screen rebuilds
// its contents.
package theme

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Layout constants
const (
	MinTerminalWidth = 40  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Mode selects the color scheme.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode maps a preference string to a Mode. Unknown values mean auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeDark, ModeLight:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// Palette holds the colors for one scheme.
type Palette struct {
	Primary   lipgloss.Color // Headers, selection
	Success   lipgloss.Color // Checkmarks, switches that are on
	Error     lipgloss.Color // Destructive actions
	Warning   lipgloss.Color // Toasts
	Muted     lipgloss.Color // Footers, accessory text
	Text      lipgloss.Color // Main content
	Disabled  lipgloss.Color // Disabled controls
	Highlight lipgloss.Color // Selected row background
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("#7D56F4"),
		Success:   lipgloss.Color("#43BF6D"),
		Error:     lipgloss.Color("#FF5555"),
		Warning:   lipgloss.Color("#FFA500"),
		Muted:     lipgloss.Color("#626262"),
		Text:      lipgloss.Color("#FFFFFF"),
		Disabled:  lipgloss.Color("#444444"),
		Highlight: lipgloss.Color("#2A2440"),
	}
	lightPalette = Palette{
		Primary:   lipgloss.Color("#5A3FD1"),
		Success:   lipgloss.Color("#1E8C45"),
		Error:     lipgloss.Color("#C62828"),
		Warning:   lipgloss.Color("#B36B00"),
		Muted:     lipgloss.Color("#7A7A7A"),
		Text:      lipgloss.Color("#1A1A1A"),
		Disabled:  lipgloss.Color("#BBBBBB"),
		Highlight: lipgloss.Color("#E7E1FF"),
	}
)

// Appearance is a snapshot of the environment at the moment a row is built.
type Appearance struct {
	Dark      bool
	TextScale int // 1 is the default size, 2 or more is large text
	Palette   Palette
}

// NewAppearance builds an appearance for the given scheme and scale.
func NewAppearance(dark bool, scale int) Appearance {
	if scale < 1 {
		scale = 1
	}
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return Appearance{Dark: dark, TextScale: scale, Palette: p}
}

// LargeText reports whether the text scale asks for large rows.
func (a Appearance) LargeText() bool {
	return a.TextScale > 1
}

// LabelStyle is the primary label style.
func (a Appearance) LabelStyle() lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(a.Palette.Text)
	if a.LargeText() {
		s = s.Bold(true)
	}
	return s
}

// AccessoryStyle is the secondary text style.
func (a Appearance) AccessoryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Muted)
}

// DisabledStyle renders disabled content.
func (a Appearance) DisabledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Disabled)
}

// OnStyle renders an enabled switch that is on, or a checkmark.
func (a Appearance) OnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Success).Bold(true)
}

// DestructiveStyle renders delete affordances.
func (a Appearance) DestructiveStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Error)
}

// HeaderStyle renders section headers.
func (a Appearance) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Primary).Bold(true)
}

// FooterStyle renders section footers.
func (a Appearance) FooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(a.Palette.Muted).Italic(true)
}

// SelectedStyle renders the row under the cursor.
func (a Appearance) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(a.Palette.Highlight)
}

// ToastStyle renders transient confirmations.
func (a Appearance) ToastStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(a.Palette.Warning).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.Palette.Warning).
		Padding(0, 1)
}

// Provider is queried synchronously whenever a row is built.
type Provider interface {
	Appearance() Appearance
}

// Static is a provider whose appearance only changes through Set.
type Static struct {
	mu sync.RWMutex
	a  Appearance
}

// NewStatic creates a static provider.
func NewStatic(a Appearance) *Static {
	return &Static{a: a}
}

// Appearance implements Provider.
func (s *Static) Appearance() Appearance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.a
}

// Set replaces the appearance. Already built rows keep the old one.
func (s *Static) Set(a Appearance) {
	s.mu.Lock()
	s.a = a
	s.mu.Unlock()
}

// Preferences is the provider driven by user settings. In auto mode the
// terminal background is queried on every call.
type Preferences struct {
	mu       sync.RWMutex
	mode     Mode
	scale    int
	detectBG func() bool
}

// NewPreferences creates a provider for the given mode and text scale.
func NewPreferences(mode Mode, scale int) *Preferences {
	return &Preferences{mode: mode, scale: scale, detectBG: lipgloss.HasDarkBackground}
}

// SetMode changes the scheme preference.
func (p *Preferences) SetMode(mode Mode) {
	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()
}

// Mode returns the scheme preference.
func (p *Preferences) Mode() Mode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// SetTextScale changes the text scale preference.
func (p *Preferences) SetTextScale(scale int) {
	p.mu.Lock()
	p.scale = scale
	p.mu.Unlock()
}

// TextScale returns the text scale preference.
func (p *Preferences) TextScale() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scale
}

// Appearance implements Provider.
func (p *Preferences) Appearance() Appearance {
	p.mu.RLock()
	mode, scale, detect := p.mode, p.scale, p.detectBG
	p.mu.RUnlock()

	var dark bool
	switch mode {
	case ModeDark:
		dark = true
	case ModeLight:
		dark = false
	default:
		dark = detect()
	}
	return NewAppearance(dark, scale)
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
