// Package surface is the terminal rendering surface for table contents.
//
// ListModel walks a table.Contents lazily: only rows inside the visible window
// are materialized on each render pass, through a reuse pool. Printer renders
// a whole Contents once, for non-interactive output.
package surface

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/table"
	"github.com/muurk/tablekit/internal/theme"
)

const cursorMarker = "▌"

// KeyMap defines key bindings for the list
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Delete   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Delete}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultKeyMap returns the default list bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
			key.WithDisabled(),
		),
	}
}

// ListModel renders one table.Contents in a scrolling window.
type ListModel struct {
	Keys KeyMap
	Help help.Model

	contents *table.Contents
	paths    []table.IndexPath
	owner    screen.Handle

	pool         *ReusePool
	materializer table.Materializer
	dispatcher   table.Dispatcher
	theme        theme.Provider

	cursor int
	offset int
	width  int
	height int

	// rows materialized by the last render pass, by flat index
	visible     map[int]*table.Row
	lastVisible int
}

// NewListModel creates an empty list.
func NewListModel(provider theme.Provider) *ListModel {
	pool := NewReusePool()
	return &ListModel{
		Keys:         DefaultKeyMap(),
		Help:         help.New(),
		pool:         pool,
		materializer: table.Materializer{Pool: pool},
		theme:        provider,
		width:        theme.MinTerminalWidth,
		height:       10,
		visible:      make(map[int]*table.Row),
	}
}

// SetOwner sets the screen handle assigned to every item of future contents.
func (l *ListModel) SetOwner(h screen.Handle) {
	l.owner = h
	if l.contents != nil {
		l.contents.SetOwner(h)
	}
}

// SetContents replaces the whole tree. The previous contents are released and
// their rows go back to the pool. The cursor keeps its flat position when it
// still exists.
func (l *ListModel) SetContents(c *table.Contents) {
	if l.contents != nil && l.contents != c {
		l.contents.Release()
	}
	l.recycleVisible()

	l.contents = c
	l.paths = l.paths[:0]
	for s := 0; s < c.NumberOfSections(); s++ {
		for r := 0; r < c.NumberOfRows(s); r++ {
			l.paths = append(l.paths, table.IndexPath{Section: s, Row: r})
		}
	}
	if !l.owner.IsZero() {
		c.SetOwner(l.owner)
	}

	l.clampCursor()
	l.updateKeys()

	title := ""
	if c != nil {
		title = c.Title
	}
	logging.LogContentsReplaced(title, c.NumberOfSections(), len(l.paths))
}

// Contents returns the live contents.
func (l *ListModel) Contents() *table.Contents {
	return l.contents
}

// SetSize sets the rendering window.
func (l *ListModel) SetSize(width, height int) {
	if width > 0 {
		l.width = width
	}
	if height > 0 {
		l.height = height
	}
	l.Help.Width = l.width
}

// Cursor returns the index path under the cursor.
func (l *ListModel) Cursor() (table.IndexPath, bool) {
	if l.cursor < 0 || l.cursor >= len(l.paths) {
		return table.IndexPath{}, false
	}
	return l.paths[l.cursor], true
}

// SetCursor moves the cursor to path if it exists.
func (l *ListModel) SetCursor(path table.IndexPath) {
	for i, p := range l.paths {
		if p == path {
			l.cursor = i
			l.scrollToCursor()
			l.updateKeys()
			return
		}
	}
}

// Pool exposes the reuse pool.
func (l *ListModel) Pool() *ReusePool {
	return l.pool
}

// Update handles list keys. Row actions run synchronously inside Update.
func (l *ListModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, l.Keys.Up):
		l.move(-1)
	case key.Matches(keyMsg, l.Keys.Down):
		l.move(1)
	case key.Matches(keyMsg, l.Keys.Activate):
		l.Activate()
	case key.Matches(keyMsg, l.Keys.Delete):
		l.Delete()
	}
	return nil
}

// Activate runs the action of the row under the cursor, using the row as it
// was last rendered.
func (l *ListModel) Activate() bool {
	path, ok := l.Cursor()
	if !ok {
		return false
	}
	row := l.visible[l.cursor]
	if row == nil {
		row = l.materializer.Materialize(l.contents, path)
	}
	return l.dispatcher.Activate(l.contents, path, row)
}

// Delete runs the first edit action of the row under the cursor.
func (l *ListModel) Delete() bool {
	path, ok := l.Cursor()
	if !ok {
		return false
	}
	return l.dispatcher.Delete(l.contents, path)
}

// EditActions returns the edit affordances of the row under the cursor.
func (l *ListModel) EditActions() []table.EditAction {
	path, ok := l.Cursor()
	if !ok {
		return nil
	}
	return l.dispatcher.EditActions(l.contents, path)
}

func (l *ListModel) move(delta int) {
	l.cursor += delta
	l.clampCursor()
	l.scrollToCursor()
	l.updateKeys()
}

func (l *ListModel) clampCursor() {
	if l.cursor >= len(l.paths) {
		l.cursor = len(l.paths) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
}

func (l *ListModel) scrollToCursor() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.lastVisible >= l.offset && l.cursor > l.lastVisible {
		l.offset += l.cursor - l.lastVisible
	}
}

func (l *ListModel) updateKeys() {
	actions := l.EditActions()
	if len(actions) == 0 {
		l.Keys.Delete.SetEnabled(false)
		return
	}
	l.Keys.Delete.SetEnabled(true)
	l.Keys.Delete.SetHelp("d", strings.ToLower(actions[0].Label))
}

func (l *ListModel) recycleVisible() {
	for i, row := range l.visible {
		l.pool.Recycle(row)
		delete(l.visible, i)
	}
}

func (l *ListModel) appearance() theme.Appearance {
	if l.theme == nil {
		return theme.NewAppearance(true, 1)
	}
	return l.theme.Appearance()
}

// View materializes and renders the rows inside the window. Materializing
// here is deliberate: only a render pass knows which rows fit. View recycles
// the rows of the previous pass, and Activate acts on the rows this pass
// leaves behind.
func (l *ListModel) View() string {
	l.recycleVisible()
	a := l.appearance()

	if len(l.paths) == 0 {
		return a.FooterStyle().Render("  Nothing here")
	}

	var lines []string
	rowWidth := l.width - 2
	l.lastVisible = l.offset

	for i := l.offset; i < len(l.paths) && len(lines) < l.height; i++ {
		path := l.paths[i]
		section := l.contents.Section(path.Section)

		if path.Row == 0 && section.HeaderTitle != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, a.HeaderStyle().Render(strings.ToUpper(section.HeaderTitle)))
		}

		row := l.materializer.Materialize(l.contents, path)
		l.visible[i] = row

		block := row.Render(rowWidth)
		prefix := "  "
		if i == l.cursor {
			prefix = lipgloss.NewStyle().Foreground(a.Palette.Primary).Render(cursorMarker) + " "
			block = a.SelectedStyle().Width(rowWidth).Render(block)
		}
		for j, line := range strings.Split(block, "\n") {
			if j == 0 {
				lines = append(lines, prefix+line)
			} else {
				lines = append(lines, "  "+line)
			}
		}
		l.lastVisible = i

		if path.Row == len(section.Items())-1 && section.FooterTitle != "" {
			footer := a.FooterStyle().Width(rowWidth).Render(section.FooterTitle)
			for _, line := range strings.Split(footer, "\n") {
				lines = append(lines, "  "+line)
			}
		}
	}

	if len(lines) > l.height {
		lines = lines[:l.height]
		// A row cut off at the bottom is not fully visible.
		if l.lastVisible > l.offset {
			l.lastVisible--
		}
	}
	return strings.Join(lines, "\n")
}

// HelpView renders the key help for the list.
func (l *ListModel) HelpView() string {
	return l.Help.View(l.Keys)
}
