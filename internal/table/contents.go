package table

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/diag"
	"github.com/muurk/tablekit/internal/screen"
)

// IndexPath addresses a row by position.
type IndexPath struct {
	Section int
	Row     int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d,%d]", p.Section, p.Row)
}

// Contents is the root of a render pass.
type Contents struct {
	Title    string
	sections []*Section
}

// NewContents creates contents holding the given sections.
func NewContents(title string, sections ...*Section) *Contents {
	c := &Contents{Title: title}
	for _, s := range sections {
		c.AddSection(s)
	}
	return c
}

// AddSection appends s. A section that already belongs to other contents is
// not added.
func (c *Contents) AddSection(s *Section) {
	if s == nil {
		return
	}
	if s.owner != nil && s.owner != c {
		diag.Report("section already owned by other contents",
			zap.String("section", s.HeaderTitle),
			zap.String("contents", c.Title),
		)
		return
	}
	s.owner = c
	c.sections = append(c.sections, s)
}

// Sections returns the sections in order.
func (c *Contents) Sections() []*Section {
	return c.sections
}

// NumberOfSections returns the section count.
func (c *Contents) NumberOfSections() int {
	if c == nil {
		return 0
	}
	return len(c.sections)
}

// NumberOfRows returns the row count of a section, or 0 when out of range.
func (c *Contents) NumberOfRows(section int) int {
	s := c.Section(section)
	if s == nil {
		return 0
	}
	return len(s.items)
}

// TotalRows returns the row count across all sections.
func (c *Contents) TotalRows() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.sections {
		n += len(s.items)
	}
	return n
}

// Section returns the section at index, or nil.
func (c *Contents) Section(index int) *Section {
	if c == nil || index < 0 || index >= len(c.sections) {
		return nil
	}
	return c.sections[index]
}

// Item returns the item at path.
func (c *Contents) Item(path IndexPath) (*Item, bool) {
	s := c.Section(path.Section)
	if s == nil || path.Row < 0 || path.Row >= len(s.items) {
		return nil, false
	}
	return s.items[path.Row], true
}

// Release gives up ownership of every section, so they may be added to the
// contents that replaces this one. c must not be rendered afterwards.
func (c *Contents) Release() {
	if c == nil {
		return
	}
	for _, s := range c.sections {
		if s.owner == c {
			s.owner = nil
		}
	}
}

// SetOwner assigns the owning screen of every item.
func (c *Contents) SetOwner(h screen.Handle) {
	if c == nil {
		return
	}
	for _, s := range c.sections {
		for _, it := range s.items {
			it.SetOwner(h)
		}
	}
}

// Section is an ordered group of items with optional header and footer text.
type Section struct {
	HeaderTitle string
	FooterTitle string

	items []*Item
	owner *Contents
}

// NewSection creates a section.
func NewSection(header, footer string, items ...*Item) *Section {
	s := &Section{HeaderTitle: header, FooterTitle: footer}
	s.Add(items...)
	return s
}

// Add appends items, skipping nil ones.
func (s *Section) Add(items ...*Item) {
	for _, it := range items {
		if it != nil {
			s.items = append(s.items, it)
		}
	}
}

// Items returns the items in order.
func (s *Section) Items() []*Item {
	return s.items
}

// EditAction is a labeled swipe/edit affordance.
type EditAction struct {
	Label   string
	Handler func()
}

// Item describes one row. Everything except the owner is fixed once NewItem
// returns.
type Item struct {
	title        string
	icon         string
	builder      RowBuilder
	height       int
	hasHeight    bool
	tap          func()
	deleteAction *EditAction
	owner        screen.Handle
}

// ItemOption configures an Item under construction.
type ItemOption func(*Item)

// NewItem builds an item. Giving two builder options is a programmer error;
// the first builder is kept.
func NewItem(opts ...ItemOption) *Item {
	it := &Item{}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// WithTitle sets the title used by the default row.
func WithTitle(title string) ItemOption {
	return func(it *Item) { it.title = title }
}

// WithIcon sets a leading glyph.
func WithIcon(glyph string) ItemOption {
	return func(it *Item) { it.icon = glyph }
}

// WithCustomBuilder sets a builder called with no arguments.
func WithCustomBuilder(b func() *Row) ItemOption {
	return func(it *Item) { it.setBuilder(CustomBuilder(b)) }
}

// WithPooledBuilder sets a builder called with the surface's reuse pool.
func WithPooledBuilder(b func(Pool) *Row) ItemOption {
	return func(it *Item) { it.setBuilder(PooledBuilder(b)) }
}

// WithHeight fixes the row height in lines.
func WithHeight(lines int) ItemOption {
	return func(it *Item) {
		if !diag.Assert(lines > 0, "custom row height must be positive", zap.Int("height", lines)) {
			return
		}
		it.height = lines
		it.hasHeight = true
	}
}

// WithTapAction sets the action run when the row is activated.
func WithTapAction(action func()) ItemOption {
	return func(it *Item) { it.tap = action }
}

// WithScreenAction sets a tap action that needs the owning screen. The owner
// is resolved when the row is tapped, so it may be assigned after the item is
// built.
func WithScreenAction(action func(screen.Screen)) ItemOption {
	return func(it *Item) {
		if action == nil {
			return
		}
		it.tap = func() {
			s, ok := it.owner.Resolve()
			if !ok {
				diag.Report("owner screen unresolved at dispatch", zap.String("item", it.title))
				return
			}
			action(s)
		}
	}
}

// WithDeleteAction attaches a labeled delete affordance.
func WithDeleteAction(label string, handler func()) ItemOption {
	return func(it *Item) {
		if handler == nil {
			return
		}
		it.deleteAction = &EditAction{Label: label, Handler: handler}
	}
}

func (it *Item) setBuilder(b RowBuilder) {
	if it.builder != nil {
		diag.Report("row builder already set", zap.String("item", it.title))
		return
	}
	it.builder = b
}

// Title returns the item title.
func (it *Item) Title() string { return it.title }

// Icon returns the leading glyph.
func (it *Item) Icon() string { return it.icon }

// Builder returns the row builder, or nil for a title-only item.
func (it *Item) Builder() RowBuilder { return it.builder }

// CustomRowHeight returns the fixed row height if one was set.
func (it *Item) CustomRowHeight() (int, bool) { return it.height, it.hasHeight }

// TapAction returns the tap action, or nil.
func (it *Item) TapAction() func() { return it.tap }

// DeleteAction returns the delete affordance, or nil.
func (it *Item) DeleteAction() *EditAction { return it.deleteAction }

// Owner returns the owning screen handle.
func (it *Item) Owner() screen.Handle { return it.owner }

// SetOwner assigns the owning screen. This is the one field the hosting
// surface may change after construction.
func (it *Item) SetOwner(h screen.Handle) { it.owner = h }
