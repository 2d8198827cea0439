package table

import (
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/diag"
	"github.com/muurk/tablekit/internal/logging"
	"github.com/muurk/tablekit/internal/pasteboard"
	"github.com/muurk/tablekit/internal/screen"
	"github.com/muurk/tablekit/internal/theme"
)

// CopiedToastText is shown after a copy row writes to the pasteboard.
const CopiedToastText = "Copied to clipboard"

// Env is what pre-packaged rows read while they are built or tapped.
type Env struct {
	Theme      theme.Provider
	Pasteboard pasteboard.Writer
	Screens    screen.ForegroundLookup
}

// Factory builds the pre-packaged row items.
type Factory struct {
	env Env
}

// NewFactory creates a factory over env.
func NewFactory(env Env) *Factory {
	return &Factory{env: env}
}

// cell is the primitive every pre-packaged row is built from.
type cell struct {
	text          string
	accessory     AccessoryKind
	accessoryText string
	render        func(width int) string
	disabled      bool
}

func (f *Factory) appearance() theme.Appearance {
	if f.env.Theme == nil {
		return theme.NewAppearance(true, 1)
	}
	return f.env.Theme.Appearance()
}

// buildRow applies the wrap rule between the label and the accessory text.
func (f *Factory) buildRow(c cell, icon string) *Row {
	textLines, accLines := WrapLines(c.text, c.accessoryText)
	return &Row{
		Icon:            icon,
		Text:            c.text,
		TextLines:       textLines,
		Accessory:       c.accessory,
		AccessoryText:   c.accessoryText,
		AccessoryLines:  accLines,
		AccessoryRender: c.render,
		Disabled:        c.disabled,
		Appearance:      f.appearance(),
	}
}

// item wraps a cell producer in a CustomBuilder. The producer runs on every
// materialization.
func (f *Factory) item(title string, produce func() cell, opts []ItemOption) *Item {
	var it *Item
	builder := func() *Row {
		return f.buildRow(produce(), it.icon)
	}
	all := append([]ItemOption{WithTitle(title), WithCustomBuilder(builder)}, opts...)
	it = NewItem(all...)
	return it
}

func static(c cell) func() cell {
	return func() cell { return c }
}

// Label is a plain row with optional accessory text.
func (f *Factory) Label(text, accessoryText string, opts ...ItemOption) *Item {
	kind := AccessoryNone
	if accessoryText != "" {
		kind = AccessoryText
	}
	return f.item(text, static(cell{text: text, accessory: kind, accessoryText: accessoryText}), opts)
}

// Action is a label row that runs action when tapped.
func (f *Factory) Action(text string, action func(), opts ...ItemOption) *Item {
	return f.Label(text, "", append(opts, WithTapAction(action))...)
}

// Disclosure is a row leading somewhere else, with optional value text.
func (f *Factory) Disclosure(text, accessoryText string, action func(), opts ...ItemOption) *Item {
	c := cell{text: text, accessory: AccessoryDisclosure, accessoryText: accessoryText}
	if action != nil {
		opts = append([]ItemOption{WithTapAction(action)}, opts...)
	}
	return f.item(text, static(c), opts)
}

// Checkmark is a selectable row that shows a checkmark when checked.
func (f *Factory) Checkmark(text string, checked bool, action func(), opts ...ItemOption) *Item {
	c := cell{text: text}
	if checked {
		c.accessory = AccessoryCheckmark
	}
	if action != nil {
		opts = append([]ItemOption{WithTapAction(action)}, opts...)
	}
	return f.item(text, static(c), opts)
}

// Switch is a row bound to a boolean. isOn and isEnabled are called once, the
// first time the item is materialized; later materializations of the same
// item reuse those answers, so a changed boolean only shows once the contents
// are rebuilt. A nil isEnabled means enabled. onChange receives the requested
// new value.
func (f *Factory) Switch(text string, isOn, isEnabled func() bool, onChange func(on bool), opts ...ItemOption) *Item {
	var (
		it          *Item
		once        sync.Once
		on, enabled bool
	)
	builder := func() *Row {
		once.Do(func() {
			on = isOn != nil && isOn()
			enabled = isEnabled == nil || isEnabled()
		})
		row := f.buildRow(cell{text: text, accessory: AccessorySwitch, disabled: !enabled}, it.icon)
		row.Switch = SwitchState{On: on, Enabled: enabled, OnChange: onChange}
		return row
	}
	all := append([]ItemOption{WithTitle(text), WithCustomBuilder(builder)}, opts...)
	it = NewItem(all...)
	return it
}

// Image is a row with a glyph as its accessory.
func (f *Factory) Image(text, glyph string, action func(), opts ...ItemOption) *Item {
	c := cell{text: text, accessory: AccessoryImage, accessoryText: glyph}
	if action != nil {
		opts = append([]ItemOption{WithTapAction(action)}, opts...)
	}
	return f.item(text, static(c), opts)
}

// View is a row whose accessory is drawn by render.
func (f *Factory) View(text string, render func(width int) string, action func(), opts ...ItemOption) *Item {
	c := cell{text: text, accessory: AccessoryView, render: render}
	if action != nil {
		opts = append([]ItemOption{WithTapAction(action)}, opts...)
	}
	return f.item(text, static(c), opts)
}

// CopyRow describes a row that copies a value when tapped.
type CopyRow struct {
	Title        string
	DisplayValue string
	// PasteboardValue is written instead of DisplayValue when non-empty.
	// An empty override means none: the display value is copied.
	PasteboardValue string
}

// Copy is a row showing a value that is written to the pasteboard on tap,
// followed by a toast on the foreground screen.
func (f *Factory) Copy(row CopyRow, opts ...ItemOption) *Item {
	value := row.PasteboardValue
	if value == "" {
		value = row.DisplayValue
	}
	c := cell{text: row.Title, accessory: AccessoryText, accessoryText: row.DisplayValue}
	return f.item(row.Title, static(c), append([]ItemOption{WithTapAction(func() { f.copyValue(value) })}, opts...))
}

func (f *Factory) copyValue(value string) {
	if f.env.Pasteboard == nil {
		diag.Report("copy row without pasteboard")
		return
	}
	if err := f.env.Pasteboard.WriteString(value); err != nil {
		logging.Warn("Failed to copy value", zap.Error(err))
		return
	}
	if f.env.Screens == nil {
		diag.Report("no foreground lookup for copy confirmation")
		return
	}
	s, ok := f.env.Screens.Foreground()
	if !ok {
		diag.Report("no foreground screen for copy confirmation")
		return
	}
	s.PresentToast(CopiedToastText)
}

// Pooled is a row recycled through the surface's reuse pool. configure fills
// in a reset row on every materialization.
func (f *Factory) Pooled(title, reuseID string, configure func(*Row), opts ...ItemOption) *Item {
	var it *Item
	builder := func(p Pool) *Row {
		row := p.Dequeue(reuseID)
		row.Icon = it.icon
		row.Text = title
		row.Appearance = f.appearance()
		if configure != nil {
			configure(row)
		}
		return row
	}
	it = NewItem(append([]ItemOption{WithTitle(title), WithPooledBuilder(builder)}, opts...)...)
	return it
}
