package table

import "github.com/muurk/tablekit/internal/theme"

// RowBuilder is either a CustomBuilder or a PooledBuilder.
type RowBuilder interface {
	strategy() string
}

// CustomBuilder returns a fully configured row on every call.
type CustomBuilder func() *Row

// PooledBuilder obtains its row from the surface's reuse pool.
type PooledBuilder func(Pool) *Row

func (CustomBuilder) strategy() string { return "custom" }
func (PooledBuilder) strategy() string { return "pooled" }

// Pool hands out recyclable rows by reuse identifier. Dequeued rows are
// already reset.
type Pool interface {
	Dequeue(reuseID string) *Row
}

// AccessoryKind is the trailing element of a row.
type AccessoryKind int

const (
	AccessoryNone AccessoryKind = iota
	AccessoryText
	AccessoryImage
	AccessoryCheckmark
	AccessoryDisclosure
	AccessorySwitch
	AccessoryView
)

func (k AccessoryKind) String() string {
	switch k {
	case AccessoryNone:
		return "none"
	case AccessoryText:
		return "text"
	case AccessoryImage:
		return "image"
	case AccessoryCheckmark:
		return "checkmark"
	case AccessoryDisclosure:
		return "disclosure"
	case AccessorySwitch:
		return "switch"
	case AccessoryView:
		return "view"
	default:
		return "unknown"
	}
}

// SwitchState is the build-time state of a switch accessory.
type SwitchState struct {
	On       bool
	Enabled  bool
	OnChange func(on bool)
}

// Row is a materialized, renderable row.
type Row struct {
	ReuseID string

	Icon string
	Text string
	// TextLines caps the primary label: 0 wraps freely, 1 truncates.
	TextLines int

	Accessory      AccessoryKind
	AccessoryText  string
	AccessoryLines int
	// AccessoryRender draws an AccessoryView within width cells.
	AccessoryRender func(width int) string

	Switch   SwitchState
	Disabled bool

	// Height fixes the row height in lines; 0 sizes to content.
	Height int

	// Appearance is the theme snapshot taken when the row was built.
	Appearance theme.Appearance
}

// Reset clears the row for reuse, keeping its reuse identifier.
func (r *Row) Reset() {
	*r = Row{ReuseID: r.ReuseID}
}

// transientPool satisfies Pool for surfaces without one: every dequeue is a
// fresh row, which makes a PooledBuilder behave like a CustomBuilder.
type transientPool struct{}

func (transientPool) Dequeue(reuseID string) *Row {
	return &Row{ReuseID: reuseID}
}
