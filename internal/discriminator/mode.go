// Package discriminator implements the widget that shows the numeric suffix
// next to a username being edited.
//
// The widget is a four-state machine driven entirely from outside:
//
//	BeginPendingOperation  → SpinningWithValue(last) or Spinning
//	ReportFailure          → Value(last) or Empty
//	Confirm(v)             → Value(v), or Empty when v is empty
//
// There are no timers and no notion of which operation is in flight. Callers
// that run checks concurrently must drop stale results themselves.
package discriminator

import (
	"fmt"

	"github.com/muurk/tablekit/internal/logging"
)

// ModeKind names the visual mode.
type ModeKind int

const (
	ModeEmpty ModeKind = iota
	ModeSpinning
	ModeSpinningWithValue
	ModeValue
)

func (k ModeKind) String() string {
	switch k {
	case ModeEmpty:
		return "empty"
	case ModeSpinning:
		return "spinning"
	case ModeSpinningWithValue:
		return "spinning_with_value"
	case ModeValue:
		return "value"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Mode is the current visual mode. Value is set only for
// ModeSpinningWithValue and ModeValue.
type Mode struct {
	Kind  ModeKind
	Value string
}

// Empty is the mode with nothing shown.
func Empty() Mode { return Mode{Kind: ModeEmpty} }

// Spinning is the mode with only a spinner.
func Spinning() Mode { return Mode{Kind: ModeSpinning} }

// SpinningWithValue shows a spinner next to the last confirmed value.
func SpinningWithValue(v string) Mode { return Mode{Kind: ModeSpinningWithValue, Value: v} }

// Value shows a confirmed value.
func Value(v string) Mode { return Mode{Kind: ModeValue, Value: v} }

// IsSpinning reports whether the mode shows a spinner.
func (m Mode) IsSpinning() bool {
	return m.Kind == ModeSpinning || m.Kind == ModeSpinningWithValue
}

func (m Mode) String() string {
	if m.Kind == ModeSpinningWithValue || m.Kind == ModeValue {
		return fmt.Sprintf("%s(%s)", m.Kind, m.Value)
	}
	return m.Kind.String()
}

// Machine holds the mode and the last known good value. The empty string
// stands for "no value" everywhere.
type Machine struct {
	mode      Mode
	lastGood  string
	hasLast   bool
	onChanged func(Mode)
}

// NewMachine starts in Value(initial), or Empty when initial is empty.
func NewMachine(initial string) *Machine {
	m := &Machine{}
	if initial != "" {
		m.lastGood, m.hasLast = initial, true
		m.mode = Value(initial)
	}
	return m
}

// OnChange registers a callback run after every transition.
func (m *Machine) OnChange(fn func(Mode)) {
	m.onChanged = fn
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// LastKnownGoodValue returns the last confirmed value.
func (m *Machine) LastKnownGoodValue() (string, bool) {
	return m.lastGood, m.hasLast
}

// BeginPendingOperation shows a spinner, keeping the last good value visible
// if there is one.
func (m *Machine) BeginPendingOperation() {
	if m.hasLast {
		m.set("begin", SpinningWithValue(m.lastGood))
		return
	}
	m.set("begin", Spinning())
}

// ReportFailure falls back to the last good value, or to Empty.
func (m *Machine) ReportFailure() {
	if m.hasLast {
		m.set("failure", Value(m.lastGood))
		return
	}
	m.set("failure", Empty())
}

// Confirm records value as the last good value and shows it. An empty value
// clears the last good value.
func (m *Machine) Confirm(value string) {
	if value == "" {
		m.lastGood, m.hasLast = "", false
		m.set("confirm", Empty())
		return
	}
	m.lastGood, m.hasLast = value, true
	m.set("confirm", Value(value))
}

func (m *Machine) set(event string, next Mode) {
	prev := m.mode
	m.mode = next
	logging.LogModeTransition(event, prev.String(), next.String())
	if m.onChanged != nil {
		m.onChanged(next)
	}
}
