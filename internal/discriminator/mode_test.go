package discriminator

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/tablekit/internal/theme"
)

func TestInitialMode(t *testing.T) {
	if got := NewMachine("").Mode(); got != Empty() {
		t.Errorf("NewMachine(\"\").Mode() = %v, want empty", got)
	}
	m := NewMachine("07")
	if got := m.Mode(); got != Value("07") {
		t.Errorf("NewMachine(07).Mode() = %v, want value(07)", got)
	}
	if v, ok := m.LastKnownGoodValue(); !ok || v != "07" {
		t.Errorf("LastKnownGoodValue() = %q, %v", v, ok)
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
		event func(m *Machine)
		want  Mode
	}{
		{
			name:  "begin after confirmed value",
			setup: func(m *Machine) { m.Confirm("42") },
			event: (*Machine).BeginPendingOperation,
			want:  SpinningWithValue("42"),
		},
		{
			name:  "begin after cleared value",
			setup: func(m *Machine) { m.Confirm("") },
			event: (*Machine).BeginPendingOperation,
			want:  Spinning(),
		},
		{
			name:  "failure after confirmed value",
			setup: func(m *Machine) { m.Confirm("42") },
			event: (*Machine).ReportFailure,
			want:  Value("42"),
		},
		{
			name:  "failure after cleared value",
			setup: func(m *Machine) { m.Confirm("") },
			event: (*Machine).ReportFailure,
			want:  Empty(),
		},
		{
			name: "failure while spinning keeps last good value",
			setup: func(m *Machine) {
				m.Confirm("42")
				m.BeginPendingOperation()
			},
			event: (*Machine).ReportFailure,
			want:  Value("42"),
		},
		{
			name:  "confirm while spinning",
			setup: (*Machine).BeginPendingOperation,
			event: func(m *Machine) { m.Confirm("13") },
			want:  Value("13"),
		},
		{
			name:  "confirm empty clears",
			setup: func(m *Machine) { m.Confirm("42") },
			event: func(m *Machine) { m.Confirm("") },
			want:  Empty(),
		},
		{
			name:  "begin twice",
			setup: (*Machine).BeginPendingOperation,
			event: (*Machine).BeginPendingOperation,
			want:  Spinning(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine("")
			tt.setup(m)
			tt.event(m)
			if got := m.Mode(); got != tt.want {
				t.Errorf("Mode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	once := NewMachine("")
	once.Confirm("42")

	twice := NewMachine("")
	twice.Confirm("42")
	twice.Confirm("42")

	if once.Mode() != twice.Mode() {
		t.Errorf("modes differ: %v vs %v", once.Mode(), twice.Mode())
	}
	a, aok := once.LastKnownGoodValue()
	b, bok := twice.LastKnownGoodValue()
	if a != b || aok != bok {
		t.Errorf("last good differs: %q/%v vs %q/%v", a, aok, b, bok)
	}
}

func TestConfirmEmptyForgetsLastGood(t *testing.T) {
	m := NewMachine("42")
	m.Confirm("")
	if _, ok := m.LastKnownGoodValue(); ok {
		t.Error("Confirm(\"\") should clear the last good value")
	}
	m.BeginPendingOperation()
	if m.Mode() != Spinning() {
		t.Errorf("Mode() = %v, want spinning", m.Mode())
	}
}

func TestOnChange(t *testing.T) {
	m := NewMachine("")
	var seen []Mode
	m.OnChange(func(mode Mode) { seen = append(seen, mode) })

	m.BeginPendingOperation()
	m.Confirm("42")

	if len(seen) != 2 || seen[0] != Spinning() || seen[1] != Value("42") {
		t.Errorf("seen = %v", seen)
	}
}

func TestModeString(t *testing.T) {
	if got := SpinningWithValue("42").String(); got != "spinning_with_value(42)" {
		t.Errorf("String() = %q", got)
	}
	if got := Empty().String(); got != "empty" {
		t.Errorf("String() = %q", got)
	}
}

func TestWidgetView(t *testing.T) {
	w := New("", theme.NewStatic(theme.NewAppearance(true, 1)))

	if w.View() != "" {
		t.Errorf("empty widget View() = %q", w.View())
	}
	if w.TickCmd() != nil {
		t.Error("idle widget should not tick")
	}

	w.Confirm("42")
	if got := ansi.Strip(w.View()); got != ".42" {
		t.Errorf("value View() = %q, want .42", got)
	}

	w.BeginPendingOperation()
	if got := ansi.Strip(w.View()); !strings.HasPrefix(got, ".42 ") {
		t.Errorf("spinning View() = %q, want the last value and a spinner", got)
	}
	if w.TickCmd() == nil {
		t.Error("spinning widget should tick")
	}
}

func TestWidgetDropsTicksWhenIdle(t *testing.T) {
	w := New("42", nil)
	if cmd := w.Update(spinner.TickMsg{}); cmd != nil {
		t.Error("idle widget should drop spinner ticks")
	}
	if w.Mode() != Value("42") {
		t.Errorf("ticks must not change the mode, got %v", w.Mode())
	}
}
