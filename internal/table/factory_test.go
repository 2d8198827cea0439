package table

import (
	"errors"
	"testing"

	"github.com/muurk/tablekit/internal/theme"
)

func TestLabelAppliesWrapRule(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)

	tests := []struct {
		name          string
		text          string
		accessory     string
		wantText      int
		wantAccessory int
	}{
		{"label dominates", "Phone number", "+1", 0, 1},
		{"accessory dominates", "Name", "Jonathan Appleseed", 1, 0},
		{"tie goes to label", "same", "size", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contents := NewContents("", NewSection("", "", f.Label(tt.text, tt.accessory)))
			row := Materializer{}.Materialize(contents, ip(0, 0))
			if row.TextLines != tt.wantText || row.AccessoryLines != tt.wantAccessory {
				t.Errorf("lines = %d/%d, want %d/%d", row.TextLines, row.AccessoryLines, tt.wantText, tt.wantAccessory)
			}
			if row.Accessory != AccessoryText {
				t.Errorf("Accessory = %v, want text", row.Accessory)
			}
		})
	}
}

func TestRowsSnapshotThemeAtBuildTime(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	contents := NewContents("", NewSection("", "", f.Label("Theme", "")))
	m := Materializer{}

	before := m.Materialize(contents, ip(0, 0))
	te.theme.Set(theme.NewAppearance(false, 2))
	after := m.Materialize(contents, ip(0, 0))

	if !before.Appearance.Dark {
		t.Error("first row should keep the dark appearance it was built with")
	}
	if after.Appearance.Dark || after.Appearance.TextScale != 2 {
		t.Error("rebuilt row should see the new appearance")
	}
}

func TestSwitchEvaluatesOncePerItem(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	onCalls, enabledCalls := 0, 0
	isOn := func() bool { onCalls++; return true }
	isEnabled := func() bool { enabledCalls++; return true }

	contents := NewContents("", NewSection("", "", f.Switch("Read receipts", isOn, isEnabled, nil)))
	m := Materializer{}

	if onCalls != 0 || enabledCalls != 0 {
		t.Fatalf("isOn=%d isEnabled=%d before materialization, want 0 and 0", onCalls, enabledCalls)
	}

	row := m.Materialize(contents, ip(0, 0))
	_ = row.Render(40)
	Dispatcher{}.Toggle(row)
	m.Materialize(contents, ip(0, 0))
	m.Materialize(contents, ip(0, 0))

	if onCalls != 1 || enabledCalls != 1 {
		t.Fatalf("isOn=%d isEnabled=%d after three materializations of one item, want 1 and 1", onCalls, enabledCalls)
	}

	rebuilt := NewContents("", NewSection("", "", f.Switch("Read receipts", isOn, isEnabled, nil)))
	m.Materialize(rebuilt, ip(0, 0))
	if onCalls != 2 || enabledCalls != 2 {
		t.Errorf("isOn=%d isEnabled=%d after materializing a rebuilt item, want 2 and 2", onCalls, enabledCalls)
	}
}

func TestSwitchRowIsNotReactive(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	value := true

	build := func() *Contents {
		return NewContents("Settings", NewSection("", "",
			f.Label("Profile", ""),
			f.Label("Username", "jo.42"),
			f.Switch("Read receipts", func() bool { return value }, nil, func(on bool) { value = on }),
		))
	}
	contents := build()
	m := Materializer{}

	row := m.Materialize(contents, ip(0, 2))
	if row.Accessory != AccessorySwitch || !row.Switch.On {
		t.Fatalf("switch row should report on, got %+v", row.Switch)
	}

	value = false
	if !row.Switch.On {
		t.Error("an already materialized row must not follow the new value")
	}
	if again := m.Materialize(contents, ip(0, 2)); !again.Switch.On {
		t.Error("materializing the same contents again must still report on")
	}

	if fresh := m.Materialize(build(), ip(0, 2)); fresh.Switch.On {
		t.Error("rebuilt contents should pick up the new value")
	}
}

func TestSwitchDisabled(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	changed := false

	it := f.Switch("Typing indicators",
		func() bool { return false },
		func() bool { return false },
		func(bool) { changed = true },
	)
	row := Materializer{}.Materialize(NewContents("", NewSection("", "", it)), ip(0, 0))

	if row.Switch.Enabled || !row.Disabled {
		t.Errorf("row should be disabled, got %+v", row)
	}
	if (Dispatcher{}).Toggle(row) || changed {
		t.Error("disabled switch must not toggle")
	}
}

func TestCopyWritesDisplayValueByDefault(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	settings := &fakeScreen{title: "Settings"}
	te.registry.Push(te.registry.Register(settings))

	contents := NewContents("", NewSection("", "", f.Copy(CopyRow{Title: "Code", DisplayValue: "abc"})))
	if !(Dispatcher{}).Select(contents, ip(0, 0)) {
		t.Fatal("copy row should have a tap action")
	}

	if te.board.Value() != "abc" {
		t.Errorf("pasteboard = %q, want abc", te.board.Value())
	}
	if len(settings.toasts) != 1 || settings.toasts[0] != CopiedToastText {
		t.Errorf("toasts = %v", settings.toasts)
	}
}

func TestCopyWritesOverride(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	te.registry.Push(te.registry.Register(&fakeScreen{}))

	it := f.Copy(CopyRow{Title: "Link", DisplayValue: "abc", PasteboardValue: "https://example.org/u/abc"})
	Dispatcher{}.Select(NewContents("", NewSection("", "", it)), ip(0, 0))

	if te.board.Value() != "https://example.org/u/abc" {
		t.Errorf("pasteboard = %q, want the override", te.board.Value())
	}
}

func TestCopyEmptyOverrideCopiesDisplayValue(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	te.registry.Push(te.registry.Register(&fakeScreen{}))

	it := f.Copy(CopyRow{Title: "Code", DisplayValue: "abc", PasteboardValue: ""})
	Dispatcher{}.Select(NewContents("", NewSection("", "", it)), ip(0, 0))

	if te.board.Value() != "abc" {
		t.Errorf("pasteboard = %q, want the display value", te.board.Value())
	}
}

func TestCopyWithoutForegroundScreen(t *testing.T) {
	rec := recordDiag(t)
	te := newTestEnv()
	f := NewFactory(te.env)

	it := f.Copy(CopyRow{Title: "Code", DisplayValue: "abc"})
	Dispatcher{}.Select(NewContents("", NewSection("", "", it)), ip(0, 0))

	if te.board.Value() != "abc" {
		t.Errorf("copy should still happen, pasteboard = %q", te.board.Value())
	}
	if rec.Len() != 1 {
		t.Errorf("got %d reports, want 1", rec.Len())
	}
}

type failingBoard struct{}

func (failingBoard) WriteString(string) error { return errors.New("no display") }

func TestCopyPasteboardFailureSkipsToast(t *testing.T) {
	te := newTestEnv()
	te.env.Pasteboard = failingBoard{}
	settings := &fakeScreen{}
	te.registry.Push(te.registry.Register(settings))

	it := NewFactory(te.env).Copy(CopyRow{Title: "Code", DisplayValue: "abc"})
	Dispatcher{}.Select(NewContents("", NewSection("", "", it)), ip(0, 0))

	if len(settings.toasts) != 0 {
		t.Errorf("failed copy should not confirm, toasts = %v", settings.toasts)
	}
}

func TestCheckmarkAndDisclosure(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	opened := false

	contents := NewContents("", NewSection("", "",
		f.Checkmark("Dark", true, nil),
		f.Checkmark("Light", false, nil),
		f.Disclosure("Username", "jo.42", func() { opened = true }),
		f.Image("Status", "◉", nil, WithIcon("i")),
	))
	m := Materializer{}

	if r := m.Materialize(contents, ip(0, 0)); r.Accessory != AccessoryCheckmark {
		t.Errorf("checked row accessory = %v", r.Accessory)
	}
	if r := m.Materialize(contents, ip(0, 1)); r.Accessory != AccessoryNone {
		t.Errorf("unchecked row accessory = %v", r.Accessory)
	}
	if r := m.Materialize(contents, ip(0, 3)); r.Icon != "i" || r.AccessoryText != "◉" {
		t.Errorf("image row = %+v", r)
	}

	Dispatcher{}.Select(contents, ip(0, 2))
	if !opened {
		t.Error("disclosure tap should run its action")
	}
}

func TestPooledFactoryResetsRows(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	recycled := &Row{ReuseID: "device", Text: "stale", Accessory: AccessoryCheckmark}
	pool := poolFunc(func(id string) *Row {
		recycled.Reset()
		return recycled
	})

	it := f.Pooled("Laptop", "device", func(r *Row) {
		r.Accessory = AccessoryText
		r.AccessoryText = "active"
		r.AccessoryLines = 1
	})
	row := Materializer{Pool: pool}.Materialize(NewContents("", NewSection("", "", it)), ip(0, 0))

	if row != recycled {
		t.Error("pooled row should come from the pool")
	}
	if row.Text != "Laptop" || row.Accessory != AccessoryText || row.ReuseID != "device" {
		t.Errorf("row = %+v", row)
	}
}

func TestPooledFactoryAppliesIcon(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)

	it := f.Pooled("Laptop", "device", nil, WithIcon("●"))
	row := Materializer{}.Materialize(NewContents("", NewSection("", "", it)), ip(0, 0))

	if row.Icon != "●" {
		t.Errorf("Icon = %q, want the item icon", row.Icon)
	}
}

type poolFunc func(string) *Row

func (f poolFunc) Dequeue(id string) *Row { return f(id) }
