package table

import (
	"testing"

	"github.com/muurk/tablekit/internal/screen"
)

func TestSelectRunsTapAction(t *testing.T) {
	tapped := 0
	contents := NewContents("", NewSection("", "",
		NewItem(WithTitle("Tap me"), WithTapAction(func() { tapped++ })),
		NewItem(WithTitle("Inert")),
	))
	d := Dispatcher{}

	if !d.Select(contents, ip(0, 0)) || tapped != 1 {
		t.Errorf("Select should run the tap action once, tapped=%d", tapped)
	}
	if d.Select(contents, ip(0, 1)) {
		t.Error("Select on an item without action should report false")
	}
}

func TestSelectOutOfRangeReports(t *testing.T) {
	rec := recordDiag(t)
	if (Dispatcher{}).Select(NewContents(""), ip(0, 0)) {
		t.Error("out-of-range Select should not run anything")
	}
	if rec.Len() != 1 {
		t.Errorf("got %d reports, want 1", rec.Len())
	}
}

func TestScreenActionResolvesOwnerLate(t *testing.T) {
	reg := screen.NewRegistry()
	settings := &fakeScreen{title: "Settings"}
	var got screen.Screen

	it := NewItem(WithTitle("Username"), WithScreenAction(func(s screen.Screen) { got = s }))
	contents := NewContents("", NewSection("", "", it))

	// Built before the owner is known, wired up afterwards.
	contents.SetOwner(reg.Register(settings))
	Dispatcher{}.Select(contents, ip(0, 0))

	if got != settings {
		t.Errorf("action got %v, want the owning screen", got)
	}
}

func TestScreenActionWithoutOwnerIsReportedNoOp(t *testing.T) {
	rec := recordDiag(t)
	reg := screen.NewRegistry()
	called := false

	it := NewItem(WithTitle("Username"), WithScreenAction(func(screen.Screen) { called = true }))
	contents := NewContents("", NewSection("", "", it))
	d := Dispatcher{}

	d.Select(contents, ip(0, 0))
	if called || rec.Len() != 1 {
		t.Fatalf("unowned action: called=%v reports=%d", called, rec.Len())
	}

	h := reg.Register(&fakeScreen{})
	it.SetOwner(h)
	reg.Unregister(h)
	d.Select(contents, ip(0, 0))
	if called || rec.Len() != 2 {
		t.Errorf("torn down owner: called=%v reports=%d", called, rec.Len())
	}
}

func TestEditActions(t *testing.T) {
	unlinked := 0
	contents := NewContents("", NewSection("Linked devices", "",
		NewItem(WithTitle("Laptop"), WithDeleteAction("Unlink", func() { unlinked++ })),
		NewItem(WithTitle("Phone")),
	))
	d := Dispatcher{}

	actions := d.EditActions(contents, ip(0, 0))
	if len(actions) != 1 || actions[0].Label != "Unlink" {
		t.Fatalf("EditActions() = %+v", actions)
	}
	if d.EditActions(contents, ip(0, 1)) != nil {
		t.Error("item without delete action should have no edit actions")
	}

	if !d.Delete(contents, ip(0, 0)) || unlinked != 1 {
		t.Errorf("Delete should run the handler once, unlinked=%d", unlinked)
	}
	if d.Delete(contents, ip(0, 1)) {
		t.Error("Delete without action should report false")
	}
}

func TestActivate(t *testing.T) {
	te := newTestEnv()
	f := NewFactory(te.env)
	var requested []bool
	tapped := false

	contents := NewContents("", NewSection("", "",
		f.Switch("Receipts", func() bool { return true }, nil, func(on bool) { requested = append(requested, on) }),
		f.Action("Help", func() { tapped = true }),
	))
	m := Materializer{}
	d := Dispatcher{}

	sw := m.Materialize(contents, ip(0, 0))
	if !d.Activate(contents, ip(0, 0), sw) {
		t.Fatal("activating a switch should toggle it")
	}
	if len(requested) != 1 || requested[0] != false {
		t.Errorf("requested = %v, want [false]", requested)
	}

	d.Activate(contents, ip(0, 1), m.Materialize(contents, ip(0, 1)))
	if !tapped {
		t.Error("activating a label row should run its tap action")
	}
}
