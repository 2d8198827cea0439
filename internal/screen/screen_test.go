package screen

import "testing"

type fakeScreen struct {
	title  string
	toasts []string
}

func (f *fakeScreen) ScreenTitle() string      { return f.title }
func (f *fakeScreen) PresentToast(text string) { f.toasts = append(f.toasts, text) }

func TestZeroHandleNeverResolves(t *testing.T) {
	var h Handle
	if !h.IsZero() {
		t.Error("zero Handle should report IsZero")
	}
	if s, ok := h.Resolve(); ok || s != nil {
		t.Errorf("zero Handle resolved to %v", s)
	}
}

func TestRegisterResolveUnregister(t *testing.T) {
	reg := NewRegistry()
	settings := &fakeScreen{title: "Settings"}

	h := reg.Register(settings)
	got, ok := h.Resolve()
	if !ok || got != settings {
		t.Fatalf("Resolve() = %v, %v; want settings screen", got, ok)
	}

	reg.Unregister(h)
	if _, ok := h.Resolve(); ok {
		t.Error("handle should not resolve after Unregister")
	}
}

func TestForegroundStack(t *testing.T) {
	reg := NewRegistry()
	settings := &fakeScreen{title: "Settings"}
	username := &fakeScreen{title: "Username"}

	if _, ok := reg.Foreground(); ok {
		t.Error("empty registry should have no foreground screen")
	}

	hs := reg.Register(settings)
	hu := reg.Register(username)
	reg.Push(hs)
	reg.Push(hu)

	top, ok := reg.Foreground()
	if !ok || top != username {
		t.Fatalf("Foreground() = %v, want username", top)
	}
	if reg.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", reg.Depth())
	}

	popped, ok := reg.Pop()
	if !ok || popped != hu {
		t.Errorf("Pop() = %v, %v; want username handle", popped, ok)
	}
	top, _ = reg.Foreground()
	if top != settings {
		t.Errorf("Foreground() after Pop = %v, want settings", top)
	}

	// Popped screens stay registered.
	if _, ok := hu.Resolve(); !ok {
		t.Error("popped screen should still resolve")
	}
}

func TestUnregisterRemovesFromStack(t *testing.T) {
	reg := NewRegistry()
	h := reg.Register(&fakeScreen{title: "Settings"})
	reg.Push(h)
	reg.Unregister(h)

	if _, ok := reg.Foreground(); ok {
		t.Error("unregistered screen should leave the foreground stack")
	}
}

func TestForeignHandleIgnored(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	h := a.Register(&fakeScreen{title: "A"})

	b.Push(h)
	b.Unregister(h)

	if b.Depth() != 0 {
		t.Error("registry should ignore handles from another registry")
	}
	if _, ok := h.Resolve(); !ok {
		t.Error("foreign Unregister must not affect the owning registry")
	}
}
