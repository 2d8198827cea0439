// Package screen tracks the screens hosted by an application and hands out
// non-owning handles to them.
//
// Row descriptors hold a Handle to the screen that owns them. The handle
// resolves through the Registry at dispatch time, so a descriptor never keeps
// a screen alive and an unregistered screen simply stops resolving.
package screen

import "sync"

// Screen is the navigation context a row action may need.
type Screen interface {
	// ScreenTitle names the screen.
	ScreenTitle() string
	// PresentToast shows a transient confirmation on the screen.
	PresentToast(text string)
}

// Handle is a non-owning reference to a registered Screen.
// The zero Handle never resolves.
type Handle struct {
	id  uint64
	reg *Registry
}

// Resolve returns the screen behind the handle if it is still registered.
func (h Handle) Resolve() (Screen, bool) {
	if h.reg == nil || h.id == 0 {
		return nil, false
	}
	return h.reg.lookup(h.id)
}

// IsZero reports whether the handle was never assigned.
func (h Handle) IsZero() bool {
	return h.reg == nil || h.id == 0
}

// Registry owns the set of live screens and the foreground stack.
type Registry struct {
	mu      sync.Mutex
	nextID  uint64
	screens map[uint64]Screen
	stack   []uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{screens: make(map[uint64]Screen)}
}

// Register adds s and returns its handle. Registering the same screen twice
// returns two independent handles.
func (r *Registry) Register(s Screen) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.screens[r.nextID] = s
	return Handle{id: r.nextID, reg: r}
}

// Unregister removes the screen behind h. Handles to it stop resolving and it
// leaves the foreground stack.
func (r *Registry) Unregister(h Handle) {
	if h.reg != r {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.screens, h.id)
	kept := r.stack[:0]
	for _, id := range r.stack {
		if id != h.id {
			kept = append(kept, id)
		}
	}
	r.stack = kept
}

// Push makes the screen behind h the foreground screen.
func (r *Registry) Push(h Handle) {
	if h.reg != r {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.screens[h.id]; ok {
		r.stack = append(r.stack, h.id)
	}
}

// Pop removes the foreground screen from the stack and returns its handle.
// The screen itself stays registered.
func (r *Registry) Pop() (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stack) == 0 {
		return Handle{}, false
	}
	id := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return Handle{id: id, reg: r}, true
}

// Depth returns the number of screens on the foreground stack.
func (r *Registry) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Foreground returns the screen currently on top of the stack.
func (r *Registry) Foreground() (Screen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stack) == 0 {
		return nil, false
	}
	s, ok := r.screens[r.stack[len(r.stack)-1]]
	return s, ok
}

func (r *Registry) lookup(id uint64) (Screen, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.screens[id]
	return s, ok
}

// ForegroundLookup finds the screen that should receive transient
// notifications. *Registry implements it.
type ForegroundLookup interface {
	Foreground() (Screen, bool)
}
