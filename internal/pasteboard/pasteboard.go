// Package pasteboard provides the clipboard-like resource copy rows write to.
package pasteboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the system clipboard is not available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// Writer is the write-only view of a pasteboard.
type Writer interface {
	WriteString(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteString implements Writer.
func (System) WriteString(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last written value in process.
type Memory struct {
	mu     sync.Mutex
	value  string
	writes int
}

// WriteString implements Writer.
func (m *Memory) WriteString(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = text
	m.writes++
	return nil
}

// Value returns the last written value.
func (m *Memory) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Writes returns how many times WriteString was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// New returns the pasteboard named by backend: "system", "memory", or empty
// for system with an in-memory fallback when the platform has no clipboard.
func New(backend string) (Writer, error) {
	switch backend {
	case "", "auto":
		if clipboard.Unsupported {
			return &Memory{}, nil
		}
		return System{}, nil
	case "system":
		if clipboard.Unsupported {
			return nil, ErrUnsupported
		}
		return System{}, nil
	case "memory":
		return &Memory{}, nil
	default:
		return nil, fmt.Errorf("unknown pasteboard backend %q", backend)
	}
}
