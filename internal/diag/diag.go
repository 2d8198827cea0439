// Package diag is the programmer-error channel for the list engine.
//
// Reports never crash and never reach callers as errors. By default they are
// written to the logging package at debug level, which is silent unless
// logging is enabled. Tests and debug builds can install their own sink or
// turn on strict mode to make reports panic.
package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/tablekit/internal/logging"
)

// Sink receives programmer-error reports.
type Sink func(msg string, fields ...zap.Field)

var (
	mu     sync.RWMutex
	sink   Sink = logSink
	strict bool
)

func logSink(msg string, fields ...zap.Field) {
	logging.Debug("assertion failed: "+msg, fields...)
}

// SetSink installs s as the report sink and returns a function restoring the
// previous one. A nil sink restores the logging sink.
func SetSink(s Sink) (restore func()) {
	if s == nil {
		s = logSink
	}
	mu.Lock()
	prev := sink
	sink = s
	mu.Unlock()
	return func() {
		mu.Lock()
		sink = prev
		mu.Unlock()
	}
}

// SetStrict makes every report panic after reaching the sink.
func SetStrict(on bool) {
	mu.Lock()
	strict = on
	mu.Unlock()
}

// Report records a programmer error.
func Report(msg string, fields ...zap.Field) {
	mu.RLock()
	s, panicking := sink, strict
	mu.RUnlock()

	s(msg, fields...)
	if panicking {
		panic(fmt.Sprintf("diag: %s", msg))
	}
}

// Assert reports msg when cond is false and returns cond.
func Assert(cond bool, msg string, fields ...zap.Field) bool {
	if !cond {
		Report(msg, fields...)
	}
	return cond
}

// Recorder is a Sink that keeps every report, for tests.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Sink returns the recorder as a Sink.
func (r *Recorder) Sink() Sink {
	return func(msg string, _ ...zap.Field) {
		r.mu.Lock()
		r.messages = append(r.messages, msg)
		r.mu.Unlock()
	}
}

// Messages returns a copy of the recorded report messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Len returns the number of recorded reports.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}
