package availability

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/muurk/tablekit/internal/logging"
)

// Shared collapses concurrent checks of the same username into one call to
// the wrapped checker.
type Shared struct {
	checker Checker
	group   singleflight.Group
}

// NewShared wraps checker.
func NewShared(checker Checker) *Shared {
	return &Shared{checker: checker}
}

// Check implements Checker. The underlying call is bounded by checkTimeout
// rather than by any single caller's context; each caller still returns as
// soon as its own context ends.
func (s *Shared) Check(ctx context.Context, username string) (Result, error) {
	key := strings.ToLower(strings.TrimSpace(username))

	ch := s.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), checkTimeout)
		defer cancel()
		return s.checker.Check(callCtx, username)
	})

	select {
	case res := <-ch:
		if res.Shared {
			logging.Debug("Shared availability result", zap.String("username", key))
		}
		result, _ := res.Val.(Result)
		return result, res.Err
	case <-ctx.Done():
		return Result{}, &CheckError{Kind: ErrKindCanceled, Message: "check canceled", Err: ctx.Err(), Retryable: true}
	}
}

// Unwrap returns the wrapped checker.
func (s *Shared) Unwrap() Checker {
	return s.checker
}

// Close closes the wrapped checker if it holds resources.
func (s *Shared) Close() error {
	if c, ok := s.checker.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
