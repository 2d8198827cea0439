// Package availability answers whether a username can be claimed and which
// discriminator it would get.
//
// It is the asynchronous collaborator behind the username editor. Results
// reach the discriminator widget only through the editor, which confirms or
// reports failure on the widget.
package availability

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
)

// Result is the outcome of one check.
type Result struct {
	Username      string `json:"username"`
	Available     bool   `json:"available"`
	Discriminator string `json:"discriminator,omitempty"`
}

// Checker checks username availability.
type Checker interface {
	Check(ctx context.Context, username string) (Result, error)
}

// ErrorKind represents the category of a failed check
type ErrorKind int

const (
	// ErrKindInvalid indicates the username fails validation
	ErrKindInvalid ErrorKind = iota
	// ErrKindNetwork indicates the checker could not be reached
	ErrKindNetwork
	// ErrKindProtocol indicates a malformed or mismatched response
	ErrKindProtocol
	// ErrKindCanceled indicates the context ended first
	ErrKindCanceled
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalid:
		return "Invalid Username"
	case ErrKindNetwork:
		return "Network Error"
	case ErrKindProtocol:
		return "Protocol Error"
	case ErrKindCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// CheckError represents a failed availability check
type CheckError struct {
	Kind      ErrorKind
	Message   string
	Err       error
	Retryable bool
}

// Error implements the error interface
func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *CheckError) Unwrap() error {
	return e.Err
}

// ValidateUsername checks the local username rules: 3 to 32 characters of
// lowercase letters, digits and underscores, not starting with a digit.
func ValidateUsername(username string) error {
	invalid := func(msg string) error {
		return &CheckError{Kind: ErrKindInvalid, Message: msg}
	}
	if len(username) < MinUsernameLength {
		return invalid(fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return invalid(fmt.Sprintf("username must be at most %d characters", MaxUsernameLength))
	}
	if username[0] >= '0' && username[0] <= '9' {
		return invalid("username cannot start with a digit")
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return invalid(fmt.Sprintf("username cannot contain %q", r))
		}
	}
	return nil
}

// Local answers checks in process.
type Local struct {
	// Reserved names are never available.
	Reserved map[string]bool
	// Delay simulates a round trip.
	Delay time.Duration
}

// NewLocal creates a local checker with the given reserved names.
func NewLocal(reserved ...string) *Local {
	l := &Local{Reserved: make(map[string]bool)}
	for _, name := range reserved {
		l.Reserved[strings.ToLower(name)] = true
	}
	return l
}

// Check implements Checker.
func (l *Local) Check(ctx context.Context, username string) (Result, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := ValidateUsername(username); err != nil {
		return Result{}, err
	}

	if l.Delay > 0 {
		timer := time.NewTimer(l.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, &CheckError{Kind: ErrKindCanceled, Message: "check canceled", Err: ctx.Err(), Retryable: true}
		}
	}

	if l.Reserved[username] {
		return Result{Username: username, Available: false}, nil
	}
	return Result{Username: username, Available: true, Discriminator: Discriminator(username)}, nil
}

// Discriminator derives the two-digit suffix for a username, 01 to 99.
func Discriminator(username string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return fmt.Sprintf("%02d", h.Sum32()%99+1)
}
