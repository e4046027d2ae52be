// Package exitcode centralizes process exit codes for egressctl.
//
// A completed scan always exits OK, even when individual subscriptions
// failed to enumerate; only unrecoverable setup failures (no credential,
// no subscriptions, invalid config) produce a non-zero code.
package exitcode

import (
	"errors"
	"strings"

	"github.com/kjourdan1/egressctl/internal/azauth"
)

const (
	OK         = 0
	Generic    = 1
	Validation = 2
	Auth       = 3
	Azure      = 4
)

// Error carries an explicit exit code alongside the underlying cause.
type Error struct {
	Code  int
	Cause error
}

func (e *Error) Error() string {
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap attaches an exit code to err. Returns nil when err is nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Cause: err}
}

// Of resolves the exit code for an error returned by a command.
func Of(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	var authErr *azauth.AuthError
	if errors.As(err, &authErr) {
		return Auth
	}

	// Fallback: string-based classification for errors not yet wrapped with
	// typed codes. Each case here is a candidate for a typed error.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "credential") || strings.Contains(msg, "authentication"):
		return Auth
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid"):
		return Validation
	case strings.Contains(msg, "azure") || strings.Contains(msg, "arm"):
		return Azure
	default:
		return Generic
	}
}
