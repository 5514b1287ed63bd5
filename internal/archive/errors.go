package archive

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies the taxonomy of errors the engine surfaces to callers.
// It mirrors the W64F status-byte idea from the teacher's remote protocol,
// scoped down to the handful of outcomes this local engine actually has.
type Code int

const (
	// CodeNotFound means a path did not resolve to any entry.
	CodeNotFound Code = iota
	// CodeWrongKind means a content entry was expected where a directory
	// resolved, or vice versa.
	CodeWrongKind
	// CodeExists means a mutation's target path already exists.
	CodeExists
	// CodeInvalidName means a leaf/directory name failed validation
	// (empty, too long, or the file-creation map-header guard).
	CodeInvalidName
	// CodeIO means the archive file could not be read or written.
	CodeIO
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "not-found"
	case CodeWrongKind:
		return "wrong-kind"
	case CodeExists:
		return "exists"
	case CodeInvalidName:
		return "invalid-name"
	case CodeIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the engine's error type. Callers that care about the taxonomy
// should switch on Code via AsError; callers that just want a message can
// treat it like any other error.
type Error struct {
	Code Code
	Path string
	msg  string
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

func newErr(code Code, path, msg string) *Error {
	return &Error{Code: code, Path: path, msg: msg}
}

// AsError reports whether err is (or wraps, via pkg/errors) an *Error,
// returning it if so.
func AsError(err error) (*Error, bool) {
	ae, ok := errors.Cause(err).(*Error)
	return ae, ok
}
