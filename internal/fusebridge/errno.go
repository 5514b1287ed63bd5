package fusebridge

import (
	"syscall"

	"github.com/pkg/errors"

	"github.com/tomlin-labs/archivefs/internal/archive"
)

// toErrno maps the engine's typed error taxonomy onto the syscall.Errno
// values go-fuse requires every NodeXxxx method to return (spec.md §4.6).
// Errors that were wrapped with pkg/errors (raw I/O failures) are
// unwrapped with errors.Cause before the switch.
func toErrno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	cause := errors.Cause(err)
	ae, ok := archive.AsError(cause)
	if !ok {
		return syscall.EIO
	}
	switch ae.Code {
	case archive.CodeNotFound:
		return syscall.ENOENT
	case archive.CodeExists:
		return syscall.EEXIST
	case archive.CodeWrongKind:
		return syscall.EINVAL
	case archive.CodeInvalidName:
		return syscall.ENAMETOOLONG
	case archive.CodeIO:
		return syscall.EIO
	default:
		return syscall.EIO
	}
}
