package archive

import "github.com/pkg/errors"

// Magic returns the archive's 4-byte magic tag, passed through unexamined
// (spec.md §4.1, "opaque to the engine").
func (a *Archive) Magic() [4]byte {
	return a.hdr.magic
}

// Stat resolves path to an entry. It returns a not-found *Error if path
// does not exist.
func (a *Archive) Stat(path string) (*Entry, error) {
	e, ok := a.tree.lookup(path)
	if !ok {
		return nil, newErr(CodeNotFound, path, "no such entry")
	}
	return e, nil
}

// List returns the direct children of the directory at path, in archive
// order. It returns a wrong-kind *Error if path names a content entry.
func (a *Archive) List(path string) ([]*Entry, error) {
	e, err := a.Stat(path)
	if err != nil {
		return nil, err
	}
	if !e.IsDirectory() {
		return nil, newErr(CodeWrongKind, path, "not a directory")
	}
	return e.children, nil
}

// Size returns the byte length of the content entry at path.
func (a *Archive) Size(path string) (uint32, error) {
	e, err := a.Stat(path)
	if err != nil {
		return 0, err
	}
	if e.IsDirectory() {
		return 0, newErr(CodeWrongKind, path, "not a content entry")
	}
	return e.size, nil
}

// Read reads the full payload of the content entry at path.
func (a *Archive) Read(path string) ([]byte, error) {
	e, err := a.Stat(path)
	if err != nil {
		return nil, err
	}
	if e.IsDirectory() {
		return nil, newErr(CodeWrongKind, path, "not a content entry")
	}
	buf := make([]byte, e.size)
	if e.size > 0 {
		if _, err := a.f.ReadAt(buf, int64(e.offset)); err != nil {
			return nil, errors.Wrap(newErr(CodeIO, path, "read payload"), err.Error())
		}
	}
	return buf, nil
}

// ReadAt reads up to len(p) bytes of the content entry at path starting at
// off, returning the number of bytes read. It never errors past EOF; short
// reads at the tail of the entry are truncated rather than padded.
func (a *Archive) ReadAt(path string, p []byte, off int64) (int, error) {
	e, err := a.Stat(path)
	if err != nil {
		return 0, err
	}
	if e.IsDirectory() {
		return 0, newErr(CodeWrongKind, path, "not a content entry")
	}
	if off < 0 || off >= int64(e.size) {
		return 0, nil
	}
	remaining := int64(e.size) - off
	n := int64(len(p))
	if n > remaining {
		n = remaining
	}
	if n == 0 {
		return 0, nil
	}
	got, err := a.f.ReadAt(p[:n], int64(e.offset)+off)
	if err != nil {
		return got, errors.Wrap(newErr(CodeIO, path, "read payload"), err.Error())
	}
	return got, nil
}
