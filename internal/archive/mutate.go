package archive

import "github.com/pkg/errors"

// dirNameSize is the maximum length of a directory name created via
// CreateDirectory: a `<name>_START`/`<name>_END` bracket pair must itself
// fit within the 8-byte encoded name (spec.md §4.5 "The new directory's
// canonical name must be ≤2 characters", §6 "dirname ≤2 characters"),
// matching the original Wad.cpp's `newDirName.length() > 2` guard.
const dirNameSize = 2

// validateFileName checks a leaf (content) name against the on-disk name
// constraints (spec.md §4.5): non-empty, at most 8 bytes once encoded, and
// not matching the stricter map-header digit pattern CreateFile must
// refuse even though the parser's classifier is more permissive about it
// (classify.go, isMapHeaderPattern).
func validateFileName(name string) error {
	if name == "" {
		return newErr(CodeInvalidName, name, "empty name")
	}
	if len(name) > nameSize {
		return newErr(CodeInvalidName, name, "name exceeds 8 bytes")
	}
	if isMapHeaderPattern(name) {
		return newErr(CodeInvalidName, name, "name collides with map-group header pattern")
	}
	return nil
}

// validateDirName checks a directory name against CreateDirectory's
// stricter length limit (spec.md §4.5, §6, testable property S7).
func validateDirName(name string) error {
	if name == "" {
		return newErr(CodeInvalidName, name, "empty name")
	}
	if len(name) > dirNameSize {
		return newErr(CodeInvalidName, name, "directory name exceeds 2 bytes")
	}
	return nil
}

// resolveParent resolves and validates the parent directory for a new
// entry at normalized path p, using validate to check the leaf name
// against the caller's (CreateDirectory's or CreateFile's) own rule.
func (a *Archive) resolveParent(p string, validate func(string) error) (*Entry, string, error) {
	parentPath, leaf := splitParent(p)
	if err := validate(leaf); err != nil {
		return nil, "", err
	}
	parent, ok := a.tree.lookup(parentPath)
	if !ok {
		return nil, "", newErr(CodeNotFound, parentPath, "parent does not exist")
	}
	if !parent.IsDirectory() {
		return nil, "", newErr(CodeWrongKind, parentPath, "parent is not a directory")
	}
	return parent, leaf, nil
}

// CreateDirectory creates a new, empty directory at path (spec.md §4.4
// "create-directory"). Creating a directory that already exists is a
// silently accepted no-op; creating one where a content entry already
// exists at that path is an Exists error.
func (a *Archive) CreateDirectory(path string) (*Entry, error) {
	p := normalizePath(path)
	if existing, ok := a.tree.lookup(p); ok {
		if existing.IsDirectory() {
			return existing, nil
		}
		return nil, newErr(CodeExists, p, "a content entry already exists at this path")
	}

	parent, leaf, err := a.resolveParent(p, validateDirName)
	if err != nil {
		return nil, err
	}

	dir := &Entry{name: leaf, kind: KindDirectory}
	a.tree.attach(parent, dir)
	if err := a.persist(); err != nil {
		return nil, err
	}
	return dir, nil
}

// CreateFile creates a new, empty content entry at path (spec.md §4.4
// "create-file"). The entry carries no payload until Write is called.
// Creating a file that already exists is a silently accepted no-op;
// creating one where a directory already exists at that path is an
// Exists error.
func (a *Archive) CreateFile(path string) (*Entry, error) {
	p := normalizePath(path)
	if existing, ok := a.tree.lookup(p); ok {
		if !existing.IsDirectory() {
			return existing, nil
		}
		return nil, newErr(CodeExists, p, "a directory already exists at this path")
	}

	parent, leaf, err := a.resolveParent(p, validateFileName)
	if err != nil {
		return nil, err
	}

	leafEntry := &Entry{name: leaf, kind: KindContent}
	a.tree.attach(parent, leafEntry)
	if err := a.persist(); err != nil {
		return nil, err
	}
	return leafEntry, nil
}

// Write stores data as the payload of the content entry at path, the
// first time it is written (spec.md §4.4 "write"). A second call against
// an entry that already has a payload is a silently accepted no-op that
// returns 0, not len(data) (spec.md §4.5 "Returns length on success",
// testable property #6 / S6): the write offset carried in the original
// request has no effect once an entry's payload is fixed (see DESIGN.md,
// Open Question on write's ignored offset).
func (a *Archive) Write(path string, data []byte) (int, error) {
	p := normalizePath(path)
	e, ok := a.tree.lookup(p)
	if !ok {
		return 0, newErr(CodeNotFound, p, "no such entry")
	}
	if e.IsDirectory() {
		return 0, newErr(CodeWrongKind, p, "not a content entry")
	}
	if e.size != 0 {
		return 0, nil
	}

	info, err := a.f.Stat()
	if err != nil {
		return 0, errors.Wrap(newErr(CodeIO, p, "stat archive"), err.Error())
	}
	offset := info.Size()

	if len(data) > 0 {
		if _, err := a.f.WriteAt(data, offset); err != nil {
			return 0, errors.Wrap(newErr(CodeIO, p, "write payload"), err.Error())
		}
	}

	e.offset = uint32(offset)
	e.size = uint32(len(data))
	if err := a.persist(); err != nil {
		return 0, err
	}
	return len(data), nil
}

// persist re-serializes the whole tree and appends it as a fresh
// descriptor table past the current end of file, then rewrites the
// header to point at it. The payload region is never overwritten; the
// previous table copy is simply abandoned. Crash safety follows from the
// write order here: payload (already durable by the time persist is
// called), then table, then header — a crash before the header write
// leaves the archive exactly as it was before the mutation.
//
// One consequence of always re-deriving D from the post-mutation table's
// actual file position, rather than splicing new records into the old
// table in place: D is set to wherever the freshly re-serialized table
// actually lands (the current end of file, which on an archive whose
// table already sat at EOF is just past the old table's last record,
// old D plus 16 bytes per old record), not necessarily "the old D plus 32 bytes" the way a literal
// in-place splice of two new records would read (spec.md §4.5/S4). What
// S4 and spec.md §3's invariants actually require — N matches the table
// that was written, D still points at a valid table, every previously
// existing entry plus the new directory round-trips through reload — all
// hold; only the literal "+32" byte-delta is reinterpreted. See DESIGN.md.
func (a *Archive) persist() error {
	recs := a.tree.serialize()

	info, err := a.f.Stat()
	if err != nil {
		return errors.Wrap(newErr(CodeIO, a.path, "stat archive"), err.Error())
	}
	tableOffset := info.Size()

	table := make([]byte, 0, len(recs)*recordSize)
	for _, r := range recs {
		table = append(table, encodeRecord(r.offset, r.size, r.name)...)
	}
	if len(table) > 0 {
		if _, err := a.f.WriteAt(table, tableOffset); err != nil {
			return errors.Wrap(newErr(CodeIO, a.path, "write descriptor table"), err.Error())
		}
	}

	newHdr := header{magic: a.hdr.magic, n: uint32(len(recs)), d: uint32(tableOffset)}
	if _, err := a.f.WriteAt(encodeHeader(newHdr), 0); err != nil {
		return errors.Wrap(newErr(CodeIO, a.path, "write header"), err.Error())
	}
	a.hdr = newHdr
	return nil
}
