package archive

import (
	"os"

	"github.com/pkg/errors"
)

// mapGroupSize is the fixed number of leaf descriptors a map-group header
// claims as children (spec.md §4.3, Glossary "Map group").
const mapGroupSize = 10

// Archive is the loaded, mutable in-memory model of one on-disk archive
// file (spec.md's "archive engine"). It owns the single backing file handle
// for its lifetime (spec.md §5).
type Archive struct {
	path string
	f    *os.File
	hdr  header
	tree *Tree
}

// Load opens path and parses it into an Archive, or returns a non-nil error
// if the archive cannot be opened (spec.md §6 "load(path) -> engine | null").
// The file is opened read-write per spec.md §5.
func Load(path string) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(newErr(CodeIO, path, "open archive"), err.Error())
	}
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
		}
	}()

	hb := make([]byte, headerSize)
	if _, err := f.ReadAt(hb, 0); err != nil {
		return nil, errors.Wrap(newErr(CodeIO, path, "read header"), err.Error())
	}
	hdr, err := decodeHeader(hb)
	if err != nil {
		return nil, err
	}

	recs := make([]record, 0, hdr.n)
	if hdr.n > 0 {
		buf := make([]byte, int(hdr.n)*recordSize)
		if _, err := f.ReadAt(buf, int64(hdr.d)); err != nil {
			return nil, errors.Wrap(newErr(CodeIO, path, "read descriptor table"), err.Error())
		}
		for i := 0; i < int(hdr.n); i++ {
			r, err := decodeRecord(buf[i*recordSize : (i+1)*recordSize])
			if err != nil {
				return nil, err
			}
			// An empty canonical name means the record is skipped during
			// parsing (spec.md §3 "Descriptor table").
			if r.name == "" {
				continue
			}
			recs = append(recs, r)
		}
	}

	a := &Archive{path: path, f: f, hdr: hdr, tree: buildTree(recs)}
	ok = true
	return a, nil
}

// Close releases the archive's backing file handle.
func (a *Archive) Close() error {
	return a.f.Close()
}

// buildTree implements the Tree Builder (spec.md §4.3): a single linear
// pass over descriptors in file order, tracking a directory-namespace
// stack and map-group state, transliterated from the reference
// implementation's Wad constructor loop.
func buildTree(recs []record) *Tree {
	t := newTree()
	current := t.root
	var stack []*Entry
	inMap := false
	mapCount := 0

	for _, r := range recs {
		c := classify(r.name)
		switch {
		case c.kind == kindDirStart:
			dir := &Entry{name: c.dir, kind: KindDirectory}
			t.attach(current, dir)
			stack = append(stack, current)
			current = dir

		case c.kind == kindDirEnd:
			// Unmatched _END markers are silently ignored (spec.md §4.3).
			if len(stack) > 0 {
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}

		case c.kind == kindMapHeader:
			dir := &Entry{name: r.name, kind: KindDirectory}
			t.attach(current, dir)
			// Map groups do NOT push onto the stack (spec.md §4.3).
			inMap = true
			mapCount = 0
			current = dir

		case inMap && mapCount < mapGroupSize:
			leaf := &Entry{name: r.name, kind: KindContent, offset: r.offset, size: r.size}
			t.attach(current, leaf)
			mapCount++
			if mapCount == mapGroupSize {
				current = current.parent
				inMap = false
			}

		default:
			leaf := &Entry{name: r.name, kind: KindContent, offset: r.offset, size: r.size}
			t.attach(current, leaf)
		}
	}

	return t
}
