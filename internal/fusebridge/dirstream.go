package fusebridge

import (
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/tomlin-labs/archivefs/internal/archive"
)

// dirStream is a DirStream over a fixed slice of children, computed once
// up front by Readdir rather than lazily, since the engine's tree is
// already fully resident in memory.
type dirStream struct {
	entries []*archive.Entry
	pos     int
}

func newDirStream(children []*archive.Entry) *dirStream {
	return &dirStream{entries: children}
}

func (d *dirStream) HasNext() bool {
	return d.pos < len(d.entries)
}

func (d *dirStream) Next() (fuse.DirEntry, syscall.Errno) {
	e := d.entries[d.pos]
	d.pos++
	mode := uint32(syscall.S_IFREG)
	if e.IsDirectory() {
		mode = syscall.S_IFDIR
	}
	return fuse.DirEntry{Name: e.Name(), Mode: mode}, 0
}

func (d *dirStream) Close() {}
