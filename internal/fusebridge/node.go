// Package fusebridge adapts the archive engine to the go-fuse v2 node
// API. It is deliberately thin: every operation resolves a path against
// the engine and translates the result, leaving all archive semantics in
// package archive.
package fusebridge

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/tomlin-labs/archivefs/internal/archive"
)

var (
	_ fs.InodeEmbedder  = (*Node)(nil)
	_ fs.NodeGetattrer  = (*Node)(nil)
	_ fs.NodeLookuper   = (*Node)(nil)
	_ fs.NodeReaddirer  = (*Node)(nil)
	_ fs.NodeOpener     = (*Node)(nil)
	_ fs.NodeReader     = (*Node)(nil)
	_ fs.NodeWriter     = (*Node)(nil)
	_ fs.NodeMkdirer    = (*Node)(nil)
	_ fs.NodeMknoder    = (*Node)(nil)
	_ fs.NodeSetattrer  = (*Node)(nil)
)

// Node is a single archive entry exposed as a FUSE inode. The root node
// carries path "/"; every other node's path is its canonical absolute
// path within the archive, resolved fresh against the engine on every
// call rather than cached, since the engine is the single source of
// truth for the tree.
type Node struct {
	fs.Inode
	arc  *archive.Archive
	path string
}

// Root returns the root node of the filesystem rooted at arc.
func Root(arc *archive.Archive) *Node {
	return &Node{arc: arc, path: "/"}
}

func join(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func attrFromEntry(e *archive.Entry, out *fuse.AttrOut) {
	if e.IsDirectory() {
		out.Mode = syscall.S_IFDIR | 0755
	} else {
		out.Mode = syscall.S_IFREG | 0644
		out.Size = uint64(e.Size())
	}
}

func stableAttr(e *archive.Entry) fs.StableAttr {
	if e.IsDirectory() {
		return fs.StableAttr{Mode: syscall.S_IFDIR}
	}
	return fs.StableAttr{Mode: syscall.S_IFREG}
}

func (n *Node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	e, err := n.arc.Stat(n.path)
	if err != nil {
		return toErrno(err)
	}
	attrFromEntry(e, out)
	return 0
}

func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	childPath := join(n.path, name)
	e, err := n.arc.Stat(childPath)
	if err != nil {
		return nil, toErrno(err)
	}
	attrFromEntry(e, &out.Attr)
	child := &Node{arc: n.arc, path: childPath}
	return n.NewInode(ctx, child, stableAttr(e)), 0
}

func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	children, err := n.arc.List(n.path)
	if err != nil {
		return nil, toErrno(err)
	}
	return newDirStream(children), 0
}

func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if _, err := n.arc.Stat(n.path); err != nil {
		return nil, 0, toErrno(err)
	}
	return nil, 0, 0
}

func (n *Node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	count, err := n.arc.ReadAt(n.path, dest, off)
	if err != nil {
		return nil, toErrno(err)
	}
	return fuse.ReadResultData(dest[:count]), 0
}

// Write stores data at the given entry. The engine only supports a
// first-time write per entry (spec.md §4.4); once an entry has a
// payload, later writes are silently accepted no-ops that report 0
// bytes written, per the engine's own first-write-only contract.
func (n *Node) Write(ctx context.Context, f fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written, err := n.arc.Write(n.path, data)
	if err != nil {
		return 0, toErrno(err)
	}
	return uint32(written), 0
}

func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	childPath := join(n.path, name)
	e, err := n.arc.CreateDirectory(childPath)
	if err != nil {
		return nil, toErrno(err)
	}
	attrFromEntry(e, &out.Attr)
	child := &Node{arc: n.arc, path: childPath}
	return n.NewInode(ctx, child, stableAttr(e)), 0
}

// Mknod only supports creating regular files; device and special nodes
// have no equivalent in the archive format.
func (n *Node) Mknod(ctx context.Context, name string, mode uint32, dev uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if mode&syscall.S_IFMT != syscall.S_IFREG {
		return nil, syscall.ENOTSUP
	}
	childPath := join(n.path, name)
	e, err := n.arc.CreateFile(childPath)
	if err != nil {
		return nil, toErrno(err)
	}
	attrFromEntry(e, &out.Attr)
	child := &Node{arc: n.arc, path: childPath}
	return n.NewInode(ctx, child, stableAttr(e)), 0
}

// Setattr acknowledges timestamp and permission changes without storing
// them: the archive format has no metadata fields for either (spec.md
// §9, Non-goals).
func (n *Node) Setattr(ctx context.Context, f fs.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	e, err := n.arc.Stat(n.path)
	if err != nil {
		return toErrno(err)
	}
	attrFromEntry(e, out)
	return 0
}
