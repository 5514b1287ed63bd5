package archive

import (
	"strings"
)

// normalizePath canonicalizes an absolute path for path-index lookups: it
// strips a single trailing slash except for the root itself (spec.md §3,
// "Path Index" invariant). Adapted down from the teacher's
// internal/pathutil.Normalize, which additionally enforces a Windows-safe
// character set and reserved-name list that has no equivalent in this
// archive format (see DESIGN.md).
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// splitParent mirrors the original Wad::createDirectory/createFile parent
// derivation: split on the last '/', where a last-slash at index 0 means
// the parent is root.
func splitParent(normalized string) (parentPath, leaf string) {
	idx := strings.LastIndex(normalized, "/")
	if idx == 0 {
		parentPath = "/"
	} else {
		parentPath = normalized[:idx]
	}
	leaf = normalized[idx+1:]
	return parentPath, leaf
}

// fullPath computes an entry's canonical absolute path by walking parent
// pointers from the entry to the root, with a cycle guard (spec.md §4.3,
// "defensive; a well-formed tree cannot cycle") matching the original
// getFullPath's visited-set short circuit.
func fullPath(e *Entry) string {
	if e == nil || e.parent == nil {
		return "/"
	}
	segs := []string{e.name}
	visited := map[*Entry]bool{}
	cur := e.parent
	for cur != nil && cur.parent != nil {
		if visited[cur] {
			break
		}
		visited[cur] = true
		segs = append([]string{cur.name}, segs...)
		cur = cur.parent
	}
	return "/" + strings.Join(segs, "/")
}
