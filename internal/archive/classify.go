package archive

import "strings"

// kind classifies a decoded, canonical descriptor name. See spec.md §4.2.
type kind int

const (
	kindLeaf kind = iota
	kindDirStart
	kindDirEnd
	kindMapHeader
)

// classified is the result of classifying a canonical name: its kind, and
// (for dir markers) the directory name with the marker suffix stripped.
type classified struct {
	kind kind
	dir  string // valid for kindDirStart/kindDirEnd only
}

// classify implements the name classifier (spec.md §4.2). The map-header
// check only looks at the two positional letters ('E' at index 0, 'M' at
// index 2) and is intentionally more permissive than the digit-checking
// guard CreateFile applies to new leaf names (see isMapHeaderPattern and
// DESIGN.md Open Question 2); that asymmetry is preserved, not a bug.
func classify(name string) classified {
	if len(name) > 4 && strings.HasSuffix(name, "_END") {
		return classified{kind: kindDirEnd, dir: name[:len(name)-4]}
	}
	if len(name) > 6 && strings.HasSuffix(name, "_START") {
		return classified{kind: kindDirStart, dir: name[:len(name)-6]}
	}
	if len(name) == 4 && name[0] == 'E' && name[2] == 'M' {
		return classified{kind: kindMapHeader}
	}
	return classified{kind: kindLeaf}
}

// isMapHeaderPattern is the stricter guard CreateFile uses to refuse new
// leaf names that would collide with the map-header convention: it also
// requires the second and fourth characters to be ASCII digits, unlike the
// parser's classify above. See spec.md §4.2/§9.
func isMapHeaderPattern(name string) bool {
	if len(name) != 4 {
		return false
	}
	return name[0] == 'E' && name[2] == 'M' && isASCIIDigit(name[1]) && isASCIIDigit(name[3])
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
