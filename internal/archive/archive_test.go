package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type rawRec struct {
	name   string
	offset uint32
	size   uint32
}

// buildArchive lays out a minimal valid archive: a 12-byte header, then the
// payload bytes verbatim, then the descriptor table, matching the layout
// persist() produces (payload, then table, then header pointing at it).
func buildArchive(t *testing.T, magic [4]byte, payload []byte, recs []rawRec) string {
	t.Helper()
	tableOffset := headerSize + len(payload)
	h := header{magic: magic, n: uint32(len(recs)), d: uint32(tableOffset)}

	buf := encodeHeader(h)
	buf = append(buf, payload...)
	for _, r := range recs {
		buf = append(buf, encodeRecord(r.offset, r.size, r.name)...)
	}

	path := filepath.Join(t.TempDir(), "test.wad")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestLoadFlatArchive(t *testing.T) {
	payload := []byte("HELLOWORLD")
	recs := []rawRec{
		{name: "FOO", offset: headerSize, size: 5},
		{name: "BAR", offset: headerSize + 5, size: 5},
	}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, payload, recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, [4]byte{'I', 'W', 'A', 'D'}, a.Magic())

	children, err := a.List("/")
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "FOO", children[0].Name())
	require.Equal(t, "BAR", children[1].Name())

	data, err := a.Read("/FOO")
	require.NoError(t, err)
	require.Equal(t, []byte("HELLO"), data)

	data, err = a.Read("/BAR")
	require.NoError(t, err)
	require.Equal(t, []byte("WORLD"), data)
}

func TestLoadNestedDirectory(t *testing.T) {
	payload := []byte("XY")
	recs := []rawRec{
		{name: "SP_START"},
		{name: "A", offset: headerSize, size: 1},
		{name: "B", offset: headerSize + 1, size: 1},
		{name: "SP_END"},
	}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, payload, recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	e, err := a.Stat("/SP")
	require.NoError(t, err)
	require.True(t, e.IsDirectory())

	children, err := a.List("/SP")
	require.NoError(t, err)
	require.Len(t, children, 2)

	data, err := a.Read("/SP/A")
	require.NoError(t, err)
	require.Equal(t, []byte("X"), data)
}

func TestLoadMapGroupTakesExactlyTenChildren(t *testing.T) {
	recs := []rawRec{{name: "E1M1"}}
	for i := 0; i < 10; i++ {
		recs = append(recs, rawRec{name: "THING"})
	}
	// An eleventh record after the map group is a sibling of the map
	// header, not an eleventh child.
	recs = append(recs, rawRec{name: "TRAILING"})

	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, nil, recs)
	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	children, err := a.List("/E1M1")
	require.NoError(t, err)
	require.Len(t, children, 10)

	root, err := a.List("/")
	require.NoError(t, err)
	require.Len(t, root, 2)
	require.Equal(t, "TRAILING", root[1].Name())
}

func TestLoadUnmatchedEndMarkerIsIgnored(t *testing.T) {
	recs := []rawRec{
		{name: "STRY_END"},
		{name: "FOO", offset: headerSize, size: 0},
	}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, nil, recs)
	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	children, err := a.List("/")
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "FOO", children[0].Name())
}

func TestStatNotFound(t *testing.T) {
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, nil, nil)
	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Stat("/missing")
	require.Error(t, err)
	ae, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, CodeNotFound, ae.Code)
}
