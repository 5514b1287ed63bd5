package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeAndReadAt(t *testing.T) {
	payload := []byte("0123456789")
	recs := []rawRec{{name: "FOO", offset: headerSize, size: 10}}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, payload, recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	size, err := a.Size("/FOO")
	require.NoError(t, err)
	require.Equal(t, uint32(10), size)

	buf := make([]byte, 4)
	n, err := a.ReadAt("/FOO", buf, 3)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("3456"), buf)
}

func TestReadAtPastEndReturnsZero(t *testing.T) {
	recs := []rawRec{{name: "FOO", offset: headerSize, size: 4}}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, []byte("abcd"), recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	buf := make([]byte, 4)
	n, err := a.ReadAt("/FOO", buf, 10)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestReadAtShortNearEndIsTruncated(t *testing.T) {
	recs := []rawRec{{name: "FOO", offset: headerSize, size: 4}}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, []byte("abcd"), recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	buf := make([]byte, 10)
	n, err := a.ReadAt("/FOO", buf, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte("cd"), buf[:n])
}

func TestSizeOnDirectoryIsWrongKind(t *testing.T) {
	recs := []rawRec{{name: "DR_START"}, {name: "DR_END"}}
	path := buildArchive(t, [4]byte{'I', 'W', 'A', 'D'}, nil, recs)

	a, err := Load(path)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Size("/DR")
	require.Error(t, err)
	ae, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, CodeWrongKind, ae.Code)
}
