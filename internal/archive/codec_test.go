package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := header{magic: [4]byte{'I', 'W', 'A', 'D'}, n: 3, d: 128}
	got, err := decodeHeader(encodeHeader(h))
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDecodeHeaderTooShort(t *testing.T) {
	_, err := decodeHeader([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestRecordRoundTrip(t *testing.T) {
	b := encodeRecord(12, 34, "MYLUMP")
	r, err := decodeRecord(b)
	require.NoError(t, err)
	require.Equal(t, uint32(12), r.offset)
	require.Equal(t, uint32(34), r.size)
	require.Equal(t, "MYLUMP", r.name)
}

func TestDecodeNameNULThenSpaceTrim(t *testing.T) {
	// NUL at index 3, so the bytes after it are irrelevant: truncate at
	// NUL first, then trim the space at index 2 from what remains.
	raw := []byte{'A', 'B', ' ', 0, 'X', 'X', 'X', 'X'}
	require.Equal(t, "AB", decodeName(raw))
}

func TestDecodeNameFullWidthNoPadding(t *testing.T) {
	raw := []byte("ABCDEFGH")
	require.Equal(t, "ABCDEFGH", decodeName(raw))
}

func TestEncodeRecordTruncatesOverlongName(t *testing.T) {
	b := encodeRecord(0, 0, "ABCDEFGHIJ")
	r, err := decodeRecord(b)
	require.NoError(t, err)
	require.Equal(t, "ABCDEFGH", r.name)
}
