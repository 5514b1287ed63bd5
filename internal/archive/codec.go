package archive

import "encoding/binary"

// Fixed on-disk layout (spec.md §3, §6).
const (
	headerSize = 12
	recordSize = 16
	nameSize   = 8
)

// header is the 12-byte prefix at offset 0: a 4-byte magic tag (opaque,
// exposed verbatim), a uint32 descriptor count N, and a uint32 descriptor
// table offset D. All integers are little-endian.
type header struct {
	magic [4]byte
	n     uint32
	d     uint32
}

// decodeHeader parses the fixed 12-byte header prefix.
func decodeHeader(b []byte) (header, error) {
	var h header
	if len(b) < headerSize {
		return h, newErr(CodeIO, "", "header: need 12 bytes")
	}
	copy(h.magic[:], b[0:4])
	h.n = binary.LittleEndian.Uint32(b[4:8])
	h.d = binary.LittleEndian.Uint32(b[8:12])
	return h, nil
}

// encodeHeader is the inverse of decodeHeader.
func encodeHeader(h header) []byte {
	b := make([]byte, headerSize)
	copy(b[0:4], h.magic[:])
	binary.LittleEndian.PutUint32(b[4:8], h.n)
	binary.LittleEndian.PutUint32(b[8:12], h.d)
	return b
}

// record is one decoded 16-byte descriptor: offset, size, and the
// canonical name with its pad bytes stripped.
type record struct {
	offset uint32
	size   uint32
	name   string // canonical, pad bytes already stripped
}

// decodeRecord decodes one 16-byte descriptor record.
func decodeRecord(b []byte) (record, error) {
	var r record
	if len(b) < recordSize {
		return r, newErr(CodeIO, "", "record: need 16 bytes")
	}
	r.offset = binary.LittleEndian.Uint32(b[0:4])
	r.size = binary.LittleEndian.Uint32(b[4:8])
	r.name = decodeName(b[8:16])
	return r, nil
}

// decodeName canonicalizes an 8-byte padded descriptor name: truncate at the
// first NUL byte, then trim trailing spaces. The order matters for names
// that mix NUL and space padding and is taken from the reference
// implementation's cleanDescriptorName (see DESIGN.md, Open Question 1).
func decodeName(b []byte) string {
	n := b
	for i, c := range n {
		if c == 0 {
			n = n[:i]
			break
		}
	}
	end := len(n)
	for end > 0 && n[end-1] == ' ' {
		end--
	}
	return string(n[:end])
}

// encodeRecord encodes offset/size/canonicalName into a 16-byte record.
// canonicalName longer than 8 bytes is truncated; callers that must reject
// over-long names (the mutation engine) validate before calling this.
func encodeRecord(offset, size uint32, canonicalName string) []byte {
	b := make([]byte, recordSize)
	binary.LittleEndian.PutUint32(b[0:4], offset)
	binary.LittleEndian.PutUint32(b[4:8], size)
	nb := []byte(canonicalName)
	if len(nb) > nameSize {
		nb = nb[:nameSize]
	}
	copy(b[8:8+len(nb)], nb)
	// Remaining bytes are already zero (NUL-padded) from make().
	return b
}
