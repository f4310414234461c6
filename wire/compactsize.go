package wire

import (
	"encoding/binary"

	"github.com/iotaledger/hive.go/ierrors"
)

const (
	// MaxSize bounds any length or count read from the wire.
	MaxSize = 0x02000000

	compactSize16 = 0xfd
	compactSize32 = 0xfe
	compactSize64 = 0xff
)

var (
	errVarIntOverflow   = ierrors.Wrap(ErrMalformed, "varint overflows 64 bits")
	errNonCanonical     = ierrors.Wrap(ErrMalformed, "non canonical compact size")
	errCompactSizeLimit = ierrors.Wrap(ErrMalformed, "compact size exceeds the maximum size")
)

// CompactSizeLen returns the exact number of bytes the CompactSize encoding
// of n takes.
func CompactSizeLen(n uint64) int {
	switch {
	case n < compactSize16:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// VarSliceLen is the encoded length of a CompactSize prefixed byte string of
// length n.
func VarSliceLen(n int) int {
	return CompactSizeLen(uint64(n)) + n
}

// EncodeCompactSize returns the CompactSize encoding of n.
func EncodeCompactSize(n uint64) []byte {
	b := make([]byte, CompactSizeLen(n))
	PutCompactSize(b, n)
	return b
}

// PutCompactSize writes the CompactSize encoding of n to the front of b and
// returns the number of bytes written. b must be at least CompactSizeLen(n)
// long.
func PutCompactSize(b []byte, n uint64) int {
	l := CompactSizeLen(n)
	switch l {
	case 1:
		b[0] = byte(n)
	case 3:
		b[0] = compactSize16
		binary.LittleEndian.PutUint16(b[1:], uint16(n))
	case 5:
		b[0] = compactSize32
		binary.LittleEndian.PutUint32(b[1:], uint32(n))
	default:
		b[0] = compactSize64
		binary.LittleEndian.PutUint64(b[1:], n)
	}
	return l
}

// DecodeCompactSize decodes the CompactSize at the front of b, returning the
// value and the number of bytes it occupied. Encodings which are not the
// shortest possible form for their value are rejected.
func DecodeCompactSize(b []byte) (uint64, int, error) {
	r := NewReader(b)
	n, err := r.ReadCompactSize()
	if err != nil {
		return 0, 0, err
	}
	return n, r.Offset(), nil
}
