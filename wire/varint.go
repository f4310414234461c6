package wire

import "math"

// MaxVarIntLen is the longest VarInt encoding of a uint64.
const MaxVarIntLen = 10

// VarIntLen returns the exact number of bytes the VarInt encoding of n takes.
func VarIntLen(n uint64) int {
	l := 1
	for n > 0x7f {
		n = (n >> 7) - 1
		l++
	}
	return l
}

// PutVarInt writes the VarInt encoding of n to the front of b and returns
// the number of bytes written. b must be at least VarIntLen(n) long.
func PutVarInt(b []byte, n uint64) int {
	var tmp [MaxVarIntLen]byte
	l := 0
	for {
		tmp[l] = byte(n & 0x7f)
		if l > 0 {
			tmp[l] |= 0x80
		}
		if n <= 0x7f {
			break
		}
		n = (n >> 7) - 1
		l++
	}
	for i := 0; i <= l; i++ {
		b[i] = tmp[l-i]
	}
	return l + 1
}

// EncodeVarInt returns the VarInt encoding of n.
func EncodeVarInt(n uint64) []byte {
	b := make([]byte, VarIntLen(n))
	PutVarInt(b, n)
	return b
}

// DecodeVarInt decodes the VarInt at the front of b, returning the value and
// the number of bytes it occupied.
func DecodeVarInt(b []byte) (uint64, int, error) {
	var n uint64
	for i, c := range b {
		// the values fit 64 bits only while there is room for another 7
		if n > math.MaxUint64>>7 {
			return 0, 0, errVarIntOverflow
		}
		n = (n << 7) | uint64(c&0x7f)
		if c&0x80 == 0 {
			return n, i + 1, nil
		}
		if n == math.MaxUint64 {
			return 0, 0, errVarIntOverflow
		}
		n++
	}
	return 0, 0, ErrOutOfData
}
