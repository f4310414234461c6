package wire

import (
	"encoding/hex"
	"fmt"
	"math"
	"testing"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarInt(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "00"},
		{1, "01"},
		{127, "7f"},
		{128, "8000"},
		{253, "807d"},
		{255, "807f"},
		{256, "8100"},
		{16383, "fe7f"},
		{16384, "ff00"},
		{16511, "ff7f"},
		{65535, "82fe7f"},
		{1 << 32, "8efefeff00"},
		{math.MaxUint64, "80fefefefefefefefe7f"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.n), func(t *testing.T) {
			b := EncodeVarInt(tt.n)
			assert.Equal(t, tt.want, hex.EncodeToString(b))
			assert.Equal(t, len(b), VarIntLen(tt.n))

			got, l, err := DecodeVarInt(b)
			require.NoError(t, err)
			assert.Equal(t, tt.n, got)
			assert.Equal(t, len(b), l)
		})
	}
}

func TestDecodeVarIntErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrOutOfData},
		{"truncated", "8080", ErrOutOfData},
		{"overflow", "80fefefefefefefefeff00", ErrMalformed},
		{"all continuation", "ffffffffffffffffffffff", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := hex.DecodeString(tt.data)
			_, _, err := DecodeVarInt(b)
			assert.True(t, ierrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCompactSize(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "00"},
		{127, "7f"},
		{252, "fc"},
		{253, "fdfd00"},
		{16383, "fdff3f"},
		{65535, "fdffff"},
		{65536, "fe00000100"},
		{1 << 32, "ff0000000001000000"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.n), func(t *testing.T) {
			b := EncodeCompactSize(tt.n)
			assert.Equal(t, tt.want, hex.EncodeToString(b))
			assert.Equal(t, len(b), CompactSizeLen(tt.n))

			got, l, err := DecodeCompactSize(b)
			require.NoError(t, err)
			assert.Equal(t, tt.n, got)
			assert.Equal(t, len(b), l)
		})
	}
}

func TestDecodeCompactSizeRejectsNonCanonical(t *testing.T) {
	tests := []string{
		"fd0000",
		"fdfc00",
		"feffff0000",
		"ffffffffff00000000",
	}
	for _, data := range tests {
		t.Run(data, func(t *testing.T) {
			b, _ := hex.DecodeString(data)
			_, _, err := DecodeCompactSize(b)
			assert.True(t, ierrors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestDecodeCompactSizeTruncated(t *testing.T) {
	for _, data := range []string{"", "fd", "fdff", "fe000001", "ff00000000"} {
		t.Run(data, func(t *testing.T) {
			b, _ := hex.DecodeString(data)
			_, _, err := DecodeCompactSize(b)
			assert.True(t, ierrors.Is(err, ErrOutOfData), "got %v", err)
		})
	}
}
