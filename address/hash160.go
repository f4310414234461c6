// Package address encodes the 20 byte hashes that name identities, currencies
// and VDXF keys, and derives VDXF keys from their names.
package address

import (
	"bytes"
	"encoding/hex"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // ripemd160 is the address hash of the chain
)

// Hash160Len is the width of an address hash.
const Hash160Len = 20

// Hash160 is RIPEMD160(SHA256(x)) of something, typically a name or a key.
type Hash160 [Hash160Len]byte

// Hash160Of returns RIPEMD160(SHA256(data)).
func Hash160Of(data []byte) Hash160 {
	s := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(s[:])
	var h Hash160
	copy(h[:], r.Sum(nil))
	return h
}

// Hash160FromBytes copies a 20 byte slice.
func Hash160FromBytes(b []byte) (Hash160, error) {
	var h Hash160
	if len(b) != Hash160Len {
		return h, ierrors.Wrapf(ErrPayloadLength, "got %d bytes", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Hash160FromHex decodes the hash from plain (not reversed) hex.
func Hash160FromHex(s string) (Hash160, error) {
	var h Hash160
	if len(s) != 2*Hash160Len {
		return h, ierrors.Wrapf(ErrHexLength, "got %d", len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, ierrors.Wrap(err, "hash160 hex")
	}
	return h, nil
}

func (h Hash160) IsNull() bool { return h == Hash160{} }

func (h Hash160) Bytes() []byte { return bytes.Clone(h[:]) }

func (h Hash160) Hex() string { return hex.EncodeToString(h[:]) }

// String renders the hash as an identity address.
func (h Hash160) String() string { return Encode(IdentityVersion, h) }

// Compare orders hashes by their bytes.
func (h Hash160) Compare(o Hash160) int { return bytes.Compare(h[:], o[:]) }

// MarshalText renders the identity address form.
func (h Hash160) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText accepts an address of any known version.
func (h *Hash160) UnmarshalText(b []byte) error {
	_, v, err := Decode(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func sha256d(parts ...[]byte) [32]byte {
	s := sha256.New()
	for _, p := range parts {
		s.Write(p)
	}
	var first [32]byte
	s.Sum(first[:0])
	return sha256.Sum256(first[:])
}
