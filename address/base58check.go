package address

import (
	"bytes"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/mr-tron/base58"
)

// Address version bytes.
const (
	PubKeyHashVersion byte = 60  // R...
	ScriptVersion     byte = 85  // b...
	IdentityVersion   byte = 102 // i...
)

const checksumLen = 4

// Encode returns the base58check address version || hash || checksum.
func Encode(version byte, h Hash160) string {
	b := make([]byte, 0, 1+Hash160Len+checksumLen)
	b = append(b, version)
	b = append(b, h[:]...)
	sum := sha256d(b)
	b = append(b, sum[:checksumLen]...)
	return base58.Encode(b)
}

// Decode parses a base58check address, returning its version and hash.
func Decode(s string) (byte, Hash160, error) {
	var h Hash160
	b, err := base58.Decode(s)
	if err != nil {
		return 0, h, ierrors.Wrapf(ErrBase58, "%q: %v", s, err)
	}
	if len(b) != 1+Hash160Len+checksumLen {
		return 0, h, ierrors.Wrapf(ErrPayloadLength, "%q decodes to %d bytes", s, len(b))
	}
	body := b[:1+Hash160Len]
	sum := sha256d(body)
	if !bytes.Equal(sum[:checksumLen], b[1+Hash160Len:]) {
		return 0, h, ierrors.Wrapf(ErrChecksum, "%q", s)
	}
	copy(h[:], body[1:])
	return body[0], h, nil
}

// ParseID decodes an identity (i-address) string.
func ParseID(s string) (Hash160, error) {
	v, h, err := Decode(s)
	if err != nil {
		return h, err
	}
	if v != IdentityVersion {
		return Hash160{}, ierrors.Wrapf(ErrVersion, "%q has version %d, want %d", s, v, IdentityVersion)
	}
	return h, nil
}

// MustParseID is ParseID for literals known to be valid.
func MustParseID(s string) Hash160 {
	h, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return h
}
