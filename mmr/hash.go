package mmr

import (
	"encoding/hex"
	"hash"

	"github.com/iotaledger/hive.go/ierrors"
)

// HashLen is the width of every node hash.
const HashLen = 32

// Hash is a node value. The zero Hash is the root of the empty range and the
// result of a failed proof check.
type Hash [HashLen]byte

// ZeroHash is returned wherever there is no meaningful node.
var ZeroHash Hash

func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLen {
		return h, ierrors.Wrapf(ErrHashLength, "got %d bytes", len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) IsZero() bool { return h == ZeroHash }

func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// Node is a single entry of a layer.
type Node struct {
	Hash Hash
}

// Hasher creates the hash used to combine two nodes into their parent.
type Hasher func() hash.Hash

// HashPair returns H(left || right).
func HashPair(hasher Hasher, left, right Hash) Hash {
	h := hasher()
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
