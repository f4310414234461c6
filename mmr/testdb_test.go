package mmr

import (
	"encoding/binary"
	"testing"

	"github.com/minio/sha256-simd"
)

// newCanonicalRange returns a sha256 range of n leaves where leaf i is
// hashNum(i).
//
// Any range of fewer leaves is a prefix of this one, tests that want a
// smaller tree can view it at the size they need.
func newCanonicalRange(t *testing.T, n uint64) *MerkleMountainRange {
	t.Helper()
	m, err := NewWithHashType(HashTypeSHA256)
	if err != nil {
		t.Fatalf("new range: %v", err)
	}
	for i := uint64(0); i < n; i++ {
		if got := m.AddHash(hashNum(i)); got != i {
			t.Fatalf("leaf %d added at %d", i, got)
		}
	}
	return m
}

func hashNum(num uint64) Hash {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, num)
	return sha256.Sum256(b)
}

// H returns H(left || right) with sha256
func H(left, right Hash) Hash {
	return HashPair(sha256.New, left, right)
}

// subtree returns the root of the perfect tree over leaves [first, first+count)
func subtree(first, count uint64) Hash {
	if count == 1 {
		return hashNum(first)
	}
	half := count / 2
	return H(subtree(first, half), subtree(first+half, half))
}
