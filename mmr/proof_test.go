package mmr

import (
	"fmt"
	"testing"

	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/minio/sha256-simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofIndex(t *testing.T) {
	tests := []struct {
		size, pos uint64
		want      uint64
	}{
		{2, 0, 0},
		{2, 1, 0b1},
		{3, 2, 0b1},
		{5, 4, 0b1},
		{7, 5, 0b11},
		{7, 6, 0b1},
		{8, 7, 0b111},
		{11, 3, 0b11},
		{11, 8, 0b10},
		{11, 10, 0b1},
		{17, 5, 0b101},
		{17, 16, 0b1},
		{5, 5, 0},
		{5, 9, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("size %d pos %d", tt.size, tt.pos), func(t *testing.T) {
			assert.Equal(t, tt.want, ProofIndex(tt.pos, tt.size, 0))
		})
	}
}

func TestProofIndexExtraHashes(t *testing.T) {
	tests := []struct {
		size, pos uint64
		extra     uint8
		want      uint64
	}{
		// extra hashes come before the first sibling and after each one
		{2, 1, 1, 0b10},
		{3, 2, 2, 0b100},
		{7, 5, 1, 0b1010},
		{11, 8, 1, 0b1000},
		{11, 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("size %d pos %d extra %d", tt.size, tt.pos, tt.extra), func(t *testing.T) {
			assert.Equal(t, tt.want, ProofIndex(tt.pos, tt.size, tt.extra))
		})
	}
}

func TestSafeCheckExtraHashes(t *testing.T) {
	leaf, extra, sibling := hashNum(1), hashNum(50), hashNum(0)
	b := Branch{Index: 1, Size: 2, ExtraHashes: 1, Hashes: []Hash{extra, sibling}}
	assert.Equal(t, H(sibling, H(leaf, extra)), b.SafeCheck(sha256.New, leaf))
}

func TestEveryLeafProves(t *testing.T) {
	m := newCanonicalRange(t, 70)

	for size := uint64(1); size <= 70; size++ {
		v := m.View(size)
		root := v.GetRoot()
		for pos := uint64(0); pos < size; pos++ {
			p, ok := v.GetProof(pos)
			require.True(t, ok, "size %d pos %d", size, pos)
			require.Equal(t, pos, p.Branches[0].Index)
			require.Equal(t, root, p.Check(sha256.New, hashNum(pos)), "size %d pos %d", size, pos)
			require.True(t, p.Verify(sha256.New, hashNum(pos), root))
			require.False(t, p.Verify(sha256.New, hashNum(pos+1000), root))
		}
	}
}

func TestGetBranchSiblings(t *testing.T) {
	m := newCanonicalRange(t, 7)
	v := m.View(7)

	// leaf 5: its pair, then the height 2 peak across the peak tree, then
	// leaf 6 which passed through the first peak layer.
	b, ok := v.GetBranch(5)
	require.True(t, ok)
	assert.Equal(t, []Hash{hashNum(4), subtree(0, 4), hashNum(6)}, b.Hashes)
	assert.Equal(t, uint64(5), b.Index)
	assert.Equal(t, uint64(7), b.Size)
	assert.Equal(t, HashTypeSHA256, b.Type)

	// leaf 6 is a peak on its own
	b, ok = v.GetBranch(6)
	require.True(t, ok)
	assert.Equal(t, []Hash{H(subtree(0, 4), subtree(4, 2))}, b.Hashes)

	// a single leaf is its own root
	b, ok = m.View(1).GetBranch(0)
	require.True(t, ok)
	assert.Empty(t, b.Hashes)
	root, err := b.Check(hashNum(0))
	require.NoError(t, err)
	assert.Equal(t, hashNum(0), root)
}

// A branch written by another implementation carries the leaf position and
// sibling hashes only, the check derives the order from position and size.
func TestBranchFromPosition(t *testing.T) {
	m := newCanonicalRange(t, 11)
	v := m.View(11)
	root := v.GetRoot()

	for pos := uint64(0); pos < 11; pos++ {
		t.Run(fmt.Sprintf("pos %d", pos), func(t *testing.T) {
			got, ok := v.GetBranch(pos)
			require.True(t, ok)

			b := Branch{Type: HashTypeSHA256, Index: pos, Size: 11, Hashes: got.Hashes}
			data, err := b.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, byte(pos), data[1])

			var decoded Branch
			require.NoError(t, decoded.UnmarshalBinary(data))
			assert.Equal(t, *got, decoded)
			assert.Equal(t, root, decoded.SafeCheck(sha256.New, hashNum(pos)))
		})
	}
}

func TestSafeCheckRejectsDegenerateBranch(t *testing.T) {
	leaf := hashNum(1)
	b := Branch{Type: HashTypeSHA256, Index: 0b1, Size: 2, Hashes: []Hash{leaf}}
	assert.Equal(t, ZeroHash, b.SafeCheck(sha256.New, leaf))

	// the same sibling on the right is legitimate
	b.Index = 0
	assert.Equal(t, H(leaf, leaf), b.SafeCheck(sha256.New, leaf))

	p := Proof{Branches: []Branch{{Index: 1, Size: 2, Hashes: []Hash{leaf}}}}
	assert.False(t, p.Verify(sha256.New, leaf, ZeroHash))
}

func TestBranchCheckNeedsKnownType(t *testing.T) {
	b := Branch{Type: 0, Hashes: []Hash{hashNum(1)}}
	_, err := b.Check(hashNum(0))
	assert.True(t, ierrors.Is(err, ErrBranchType))
}

// The root proven by one branch is the leaf of the next.
func TestProofChainsBranches(t *testing.T) {
	inner := newCanonicalRange(t, 9)
	innerRoot := inner.View(0).GetRoot()

	outer := newCanonicalRange(t, 4)
	outer.AddHash(innerRoot)
	outer.AddHash(hashNum(100))
	outerRoot := outer.View(0).GetRoot()

	b1, ok := inner.View(0).GetBranch(6)
	require.True(t, ok)
	b2, ok := outer.View(0).GetBranch(4)
	require.True(t, ok)

	p := Proof{Branches: []Branch{*b1, *b2}}
	assert.Equal(t, outerRoot, p.Check(sha256.New, hashNum(6)))
}

func TestBranchBinaryRoundTrip(t *testing.T) {
	m := newCanonicalRange(t, 21)
	p, ok := m.View(0).GetProof(13)
	require.True(t, ok)

	b, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, p.ByteLength(), len(b))

	var got Proof
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, *p, got)
	assert.Equal(t, m.View(0).GetRoot(), got.Check(sha256.New, hashNum(13)))

	bb, err := p.Branches[0].MarshalBinary()
	require.NoError(t, err)
	// type, varint index, varint size, extra, count
	assert.Equal(t, []byte{byte(HashTypeSHA256), 13, 21, 0, 6}, bb[:5])
	var branch Branch
	require.NoError(t, branch.UnmarshalBinary(bb))
	assert.Equal(t, p.Branches[0], branch)

	err = branch.UnmarshalBinary(append(bb, 0))
	assert.True(t, ierrors.Is(err, wire.ErrMalformed))
	err = branch.UnmarshalBinary(bb[:len(bb)-1])
	assert.True(t, ierrors.Is(err, wire.ErrOutOfData))
}

func TestBranchString(t *testing.T) {
	b := Branch{Type: HashTypeSHA256, Index: 0b10, Size: 3, Hashes: []Hash{{1}}}
	assert.Contains(t, b.String(), "sha256 index=2 size=3")
	p := Proof{Branches: []Branch{b}}
	assert.Contains(t, p.String(), "[01000000")
}
