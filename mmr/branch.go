package mmr

import (
	"fmt"

	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// maxBranchHashes bounds a decoded branch, its proof index has one bit per
// hash.
const maxBranchHashes = 64

// Branch is the list of sibling hashes that lead from a leaf to the root of
// a view. Index is the leaf position and Size the view size, together they
// fix the concatenation order at each step (see ProofIndex).
type Branch struct {
	Type        HashType
	Index       uint64
	Size        uint64
	ExtraHashes uint8
	Hashes      []Hash
}

// SafeCheck recomputes the root from leaf. A sibling that equals the running
// hash at a left position can only come from a forged proof, for that case,
// and for no other, the zero hash is returned.
func (b *Branch) SafeCheck(hasher Hasher, leaf Hash) Hash {
	h := leaf
	idx := ProofIndex(b.Index, b.Size, b.ExtraHashes)
	for _, s := range b.Hashes {
		if idx&1 == 1 {
			if s == h {
				return ZeroHash
			}
			h = HashPair(hasher, s, h)
		} else {
			h = HashPair(hasher, h, s)
		}
		idx >>= 1
	}
	return h
}

// Check recomputes the root with the hasher named by the branch type.
func (b *Branch) Check(leaf Hash) (Hash, error) {
	if err := CheckHashType(b.Type); err != nil {
		return ZeroHash, ierrors.Wrap(ErrBranchType, err.Error())
	}
	return b.SafeCheck(b.Type.Hasher(), leaf), nil
}

// ByteLength is the exact encoded length of the branch.
func (b *Branch) ByteLength() int {
	return 1 + wire.VarIntLen(b.Index) + wire.VarIntLen(b.Size) + 1 +
		wire.VectorLen(len(b.Hashes), HashLen)
}

func (b *Branch) MarshalBinary() ([]byte, error) {
	w := wire.NewWriter(b.ByteLength())
	b.Encode(w)
	return w.Finish()
}

func (b *Branch) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)
	if err := b.Decode(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ierrors.Wrapf(wire.ErrMalformed, "%d trailing bytes after branch", r.Remaining())
	}
	return nil
}

// Encode writes type u8 | varint index | varint size | extra u8 | hashes.
func (b *Branch) Encode(w *wire.Writer) {
	w.WriteUint8(uint8(b.Type))
	w.WriteVarInt(b.Index)
	w.WriteVarInt(b.Size)
	w.WriteUint8(b.ExtraHashes)
	w.WriteCompactSize(uint64(len(b.Hashes)))
	for _, h := range b.Hashes {
		w.WriteSlice(h[:])
	}
}

func (b *Branch) Decode(r *wire.Reader) error {
	t, err := r.ReadUint8()
	if err != nil {
		return ierrors.Wrap(err, "branch type")
	}
	if b.Index, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "branch index")
	}
	if b.Size, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "branch size")
	}
	if b.ExtraHashes, err = r.ReadUint8(); err != nil {
		return ierrors.Wrap(err, "branch extra hashes")
	}
	hashes, err := r.ReadVector(HashLen)
	if err != nil {
		return ierrors.Wrap(err, "branch hashes")
	}
	if len(hashes) > maxBranchHashes {
		return ierrors.Wrapf(ErrBranchTooLong, "%d hashes", len(hashes))
	}
	b.Type = HashType(t)
	b.Hashes = make([]Hash, len(hashes))
	for i, h := range hashes {
		if b.Hashes[i], err = HashFromBytes(h); err != nil {
			return ierrors.Wrapf(err, "branch hash %d", i)
		}
	}
	return nil
}

func (b *Branch) String() string {
	return fmt.Sprintf("%s index=%d size=%d [%s]", b.Type, b.Index, b.Size, hashesString(b.Hashes, ", "))
}
