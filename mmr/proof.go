package mmr

import (
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// Proof chains branches: the root proven by each branch is the leaf of the
// next. A proof from a single View has one branch.
type Proof struct {
	Branches []Branch
}

// Check runs leaf through every branch with hasher and returns the final
// root. Any degenerate branch yields the zero hash.
func (p *Proof) Check(hasher Hasher, leaf Hash) Hash {
	h := leaf
	for i := range p.Branches {
		h = p.Branches[i].SafeCheck(hasher, h)
		if h.IsZero() {
			return ZeroHash
		}
	}
	return h
}

// Verify reports whether leaf is proven against root.
func (p *Proof) Verify(hasher Hasher, leaf, root Hash) bool {
	if len(p.Branches) == 0 || root.IsZero() {
		return false
	}
	return p.Check(hasher, leaf) == root
}

func (p *Proof) ByteLength() int {
	n := wire.CompactSizeLen(uint64(len(p.Branches)))
	for i := range p.Branches {
		n += p.Branches[i].ByteLength()
	}
	return n
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	w := wire.NewWriter(p.ByteLength())
	p.Encode(w)
	return w.Finish()
}

func (p *Proof) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)
	if err := p.Decode(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ierrors.Wrapf(wire.ErrMalformed, "%d trailing bytes after proof", r.Remaining())
	}
	return nil
}

// Encode writes a compactsize count followed by each branch.
func (p *Proof) Encode(w *wire.Writer) {
	w.WriteCompactSize(uint64(len(p.Branches)))
	for i := range p.Branches {
		p.Branches[i].Encode(w)
	}
}

func (p *Proof) Decode(r *wire.Reader) error {
	n, err := r.ReadLength()
	if err != nil {
		return ierrors.Wrap(err, "proof branch count")
	}
	p.Branches = make([]Branch, n)
	for i := range p.Branches {
		if err := p.Branches[i].Decode(r); err != nil {
			return ierrors.Wrapf(err, "proof branch %d", i)
		}
	}
	return nil
}

func (p *Proof) String() string {
	paths := make([][]Hash, len(p.Branches))
	for i := range p.Branches {
		paths[i] = p.Branches[i].Hashes
	}
	return hashPathsString(paths, ", ")
}
