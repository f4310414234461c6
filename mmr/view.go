package mmr

// View is a read only window onto the first Size leaves of a range. Every
// answer a View gives is fixed by its size: appending to the range after the
// view is made changes none of them.
//
// A View holds the layers of the range as they were when it was made, so it
// can be queried while the range grows. The peaks, and the merkle tree over
// the peaks, are computed on first use and cached, so a single View is not
// safe for concurrent use.
type View struct {
	hasher   Hasher
	hashType HashType

	// sizes[h] is the node count of layer h within the view
	sizes []uint64
	// layers[h] is layer h of the range cut to sizes[h]
	layers [][]Node

	cache peakCache
}

type peakCache struct {
	computed bool
	peaks    []Node
	// layers[0] is the peak hashes, highest peak first, each further layer
	// pairs the one below it with an odd trailing node passed up unchanged.
	layers [][]Hash
}

// NewView pins a view of the first size leaves of m. A size of 0, or one
// larger than the range, views the range as it is now.
func NewView(m *MerkleMountainRange, size uint64) *View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if current := uint64(len(m.layer0)); size == 0 || size > current {
		size = current
	}
	v := &View{hasher: m.hasher, hashType: m.hashType}
	for h, n := 0, size; n > 0; h, n = h+1, n>>1 {
		v.sizes = append(v.sizes, n)
		v.layers = append(v.layers, m.layer(h)[:n:n])
	}
	return v
}

// Size is the number of leaves in the view.
func (v *View) Size() uint64 {
	if len(v.sizes) == 0 {
		return 0
	}
	return v.sizes[0]
}

// LayerSizes returns the node count of each layer in the view, leaves first.
func (v *View) LayerSizes() []uint64 {
	return append([]uint64(nil), v.sizes...)
}

// CalcPeaks computes, once, the peaks of the view and the merkle layers over
// them. Height h has a peak when it is the top layer or the view holds an odd
// number of nodes at h. Peaks are ordered highest first.
func (v *View) CalcPeaks() []Node {
	if v.cache.computed {
		return v.cache.peaks
	}
	var peaks []Node
	for h := len(v.sizes) - 1; h >= 0; h-- {
		if h == len(v.sizes)-1 || v.sizes[h]&1 == 1 {
			peaks = append(peaks, v.layers[h][v.sizes[h]-1])
		}
	}

	hashes := make([]Hash, len(peaks))
	for i, p := range peaks {
		hashes[i] = p.Hash
	}
	layers := [][]Hash{hashes}
	for cur := hashes; len(cur) > 1; {
		next := make([]Hash, 0, (len(cur)+1)/2)
		for i := 0; i+1 < len(cur); i += 2 {
			next = append(next, HashPair(v.hasher, cur[i], cur[i+1]))
		}
		if len(cur)&1 == 1 {
			next = append(next, cur[len(cur)-1])
		}
		layers = append(layers, next)
		cur = next
	}

	v.cache = peakCache{computed: true, peaks: peaks, layers: layers}
	return peaks
}

// GetPeaks returns a copy of the peaks, highest first.
func (v *View) GetPeaks() []Node {
	return append([]Node(nil), v.CalcPeaks()...)
}

// GetRoot returns the root of the merkle tree over the peaks. The root of an
// empty view is the zero hash and the root of a single peak is the peak.
func (v *View) GetRoot() Hash {
	if v.Size() == 0 {
		return ZeroHash
	}
	v.CalcPeaks()
	top := v.cache.layers[len(v.cache.layers)-1]
	return top[0]
}

// GetBranch returns the sibling hashes proving the leaf at pos against the
// view root. The branch Index is pos. It returns false if pos is not in the
// view.
//
// The branch climbs the leaf's mountain to its peak, then continues through
// the merkle tree over the peaks. At each step the sibling is on the left
// when the node index is odd and on the right otherwise. A node that is the
// unpaired last entry of a peak layer has no sibling at that step.
func (v *View) GetBranch(pos uint64) (*Branch, bool) {
	size := v.Size()
	if pos >= size {
		return nil, false
	}
	v.CalcPeaks()

	b := &Branch{
		Type:  v.hashType,
		Index: pos,
		Size:  size,
	}
	p := pos
	for h, layer := range v.layers {
		switch {
		case p&1 == 1:
			b.Hashes = append(b.Hashes, layer[p-1].Hash)
			p >>= 1
		case v.sizes[h] > p+1:
			b.Hashes = append(b.Hashes, layer[p+1].Hash)
			p >>= 1
		default:
			// p is the peak of its mountain
			pk := uint64(PeakIndex(size, h))
			for _, ml := range v.cache.layers {
				n := uint64(len(ml))
				if n <= 1 {
					break
				}
				if pk&1 == 1 {
					b.Hashes = append(b.Hashes, ml[pk-1])
				} else if pk < n-1 {
					b.Hashes = append(b.Hashes, ml[pk+1])
				}
				pk >>= 1
			}
			return b, true
		}
	}
	return b, true
}

// GetProof wraps the branch for pos in a single branch Proof.
func (v *View) GetProof(pos uint64) (*Proof, bool) {
	b, ok := v.GetBranch(pos)
	if !ok {
		return nil, false
	}
	return &Proof{Branches: []Branch{*b}}, true
}
