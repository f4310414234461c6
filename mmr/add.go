package mmr

import "sync"

// MerkleMountainRange is an append only sequence of leaves together with the
// layers of interior nodes built over them.
//
// layer0 holds the leaves. upper[h-1] holds layer h, the parents of the
// nodes in layer h-1. Nodes are only ever appended, an existing node is never
// rehashed, so any prefix of the range can be viewed after later appends.
//
// A range has a single writer. Views may be made and queried while Add runs,
// each one reads only the nodes it had when it was made.
type MerkleMountainRange struct {
	hasher   Hasher
	hashType HashType

	// mu guards the layer slice headers, never the nodes below their length
	mu     sync.RWMutex
	layer0 []Node
	upper  [][]Node
}

// New creates an empty range that combines nodes with hasher.
func New(hasher Hasher) *MerkleMountainRange {
	return &MerkleMountainRange{hasher: hasher}
}

// NewWithHashType creates an empty range for one of the catalogued hash
// types.
func NewWithHashType(t HashType) (*MerkleMountainRange, error) {
	if err := CheckHashType(t); err != nil {
		return nil, err
	}
	m := New(t.Hasher())
	m.hashType = t
	return m, nil
}

// Add appends a leaf and back fills every parent it completes. It returns the
// index of the new leaf.
//
// Here, adding leaf 3 completes the pair (2, 3), whose parent in turn
// completes the pair at height 1.
//
//	2        a
//	       /   \
//	1     b     c   <- c = H(2||3), then a = H(b||c)
//	     / \   / \
//	0   0   1 2   3 <- we add 3
func (m *MerkleMountainRange) Add(leaf Node) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layer0 = append(m.layer0, leaf)
	index := uint64(len(m.layer0) - 1)

	size := len(m.layer0)
	for height := 0; size > 1; height++ {
		above := size >> 1
		if height == len(m.upper) {
			m.upper = append(m.upper, nil)
		}
		// an even size means the last two nodes are siblings, their parent is
		// owed unless an earlier add already produced it
		if size&1 == 0 && above > len(m.upper[height]) {
			below := m.layer(height)
			parent := HashPair(m.hasher, below[size-2].Hash, below[size-1].Hash)
			m.upper[height] = append(m.upper[height], Node{Hash: parent})
		}
		size = above
	}
	return index
}

// AddHash is Add for a bare leaf hash.
func (m *MerkleMountainRange) AddHash(h Hash) uint64 {
	return m.Add(Node{Hash: h})
}

// HashType is the catalogued hash of the range, zero if it was built with a
// custom hasher.
func (m *MerkleMountainRange) HashType() HashType { return m.hashType }

// Size is the number of leaves.
func (m *MerkleMountainRange) Size() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.layer0))
}

// Height is the number of layers, including the leaves.
func (m *MerkleMountainRange) Height() int { return LayerCount(m.Size()) }

// GetNode returns the node at index within layer height.
func (m *MerkleMountainRange) GetNode(height int, index uint64) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if height < 0 || height > len(m.upper) {
		return Node{}, false
	}
	l := m.layer(height)
	if index >= uint64(len(l)) {
		return Node{}, false
	}
	return l[index], true
}

// GetLeaf returns the leaf at index.
func (m *MerkleMountainRange) GetLeaf(index uint64) (Node, bool) {
	return m.GetNode(0, index)
}

// layer needs mu held.
func (m *MerkleMountainRange) layer(height int) []Node {
	if height == 0 {
		return m.layer0
	}
	return m.upper[height-1]
}

// View returns a view of the first size leaves. A size of 0, or one larger
// than the range, views the whole range as it is now.
func (m *MerkleMountainRange) View(size uint64) *View {
	return NewView(m, size)
}
