package mmr

// ProofIndex returns the bit string that orders each concatenation when the
// branch for pos in a range of size leaves is checked. Bit i is set when the
// i'th hash is on the left. extraHashes additional (always right hand) hashes
// come first and follow each sibling, each takes a zero bit.
//
// Positions outside (0, size) have index 0. Position 0 is the left most leaf
// so every one of its bits is zero regardless.
func ProofIndex(pos, size uint64, extraHashes uint8) uint64 {
	var index uint64
	if pos == 0 || pos >= size {
		return 0
	}
	bit := int(extraHashes)
	mark := func(left bool) {
		if left && bit < 64 {
			index |= 1 << bit
		}
		bit += 1 + int(extraHashes)
	}

	p := pos
	for h := 0; h < LayerCount(size); h++ {
		switch {
		case p&1 == 1:
			mark(true)
			p >>= 1
		case size>>h > p+1:
			mark(false)
			p >>= 1
		default:
			pk := uint64(PeakIndex(size, h))
			for n := uint64(PeakCount(size)); n > 1; n = (n + 1) >> 1 {
				if pk&1 == 1 || pk < n-1 {
					mark(pk&1 == 1)
				}
				pk >>= 1
			}
			return index
		}
	}
	return index
}
