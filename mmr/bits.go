package mmr

import "math/bits"

// A view of n leaves has one layer per bit of n. Layer h holds n>>h nodes and
// contributes a peak exactly when bit h of n is set, so the peaks of a range
// can be read straight off the binary representation of its size.

func BitLength(num uint64) int {
	return bits.Len64(num)
}

// LayerCount is the number of layers spanned by a range of size leaves.
func LayerCount(size uint64) int { return BitLength(size) }

// PeakCount is the number of peaks of a range of size leaves.
func PeakCount(size uint64) int { return bits.OnesCount64(size) }

// IsPeakHeight reports whether the last node of layer height is a peak.
func IsPeakHeight(size uint64, height int) bool { return (size>>height)&1 == 1 }

// PeakIndex returns the position of the peak at height in the highest first
// peak list.
func PeakIndex(size uint64, height int) int {
	return bits.OnesCount64(size >> (height + 1))
}
