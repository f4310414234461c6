/*
Package mmr implements the Merkle Mountain Range used to commit to lists of
data descriptors and to prove the inclusion of any one of them.

# Layers

The range is held as layers. Layer 0 is the leaves in append order. Each
layer above holds the parents of adjacent pairs in the layer below, so layer h
of a range with n leaves holds n>>h nodes. Appending a leaf appends at most
one node to each layer and never changes an existing node.

	2          c
	         /   \
	1      a       b       d
	      / \     / \     / \
	0    0   1   2   3   4   5   6

	layer sizes for 7 leaves: [7 3 1]

# Peaks and root

A layer contributes a peak when it holds an odd number of nodes, and the top
layer always does. With 7 leaves the peaks are c, d and leaf 6, and the root
is H(H(c||d)||6). Peaks are listed highest first and the root is the merkle
root of that list: adjacent peaks are paired and an unpaired last peak is
carried up unchanged, it is never hashed with itself.

# Views and proofs

A View pins a size. Because nodes are never rewritten, a view of the first n
leaves gives the same peaks, root and branches no matter how many leaves have
been added since, and a view can be queried while leaves are added. A
Branch is the sibling path from a leaf up its mountain and then through the
merkle tree of peaks. Its Index is the leaf position. ProofIndex maps the
position and size to one bit per sibling, set when the sibling is on the
left, and the check follows those bits.
*/
package mmr
