package checkpoint

import (
	"github.com/forestrie/go-vdxf/mmr"
)

// ViewState is what a checkpoint commits to: the root of a range as of one
// size. Any later view of the same range can reproduce the root, so a
// checkpoint stays verifiable as the range grows.
type ViewState struct {
	Size uint64 `cbor:"1,keyasint"`
	// Root is detached from the signed message. Verifiers recompute it from
	// their own copy of the range at Size.
	Root []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time in milliseconds at signing. It lets the same
	// root be signed again.
	Timestamp int64        `cbor:"3,keyasint"`
	HashType  mmr.HashType `cbor:"4,keyasint"`
}

// NewViewState captures the root of v.
func NewViewState(v *mmr.View, hashType mmr.HashType, timestamp int64) ViewState {
	root := v.GetRoot()
	return ViewState{
		Size:      v.Size(),
		Root:      root[:],
		Timestamp: timestamp,
		HashType:  hashType,
	}
}
