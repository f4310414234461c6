package mmr

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrHashLength      = ierrors.New("hash is not 32 bytes")
	ErrUnknownHashType = ierrors.New("unknown hash type")
	ErrBranchType      = ierrors.New("branch hash type is not supported")
	ErrBranchTooLong   = ierrors.New("branch has more hashes than a 64 bit index can select")
)
