package checkpoint

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrSizeOutOfRange   = ierrors.New("checkpoint size is beyond the range")
	ErrHashTypeMismatch = ierrors.New("checkpoint hash type does not match the range")
)
