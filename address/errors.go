package address

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrBase58        = ierrors.New("invalid base58 string")
	ErrChecksum      = ierrors.New("base58check checksum mismatch")
	ErrPayloadLength = ierrors.New("address payload is not 20 bytes")
	ErrVersion       = ierrors.New("unexpected address version")
	ErrHexLength     = ierrors.New("hash hex is not 40 characters")
)
