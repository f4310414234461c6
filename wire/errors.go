package wire

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrOutOfData is returned when a read needs more bytes than remain.
	ErrOutOfData = ierrors.New("not enough data remaining")
	// ErrMalformed is returned for data that can never decode, regardless of
	// how much more data is supplied.
	ErrMalformed = ierrors.New("malformed encoding")

	ErrBufferOverflow = ierrors.New("write exceeds the pre-sized buffer")
	ErrLengthMismatch = ierrors.New("encoded length differs from the computed length")
	ErrElementWidth   = ierrors.New("vector element has the wrong width")
	ErrSeekRange      = ierrors.New("seek offset out of range")
)
