package vdxf

import "github.com/iotaledger/hive.go/ierrors"

var (
	ErrUnknownTypeKey     = ierrors.New("type key is not in the catalogue")
	ErrKindMismatch       = ierrors.New("value kind does not match the kind registered for its key")
	ErrUnsupportedVersion = ierrors.New("unsupported version")
	ErrInvalidPayload     = ierrors.New("payload fails its validity check")
	ErrContractViolation  = ierrors.New("object data does not hold the expected value")
	ErrEmptyUniValue      = ierrors.New("univalue has no entries")
	ErrOpaqueNotLast      = ierrors.New("opaque data can only be the last entry")
)

var (
	ErrInvalidFlags         = ierrors.New("unknown flag bits set")
	ErrInvalidLabel         = ierrors.New("label is too long")
	ErrInvalidMimeType      = ierrors.New("mime type is too long")
	ErrInvalidURL           = ierrors.New("url is too long")
	ErrInvalidTransferType  = ierrors.New("unknown transfer destination type")
	ErrInvalidRemoveAction  = ierrors.New("unknown content multimap remove action")
	ErrInvalidRefType       = ierrors.New("unknown cross chain data reference type")
	ErrInvalidHashType      = ierrors.New("unknown hash type")
	ErrDescriptorMismatch   = ierrors.New("mmr descriptor does not commit to its data descriptors")
	ErrDescriptorOutOfRange = ierrors.New("data descriptor index out of range")
	ErrInvalidJSON          = ierrors.New("invalid json value")
)
