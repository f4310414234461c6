package checkpoint

import (
	"github.com/fxamacker/cbor/v2"
)

// Codec is the deterministic cbor encoding of view states. Signing and
// verification must agree on it byte for byte.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
		IntDec:    cbor.IntDecConvertNone,
	}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalCBOR(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c Codec) UnmarshalInto(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
