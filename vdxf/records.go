package vdxf

import (
	"encoding/hex"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// Every record payload follows the same contract: an exact ByteLength, an
// encode into a pre-sized writer and a decode that consumes exactly its own
// bytes.

func marshalPayload(p Payload) ([]byte, error) {
	w := wire.NewWriter(p.payloadLen())
	p.encodePayload(w)
	return w.Finish()
}

func unmarshalPayload(data []byte, decode func(r *wire.Reader) error) error {
	r := wire.NewReader(data)
	if err := decode(r); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return ierrors.Wrapf(wire.ErrMalformed, "%d trailing bytes", r.Remaining())
	}
	return nil
}

func readHash160(r *wire.Reader) (address.Hash160, error) {
	var h address.Hash160
	err := r.ReadFixed(h[:])
	return h, err
}

func readUint256(r *wire.Reader) (Uint256, error) {
	var h Uint256
	err := r.ReadFixed(h[:])
	return h, err
}

// hexBytes is a byte slice that is plain hex in json.
type hexBytes []byte

func (b hexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

func (b *hexBytes) UnmarshalText(text []byte) error {
	v, err := hex.DecodeString(string(text))
	if err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "hex: %v", err)
	}
	*b = v
	return nil
}

func (v Uint256) MarshalText() ([]byte, error) {
	return []byte(v.Hex()), nil
}

func (v *Uint256) UnmarshalText(text []byte) error {
	h, err := Uint256FromHex(string(text))
	if err != nil {
		return err
	}
	*v = h
	return nil
}

func (v Uint160) MarshalText() ([]byte, error) {
	return address.Hash160(v).MarshalText()
}

func (v *Uint160) UnmarshalText(text []byte) error {
	return (*address.Hash160)(v).UnmarshalText(text)
}

func (b Bytes) MarshalText() ([]byte, error) { return hexBytes(b).MarshalText() }

func (b *Bytes) UnmarshalText(text []byte) error { return (*hexBytes)(b).UnmarshalText(text) }

func (o Opaque) MarshalText() ([]byte, error) { return hexBytes(o).MarshalText() }

func (o *Opaque) UnmarshalText(text []byte) error { return (*hexBytes)(o).UnmarshalText(text) }
