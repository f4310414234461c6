package vdxf

import (
	"encoding/json"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// Transfer destination types. The high bits of the type byte are flags.
const (
	DestInvalid          uint8 = 0
	DestPK               uint8 = 1
	DestPKH              uint8 = 2
	DestSH               uint8 = 3
	DestID               uint8 = 4
	DestFullID           uint8 = 5
	DestRegisterCurrency uint8 = 6
	DestQuantum          uint8 = 7
	DestNestedTransfer   uint8 = 8
	DestETH              uint8 = 9
	DestETHNFT           uint8 = 10
	DestRaw              uint8 = 11
	DestLast                   = DestRaw

	FlagDestAux     uint8 = 64
	FlagDestGateway uint8 = 128
	destFlagMask          = FlagDestAux | FlagDestGateway
)

// TransferDestination is where a transfer is sent: an address of some type,
// optionally routed through a gateway for a fee, with auxiliary
// destinations.
type TransferDestination struct {
	Type        uint8
	Destination []byte
	GatewayID   address.Hash160
	GatewayCode address.Hash160
	Fees        int64
	AuxDests    []TransferDestination
}

func (*TransferDestination) Kind() Kind { return KindTransferDestination }

// TypeNoFlags is the destination type with the flag bits cleared.
func (d *TransferDestination) TypeNoFlags() uint8 { return d.Type &^ destFlagMask }

func (d *TransferDestination) HasGateway() bool  { return d.Type&FlagDestGateway != 0 }
func (d *TransferDestination) HasAuxDests() bool { return d.Type&FlagDestAux != 0 }

// SetFlags sets the aux flag exactly when there are auxiliary destinations.
// The gateway flag is left as it is, a zero gateway is meaningful.
func (d *TransferDestination) SetFlags() {
	d.Type &^= FlagDestAux
	if len(d.AuxDests) > 0 {
		d.Type |= FlagDestAux
	}
}

func (d *TransferDestination) IsValid() bool {
	t := d.TypeNoFlags()
	if t == DestInvalid || t > DestLast {
		return false
	}
	if d.HasAuxDests() != (len(d.AuxDests) > 0) {
		return false
	}
	for i := range d.AuxDests {
		if !d.AuxDests[i].IsValid() {
			return false
		}
	}
	return true
}

func (d *TransferDestination) ByteLength() int {
	n := 1 + wire.VarSliceLen(len(d.Destination))
	if d.HasGateway() {
		n += 2*address.Hash160Len + 8
	}
	if d.HasAuxDests() {
		n += wire.CompactSizeLen(uint64(len(d.AuxDests)))
		for i := range d.AuxDests {
			n += wire.VarSliceLen(d.AuxDests[i].ByteLength())
		}
	}
	return n
}

func (d *TransferDestination) payloadLen() int { return d.ByteLength() }

func (d *TransferDestination) encodePayload(w *wire.Writer) {
	w.WriteUint8(d.Type)
	w.WriteVarSlice(d.Destination)
	if d.HasGateway() {
		w.WriteSlice(d.GatewayID[:])
		w.WriteSlice(d.GatewayCode[:])
		w.WriteInt64LE(d.Fees)
	}
	if d.HasAuxDests() {
		w.WriteCompactSize(uint64(len(d.AuxDests)))
		for i := range d.AuxDests {
			// each auxiliary destination is nested as a var slice
			w.WriteCompactSize(uint64(d.AuxDests[i].ByteLength()))
			d.AuxDests[i].encodePayload(w)
		}
	}
}

func (d *TransferDestination) decode(r *wire.Reader) error {
	var err error
	if d.Type, err = r.ReadUint8(); err != nil {
		return ierrors.Wrap(err, "destination type")
	}
	if d.Destination, err = r.ReadVarSlice(); err != nil {
		return ierrors.Wrap(err, "destination")
	}
	if d.HasGateway() {
		if d.GatewayID, err = readHash160(r); err != nil {
			return ierrors.Wrap(err, "gateway id")
		}
		if d.GatewayCode, err = readHash160(r); err != nil {
			return ierrors.Wrap(err, "gateway code")
		}
		if d.Fees, err = r.ReadInt64LE(); err != nil {
			return ierrors.Wrap(err, "gateway fees")
		}
	}
	if d.HasAuxDests() {
		n, err := r.ReadLength()
		if err != nil {
			return ierrors.Wrap(err, "aux destination count")
		}
		d.AuxDests = make([]TransferDestination, n)
		for i := range d.AuxDests {
			b, err := r.ReadVarSlice()
			if err != nil {
				return ierrors.Wrapf(err, "aux destination %d", i)
			}
			if err := d.AuxDests[i].UnmarshalBinary(b); err != nil {
				return ierrors.Wrapf(err, "aux destination %d", i)
			}
		}
	}
	return nil
}

func decodeTransferDestination(r *wire.Reader) (Payload, error) {
	d := &TransferDestination{}
	return d, d.decode(r)
}

func (d *TransferDestination) MarshalBinary() ([]byte, error) { return marshalPayload(d) }

func (d *TransferDestination) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, d.decode)
}

type transferDestinationJSON struct {
	Type        uint8                 `json:"type"`
	Destination hexBytes              `json:"destination_bytes"`
	GatewayID   *address.Hash160      `json:"gateway_id,omitempty"`
	GatewayCode *address.Hash160      `json:"gateway_code,omitempty"`
	Fees        *int64                `json:"fees,omitempty"`
	AuxDests    []TransferDestination `json:"aux_dests,omitempty"`
}

func (d TransferDestination) MarshalJSON() ([]byte, error) {
	j := transferDestinationJSON{Type: d.Type, Destination: d.Destination, AuxDests: d.AuxDests}
	if d.HasGateway() {
		j.GatewayID, j.GatewayCode, j.Fees = &d.GatewayID, &d.GatewayCode, &d.Fees
	}
	return json.Marshal(j)
}

func (d *TransferDestination) UnmarshalJSON(data []byte) error {
	var j transferDestinationJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "transfer destination: %v", err)
	}
	*d = TransferDestination{Type: j.Type, Destination: j.Destination, AuxDests: j.AuxDests}
	if j.GatewayID != nil {
		d.GatewayID = *j.GatewayID
	}
	if j.GatewayCode != nil {
		d.GatewayCode = *j.GatewayCode
	}
	if j.Fees != nil {
		d.Fees = *j.Fees
	}
	return nil
}
