package vdxf

import (
	"encoding/json"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// Cross chain data reference types.
const (
	RefTypeCrossChain  uint8 = 0
	RefTypeIdentity    uint8 = 1
	RefTypeURL         uint8 = 2
	RefTypeLast              = RefTypeURL
	refVersionFirst          = 1
	refVersionLast           = 1
	refVersionCurrent        = refVersionLast
	MaxURLLen                = 4096
)

// CrossChainRef is one of PBaaSEvidenceRef, IdentityMultimapRef or URLRef.
type CrossChainRef interface {
	RefType() uint8
	IsValid() bool
	ByteLength() int

	encode(w *wire.Writer)
	decode(r *wire.Reader) error
}

// CrossChainDataRef points at data held elsewhere: in a transaction output,
// in an identity's content multimap, or at a URL.
type CrossChainDataRef struct {
	Type uint8
	Ref  CrossChainRef
}

func NewCrossChainDataRef(ref CrossChainRef) *CrossChainDataRef {
	return &CrossChainDataRef{Type: ref.RefType(), Ref: ref}
}

func (*CrossChainDataRef) Kind() Kind { return KindCrossChainDataRef }

func (c *CrossChainDataRef) IsValid() bool {
	return c.Ref != nil && c.Ref.RefType() == c.Type && c.Ref.IsValid()
}

func (c *CrossChainDataRef) ByteLength() int {
	if c.Ref == nil {
		return 1
	}
	return 1 + c.Ref.ByteLength()
}

func (c *CrossChainDataRef) payloadLen() int { return c.ByteLength() }

func (c *CrossChainDataRef) encodePayload(w *wire.Writer) {
	w.WriteUint8(c.Type)
	if c.Ref != nil {
		c.Ref.encode(w)
	}
}

func newRef(t uint8) (CrossChainRef, error) {
	switch t {
	case RefTypeCrossChain:
		return &PBaaSEvidenceRef{}, nil
	case RefTypeIdentity:
		return &IdentityMultimapRef{}, nil
	case RefTypeURL:
		return &URLRef{}, nil
	}
	return nil, ierrors.Wrapf(ErrInvalidRefType, "%d", t)
}

func (c *CrossChainDataRef) decode(r *wire.Reader) error {
	var err error
	if c.Type, err = r.ReadUint8(); err != nil {
		return ierrors.Wrap(err, "reference type")
	}
	if c.Ref, err = newRef(c.Type); err != nil {
		return ierrors.Wrap(wire.ErrMalformed, err.Error())
	}
	return c.Ref.decode(r)
}

func decodeCrossChainDataRef(r *wire.Reader) (Payload, error) {
	c := &CrossChainDataRef{}
	return c, c.decode(r)
}

func (c *CrossChainDataRef) MarshalBinary() ([]byte, error) { return marshalPayload(c) }

func (c *CrossChainDataRef) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, c.decode)
}

type crossChainDataRefJSON struct {
	Type uint8           `json:"type"`
	Ref  json.RawMessage `json:"ref"`
}

func (c *CrossChainDataRef) MarshalJSON() ([]byte, error) {
	ref, err := json.Marshal(c.Ref)
	if err != nil {
		return nil, err
	}
	return json.Marshal(crossChainDataRefJSON{Type: c.Type, Ref: ref})
}

func (c *CrossChainDataRef) UnmarshalJSON(data []byte) error {
	var j crossChainDataRefJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "cross chain data ref: %v", err)
	}
	ref, err := newRef(j.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(j.Ref, ref); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "cross chain data ref: %v", err)
	}
	c.Type, c.Ref = j.Type, ref
	return nil
}

// UTXORef names a transaction output.
type UTXORef struct {
	Hash Uint256 `json:"hash"`
	N    uint64  `json:"n"`
}

func (u *UTXORef) ByteLength() int { return 32 + wire.VarIntLen(u.N) }

func (u *UTXORef) encode(w *wire.Writer) {
	w.WriteSlice(u.Hash[:])
	w.WriteVarInt(u.N)
}

func (u *UTXORef) decode(r *wire.Reader) error {
	var err error
	if u.Hash, err = readUint256(r); err != nil {
		return ierrors.Wrap(err, "utxo hash")
	}
	if u.N, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "utxo n")
	}
	return nil
}

// PBaaSEvidenceRef flags.
const EvidenceFlagHasSystem uint64 = 1

// PBaaSEvidenceRef points at an object within the evidence of a transaction
// output, optionally on another system.
//
// The version is written twice on the wire. Both copies are read and the
// second one is kept.
type PBaaSEvidenceRef struct {
	Version   uint64          `json:"version"`
	Flags     uint64          `json:"flags"`
	Output    UTXORef         `json:"output"`
	ObjectNum uint64          `json:"objectnum"`
	SubObject uint64          `json:"subobject"`
	SystemID  address.Hash160 `json:"systemid"`
}

func (*PBaaSEvidenceRef) RefType() uint8 { return RefTypeCrossChain }

func (e *PBaaSEvidenceRef) hasSystem() bool { return e.Flags&EvidenceFlagHasSystem != 0 }

// SetFlags sets the system flag exactly when a system id is present.
func (e *PBaaSEvidenceRef) SetFlags() {
	e.Flags &^= EvidenceFlagHasSystem
	if !e.SystemID.IsNull() {
		e.Flags |= EvidenceFlagHasSystem
	}
}

func (e *PBaaSEvidenceRef) IsValid() bool {
	return e.Version >= refVersionFirst && e.Version <= refVersionLast && e.Flags&^EvidenceFlagHasSystem == 0
}

func (e *PBaaSEvidenceRef) ByteLength() int {
	n := 2*wire.VarIntLen(e.Version) + wire.VarIntLen(e.Flags) + e.Output.ByteLength() +
		wire.VarIntLen(e.ObjectNum) + wire.VarIntLen(e.SubObject)
	if e.hasSystem() {
		n += address.Hash160Len
	}
	return n
}

func (e *PBaaSEvidenceRef) encode(w *wire.Writer) {
	w.WriteVarInt(e.Version)
	w.WriteVarInt(e.Version)
	w.WriteVarInt(e.Flags)
	e.Output.encode(w)
	w.WriteVarInt(e.ObjectNum)
	w.WriteVarInt(e.SubObject)
	if e.hasSystem() {
		w.WriteSlice(e.SystemID[:])
	}
}

func (e *PBaaSEvidenceRef) decode(r *wire.Reader) error {
	var err error
	for range 2 {
		if e.Version, err = r.ReadVarInt(); err != nil {
			return ierrors.Wrap(err, "evidence ref version")
		}
	}
	if e.Flags, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "evidence ref flags")
	}
	if err = e.Output.decode(r); err != nil {
		return err
	}
	if e.ObjectNum, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "evidence ref object number")
	}
	if e.SubObject, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "evidence ref sub object")
	}
	if e.hasSystem() {
		if e.SystemID, err = readHash160(r); err != nil {
			return ierrors.Wrap(err, "evidence ref system id")
		}
	}
	return nil
}

// IdentityMultimapRef flags.
const (
	IdentityRefFlagNoDeletion  uint64 = 1
	IdentityRefFlagHasDataHash uint64 = 2
	IdentityRefFlagHasSystem   uint64 = 4
	identityRefFlagMask               = IdentityRefFlagNoDeletion | IdentityRefFlagHasDataHash | IdentityRefFlagHasSystem
)

// IdentityMultimapRef points at the values stored under a key in an
// identity's content multimap over a range of block heights.
type IdentityMultimapRef struct {
	Version     uint64          `json:"version"`
	Flags       uint64          `json:"flags"`
	IDID        address.Hash160 `json:"identityid"`
	Key         address.Hash160 `json:"vdxfkey"`
	HeightStart uint64          `json:"startheight"`
	HeightEnd   uint64          `json:"endheight"`
	DataHash    Uint256         `json:"datahash"`
	SystemID    address.Hash160 `json:"systemid"`
}

func (*IdentityMultimapRef) RefType() uint8 { return RefTypeIdentity }

func (m *IdentityMultimapRef) hasDataHash() bool { return m.Flags&IdentityRefFlagHasDataHash != 0 }
func (m *IdentityMultimapRef) hasSystem() bool   { return m.Flags&IdentityRefFlagHasSystem != 0 }

// SetFlags sets the data hash and system flags from field presence. The no
// deletion flag is kept.
func (m *IdentityMultimapRef) SetFlags() {
	m.Flags &= IdentityRefFlagNoDeletion
	if m.DataHash != (Uint256{}) {
		m.Flags |= IdentityRefFlagHasDataHash
	}
	if !m.SystemID.IsNull() {
		m.Flags |= IdentityRefFlagHasSystem
	}
}

func (m *IdentityMultimapRef) IsValid() bool {
	return m.Version >= refVersionFirst && m.Version <= refVersionLast &&
		m.Flags&^identityRefFlagMask == 0 && m.HeightStart <= m.HeightEnd
}

func (m *IdentityMultimapRef) ByteLength() int {
	n := wire.VarIntLen(m.Version) + wire.VarIntLen(m.Flags) + 2*address.Hash160Len +
		wire.VarIntLen(m.HeightStart) + wire.VarIntLen(m.HeightEnd)
	if m.hasDataHash() {
		n += 32
	}
	if m.hasSystem() {
		n += address.Hash160Len
	}
	return n
}

func (m *IdentityMultimapRef) encode(w *wire.Writer) {
	w.WriteVarInt(m.Version)
	w.WriteVarInt(m.Flags)
	w.WriteSlice(m.IDID[:])
	w.WriteSlice(m.Key[:])
	w.WriteVarInt(m.HeightStart)
	w.WriteVarInt(m.HeightEnd)
	if m.hasDataHash() {
		w.WriteSlice(m.DataHash[:])
	}
	if m.hasSystem() {
		w.WriteSlice(m.SystemID[:])
	}
}

func (m *IdentityMultimapRef) decode(r *wire.Reader) error {
	var err error
	if m.Version, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "identity ref version")
	}
	if m.Flags, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "identity ref flags")
	}
	if m.IDID, err = readHash160(r); err != nil {
		return ierrors.Wrap(err, "identity ref id")
	}
	if m.Key, err = readHash160(r); err != nil {
		return ierrors.Wrap(err, "identity ref key")
	}
	if m.HeightStart, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "identity ref start height")
	}
	if m.HeightEnd, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "identity ref end height")
	}
	if m.hasDataHash() {
		if m.DataHash, err = readUint256(r); err != nil {
			return ierrors.Wrap(err, "identity ref data hash")
		}
	}
	if m.hasSystem() {
		if m.SystemID, err = readHash160(r); err != nil {
			return ierrors.Wrap(err, "identity ref system id")
		}
	}
	return nil
}

// URLRef points at data by URL.
type URLRef struct {
	Version uint64 `json:"version"`
	URL     string `json:"url"`
}

func (*URLRef) RefType() uint8 { return RefTypeURL }

func (u *URLRef) IsValid() bool {
	return u.Version >= refVersionFirst && u.Version <= refVersionLast && len(u.URL) <= MaxURLLen
}

func (u *URLRef) ByteLength() int {
	return wire.VarIntLen(u.Version) + wire.VarSliceLen(len(u.URL))
}

func (u *URLRef) encode(w *wire.Writer) {
	w.WriteVarInt(u.Version)
	w.WriteVarSlice([]byte(u.URL))
}

func (u *URLRef) decode(r *wire.Reader) error {
	var err error
	if u.Version, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "url ref version")
	}
	b, err := r.ReadVarSlice()
	if err != nil {
		return ierrors.Wrap(err, "url ref url")
	}
	u.URL = string(b)
	return nil
}
