package vdxf

import (
	"encoding/base64"
	"encoding/json"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/mmr"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	SignatureDataVersionInvalid uint64 = 0
	SignatureDataVersionFirst   uint64 = 1
	SignatureDataVersionLast    uint64 = 1
	SignatureDataVersionCurrent        = SignatureDataVersionLast

	// SigTypeVerusID is a signature by the keys of an identity.
	SigTypeVerusID uint64 = 1
)

// SignatureData is an identity's signature over a hash, recording which
// VDXF keys and bound hashes were committed to alongside it.
type SignatureData struct {
	Version       uint64
	SystemID      address.Hash160
	HashType      uint64
	SignatureHash []byte
	IdentityID    address.Hash160
	SigType       uint64
	VdxfKeys      []address.Hash160
	VdxfKeyNames  []string
	BoundHashes   []Uint256
	Signature     []byte
}

func (*SignatureData) Kind() Kind { return KindSignatureData }

func (s *SignatureData) IsValid() bool {
	return s.Version >= SignatureDataVersionFirst && s.Version <= SignatureDataVersionLast &&
		s.HashType <= 0xff && mmr.HashType(s.HashType).IsValid() &&
		s.SigType == SigTypeVerusID
}

func (s *SignatureData) keyNames() [][]byte {
	names := make([][]byte, len(s.VdxfKeyNames))
	for i, n := range s.VdxfKeyNames {
		names[i] = []byte(n)
	}
	return names
}

func (s *SignatureData) ByteLength() int {
	return wire.VarIntLen(s.Version) + address.Hash160Len + wire.VarIntLen(s.HashType) +
		wire.VarSliceLen(len(s.SignatureHash)) + address.Hash160Len + wire.VarIntLen(s.SigType) +
		wire.VectorLen(len(s.VdxfKeys), address.Hash160Len) +
		wire.VarSliceVectorLen(s.keyNames()) +
		wire.VectorLen(len(s.BoundHashes), 32) +
		wire.VarSliceLen(len(s.Signature))
}

func (s *SignatureData) payloadLen() int { return s.ByteLength() }

func (s *SignatureData) encodePayload(w *wire.Writer) {
	w.WriteVarInt(s.Version)
	w.WriteSlice(s.SystemID[:])
	w.WriteVarInt(s.HashType)
	w.WriteVarSlice(s.SignatureHash)
	w.WriteSlice(s.IdentityID[:])
	w.WriteVarInt(s.SigType)
	w.WriteCompactSize(uint64(len(s.VdxfKeys)))
	for _, k := range s.VdxfKeys {
		w.WriteSlice(k[:])
	}
	w.WriteVarSliceVector(s.keyNames())
	w.WriteCompactSize(uint64(len(s.BoundHashes)))
	for _, h := range s.BoundHashes {
		w.WriteSlice(h[:])
	}
	w.WriteVarSlice(s.Signature)
}

func (s *SignatureData) decode(r *wire.Reader) error {
	var err error
	if s.Version, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "signature version")
	}
	if s.SystemID, err = readHash160(r); err != nil {
		return ierrors.Wrap(err, "signature system id")
	}
	if s.HashType, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "signature hash type")
	}
	if s.SignatureHash, err = r.ReadVarSlice(); err != nil {
		return ierrors.Wrap(err, "signature hash")
	}
	if s.IdentityID, err = readHash160(r); err != nil {
		return ierrors.Wrap(err, "signature identity id")
	}
	if s.SigType, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "signature type")
	}
	keys, err := r.ReadVector(address.Hash160Len)
	if err != nil {
		return ierrors.Wrap(err, "signature vdxf keys")
	}
	s.VdxfKeys = make([]address.Hash160, len(keys))
	for i, k := range keys {
		copy(s.VdxfKeys[i][:], k)
	}
	names, err := r.ReadVarSliceVector()
	if err != nil {
		return ierrors.Wrap(err, "signature vdxf key names")
	}
	s.VdxfKeyNames = make([]string, len(names))
	for i, n := range names {
		s.VdxfKeyNames[i] = string(n)
	}
	bound, err := r.ReadVector(32)
	if err != nil {
		return ierrors.Wrap(err, "signature bound hashes")
	}
	s.BoundHashes = make([]Uint256, len(bound))
	for i, h := range bound {
		copy(s.BoundHashes[i][:], h)
	}
	if s.Signature, err = r.ReadVarSlice(); err != nil {
		return ierrors.Wrap(err, "signature")
	}
	return nil
}

func decodeSignatureData(r *wire.Reader) (Payload, error) {
	s := &SignatureData{}
	return s, s.decode(r)
}

func (s *SignatureData) MarshalBinary() ([]byte, error) { return marshalPayload(s) }

func (s *SignatureData) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, s.decode)
}

type signatureDataJSON struct {
	Version       uint64            `json:"version"`
	SystemID      address.Hash160   `json:"systemid"`
	HashType      uint64            `json:"hashtype"`
	SignatureHash hexBytes          `json:"signaturehash"`
	IdentityID    address.Hash160   `json:"identityid"`
	SigType       uint64            `json:"signaturetype"`
	VdxfKeys      []address.Hash160 `json:"vdxfkeys"`
	VdxfKeyNames  []string          `json:"vdxfkeynames"`
	BoundHashes   []Uint256         `json:"boundhashes"`
	Signature     string            `json:"signature"`
}

func (s *SignatureData) MarshalJSON() ([]byte, error) {
	return json.Marshal(signatureDataJSON{
		Version:       s.Version,
		SystemID:      s.SystemID,
		HashType:      s.HashType,
		SignatureHash: s.SignatureHash,
		IdentityID:    s.IdentityID,
		SigType:       s.SigType,
		VdxfKeys:      s.VdxfKeys,
		VdxfKeyNames:  s.VdxfKeyNames,
		BoundHashes:   s.BoundHashes,
		Signature:     base64.StdEncoding.EncodeToString(s.Signature),
	})
}

func (s *SignatureData) UnmarshalJSON(data []byte) error {
	var j signatureDataJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "signature data: %v", err)
	}
	sig, err := base64.StdEncoding.DecodeString(j.Signature)
	if err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "signature: %v", err)
	}
	*s = SignatureData{
		Version:       j.Version,
		SystemID:      j.SystemID,
		HashType:      j.HashType,
		SignatureHash: j.SignatureHash,
		IdentityID:    j.IdentityID,
		SigType:       j.SigType,
		VdxfKeys:      j.VdxfKeys,
		VdxfKeyNames:  j.VdxfKeyNames,
		BoundHashes:   j.BoundHashes,
		Signature:     sig,
	}
	return nil
}
