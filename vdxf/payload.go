package vdxf

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// Kind identifies the Go representation of a Universal Value payload.
type Kind uint8

const (
	KindOpaque Kind = iota
	KindByte
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint160
	KindUint256
	KindString
	KindByteVector
	KindUint256Vector
	KindCurrencyValueMap
	KindRating
	KindTransferDestination
	KindContentMultiMapRemove
	KindCrossChainDataRef
	KindDataDescriptor
	KindMMRDescriptor
	KindSignatureData
)

var kindNames = [...]string{
	KindOpaque:                "opaque",
	KindByte:                  "byte",
	KindInt16:                 "int16",
	KindUint16:                "uint16",
	KindInt32:                 "int32",
	KindUint32:                "uint32",
	KindInt64:                 "int64",
	KindUint160:               "uint160",
	KindUint256:               "uint256",
	KindString:                "string",
	KindByteVector:            "bytevector",
	KindUint256Vector:         "vectoruint256",
	KindCurrencyValueMap:      "currencyvaluemap",
	KindRating:                "rating",
	KindTransferDestination:   "transferdestination",
	KindContentMultiMapRemove: "contentmultimapremove",
	KindCrossChainDataRef:     "crosschaindataref",
	KindDataDescriptor:        "datadescriptor",
	KindMMRDescriptor:         "mmrdescriptor",
	KindSignatureData:         "signaturedata",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Payload is the value of a Universal Value entry. The set of payloads is
// closed, each one is listed in the key registry.
type Payload interface {
	Kind() Kind
	// IsValid reports whether the value satisfies the logical constraints of
	// its kind. Decoding checks it after the bytes parse.
	IsValid() bool

	payloadLen() int
	encodePayload(w *wire.Writer)
}

type (
	Byte    uint8
	Int16   int16
	Uint16  uint16
	Int32   int32
	Uint32  uint32
	Int64   int64
	Uint160 address.Hash160
	// Uint256 is displayed, in hex and json, byte reversed.
	Uint256       [32]byte
	String        string
	Bytes         []byte
	Uint256Vector []Uint256
	// Opaque is the undecoded remainder of a Universal Value, preserved
	// verbatim so that re-encoding reproduces the input.
	Opaque []byte
)

func (Byte) Kind() Kind          { return KindByte }
func (Int16) Kind() Kind         { return KindInt16 }
func (Uint16) Kind() Kind        { return KindUint16 }
func (Int32) Kind() Kind         { return KindInt32 }
func (Uint32) Kind() Kind        { return KindUint32 }
func (Int64) Kind() Kind         { return KindInt64 }
func (Uint160) Kind() Kind       { return KindUint160 }
func (Uint256) Kind() Kind       { return KindUint256 }
func (String) Kind() Kind        { return KindString }
func (Bytes) Kind() Kind         { return KindByteVector }
func (Uint256Vector) Kind() Kind { return KindUint256Vector }
func (Opaque) Kind() Kind        { return KindOpaque }

func (Byte) IsValid() bool          { return true }
func (Int16) IsValid() bool         { return true }
func (Uint16) IsValid() bool        { return true }
func (Int32) IsValid() bool         { return true }
func (Uint32) IsValid() bool        { return true }
func (Int64) IsValid() bool         { return true }
func (Uint160) IsValid() bool       { return true }
func (Uint256) IsValid() bool       { return true }
func (String) IsValid() bool        { return true }
func (Bytes) IsValid() bool         { return true }
func (Uint256Vector) IsValid() bool { return true }
func (Opaque) IsValid() bool        { return true }

func (Byte) payloadLen() int     { return 1 }
func (Int16) payloadLen() int    { return 2 }
func (Uint16) payloadLen() int   { return 2 }
func (Int32) payloadLen() int    { return 4 }
func (Uint32) payloadLen() int   { return 4 }
func (Int64) payloadLen() int    { return 8 }
func (Uint160) payloadLen() int  { return address.Hash160Len }
func (Uint256) payloadLen() int  { return 32 }
func (s String) payloadLen() int { return wire.VarSliceLen(len(s)) }
func (b Bytes) payloadLen() int  { return wire.VarSliceLen(len(b)) }
func (o Opaque) payloadLen() int { return len(o) }
func (v Uint256Vector) payloadLen() int {
	return wire.VectorLen(len(v), 32)
}

func (v Byte) encodePayload(w *wire.Writer)    { w.WriteUint8(uint8(v)) }
func (v Int16) encodePayload(w *wire.Writer)   { w.WriteInt16LE(int16(v)) }
func (v Uint16) encodePayload(w *wire.Writer)  { w.WriteUint16LE(uint16(v)) }
func (v Int32) encodePayload(w *wire.Writer)   { w.WriteInt32LE(int32(v)) }
func (v Uint32) encodePayload(w *wire.Writer)  { w.WriteUint32LE(uint32(v)) }
func (v Int64) encodePayload(w *wire.Writer)   { w.WriteInt64LE(int64(v)) }
func (v Uint160) encodePayload(w *wire.Writer) { w.WriteSlice(v[:]) }
func (v Uint256) encodePayload(w *wire.Writer) { w.WriteSlice(v[:]) }
func (v String) encodePayload(w *wire.Writer)  { w.WriteVarSlice([]byte(v)) }
func (v Bytes) encodePayload(w *wire.Writer)   { w.WriteVarSlice(v) }
func (v Opaque) encodePayload(w *wire.Writer)  { w.WriteSlice(v) }
func (v Uint256Vector) encodePayload(w *wire.Writer) {
	w.WriteCompactSize(uint64(len(v)))
	for _, h := range v {
		w.WriteSlice(h[:])
	}
}

// Hex renders the hash byte reversed, the way uint256 values are displayed.
func (v Uint256) Hex() string {
	r := v
	slices.Reverse(r[:])
	return hex.EncodeToString(r[:])
}

func (v Uint256) String() string { return v.Hex() }

// Uint256FromHex parses the byte reversed display form.
func Uint256FromHex(s string) (Uint256, error) {
	var v Uint256
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(v) {
		return v, ierrors.Wrapf(ErrInvalidJSON, "uint256 hex %q", s)
	}
	slices.Reverse(b)
	copy(v[:], b)
	return v, nil
}

func (v Uint160) String() string { return address.Hash160(v).String() }

func decodeByte(r *wire.Reader) (Payload, error) {
	v, err := r.ReadUint8()
	return Byte(v), err
}

func decodeInt16(r *wire.Reader) (Payload, error) {
	v, err := r.ReadInt16LE()
	return Int16(v), err
}

func decodeUint16(r *wire.Reader) (Payload, error) {
	v, err := r.ReadUint16LE()
	return Uint16(v), err
}

func decodeInt32(r *wire.Reader) (Payload, error) {
	v, err := r.ReadInt32LE()
	return Int32(v), err
}

func decodeUint32(r *wire.Reader) (Payload, error) {
	v, err := r.ReadUint32LE()
	return Uint32(v), err
}

func decodeInt64(r *wire.Reader) (Payload, error) {
	v, err := r.ReadInt64LE()
	return Int64(v), err
}

func decodeUint160(r *wire.Reader) (Payload, error) {
	var v Uint160
	err := r.ReadFixed(v[:])
	return v, err
}

func decodeUint256(r *wire.Reader) (Payload, error) {
	var v Uint256
	err := r.ReadFixed(v[:])
	return v, err
}

func decodeString(r *wire.Reader) (Payload, error) {
	b, err := r.ReadVarSlice()
	return String(b), err
}

func decodeBytes(r *wire.Reader) (Payload, error) {
	b, err := r.ReadVarSlice()
	return Bytes(b), err
}

func decodeUint256Vector(r *wire.Reader) (Payload, error) {
	elems, err := r.ReadVector(32)
	if err != nil {
		return nil, err
	}
	v := make(Uint256Vector, len(elems))
	for i, e := range elems {
		copy(v[i][:], e)
	}
	return v, nil
}
