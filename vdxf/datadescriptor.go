package vdxf

import (
	"encoding/json"

	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	DataDescriptorVersionInvalid uint64 = 0
	DataDescriptorVersionFirst   uint64 = 1
	DataDescriptorVersionLast    uint64 = 1
	DataDescriptorVersionCurrent        = DataDescriptorVersionLast
)

// DataDescriptor flags. Every flag but FlagEncryptedData records the
// presence of an optional field.
const (
	FlagEncryptedData   uint64 = 0x01
	FlagSaltPresent     uint64 = 0x02
	FlagEPKPresent      uint64 = 0x04
	FlagIVKPresent      uint64 = 0x08
	FlagSSKPresent      uint64 = 0x10
	FlagLabelPresent    uint64 = 0x20
	FlagMimeTypePresent uint64 = 0x40

	dataDescriptorFlagMask = FlagEncryptedData | FlagSaltPresent | FlagEPKPresent | FlagIVKPresent |
		FlagSSKPresent | FlagLabelPresent | FlagMimeTypePresent
)

const (
	MaxLabelLen    = 64
	MaxMimeTypeLen = 128
)

// DataDescriptor wraps a blob of object data, usually a UniValue encoding,
// with an optional label, mime type, salt and the keys of its encryption.
//
// The presence flags always mirror the populated fields. SetFlags restores
// that before every encode, and a decoded descriptor whose flags disagree
// with its fields is not valid.
type DataDescriptor struct {
	Version    uint64
	Flags      uint64
	ObjectData []byte
	Label      string
	MimeType   string
	Salt       []byte
	EPK        []byte
	IVK        []byte
	SSK        []byte
}

// NewDataDescriptor describes raw object data.
func NewDataDescriptor(objectData []byte) *DataDescriptor {
	return &DataDescriptor{Version: DataDescriptorVersionCurrent, ObjectData: objectData}
}

// NewDataDescriptorFromValue describes the encoding of uv.
func NewDataDescriptorFromValue(uv *UniValue) (*DataDescriptor, error) {
	b, err := uv.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return NewDataDescriptor(b), nil
}

// DecodeObjectData decodes the object data as a UniValue.
func (d *DataDescriptor) DecodeObjectData(opts ...DecodeOption) (*UniValue, error) {
	return DecodeUniValue(d.ObjectData, opts...)
}

func (*DataDescriptor) Kind() Kind { return KindDataDescriptor }

func (d *DataDescriptor) presenceFlags() uint64 {
	var f uint64
	if len(d.Salt) > 0 {
		f |= FlagSaltPresent
	}
	if len(d.EPK) > 0 {
		f |= FlagEPKPresent
	}
	if len(d.IVK) > 0 {
		f |= FlagIVKPresent
	}
	if len(d.SSK) > 0 {
		f |= FlagSSKPresent
	}
	if len(d.Label) > 0 {
		f |= FlagLabelPresent
	}
	if len(d.MimeType) > 0 {
		f |= FlagMimeTypePresent
	}
	return f
}

// SetFlags keeps the encrypted flag and sets each presence flag from its
// field.
func (d *DataDescriptor) SetFlags() {
	d.Flags = d.Flags&FlagEncryptedData | d.presenceFlags()
}

func (d *DataDescriptor) HasEncryptedData() bool { return d.Flags&FlagEncryptedData != 0 }
func (d *DataDescriptor) HasSalt() bool          { return d.Flags&FlagSaltPresent != 0 }
func (d *DataDescriptor) HasEPK() bool           { return d.Flags&FlagEPKPresent != 0 }
func (d *DataDescriptor) HasIVK() bool           { return d.Flags&FlagIVKPresent != 0 }
func (d *DataDescriptor) HasSSK() bool           { return d.Flags&FlagSSKPresent != 0 }
func (d *DataDescriptor) HasLabel() bool         { return d.Flags&FlagLabelPresent != 0 }
func (d *DataDescriptor) HasMimeType() bool      { return d.Flags&FlagMimeTypePresent != 0 }

func (d *DataDescriptor) IsValid() bool {
	return d.Validate() == nil
}

// Validate explains why a descriptor is not valid.
func (d *DataDescriptor) Validate() error {
	switch {
	case d.Version < DataDescriptorVersionFirst || d.Version > DataDescriptorVersionLast:
		return ierrors.Wrapf(ErrUnsupportedVersion, "data descriptor version %d", d.Version)
	case d.Flags&^dataDescriptorFlagMask != 0:
		return ierrors.Wrapf(ErrInvalidFlags, "data descriptor flags %#x", d.Flags)
	case d.Flags&^FlagEncryptedData != d.presenceFlags():
		return ierrors.Wrapf(ErrInvalidFlags, "data descriptor flags %#x do not match its fields", d.Flags)
	case len(d.Label) > MaxLabelLen:
		return ierrors.Wrapf(ErrInvalidLabel, "%d bytes", len(d.Label))
	case len(d.MimeType) > MaxMimeTypeLen:
		return ierrors.Wrapf(ErrInvalidMimeType, "%d bytes", len(d.MimeType))
	}
	return nil
}

// ByteLength is the encoded length once the flags are set.
func (d *DataDescriptor) ByteLength() int {
	flags := d.Flags&FlagEncryptedData | d.presenceFlags()
	n := wire.VarIntLen(d.Version) + wire.VarIntLen(flags) + wire.VarSliceLen(len(d.ObjectData))
	for _, f := range d.optional() {
		if len(f) > 0 {
			n += wire.VarSliceLen(len(f))
		}
	}
	return n
}

// optional lists the optional fields in wire order.
func (d *DataDescriptor) optional() [][]byte {
	return [][]byte{[]byte(d.Label), []byte(d.MimeType), d.Salt, d.EPK, d.IVK, d.SSK}
}

func (d *DataDescriptor) payloadLen() int { return d.ByteLength() }

func (d *DataDescriptor) encodePayload(w *wire.Writer) {
	d.SetFlags()
	w.WriteVarInt(d.Version)
	w.WriteVarInt(d.Flags)
	w.WriteVarSlice(d.ObjectData)
	for _, f := range d.optional() {
		if len(f) > 0 {
			w.WriteVarSlice(f)
		}
	}
}

func (d *DataDescriptor) decode(r *wire.Reader) error {
	var err error
	if d.Version, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "data descriptor version")
	}
	if d.Flags, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "data descriptor flags")
	}
	if d.ObjectData, err = r.ReadVarSlice(); err != nil {
		return ierrors.Wrap(err, "data descriptor object data")
	}
	read := func(flag uint64, name string) ([]byte, error) {
		if d.Flags&flag == 0 {
			return nil, nil
		}
		b, err := r.ReadVarSlice()
		if err != nil {
			return nil, ierrors.Wrapf(err, "data descriptor %s", name)
		}
		return b, nil
	}
	label, err := read(FlagLabelPresent, "label")
	if err != nil {
		return err
	}
	mimeType, err := read(FlagMimeTypePresent, "mime type")
	if err != nil {
		return err
	}
	d.Label, d.MimeType = string(label), string(mimeType)
	if d.Salt, err = read(FlagSaltPresent, "salt"); err != nil {
		return err
	}
	if d.EPK, err = read(FlagEPKPresent, "epk"); err != nil {
		return err
	}
	if d.IVK, err = read(FlagIVKPresent, "ivk"); err != nil {
		return err
	}
	if d.SSK, err = read(FlagSSKPresent, "ssk"); err != nil {
		return err
	}
	return nil
}

func decodeDataDescriptor(r *wire.Reader) (Payload, error) {
	d := &DataDescriptor{}
	return d, d.decode(r)
}

// MarshalBinary sets the flags and encodes the descriptor.
func (d *DataDescriptor) MarshalBinary() ([]byte, error) { return marshalPayload(d) }

func (d *DataDescriptor) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, d.decode)
}

type dataDescriptorJSON struct {
	Version    uint64          `json:"version"`
	Flags      uint64          `json:"flags"`
	ObjectData json.RawMessage `json:"objectdata,omitempty"`
	Label      string          `json:"label,omitempty"`
	MimeType   string          `json:"mimetype,omitempty"`
	Salt       hexBytes        `json:"salt,omitempty"`
	EPK        hexBytes        `json:"epk,omitempty"`
	IVK        hexBytes        `json:"ivk,omitempty"`
	SSK        hexBytes        `json:"ssk,omitempty"`
}

type objectDataJSON struct {
	Message       *string   `json:"message,omitempty"`
	SerializedHex *hexBytes `json:"serializedhex,omitempty"`
}

// MarshalJSON renders object data holding a single string as that string,
// other decodable object data as its UniValue json, and anything else,
// including encrypted data, as {"serializedhex": ...}.
func (d DataDescriptor) MarshalJSON() ([]byte, error) {
	d.SetFlags()
	objectData, err := d.objectDataJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(dataDescriptorJSON{
		Version:    d.Version,
		Flags:      d.Flags,
		ObjectData: objectData,
		Label:      d.Label,
		MimeType:   d.MimeType,
		Salt:       d.Salt,
		EPK:        d.EPK,
		IVK:        d.IVK,
		SSK:        d.SSK,
	})
}

func (d *DataDescriptor) objectDataJSON() (json.RawMessage, error) {
	raw := func() (json.RawMessage, error) {
		h := hexBytes(d.ObjectData)
		return json.Marshal(objectDataJSON{SerializedHex: &h})
	}
	if len(d.ObjectData) == 0 {
		return nil, nil
	}
	if d.HasEncryptedData() {
		return raw()
	}
	uv, err := d.DecodeObjectData()
	if err != nil || uv.hasOpaque() {
		return raw()
	}
	if e, ok := uv.Single(); ok {
		if s, ok := e.Value.(String); ok {
			return json.Marshal(string(s))
		}
	}
	return json.Marshal(uv)
}

func (d *DataDescriptor) UnmarshalJSON(data []byte) error {
	var j dataDescriptorJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "data descriptor: %v", err)
	}
	*d = DataDescriptor{
		Version:  j.Version,
		Flags:    j.Flags,
		Label:    j.Label,
		MimeType: j.MimeType,
		Salt:     j.Salt,
		EPK:      j.EPK,
		IVK:      j.IVK,
		SSK:      j.SSK,
	}
	objectData, err := objectDataFromJSON(j.ObjectData)
	if err != nil {
		return err
	}
	d.ObjectData = objectData
	d.SetFlags()
	return nil
}

// objectDataFromJSON accepts a string, {"message": string},
// {"serializedhex": hex} or UniValue json. Strings become a single string
// UniValue.
func objectDataFromJSON(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return NewUniValue(String(s)).MarshalBinary()
	}
	if isJSONObject(raw) {
		var o objectDataJSON
		if err := json.Unmarshal(raw, &o); err == nil {
			switch {
			case o.Message != nil:
				return NewUniValue(String(*o.Message)).MarshalBinary()
			case o.SerializedHex != nil:
				return *o.SerializedHex, nil
			}
		}
	}
	var uv UniValue
	if err := json.Unmarshal(raw, &uv); err != nil {
		return nil, err
	}
	return uv.MarshalBinary()
}
