package vdxf

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/forestrie/go-vdxf/address"
	"github.com/iotaledger/hive.go/ierrors"
)

// serializedHexKey names the raw hex of an opaque entry in json.
const serializedHexKey = "serializedhex"

// MarshalJSON renders a single entry as {"<i-address key>": value} and
// several as an array of such objects. An opaque remainder is rendered as
// {"serializedhex": "<hex>"}.
func (u *UniValue) MarshalJSON() ([]byte, error) {
	if e, ok := u.Single(); ok {
		return e.MarshalJSON()
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range u.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := u.Entries[i].MarshalJSON()
		if err != nil {
			return nil, ierrors.Wrapf(err, "entry %d", i)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Value == nil {
		return nil, ierrors.Wrapf(ErrInvalidPayload, "entry %s has no value", e.Key)
	}
	key := serializedHexKey
	if e.Value.Kind() != KindOpaque {
		key = e.Key.String()
	}
	value, err := json.Marshal(e.Value)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(strconv.Quote(key))
	buf.WriteByte(':')
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object of keyed values, taken in document order,
// or an array of such objects.
func (u *UniValue) UnmarshalJSON(data []byte) error {
	u.Entries = nil
	if isJSONObject(data) {
		return u.addMembers(data)
	}
	var objects []json.RawMessage
	if err := json.Unmarshal(data, &objects); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "univalue: %v", err)
	}
	for i, o := range objects {
		if err := u.addMembers(o); err != nil {
			return ierrors.Wrapf(err, "element %d", i)
		}
	}
	return nil
}

func (u *UniValue) addMembers(data []byte) error {
	members, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}
	for _, m := range members {
		e, err := entryFromJSON(m.key, m.value)
		if err != nil {
			return err
		}
		u.Entries = append(u.Entries, e)
	}
	return nil
}

func entryFromJSON(name string, raw json.RawMessage) (Entry, error) {
	if name == serializedHexKey {
		v, err := unmarshalValue[Opaque](raw)
		return Entry{Value: v}, err
	}
	key, err := address.ParseID(name)
	if err != nil {
		return Entry{}, ierrors.Wrapf(ErrInvalidJSON, "key %q: %v", name, err)
	}
	kind, ok := KindForKey(key)
	if !ok {
		return Entry{}, ierrors.Wrapf(ErrUnknownTypeKey, "%s", name)
	}
	v, err := payloadFromJSON(kind, raw)
	if err != nil {
		return Entry{}, ierrors.Wrapf(err, "%s value", kind)
	}
	return NewEntry(v), nil
}

func payloadFromJSON(k Kind, raw json.RawMessage) (Payload, error) {
	switch k {
	case KindByte:
		return unmarshalValue[Byte](raw)
	case KindInt16:
		return unmarshalValue[Int16](raw)
	case KindUint16:
		return unmarshalValue[Uint16](raw)
	case KindInt32:
		return unmarshalValue[Int32](raw)
	case KindUint32:
		return unmarshalValue[Uint32](raw)
	case KindInt64:
		return unmarshalValue[Int64](raw)
	case KindUint160:
		return unmarshalValue[Uint160](raw)
	case KindUint256:
		return unmarshalValue[Uint256](raw)
	case KindString:
		return unmarshalValue[String](raw)
	case KindByteVector:
		return unmarshalValue[Bytes](raw)
	case KindUint256Vector:
		return unmarshalValue[Uint256Vector](raw)
	case KindCurrencyValueMap:
		return unmarshalRecord[CurrencyValueMap](raw)
	case KindRating:
		return unmarshalRecord[Rating](raw)
	case KindTransferDestination:
		return unmarshalRecord[TransferDestination](raw)
	case KindContentMultiMapRemove:
		return unmarshalRecord[ContentMultiMapRemove](raw)
	case KindCrossChainDataRef:
		return unmarshalRecord[CrossChainDataRef](raw)
	case KindDataDescriptor:
		return unmarshalRecord[DataDescriptor](raw)
	case KindMMRDescriptor:
		return unmarshalRecord[MMRDescriptor](raw)
	case KindSignatureData:
		return unmarshalRecord[SignatureData](raw)
	}
	return nil, ierrors.Wrapf(ErrUnknownTypeKey, "kind %s", k)
}

func unmarshalValue[T Payload](raw json.RawMessage) (Payload, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, ierrors.Wrapf(ErrInvalidJSON, "%v", err)
	}
	return v, nil
}

func unmarshalRecord[T any, P interface {
	*T
	Payload
}](raw json.RawMessage) (Payload, error) {
	p := P(new(T))
	if err := json.Unmarshal(raw, p); err != nil {
		if ierrors.Is(err, ErrInvalidJSON) {
			return nil, err
		}
		return nil, ierrors.Wrapf(ErrInvalidJSON, "%v", err)
	}
	return p, nil
}
