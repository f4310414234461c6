package vdxf

import (
	"bytes"

	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	UniValueVersionInvalid uint64 = 0
	UniValueVersionCurrent uint64 = 1
)

// Entry is one keyed value of a UniValue. Version is only written for kinds
// without a fixed width, zero means UniValueVersionCurrent.
type Entry struct {
	Key     TypeKey
	Version uint64
	Value   Payload
}

// UniValue is a self describing sequence of keyed values.
//
// Encoding is closed world: every entry must use a catalogued key with a
// value of the registered kind. Decoding is open world: the first unknown
// key, or the first recognised value that fails its validity check, ends
// decoding and everything from that key on is kept as a trailing Opaque
// entry, so a decoded UniValue always re-encodes to its input.
type UniValue struct {
	Entries []Entry
}

// NewEntry keys v by its kind. Opaque values get the zero key.
func NewEntry(v Payload) Entry {
	e := Entry{Value: v}
	if info, ok := registryByKind[v.Kind()]; ok {
		e.Key = info.key
		if info.fixedWidth == 0 {
			e.Version = UniValueVersionCurrent
		}
	}
	return e
}

func NewUniValue(values ...Payload) *UniValue {
	u := &UniValue{}
	for _, v := range values {
		u.Add(v)
	}
	return u
}

func (u *UniValue) Add(v Payload) {
	u.Entries = append(u.Entries, NewEntry(v))
}

// Single returns the only entry of a one entry value.
func (u *UniValue) Single() (Entry, bool) {
	if len(u.Entries) != 1 {
		return Entry{}, false
	}
	return u.Entries[0], true
}

// hasOpaque reports whether decoding stopped short of the end.
func (u *UniValue) hasOpaque() bool {
	for _, e := range u.Entries {
		if e.Value != nil && e.Value.Kind() == KindOpaque {
			return true
		}
	}
	return false
}

// flagSetter is implemented by records whose flags mirror their optional
// fields.
type flagSetter interface {
	SetFlags()
}

func (e *Entry) version() uint64 {
	if e.Version == UniValueVersionInvalid {
		return UniValueVersionCurrent
	}
	return e.Version
}

func (e *Entry) check() (*kindInfo, error) {
	if e.Value == nil {
		return nil, ierrors.Wrapf(ErrInvalidPayload, "entry %s has no value", e.Key)
	}
	if e.Value.Kind() == KindOpaque {
		return nil, nil
	}
	info, ok := registryByKey[e.Key]
	if !ok {
		return nil, ierrors.Wrapf(ErrUnknownTypeKey, "%s", e.Key)
	}
	if info.kind != e.Value.Kind() {
		return nil, ierrors.Wrapf(ErrKindMismatch, "%s holds %s, registered for %s", e.Key, e.Value.Kind(), info.kind)
	}
	if info.fixedWidth == 0 && e.version() > UniValueVersionCurrent {
		return nil, ierrors.Wrapf(ErrUnsupportedVersion, "entry version %d", e.Version)
	}
	if f, ok := e.Value.(flagSetter); ok {
		f.SetFlags()
	}
	if !e.Value.IsValid() {
		return nil, ierrors.Wrapf(ErrInvalidPayload, "%s value", info.kind)
	}
	return info, nil
}

func (e *Entry) byteLength(info *kindInfo) int {
	if info == nil {
		return e.Value.payloadLen()
	}
	if info.fixedWidth > 0 {
		return TypeKeyLen + info.fixedWidth
	}
	n := e.Value.payloadLen()
	return TypeKeyLen + wire.VarIntLen(e.version()) + wire.CompactSizeLen(uint64(n)) + n
}

func (e *Entry) encode(w *wire.Writer, info *kindInfo) {
	if info == nil {
		e.Value.encodePayload(w)
		return
	}
	w.WriteSlice(e.Key[:])
	if info.fixedWidth == 0 {
		w.WriteVarInt(e.version())
		w.WriteCompactSize(uint64(e.Value.payloadLen()))
	}
	e.Value.encodePayload(w)
}

func (u *UniValue) check() ([]*kindInfo, int, error) {
	infos := make([]*kindInfo, len(u.Entries))
	n := 0
	for i := range u.Entries {
		info, err := u.Entries[i].check()
		if err != nil {
			return nil, 0, ierrors.Wrapf(err, "entry %d", i)
		}
		// opaque bytes decode as everything up to the end
		if info == nil {
			if i != len(u.Entries)-1 {
				return nil, 0, ierrors.Wrapf(ErrOpaqueNotLast, "entry %d of %d", i, len(u.Entries))
			}
			if u.Entries[i].Value.payloadLen() == 0 {
				return nil, 0, ierrors.Wrapf(ErrInvalidPayload, "entry %d is empty opaque data", i)
			}
		}
		infos[i] = info
		n += u.Entries[i].byteLength(info)
	}
	return infos, n, nil
}

// ByteLength is the exact encoded length. It fails for values that cannot be
// encoded.
func (u *UniValue) ByteLength() (int, error) {
	_, n, err := u.check()
	return n, err
}

func (u *UniValue) MarshalBinary() ([]byte, error) {
	infos, n, err := u.check()
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(n)
	for i := range u.Entries {
		u.Entries[i].encode(w, infos[i])
	}
	return w.Finish()
}

func (u *UniValue) UnmarshalBinary(data []byte) error {
	v, err := DecodeUniValue(data)
	if err != nil {
		return err
	}
	*u = *v
	return nil
}

// DecodeUniValue decodes every entry of data. Unknown trailing data is not an
// error, it is returned as a final Opaque entry. Malformed data under a known
// key is.
func DecodeUniValue(data []byte, opts ...DecodeOption) (*UniValue, error) {
	o := newDecodeOptions(opts...)
	r := wire.NewReader(data)
	u := &UniValue{}

	for r.Remaining() > 0 {
		start := r.Offset()
		if r.Remaining() < TypeKeyLen {
			o.debugf("univalue: %d trailing bytes at offset %d kept opaque", r.Remaining(), start)
			u.Entries = append(u.Entries, Entry{Value: Opaque(bytes.Clone(r.Rest()))})
			break
		}
		e, ok, err := decodeEntry(r)
		if err != nil {
			return nil, ierrors.Wrapf(err, "entry %d at offset %d", len(u.Entries), start)
		}
		if !ok {
			o.debugf("univalue: unrecognised or invalid entry at offset %d, %d bytes kept opaque", start, len(data)-start)
			u.Entries = append(u.Entries, Entry{Value: Opaque(bytes.Clone(data[start:]))})
			break
		}
		u.Entries = append(u.Entries, e)
	}
	return u, nil
}

// decodeEntry returns false, with no error, when the key is not catalogued or
// the value it holds is not valid.
func decodeEntry(r *wire.Reader) (Entry, bool, error) {
	var e Entry
	if err := r.ReadFixed(e.Key[:]); err != nil {
		return e, false, err
	}
	info, ok := registryByKey[e.Key]
	if !ok {
		return e, false, nil
	}

	width := info.fixedWidth
	if width == 0 {
		var err error
		if e.Version, err = r.ReadVarInt(); err != nil {
			return e, false, ierrors.Wrap(err, "entry version")
		}
		if e.Version == UniValueVersionInvalid || e.Version > UniValueVersionCurrent {
			return e, false, ierrors.Wrapf(ErrUnsupportedVersion, "%s entry version %d", info.kind, e.Version)
		}
		length, err := r.ReadCompactSize()
		if err != nil {
			return e, false, ierrors.Wrap(err, "entry length")
		}
		if length > uint64(r.Remaining()) {
			return e, false, ierrors.Wrapf(wire.ErrMalformed, "%s length %d exceeds the %d bytes remaining", info.kind, length, r.Remaining())
		}
		width = int(length)
	}

	sub, err := r.Sub(width)
	if err != nil {
		return e, false, ierrors.Wrapf(err, "%s value", info.kind)
	}
	if e.Value, err = info.decode(sub); err != nil {
		return e, false, ierrors.Wrapf(err, "%s value", info.kind)
	}
	if sub.Remaining() != 0 {
		return e, false, ierrors.Wrapf(wire.ErrMalformed, "%s value leaves %d of its bytes unread", info.kind, sub.Remaining())
	}
	if !e.Value.IsValid() {
		return e, false, nil
	}
	return e, true, nil
}
