package vdxf

import (
	"encoding/json"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	ContentMultiMapRemoveVersionInvalid uint32 = 0
	ContentMultiMapRemoveVersionFirst   uint32 = 1
	ContentMultiMapRemoveVersionLast    uint32 = 1
	ContentMultiMapRemoveVersionCurrent        = ContentMultiMapRemoveVersionLast
)

// Content multimap remove actions.
const (
	ActionRemoveOneKeyValue uint32 = 1
	ActionRemoveAllKeyValue uint32 = 2
	ActionRemoveAllKey      uint32 = 3
	ActionClearMap          uint32 = 4
	ActionFirst                    = ActionRemoveOneKeyValue
	ActionLast                     = ActionClearMap
)

// ContentMultiMapRemove removes entries from an identity's content
// multimap. The key is absent when the whole map is cleared and the value
// hash is absent when every value of the key, or the whole map, goes.
type ContentMultiMapRemove struct {
	Version   uint32
	Action    uint32
	EntryKey  address.Hash160
	ValueHash Uint256
}

func (*ContentMultiMapRemove) Kind() Kind { return KindContentMultiMapRemove }

func (c *ContentMultiMapRemove) hasKey() bool { return c.Action != ActionClearMap }

func (c *ContentMultiMapRemove) hasValueHash() bool {
	return c.Action != ActionClearMap && c.Action != ActionRemoveAllKey
}

func (c *ContentMultiMapRemove) IsValid() bool {
	return c.Version >= ContentMultiMapRemoveVersionFirst && c.Version <= ContentMultiMapRemoveVersionLast &&
		c.Action >= ActionFirst && c.Action <= ActionLast
}

func (c *ContentMultiMapRemove) ByteLength() int {
	n := 4 + 4
	if c.hasKey() {
		n += address.Hash160Len
	}
	if c.hasValueHash() {
		n += 32
	}
	return n
}

func (c *ContentMultiMapRemove) payloadLen() int { return c.ByteLength() }

func (c *ContentMultiMapRemove) encodePayload(w *wire.Writer) {
	w.WriteUint32LE(c.Version)
	w.WriteUint32LE(c.Action)
	if c.hasKey() {
		w.WriteSlice(c.EntryKey[:])
	}
	if c.hasValueHash() {
		w.WriteSlice(c.ValueHash[:])
	}
}

func (c *ContentMultiMapRemove) decode(r *wire.Reader) error {
	var err error
	if c.Version, err = r.ReadUint32LE(); err != nil {
		return ierrors.Wrap(err, "multimap remove version")
	}
	if c.Action, err = r.ReadUint32LE(); err != nil {
		return ierrors.Wrap(err, "multimap remove action")
	}
	if c.hasKey() {
		if c.EntryKey, err = readHash160(r); err != nil {
			return ierrors.Wrap(err, "multimap remove key")
		}
	}
	if c.hasValueHash() {
		if c.ValueHash, err = readUint256(r); err != nil {
			return ierrors.Wrap(err, "multimap remove value hash")
		}
	}
	return nil
}

func decodeContentMultiMapRemove(r *wire.Reader) (Payload, error) {
	c := &ContentMultiMapRemove{}
	return c, c.decode(r)
}

func (c *ContentMultiMapRemove) MarshalBinary() ([]byte, error) { return marshalPayload(c) }

func (c *ContentMultiMapRemove) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, c.decode)
}

type contentMultiMapRemoveJSON struct {
	Version   uint32           `json:"version"`
	Action    uint32           `json:"action"`
	EntryKey  *address.Hash160 `json:"entrykey,omitempty"`
	ValueHash *Uint256         `json:"valuehash,omitempty"`
}

func (c *ContentMultiMapRemove) MarshalJSON() ([]byte, error) {
	j := contentMultiMapRemoveJSON{Version: c.Version, Action: c.Action}
	if c.hasKey() {
		j.EntryKey = &c.EntryKey
	}
	if c.hasValueHash() {
		j.ValueHash = &c.ValueHash
	}
	return json.Marshal(j)
}

func (c *ContentMultiMapRemove) UnmarshalJSON(data []byte) error {
	var j contentMultiMapRemoveJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "content multimap remove: %v", err)
	}
	*c = ContentMultiMapRemove{Version: j.Version, Action: j.Action}
	if j.EntryKey != nil {
		c.EntryKey = *j.EntryKey
	}
	if j.ValueHash != nil {
		c.ValueHash = *j.ValueHash
	}
	return nil
}
