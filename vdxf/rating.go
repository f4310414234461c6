package vdxf

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	RatingVersionInvalid uint32 = 0
	RatingVersionFirst   uint32 = 1
	RatingVersionLast    uint32 = 1
	RatingVersionCurrent        = RatingVersionLast
)

// Trust levels.
const (
	TrustUnknown  uint32 = 0
	TrustBlocked  uint32 = 1
	TrustApproved uint32 = 2
	TrustLast            = TrustApproved
)

// MaxRatingLen bounds the value of a single rating.
const MaxRatingLen = 64

// RatingValue is one keyed rating.
type RatingValue struct {
	Key   address.Hash160
	Value []byte
}

// Rating is a trust level together with ratings keyed by VDXF key.
type Rating struct {
	Version    uint32
	TrustLevel uint32
	Ratings    []RatingValue
}

func NewRating(trustLevel uint32, ratings ...RatingValue) *Rating {
	return &Rating{Version: RatingVersionCurrent, TrustLevel: trustLevel, Ratings: ratings}
}

func (*Rating) Kind() Kind { return KindRating }

func (r *Rating) IsValid() bool {
	if r.Version < RatingVersionFirst || r.Version > RatingVersionLast || r.TrustLevel > TrustLast {
		return false
	}
	for _, v := range r.Ratings {
		if len(v.Value) > MaxRatingLen {
			return false
		}
	}
	return true
}

func (r *Rating) ByteLength() int {
	n := 4 + 4 + wire.CompactSizeLen(uint64(len(r.Ratings)))
	for _, v := range r.Ratings {
		n += address.Hash160Len + wire.VarSliceLen(len(v.Value))
	}
	return n
}

func (r *Rating) payloadLen() int { return r.ByteLength() }

func (r *Rating) encodePayload(w *wire.Writer) {
	w.WriteUint32LE(r.Version)
	w.WriteUint32LE(r.TrustLevel)
	w.WriteCompactSize(uint64(len(r.Ratings)))
	for _, v := range r.Ratings {
		w.WriteSlice(v.Key[:])
		w.WriteVarSlice(v.Value)
	}
}

func (r *Rating) decode(rd *wire.Reader) error {
	var err error
	if r.Version, err = rd.ReadUint32LE(); err != nil {
		return ierrors.Wrap(err, "rating version")
	}
	if r.TrustLevel, err = rd.ReadUint32LE(); err != nil {
		return ierrors.Wrap(err, "rating trust level")
	}
	n, err := rd.ReadLength()
	if err != nil {
		return ierrors.Wrap(err, "rating count")
	}
	r.Ratings = make([]RatingValue, n)
	for i := range r.Ratings {
		if r.Ratings[i].Key, err = readHash160(rd); err != nil {
			return ierrors.Wrapf(err, "rating %d key", i)
		}
		if r.Ratings[i].Value, err = rd.ReadVarSlice(); err != nil {
			return ierrors.Wrapf(err, "rating %d value", i)
		}
	}
	return nil
}

func decodeRating(r *wire.Reader) (Payload, error) {
	v := &Rating{}
	return v, v.decode(r)
}

func (r *Rating) MarshalBinary() ([]byte, error) { return marshalPayload(r) }

func (r *Rating) UnmarshalBinary(data []byte) error { return unmarshalPayload(data, r.decode) }

type ratingJSON struct {
	Version    uint32          `json:"version"`
	TrustLevel uint32          `json:"trustlevel"`
	Ratings    json.RawMessage `json:"ratings"`
}

func (r *Rating) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.Ratings {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(v.Key.String()))
		buf.WriteByte(':')
		buf.WriteString(strconv.Quote(hex.EncodeToString(v.Value)))
	}
	buf.WriteByte('}')
	return json.Marshal(ratingJSON{Version: r.Version, TrustLevel: r.TrustLevel, Ratings: buf.Bytes()})
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var j ratingJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "rating: %v", err)
	}
	r.Version, r.TrustLevel, r.Ratings = j.Version, j.TrustLevel, nil
	if len(j.Ratings) == 0 {
		return nil
	}
	members, err := decodeOrderedObject(j.Ratings)
	if err != nil {
		return err
	}
	for _, kv := range members {
		key, err := address.ParseID(kv.key)
		if err != nil {
			return ierrors.Wrapf(ErrInvalidJSON, "rating key %q: %v", kv.key, err)
		}
		var value hexBytes
		if err := json.Unmarshal(kv.value, &value); err != nil {
			return ierrors.Wrapf(ErrInvalidJSON, "rating value for %q: %v", kv.key, err)
		}
		r.Ratings = append(r.Ratings, RatingValue{Key: key, Value: value})
	}
	return nil
}
