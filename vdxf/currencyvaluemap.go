package vdxf

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/forestrie/go-vdxf/address"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

// CurrencyValue is an amount, in the smallest unit, of one currency.
type CurrencyValue struct {
	Currency address.Hash160
	Amount   int64
}

// CurrencyValueMap lists amounts by currency. Entries keep their wire order.
//
// A MultiValue map omits the leading count and runs to the end of its data,
// as it does when embedded in a record that knows its length.
type CurrencyValueMap struct {
	Values     []CurrencyValue
	MultiValue bool
}

const currencyValueLen = address.Hash160Len + 8

func (*CurrencyValueMap) Kind() Kind { return KindCurrencyValueMap }

func (m *CurrencyValueMap) IsValid() bool {
	seen := make(map[address.Hash160]bool, len(m.Values))
	for _, v := range m.Values {
		if seen[v.Currency] {
			return false
		}
		seen[v.Currency] = true
	}
	return true
}

// Get returns the amount held for currency.
func (m *CurrencyValueMap) Get(currency address.Hash160) (int64, bool) {
	for _, v := range m.Values {
		if v.Currency == currency {
			return v.Amount, true
		}
	}
	return 0, false
}

func (m *CurrencyValueMap) ByteLength() int {
	n := len(m.Values) * currencyValueLen
	if !m.MultiValue {
		n += wire.CompactSizeLen(uint64(len(m.Values)))
	}
	return n
}

func (m *CurrencyValueMap) payloadLen() int { return m.ByteLength() }

func (m *CurrencyValueMap) encodePayload(w *wire.Writer) {
	if !m.MultiValue {
		w.WriteCompactSize(uint64(len(m.Values)))
	}
	for _, v := range m.Values {
		w.WriteSlice(v.Currency[:])
		w.WriteInt64LE(v.Amount)
	}
}

func (m *CurrencyValueMap) decode(r *wire.Reader) error {
	n := r.Remaining() / currencyValueLen
	if !m.MultiValue {
		count, err := r.ReadLength()
		if err != nil {
			return ierrors.Wrap(err, "currency value count")
		}
		n = count
	} else if r.Remaining()%currencyValueLen != 0 {
		return ierrors.Wrapf(wire.ErrMalformed, "%d bytes is not a whole number of currency values", r.Remaining())
	}
	m.Values = make([]CurrencyValue, 0, min(n, r.Remaining()/currencyValueLen))
	for i := 0; i < n; i++ {
		var v CurrencyValue
		var err error
		if v.Currency, err = readHash160(r); err != nil {
			return ierrors.Wrapf(err, "currency value %d", i)
		}
		if v.Amount, err = r.ReadInt64LE(); err != nil {
			return ierrors.Wrapf(err, "currency value %d", i)
		}
		m.Values = append(m.Values, v)
	}
	return nil
}

func decodeCurrencyValueMap(r *wire.Reader) (Payload, error) {
	m := &CurrencyValueMap{}
	return m, m.decode(r)
}

func (m *CurrencyValueMap) MarshalBinary() ([]byte, error) { return marshalPayload(m) }

// UnmarshalBinary decodes data in the form selected by m.MultiValue.
func (m *CurrencyValueMap) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, m.decode)
}

// MarshalJSON renders {"<i-address>": amount, ...} in entry order.
func (m *CurrencyValueMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range m.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(v.Currency.String()))
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(v.Amount, 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *CurrencyValueMap) UnmarshalJSON(data []byte) error {
	values, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}
	m.Values = m.Values[:0]
	for _, kv := range values {
		currency, err := address.ParseID(kv.key)
		if err != nil {
			return ierrors.Wrapf(ErrInvalidJSON, "currency %q: %v", kv.key, err)
		}
		var amount int64
		if err := json.Unmarshal(kv.value, &amount); err != nil {
			return ierrors.Wrapf(ErrInvalidJSON, "amount for %q: %v", kv.key, err)
		}
		m.Values = append(m.Values, CurrencyValue{Currency: currency, Amount: amount})
	}
	return nil
}
