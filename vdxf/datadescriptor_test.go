package vdxf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStringDescriptorHex = "01002b" +
		"cf3df5b400464419ab5277e8d757bd2f4d3e6be9" + "0115" + "5465737420537472696e6720313233343534333231"
	testStringDescriptorEntryHex = "516940c51424bb57dda48a5d8fb3f0520f30a8f0" + "012e" + testStringDescriptorHex
)

func TestDataDescriptorString(t *testing.T) {
	dd, err := NewDataDescriptorFromValue(NewUniValue(String("Test String 123454321")))
	require.NoError(t, err)

	data, err := dd.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, testStringDescriptorHex), data)

	entry, err := NewUniValue(dd).MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, testStringDescriptorEntryHex), entry)

	// the encoding is stable over repeated cycles
	for i := 0; i < 3; i++ {
		var got DataDescriptor
		require.NoError(t, got.UnmarshalBinary(data))

		uv, err := got.DecodeObjectData()
		require.NoError(t, err)
		e, ok := uv.Single()
		require.True(t, ok)
		assert.Equal(t, String("Test String 123454321"), e.Value)

		again, err := got.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, data, again)
		data = again
	}
}

func TestDataDescriptorFlags(t *testing.T) {
	tests := []struct {
		name  string
		dd    DataDescriptor
		flags uint64
	}{
		{"none", DataDescriptor{}, 0},
		{"label", DataDescriptor{Label: "l"}, FlagLabelPresent},
		{"mime type", DataDescriptor{MimeType: "text/plain"}, FlagMimeTypePresent},
		{"salt", DataDescriptor{Salt: []byte{1}}, FlagSaltPresent},
		{"encrypted", DataDescriptor{Flags: FlagEncryptedData, EPK: []byte{2}, IVK: []byte{3}}, FlagEncryptedData | FlagEPKPresent | FlagIVKPresent},
		{"ssk", DataDescriptor{SSK: []byte{4, 4}}, FlagSSKPresent},
		{
			name: "everything",
			dd: DataDescriptor{
				Flags: FlagEncryptedData, Label: "l", MimeType: "m",
				Salt: []byte{1}, EPK: []byte{2}, IVK: []byte{3}, SSK: []byte{4},
			},
			flags: dataDescriptorFlagMask,
		},
		{"stale flags are cleared", DataDescriptor{Flags: FlagSaltPresent | FlagLabelPresent}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd := tt.dd
			dd.Version = DataDescriptorVersionCurrent
			dd.ObjectData = []byte{0xaa}

			n := dd.ByteLength()
			data, err := dd.MarshalBinary()
			require.NoError(t, err)
			assert.Len(t, data, n)
			assert.Equal(t, tt.flags, dd.Flags)
			assert.True(t, dd.IsValid())

			var got DataDescriptor
			require.NoError(t, got.UnmarshalBinary(data))
			assert.Equal(t, dd, got)
			assert.True(t, got.IsValid())

			assert.Equal(t, len(dd.Label) > 0, got.HasLabel())
			assert.Equal(t, len(dd.MimeType) > 0, got.HasMimeType())
			assert.Equal(t, len(dd.Salt) > 0, got.HasSalt())
			assert.Equal(t, len(dd.EPK) > 0, got.HasEPK())
			assert.Equal(t, len(dd.IVK) > 0, got.HasIVK())
			assert.Equal(t, len(dd.SSK) > 0, got.HasSSK())
			assert.Equal(t, tt.flags&FlagEncryptedData != 0, got.HasEncryptedData())
		})
	}
}

func TestDataDescriptorEveryFieldSubset(t *testing.T) {
	fields := []struct {
		flag uint64
		set  func(d *DataDescriptor)
		has  func(d *DataDescriptor) bool
	}{
		{FlagLabelPresent, func(d *DataDescriptor) { d.Label = "label" }, (*DataDescriptor).HasLabel},
		{FlagMimeTypePresent, func(d *DataDescriptor) { d.MimeType = "text/plain" }, (*DataDescriptor).HasMimeType},
		{FlagSaltPresent, func(d *DataDescriptor) { d.Salt = []byte{1, 1} }, (*DataDescriptor).HasSalt},
		{FlagEPKPresent, func(d *DataDescriptor) { d.EPK = []byte{2, 2, 2} }, (*DataDescriptor).HasEPK},
		{FlagIVKPresent, func(d *DataDescriptor) { d.IVK = []byte{3} }, (*DataDescriptor).HasIVK},
		{FlagSSKPresent, func(d *DataDescriptor) { d.SSK = []byte{4, 4, 4, 4} }, (*DataDescriptor).HasSSK},
	}

	for _, encrypted := range []bool{false, true} {
		for mask := 0; mask < 1<<len(fields); mask++ {
			dd := DataDescriptor{Version: DataDescriptorVersionCurrent, ObjectData: []byte{0xaa, 0xbb}}
			var want uint64
			if encrypted {
				dd.Flags = FlagEncryptedData
				want = FlagEncryptedData
			}
			for i, f := range fields {
				if mask&(1<<i) != 0 {
					f.set(&dd)
					want |= f.flag
				} else {
					// a stale presence flag is cleared
					dd.Flags |= f.flag
				}
			}

			dd.SetFlags()
			require.Equal(t, want, dd.Flags, "mask %06b encrypted %v", mask, encrypted)
			require.True(t, dd.IsValid(), "mask %06b encrypted %v", mask, encrypted)

			data, err := dd.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, data, dd.ByteLength())

			var got DataDescriptor
			require.NoError(t, got.UnmarshalBinary(data))
			require.Equal(t, dd, got, "mask %06b encrypted %v", mask, encrypted)
			require.True(t, got.IsValid())
			for i, f := range fields {
				assert.Equal(t, mask&(1<<i) != 0, f.has(&got), "mask %06b field %d", mask, i)
			}
			assert.Equal(t, encrypted, got.HasEncryptedData())
		}
	}
}

func TestDataDescriptorValidate(t *testing.T) {
	tests := []struct {
		name string
		dd   DataDescriptor
		want error
	}{
		{"version", DataDescriptor{Version: 2}, ErrUnsupportedVersion},
		{"unknown flag", DataDescriptor{Version: 1, Flags: 0x80}, ErrInvalidFlags},
		{"flag without field", DataDescriptor{Version: 1, Flags: FlagSaltPresent}, ErrInvalidFlags},
		{"field without flag", DataDescriptor{Version: 1, Label: "l"}, ErrInvalidFlags},
		{"label", DataDescriptor{Version: 1, Flags: FlagLabelPresent, Label: strings.Repeat("l", MaxLabelLen+1)}, ErrInvalidLabel},
		{"mime type", DataDescriptor{Version: 1, Flags: FlagMimeTypePresent, MimeType: strings.Repeat("m", MaxMimeTypeLen+1)}, ErrInvalidMimeType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dd.Validate()
			assert.True(t, ierrors.Is(err, tt.want), "got %v", err)
			assert.False(t, tt.dd.IsValid())
		})
	}

	dd := &DataDescriptor{Version: 1, Label: strings.Repeat("l", MaxLabelLen+1)}
	_, err := NewUniValue(dd).MarshalBinary()
	assert.True(t, ierrors.Is(err, ErrInvalidPayload), "got %v", err)
}

func TestDataDescriptorInconsistentFlagsKeptOpaque(t *testing.T) {
	// the label flag is set but the label is empty
	payload := []byte{1, byte(FlagLabelPresent), 0, 0}
	var dd DataDescriptor
	require.NoError(t, dd.UnmarshalBinary(payload))
	assert.False(t, dd.IsValid())

	data := concat(DataDescriptorKey[:], []byte{1, byte(len(payload))}, payload)
	got, err := DecodeUniValue(data)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, Opaque(data), got.Entries[0].Value)

	again, err := got.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestDataDescriptorJSON(t *testing.T) {
	stringDD, err := NewDataDescriptorFromValue(NewUniValue(String("Test String 123454321")))
	require.NoError(t, err)
	uint32DD, err := NewDataDescriptorFromValue(NewUniValue(Uint32(7)))
	require.NoError(t, err)
	encrypted := &DataDescriptor{
		Version:    DataDescriptorVersionCurrent,
		Flags:      FlagEncryptedData,
		ObjectData: []byte{0xca, 0xfe},
		EPK:        []byte{1, 2},
	}
	labelled := &DataDescriptor{
		Version:    DataDescriptorVersionCurrent,
		ObjectData: stringDD.ObjectData,
		Label:      "greeting",
		MimeType:   "text/plain",
		Salt:       []byte{0x5a},
	}

	tests := []struct {
		name string
		dd   *DataDescriptor
		want string
	}{
		{
			name: "single string",
			dd:   stringDD,
			want: `{"version":1,"flags":0,"objectdata":"Test String 123454321"}`,
		},
		{
			name: "univalue",
			dd:   uint32DD,
			want: `{"version":1,"flags":0,"objectdata":{"iQF4Pb8zwN1Js9mmkyZVT6KURtYnnzCswG":7}}`,
		},
		{
			name: "encrypted",
			dd:   encrypted,
			want: `{"version":1,"flags":5,"objectdata":{"serializedhex":"cafe"},"epk":"0102"}`,
		},
		{
			name: "optional fields",
			dd:   labelled,
			want: `{"version":1,"flags":98,"objectdata":"Test String 123454321","label":"greeting","mimetype":"text/plain","salt":"5a"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.dd)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))

			var got DataDescriptor
			require.NoError(t, json.Unmarshal(b, &got))

			want, err := tt.dd.MarshalBinary()
			require.NoError(t, err)
			data, err := got.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, want, data)
		})
	}
}

func TestDataDescriptorObjectDataFromJSON(t *testing.T) {
	hi, err := NewUniValue(String("hi")).MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		json string
		want []byte
	}{
		{"string", `{"version":1,"objectdata":"hi"}`, hi},
		{"message", `{"version":1,"objectdata":{"message":"hi"}}`, hi},
		{"serialized hex", `{"version":1,"objectdata":{"serializedhex":"0102"}}`, []byte{1, 2}},
		{"absent", `{"version":1}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got DataDescriptor
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got.ObjectData)
		})
	}

	var dd DataDescriptor
	err = json.Unmarshal([]byte(`{"version":1,"objectdata":{"iNotAnAddress":1}}`), &dd)
	assert.Error(t, err)
}
