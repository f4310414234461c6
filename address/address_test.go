package address

import (
	"testing"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetID(t *testing.T) {
	assert.Equal(t, "i5w5MuNik5NtLcYmNzcvaoixooEebB6MGV", VRSCID.String())
	assert.Equal(t, "1af5b8015c64d39ab44c60ead8317f9f5a9b6c4c", VRSCID.Hex())
	assert.Equal(t, VRSCID, GetID("VRSC", nil), "names are case insensitive")
}

func TestDataKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"vrsc::data.type.string", "iNNKXptVZYtRyiMC2itvxC3LiUcbv7gY4U"},
		{"VRSC::data.type.string", "iNNKXptVZYtRyiMC2itvxC3LiUcbv7gY4U"},
		{"data.type.string", "iNNKXptVZYtRyiMC2itvxC3LiUcbv7gY4U"},
		{"vrsc::data.type.bytevector", "iQ12TBwmTxBkc5H1XbwYqsL8bTjc97vqEJ"},
		{"vrsc::data.type.object.datadescriptor", "iAtzFiqYjR2HR8CvS141s87RTut7mqaRQJ"},
		{"vrsc::data.type.object.mmrdescriptor", "iGBr9v1RKgySixtJmzoJCgeEq4iSwfQVKX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DataKey(tt.name).String())
		})
	}
}

func TestHash160Of(t *testing.T) {
	assert.Equal(t, "bb1be98c142444d7a56aa3981c3942a978e4dc33", Hash160Of([]byte("abc")).Hex())
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		version byte
		hash    Hash160
		want    string
	}{
		{"null identity", IdentityVersion, Hash160{}, "i3UXS5QPRQGNRDDqVnyWTnmFCTHDbzmsYk"},
		{"null pubkey hash", PubKeyHashVersion, Hash160{}, "R9HC5WtHbpoa51NCUAz86XLCmGTbkf45NT"},
		{"vrsc", IdentityVersion, VRSCID, "i5w5MuNik5NtLcYmNzcvaoixooEebB6MGV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Encode(tt.version, tt.hash)
			assert.Equal(t, tt.want, s)
			v, h, err := Decode(s)
			require.NoError(t, err)
			assert.Equal(t, tt.version, v)
			assert.Equal(t, tt.hash, h)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want error
	}{
		{"bad alphabet", "i5w5MuNik5NtLcYmNzcvaoixooEebB6MG0", ErrBase58},
		{"checksum", "i5w5MuNik5NtLcYmNzcvaoixooEebB6MGW", ErrChecksum},
		{"short", "i5w5MuNik5NtLc", ErrPayloadLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.s)
			assert.True(t, ierrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("i5w5MuNik5NtLcYmNzcvaoixooEebB6MGV")
	require.NoError(t, err)
	assert.Equal(t, VRSCID, id)

	_, err = ParseID("R9HC5WtHbpoa51NCUAz86XLCmGTbkf45NT")
	assert.True(t, ierrors.Is(err, ErrVersion))

	assert.Panics(t, func() { MustParseID("not an address") })
}

func TestHash160Text(t *testing.T) {
	b, err := VRSCID.MarshalText()
	require.NoError(t, err)
	var h Hash160
	require.NoError(t, h.UnmarshalText(b))
	assert.Equal(t, VRSCID, h)

	h2, err := Hash160FromHex(VRSCID.Hex())
	require.NoError(t, err)
	assert.Equal(t, VRSCID, h2)
	_, err = Hash160FromHex("abcd")
	assert.True(t, ierrors.Is(err, ErrHexLength))
}
