package vdxf

import (
	"encoding/json"
	"testing"

	"github.com/forestrie/go-vdxf/mmr"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/minio/sha256-simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMMRDescriptor(t *testing.T) {
	m := testMMRDescriptor()
	require.NoError(t, m.Verify())
	assert.True(t, m.IsValid())

	hashes, err := m.GetMMRHashes()
	require.NoError(t, err)
	require.Len(t, hashes, len(m.DataDescriptors))
	for i, dd := range m.DataDescriptors {
		want := sha256.Sum256(append(append([]byte{}, dd.ObjectData...), dd.Salt...))
		assert.Equal(t, Uint256(want), hashes[i], "descriptor %d", i)
	}

	// the root is that of a range built over the hashes independently
	r, err := mmr.NewWithHashType(mmr.HashTypeBlake2bMMR)
	require.NoError(t, err)
	for _, h := range hashes {
		r.AddHash(mmr.Hash(h))
	}
	root, err := m.GetMMRRoot()
	require.NoError(t, err)
	assert.Equal(t, Uint256(r.View(r.Size()).GetRoot()), root)
}

func TestMMRDescriptorProof(t *testing.T) {
	var descriptors []DataDescriptor
	for i := 0; i < 11; i++ {
		dd, err := NewDataDescriptorFromValue(NewUniValue(Uint32(i)))
		require.NoError(t, err)
		descriptors = append(descriptors, *dd)
	}
	m, err := NewMMRDescriptor(mmr.HashTypeKeccak, mmr.HashTypeSHA256D, descriptors)
	require.NoError(t, err)
	require.NoError(t, m.Verify())

	hashes, err := m.GetMMRHashes()
	require.NoError(t, err)
	root, err := m.GetMMRRoot()
	require.NoError(t, err)

	hasher := m.MMRHashType.Hasher()
	for i := range descriptors {
		p, err := m.GetProof(uint64(i))
		require.NoError(t, err)
		assert.True(t, p.Verify(hasher, mmr.Hash(hashes[i]), mmr.Hash(root)), "descriptor %d", i)
		assert.False(t, p.Verify(hasher, mmr.Hash(hashes[(i+1)%len(hashes)]), mmr.Hash(root)), "descriptor %d", i)
	}

	_, err = m.GetProof(uint64(len(descriptors)))
	assert.True(t, ierrors.Is(err, ErrDescriptorOutOfRange), "got %v", err)
}

func TestMMRDescriptorVerifyFails(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(m *MMRDescriptor)
		want   error
	}{
		{
			name:   "object data changed",
			tamper: func(m *MMRDescriptor) { m.DataDescriptors[0].ObjectData = []byte("uno") },
			want:   ErrDescriptorMismatch,
		},
		{
			name:   "salt changed",
			tamper: func(m *MMRDescriptor) { m.DataDescriptors[1].Salt = []byte{8} },
			want:   ErrDescriptorMismatch,
		},
		{
			name:   "descriptor dropped",
			tamper: func(m *MMRDescriptor) { m.DataDescriptors = m.DataDescriptors[:2] },
			want:   ErrDescriptorMismatch,
		},
		{
			name: "root replaced",
			tamper: func(m *MMRDescriptor) {
				dd, _ := NewDataDescriptorFromValue(NewUniValue(testHash(0)))
				m.MMRRoot = *dd
			},
			want: ErrDescriptorMismatch,
		},
		{
			name: "hashes are not a vector",
			tamper: func(m *MMRDescriptor) {
				dd, _ := NewDataDescriptorFromValue(NewUniValue(String("not hashes")))
				m.MMRHashes = *dd
			},
			want: ErrContractViolation,
		},
		{
			name: "root is not a hash",
			tamper: func(m *MMRDescriptor) {
				dd, _ := NewDataDescriptorFromValue(NewUniValue(Uint256Vector{testHash(0)}))
				m.MMRRoot = *dd
			},
			want: ErrContractViolation,
		},
		{
			name: "hashes hold two values",
			tamper: func(m *MMRDescriptor) {
				dd, _ := NewDataDescriptorFromValue(NewUniValue(Uint256Vector{}, Uint256Vector{}))
				m.MMRHashes = *dd
			},
			want: ErrContractViolation,
		},
		{
			name:   "object hash type",
			tamper: func(m *MMRDescriptor) { m.ObjectHashType = 0 },
			want:   mmr.ErrUnknownHashType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMMRDescriptor()
			tt.tamper(m)
			err := m.Verify()
			assert.True(t, ierrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMMRDescriptorEncoding(t *testing.T) {
	m := testMMRDescriptor()
	data := requireRecordRoundTrip(t, m)
	assert.Equal(t, []byte{1, byte(mmr.HashTypeSHA256), byte(mmr.HashTypeBlake2bMMR)}, data[:3])

	var got MMRDescriptor
	require.NoError(t, got.UnmarshalBinary(data))
	require.NoError(t, got.Verify())

	t.Run("nested descriptor with inconsistent flags", func(t *testing.T) {
		// one descriptor whose label flag is set over an empty label
		prefix := 3 + m.MMRRoot.ByteLength() + m.MMRHashes.ByteLength()
		b := concat(data[:prefix], []byte{1}, []byte{1, byte(FlagLabelPresent), 3, 'o', 'n', 'e', 0})

		var decoded MMRDescriptor
		require.NoError(t, decoded.UnmarshalBinary(b))
		assert.False(t, decoded.IsValid())

		entry := concat(DataMMRDescriptorKey[:], []byte{1}, wire.EncodeCompactSize(uint64(len(b))), b)
		uv, err := DecodeUniValue(entry)
		require.NoError(t, err)
		assert.Equal(t, Opaque(entry), uv.Entries[0].Value)
	})

	t.Run("hash type beyond a byte", func(t *testing.T) {
		var decoded MMRDescriptor
		err := decoded.UnmarshalBinary([]byte{1, 0x81, 0x00})
		assert.Error(t, err)
	})
}

func TestMMRDescriptorBadHashType(t *testing.T) {
	_, err := NewMMRDescriptor(0, mmr.HashTypeSHA256, nil)
	assert.True(t, ierrors.Is(err, mmr.ErrUnknownHashType), "got %v", err)
	_, err = NewMMRDescriptor(mmr.HashTypeSHA256, mmr.HashTypeLast+1, nil)
	assert.True(t, ierrors.Is(err, mmr.ErrUnknownHashType), "got %v", err)
}

func TestMMRDescriptorJSON(t *testing.T) {
	m := testMMRDescriptor()
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &fields))
	for _, k := range []string{"version", "objecthashtype", "mmrhashtype", "mmrroot", "mmrhashes", "datadescriptors"} {
		assert.Contains(t, fields, k)
	}

	var got MMRDescriptor
	require.NoError(t, json.Unmarshal(b, &got))
	require.NoError(t, got.Verify())

	want, err := m.MarshalBinary()
	require.NoError(t, err)
	data, err := got.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, want, data)
}
