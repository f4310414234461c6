package vdxf

import (
	"encoding/json"

	"github.com/forestrie/go-vdxf/mmr"
	"github.com/forestrie/go-vdxf/wire"
	"github.com/iotaledger/hive.go/ierrors"
)

const (
	MMRDescriptorVersionInvalid uint64 = 0
	MMRDescriptorVersionFirst   uint64 = 1
	MMRDescriptorVersionLast    uint64 = 1
	MMRDescriptorVersionCurrent        = MMRDescriptorVersionLast
)

// MMRDescriptor commits to a list of data descriptors. Leaf i of the range is
// the ObjectHashType hash of descriptor i's object data and salt, the range
// combines leaves with MMRHashType. MMRHashes holds a single Uint256Vector of
// the leaves and MMRRoot a single Uint256, the root of the range.
type MMRDescriptor struct {
	Version         uint64
	ObjectHashType  mmr.HashType
	MMRHashType     mmr.HashType
	MMRRoot         DataDescriptor
	MMRHashes       DataDescriptor
	DataDescriptors []DataDescriptor
}

// NewMMRDescriptor commits to descriptors.
func NewMMRDescriptor(objectHashType, mmrHashType mmr.HashType, descriptors []DataDescriptor) (*MMRDescriptor, error) {
	if err := mmr.CheckHashType(objectHashType); err != nil {
		return nil, ierrors.Wrap(err, "object hash type")
	}
	r, err := mmr.NewWithHashType(mmrHashType)
	if err != nil {
		return nil, ierrors.Wrap(err, "mmr hash type")
	}
	leaves := make(Uint256Vector, len(descriptors))
	for i := range descriptors {
		leaves[i] = Uint256(objectHash(objectHashType, &descriptors[i]))
		r.AddHash(mmr.Hash(leaves[i]))
	}

	hashes, err := NewDataDescriptorFromValue(NewUniValue(leaves))
	if err != nil {
		return nil, err
	}
	root, err := NewDataDescriptorFromValue(NewUniValue(Uint256(r.View(r.Size()).GetRoot())))
	if err != nil {
		return nil, err
	}
	return &MMRDescriptor{
		Version:         MMRDescriptorVersionCurrent,
		ObjectHashType:  objectHashType,
		MMRHashType:     mmrHashType,
		MMRRoot:         *root,
		MMRHashes:       *hashes,
		DataDescriptors: descriptors,
	}, nil
}

func objectHash(t mmr.HashType, d *DataDescriptor) mmr.Hash {
	return t.Sum(d.ObjectData, d.Salt)
}

func (*MMRDescriptor) Kind() Kind { return KindMMRDescriptor }

// SetFlags sets the flags of every nested descriptor.
func (m *MMRDescriptor) SetFlags() {
	m.MMRRoot.SetFlags()
	m.MMRHashes.SetFlags()
	for i := range m.DataDescriptors {
		m.DataDescriptors[i].SetFlags()
	}
}

func (m *MMRDescriptor) IsValid() bool {
	if m.Version < MMRDescriptorVersionFirst || m.Version > MMRDescriptorVersionLast {
		return false
	}
	if !m.ObjectHashType.IsValid() || !m.MMRHashType.IsValid() {
		return false
	}
	if !m.MMRRoot.IsValid() || !m.MMRHashes.IsValid() {
		return false
	}
	for i := range m.DataDescriptors {
		if !m.DataDescriptors[i].IsValid() {
			return false
		}
	}
	return true
}

func (m *MMRDescriptor) ByteLength() int {
	n := wire.VarIntLen(m.Version) + wire.VarIntLen(uint64(m.ObjectHashType)) + wire.VarIntLen(uint64(m.MMRHashType)) +
		m.MMRRoot.ByteLength() + m.MMRHashes.ByteLength() + wire.CompactSizeLen(uint64(len(m.DataDescriptors)))
	for i := range m.DataDescriptors {
		n += m.DataDescriptors[i].ByteLength()
	}
	return n
}

func (m *MMRDescriptor) payloadLen() int { return m.ByteLength() }

func (m *MMRDescriptor) encodePayload(w *wire.Writer) {
	w.WriteVarInt(m.Version)
	w.WriteVarInt(uint64(m.ObjectHashType))
	w.WriteVarInt(uint64(m.MMRHashType))
	m.MMRRoot.encodePayload(w)
	m.MMRHashes.encodePayload(w)
	w.WriteCompactSize(uint64(len(m.DataDescriptors)))
	for i := range m.DataDescriptors {
		m.DataDescriptors[i].encodePayload(w)
	}
}

func readHashType(r *wire.Reader) (mmr.HashType, error) {
	v, err := r.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if v > 0xff {
		return 0, ierrors.Wrapf(wire.ErrMalformed, "hash type %d", v)
	}
	return mmr.HashType(v), nil
}

func (m *MMRDescriptor) decode(r *wire.Reader) error {
	var err error
	if m.Version, err = r.ReadVarInt(); err != nil {
		return ierrors.Wrap(err, "mmr descriptor version")
	}
	if m.ObjectHashType, err = readHashType(r); err != nil {
		return ierrors.Wrap(err, "object hash type")
	}
	if m.MMRHashType, err = readHashType(r); err != nil {
		return ierrors.Wrap(err, "mmr hash type")
	}
	if err = m.MMRRoot.decode(r); err != nil {
		return ierrors.Wrap(err, "mmr root")
	}
	if err = m.MMRHashes.decode(r); err != nil {
		return ierrors.Wrap(err, "mmr hashes")
	}
	count, err := r.ReadLength()
	if err != nil {
		return ierrors.Wrap(err, "data descriptor count")
	}
	m.DataDescriptors = make([]DataDescriptor, count)
	for i := range m.DataDescriptors {
		if err = m.DataDescriptors[i].decode(r); err != nil {
			return ierrors.Wrapf(err, "data descriptor %d", i)
		}
	}
	return nil
}

func decodeMMRDescriptor(r *wire.Reader) (Payload, error) {
	m := &MMRDescriptor{}
	return m, m.decode(r)
}

// MarshalBinary sets the flags of the nested descriptors and encodes.
func (m *MMRDescriptor) MarshalBinary() ([]byte, error) {
	m.SetFlags()
	return marshalPayload(m)
}

func (m *MMRDescriptor) UnmarshalBinary(data []byte) error {
	return unmarshalPayload(data, m.decode)
}

// GetMMRHashes returns the committed leaf hashes. The hashes descriptor must
// hold exactly one Uint256Vector.
func (m *MMRDescriptor) GetMMRHashes() (Uint256Vector, error) {
	uv, err := m.MMRHashes.DecodeObjectData()
	if err != nil {
		return nil, ierrors.Wrap(err, "mmr hashes")
	}
	if e, ok := uv.Single(); ok {
		if v, ok := e.Value.(Uint256Vector); ok {
			return v, nil
		}
	}
	return nil, ierrors.Wrap(ErrContractViolation, "mmr hashes do not hold a single vector of uint256")
}

// GetMMRRoot returns the committed root. The root descriptor must hold
// exactly one Uint256.
func (m *MMRDescriptor) GetMMRRoot() (Uint256, error) {
	uv, err := m.MMRRoot.DecodeObjectData()
	if err != nil {
		return Uint256{}, ierrors.Wrap(err, "mmr root")
	}
	if e, ok := uv.Single(); ok {
		if v, ok := e.Value.(Uint256); ok {
			return v, nil
		}
	}
	return Uint256{}, ierrors.Wrap(ErrContractViolation, "mmr root does not hold a single uint256")
}

// buildRange rebuilds the range from the committed hashes.
func (m *MMRDescriptor) buildRange(hashes Uint256Vector) (*mmr.MerkleMountainRange, error) {
	r, err := mmr.NewWithHashType(m.MMRHashType)
	if err != nil {
		return nil, err
	}
	for _, h := range hashes {
		r.AddHash(mmr.Hash(h))
	}
	return r, nil
}

// Verify checks that the committed hashes are those of the descriptors and
// that the committed root is the root of those hashes. Encrypted descriptors
// are hashed as they are, ciphertext and all.
func (m *MMRDescriptor) Verify() error {
	if err := mmr.CheckHashType(m.ObjectHashType); err != nil {
		return ierrors.Wrap(err, "object hash type")
	}
	hashes, err := m.GetMMRHashes()
	if err != nil {
		return err
	}
	root, err := m.GetMMRRoot()
	if err != nil {
		return err
	}
	if len(hashes) != len(m.DataDescriptors) {
		return ierrors.Wrapf(ErrDescriptorMismatch, "%d hashes for %d descriptors", len(hashes), len(m.DataDescriptors))
	}
	for i := range m.DataDescriptors {
		if Uint256(objectHash(m.ObjectHashType, &m.DataDescriptors[i])) != hashes[i] {
			return ierrors.Wrapf(ErrDescriptorMismatch, "descriptor %d does not match its hash", i)
		}
	}
	r, err := m.buildRange(hashes)
	if err != nil {
		return ierrors.Wrap(err, "mmr hash type")
	}
	if Uint256(r.View(r.Size()).GetRoot()) != root {
		return ierrors.Wrap(ErrDescriptorMismatch, "root does not match the hashes")
	}
	return nil
}

// GetProof proves descriptor i against the committed root. Check it with
// the MMRHashType hasher and the committed hash of the descriptor as leaf.
func (m *MMRDescriptor) GetProof(i uint64) (*mmr.Proof, error) {
	hashes, err := m.GetMMRHashes()
	if err != nil {
		return nil, err
	}
	if i >= uint64(len(hashes)) {
		return nil, ierrors.Wrapf(ErrDescriptorOutOfRange, "%d of %d", i, len(hashes))
	}
	r, err := m.buildRange(hashes)
	if err != nil {
		return nil, ierrors.Wrap(err, "mmr hash type")
	}
	p, ok := r.View(r.Size()).GetProof(i)
	if !ok {
		return nil, ierrors.Wrapf(ErrDescriptorOutOfRange, "%d of %d", i, len(hashes))
	}
	return p, nil
}

type mmrDescriptorJSON struct {
	Version         uint64           `json:"version"`
	ObjectHashType  uint8            `json:"objecthashtype"`
	MMRHashType     uint8            `json:"mmrhashtype"`
	MMRRoot         DataDescriptor   `json:"mmrroot"`
	MMRHashes       DataDescriptor   `json:"mmrhashes"`
	DataDescriptors []DataDescriptor `json:"datadescriptors"`
}

func (m *MMRDescriptor) MarshalJSON() ([]byte, error) {
	descriptors := m.DataDescriptors
	if descriptors == nil {
		descriptors = []DataDescriptor{}
	}
	return json.Marshal(mmrDescriptorJSON{
		Version:         m.Version,
		ObjectHashType:  uint8(m.ObjectHashType),
		MMRHashType:     uint8(m.MMRHashType),
		MMRRoot:         m.MMRRoot,
		MMRHashes:       m.MMRHashes,
		DataDescriptors: descriptors,
	})
}

func (m *MMRDescriptor) UnmarshalJSON(data []byte) error {
	var j mmrDescriptorJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return ierrors.Wrapf(ErrInvalidJSON, "mmr descriptor: %v", err)
	}
	*m = MMRDescriptor{
		Version:         j.Version,
		ObjectHashType:  mmr.HashType(j.ObjectHashType),
		MMRHashType:     mmr.HashType(j.MMRHashType),
		MMRRoot:         j.MMRRoot,
		MMRHashes:       j.MMRHashes,
		DataDescriptors: j.DataDescriptors,
	}
	return nil
}
