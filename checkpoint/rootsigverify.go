package checkpoint

import (
	"crypto"

	"github.com/forestrie/go-vdxf/mmr"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/veraison/go-cose"
)

// DecodeSignedRoot decodes the view state of a signed message. The state
// does not verify as it is, its root was removed before publishing.
//
// Verification takes three steps:
//  1. DecodeSignedRoot to get the state.
//  2. Recompute the root of the range at state.Size.
//  3. Set state.Root and call VerifySignedRoot.
//
// VerifyRange does all three against a range.
func DecodeSignedRoot(codec Codec, msg []byte) (*cose.Sign1Message, ViewState, error) {
	var signed cose.Sign1Message
	if err := signed.UnmarshalCBOR(msg); err != nil {
		return nil, ViewState{}, err
	}
	var unverified ViewState
	if err := codec.UnmarshalInto(signed.Payload, &unverified); err != nil {
		return nil, ViewState{}, err
	}
	return &signed, unverified, nil
}

// VerifySignedRoot puts state back as the payload of signed and verifies the
// signature.
func VerifySignedRoot(codec Codec, publicKey crypto.PublicKey, signed *cose.Sign1Message, state ViewState, external []byte) error {
	alg, err := signed.Headers.Protected.Algorithm()
	if err != nil {
		return err
	}
	verifier, err := cose.NewVerifier(alg, publicKey)
	if err != nil {
		return err
	}
	if signed.Payload, err = codec.MarshalCBOR(state); err != nil {
		return err
	}
	return signed.Verify(external, verifier)
}

// VerifyRange verifies a signed checkpoint against m, recomputing the root
// from the view of m at the signed size. It returns the verified state.
func VerifyRange(codec Codec, publicKey crypto.PublicKey, msg []byte, m *mmr.MerkleMountainRange, external []byte) (ViewState, error) {
	signed, state, err := DecodeSignedRoot(codec, msg)
	if err != nil {
		return ViewState{}, err
	}
	if state.Size > m.Size() {
		return ViewState{}, ierrors.Wrapf(ErrSizeOutOfRange, "size %d, range has %d", state.Size, m.Size())
	}
	if m.HashType() != 0 && m.HashType() != state.HashType {
		return ViewState{}, ierrors.Wrapf(ErrHashTypeMismatch, "%s signed, range uses %s", state.HashType, m.HashType())
	}
	// a zero size views the whole range, an empty checkpoint commits to the zero hash
	root := mmr.ZeroHash
	if state.Size > 0 {
		root = m.View(state.Size).GetRoot()
	}
	state.Root = root[:]
	if err := VerifySignedRoot(codec, publicKey, signed, state, external); err != nil {
		return ViewState{}, err
	}
	return state, nil
}
