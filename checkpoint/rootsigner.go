package checkpoint

import (
	"crypto/rand"

	"github.com/veraison/go-cose"
)

// HeaderLabelCWTClaims is the protected header carrying the issuer and
// subject claims.
const HeaderLabelCWTClaims int64 = 15

const (
	cwtClaimIssuer  int64 = 1
	cwtClaimSubject int64 = 2
)

// RootSigner produces a signature over a view state. It commits to that
// state, so it should only be published after checking the state is
// consistent with the last one signed.
type RootSigner struct {
	issuer string
	codec  Codec
}

func NewRootSigner(issuer string, codec Codec) RootSigner {
	return RootSigner{
		issuer: issuer,
		codec:  codec,
	}
}

// Sign1 signs state and returns the encoded COSE Sign1 message. The root is
// removed from the payload after signing.
func (rs RootSigner) Sign1(signer cose.Signer, keyID []byte, subject string, state ViewState, external []byte) ([]byte, error) {
	payload, err := rs.codec.MarshalCBOR(state)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: signer.Algorithm(),
				cose.HeaderLabelKeyID:     keyID,
				HeaderLabelCWTClaims: map[int64]any{
					cwtClaimIssuer:  rs.issuer,
					cwtClaimSubject: subject,
				},
			},
		},
		Payload: payload,
	}
	if err = msg.Sign(rand.Reader, external, signer); err != nil {
		return nil, err
	}

	// verifiers must recover the root from their own copy of the range
	state.Root = nil
	if msg.Payload, err = rs.codec.MarshalCBOR(state); err != nil {
		return nil, err
	}
	return msg.MarshalCBOR()
}
