package light

import (
	"fmt"

	"github.com/axonproof/axonproof/crypto"
)

// SignatureVerifier checks an aggregate BLS signature over a digest under a
// fixed domain separation tag.
type SignatureVerifier struct {
	dst []byte
}

// NewSignatureVerifier returns a verifier for signatures made under dst.
func NewSignatureVerifier(dst string) *SignatureVerifier {
	return &SignatureVerifier{dst: []byte(dst)}
}

// DST returns the domain separation tag.
func (v *SignatureVerifier) DST() string { return string(v.dst) }

// Verify aggregates keys and checks sig over digest. Exactly the keys
// selected by the bitmap must be passed; any other set fails verification.
func (v *SignatureVerifier) Verify(keys []*crypto.PublicKey, digest, sig []byte) error {
	if len(keys) == 0 {
		return ErrNotEnoughSignatures
	}
	aggKey, err := crypto.AggregatePublicKeys(keys)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	signature, err := crypto.SignatureFromBytes(sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if !crypto.Verify(signature, digest, v.dst, aggKey) {
		return ErrVerifyFailed
	}
	return nil
}
