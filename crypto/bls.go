// BLS12-381 adapter over the supranational/blst library, MinPk variant:
//   - Public keys in G1 (48-byte compressed P1Affine)
//   - Signatures in G2 (96-byte compressed P2Affine)
//
// The domain separation tag is always supplied by the caller so a scheme
// upgrade never requires touching verification code.
package crypto

import (
	"errors"

	blst "github.com/supranational/blst/bindings/go"
)

// Key and signature sizes for the MinPk scheme.
const (
	PublicKeyLength = 48 // compressed G1
	SignatureLength = 96 // compressed G2
	SecretKeyLength = 32 // scalar field element
)

// Errors returned by the BLS helpers.
var (
	ErrInvalidPublicKey = errors.New("bls: invalid public key")
	ErrInvalidSignature = errors.New("bls: invalid signature")
	ErrNoPublicKeys     = errors.New("bls: no public keys to aggregate")
	ErrNoSignatures     = errors.New("bls: no signatures to aggregate")
	ErrAggregateFailed  = errors.New("bls: aggregation failed")
	ErrInvalidIKM       = errors.New("bls: IKM must be at least 32 bytes")
	ErrKeyGenFailed     = errors.New("bls: key generation failed")
)

// PublicKey is a validated G1 point.
type PublicKey struct {
	p *blst.P1Affine
}

// PublicKeyFromBytes decodes a compressed public key. The point must be on
// the curve, in the prime-order subgroup and not the identity.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeyLength {
		return nil, ErrInvalidPublicKey
	}
	p := new(blst.P1Affine).Uncompress(b)
	if p == nil || !p.KeyValidate() {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{p: p}, nil
}

// Bytes returns the compressed encoding.
func (k *PublicKey) Bytes() []byte { return k.p.Compress() }

// AggregatePublicKeys sums keys into one aggregate key. Addition is
// commutative, so the order of keys does not matter; the set does.
func AggregatePublicKeys(keys []*PublicKey) (*PublicKey, error) {
	if len(keys) == 0 {
		return nil, ErrNoPublicKeys
	}
	points := make([]*blst.P1Affine, len(keys))
	for i, k := range keys {
		points[i] = k.p
	}
	agg := new(blst.P1Aggregate)
	if !agg.Aggregate(points, true) {
		return nil, ErrAggregateFailed
	}
	return &PublicKey{p: agg.ToAffine()}, nil
}

// Signature is a decoded G2 point.
type Signature struct {
	p *blst.P2Affine
}

// SignatureFromBytes decodes a compressed 96-byte signature.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureLength {
		return nil, ErrInvalidSignature
	}
	p := new(blst.P2Affine).Uncompress(b)
	if p == nil {
		return nil, ErrInvalidSignature
	}
	return &Signature{p: p}, nil
}

// Bytes returns the compressed encoding.
func (s *Signature) Bytes() []byte { return s.p.Compress() }

// Verify checks sig over msg under dst for pk, with signature subgroup and
// public key validation enabled and no augmentation.
func Verify(sig *Signature, msg, dst []byte, pk *PublicKey) bool {
	if sig == nil || pk == nil {
		return false
	}
	return sig.p.Verify(true, pk.p, true, msg, dst)
}

// AggregateSignatures sums signatures over the same message.
func AggregateSignatures(sigs []*Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, ErrNoSignatures
	}
	points := make([]*blst.P2Affine, len(sigs))
	for i, s := range sigs {
		points[i] = s.p
	}
	agg := new(blst.P2Aggregate)
	if !agg.Aggregate(points, true) {
		return nil, ErrAggregateFailed
	}
	return &Signature{p: agg.ToAffine()}, nil
}

// SecretKey is a BLS signing key. Only fixtures and tooling sign; the
// verifier never holds one.
type SecretKey struct {
	k *blst.SecretKey
}

// GenerateKey derives a secret key from input key material of at least
// 32 bytes.
func GenerateKey(ikm []byte) (*SecretKey, error) {
	if len(ikm) < SecretKeyLength {
		return nil, ErrInvalidIKM
	}
	sk := blst.KeyGen(ikm)
	if sk == nil {
		return nil, ErrKeyGenFailed
	}
	return &SecretKey{k: sk}, nil
}

// PublicKey returns the public key of sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{p: new(blst.P1Affine).From(sk.k)}
}

// Sign signs msg under dst.
func (sk *SecretKey) Sign(msg, dst []byte) *Signature {
	return &Signature{p: new(blst.P2Affine).Sign(sk.k, msg, dst)}
}
