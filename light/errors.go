package light

import (
	"errors"
	"fmt"
)

// Block proof verification errors. Every rejection returned by the verifier
// wraps exactly one of the first five; use errors.Is to classify.
var (
	ErrInvalidProofBlockHash = errors.New("light: proof block hash mismatch")
	ErrNotEnoughSignatures   = errors.New("light: not enough signatures for quorum")
	ErrInvalidPublicKey      = errors.New("light: invalid validator public key")
	ErrInvalidSignature      = errors.New("light: invalid signature")
	ErrTrieProof             = errors.New("light: invalid trie proof")

	// ErrMalformedSignature and ErrVerifyFailed refine ErrInvalidSignature:
	// the first means the bytes are not a G2 point, the second that a
	// well-formed aggregate signature does not cover the vote.
	ErrMalformedSignature = fmt.Errorf("%w: malformed signature bytes", ErrInvalidSignature)
	ErrVerifyFailed       = fmt.Errorf("%w: aggregate signature verification failed", ErrInvalidSignature)

	// ErrDuplicateValidator refines ErrInvalidPublicKey: the roster lists
	// the same key twice, so it has no single canonical order.
	ErrDuplicateValidator = fmt.Errorf("%w: duplicate validator key", ErrInvalidPublicKey)

	ErrEmptyValidatorSet   = errors.New("light: empty validator set")
	ErrProofNumberMismatch = errors.New("light: proof number does not match block number")
	ErrNilInput            = errors.New("light: nil block or proof")
)

// rejectReason names the error class of err for metrics and logs.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidProofBlockHash):
		return "block_hash"
	case errors.Is(err, ErrNotEnoughSignatures), errors.Is(err, ErrEmptyValidatorSet):
		return "quorum"
	case errors.Is(err, ErrInvalidPublicKey):
		return "public_key"
	case errors.Is(err, ErrInvalidSignature):
		return "signature"
	default:
		return "other"
	}
}
