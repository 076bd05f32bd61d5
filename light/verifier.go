// Package light verifies Axon block commit proofs and Merkle-Patricia trie
// proofs for light clients.
//
// A block is accepted when the precommit vote for its recomputed hash carries
// an aggregate BLS signature from more than two thirds of the validator set.
// Verification is a single pass through four checks:
//
//	Start -> HashChecked -> QuorumChecked -> SignatureChecked -> Accepted
//
// and any failed check rejects the proof with a wrapped sentinel error.
package light

import (
	"fmt"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/log"
	"github.com/axonproof/axonproof/metrics"
)

// Verifier checks block commit proofs. It holds only immutable configuration
// and is safe for concurrent use.
type Verifier struct {
	config Config
	policy QuorumPolicy
	sigs   *SignatureVerifier
	log    *log.Logger
}

// NewVerifier creates a Verifier. A nil logger selects the default logger.
func NewVerifier(config Config, logger *log.Logger) (*Verifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Verifier{
		config: config,
		policy: config.policy(),
		sigs:   NewSignatureVerifier(config.DST),
		log:    logger.Module("light"),
	}, nil
}

// WithPolicy returns a copy of v that measures quorum with p.
func (v *Verifier) WithPolicy(p QuorumPolicy) *Verifier {
	cpy := *v
	cpy.policy = p
	return &cpy
}

// Config returns the verifier configuration.
func (v *Verifier) Config() Config { return v.config }

// VerifyProof checks proof for block with the default configuration.
func VerifyProof(block *types.Block, prevStateRoot types.Hash, validators []types.Validator, proof *types.Proof) error {
	v, err := NewVerifier(DefaultConfig(), nil)
	if err != nil {
		return err
	}
	return v.VerifyBlockProof(block, prevStateRoot, validators, proof)
}

// VerifyBlockProof checks that proof commits block. prevStateRoot is the
// state root of the verified parent; the block's own state root is never
// trusted. validators is read, not modified.
func (v *Verifier) VerifyBlockProof(block *types.Block, prevStateRoot types.Hash, validators []types.Validator, proof *types.Proof) error {
	timer := metrics.NewTimer(metrics.ProofVerifyTime)
	defer timer.Stop()

	if err := v.verifyBlockProof(block, prevStateRoot, validators, proof); err != nil {
		reason := rejectReason(err)
		metrics.ProofsRejected.With(reason).Inc()
		v.log.Debug("Rejected block proof", "reason", reason, "err", err)
		return err
	}
	metrics.ProofsVerified.Inc()
	v.log.Debug("Accepted block proof", "number", block.Header.Number, "hash", proof.BlockHash)
	return nil
}

func (v *Verifier) verifyBlockProof(block *types.Block, prevStateRoot types.Hash, validators []types.Validator, proof *types.Proof) error {
	if block == nil || proof == nil {
		return ErrNilInput
	}
	logger := v.log.With("number", block.Header.Number, "round", proof.Round)

	// Start -> HashChecked.
	hash, err := types.NewProposal(block, prevStateRoot).Hash()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProofBlockHash, err)
	}
	if hash != proof.BlockHash {
		return fmt.Errorf("%w: computed %s, proof has %s", ErrInvalidProofBlockHash, hash, proof.BlockHash)
	}
	if proof.Number != block.Header.Number {
		return fmt.Errorf("%w: %w: proof %d, block %d", ErrInvalidProofBlockHash, ErrProofNumberMismatch, proof.Number, block.Header.Number)
	}
	logger.Debug("Block hash matches proof", "hash", hash, "version", block.Header.Version)

	// HashChecked -> QuorumChecked.
	signers, err := SelectSigners(validators, proof.Bitmap)
	if err != nil {
		return err
	}
	metrics.ProofSigners.Observe(float64(signers.Count()))
	if !v.policy.Reached(signers) {
		return fmt.Errorf("%w: %d of %d validators signed", ErrNotEnoughSignatures, signers.Count(), signers.Total())
	}
	logger.Debug("Quorum reached", "signers", signers.Count(), "validators", signers.Total())

	// QuorumChecked -> SignatureChecked.
	vote := types.NewPrecommit(block.Header.Number, proof.Round, proof.BlockHash)
	digest := vote.Hash()
	if err := v.sigs.Verify(signers.PublicKeys, digest[:], proof.Signature); err != nil {
		return err
	}
	logger.Debug("Aggregate signature verified", "digest", digest)

	// SignatureChecked -> Accepted.
	return nil
}
