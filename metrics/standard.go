package metrics

// Verifier metrics, all registered in DefaultRegistry.

// Bucket bounds.
var (
	// SignerBuckets covers committees from a handful of validators to
	// several hundred.
	SignerBuckets = []float64{1, 4, 7, 10, 16, 32, 64, 128, 256}
	// VerifyTimeBuckets is in milliseconds. A pairing check dominates a
	// block proof and costs around a millisecond.
	VerifyTimeBuckets = []float64{0.5, 1, 2, 5, 10, 25, 50, 100}
)

var (
	// ProofsVerified counts accepted block proofs.
	ProofsVerified = DefaultRegistry.Counter("light.proofs_verified")
	// ProofsRejected counts rejected block proofs by reason.
	ProofsRejected = DefaultRegistry.CounterVec("light.proofs_rejected", "reason")
	// ProofVerifyTime records block proof verification time.
	ProofVerifyTime = DefaultRegistry.Histogram("light.proof_verify_ms", VerifyTimeBuckets)
	// ProofSigners records how many validators a proof's bitmap selected.
	ProofSigners = DefaultRegistry.Histogram("light.proof_signers", SignerBuckets)

	// TrieProofs counts trie proof outcomes: present, absent or invalid.
	TrieProofs = DefaultRegistry.CounterVec("light.trie_proofs", "outcome")
)

// Trie proof outcomes.
const (
	TrieProofPresent = "present"
	TrieProofAbsent  = "absent"
	TrieProofInvalid = "invalid"
)
