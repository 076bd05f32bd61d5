package light

import "github.com/axonproof/axonproof/core/types"

// HasQuorum reports whether included out of total strictly exceeds two
// thirds: 3*included > 2*total.
func HasQuorum(included, total uint64) bool {
	return 3*included > 2*total
}

// QuorumPolicy decides whether a selection of signers may commit a block.
// Implementations must measure the selection against the same roster it was
// drawn from.
type QuorumPolicy interface {
	Reached(s *Signers) bool
}

// CountQuorum counts heads, ignoring validator weights. This is the rule
// deployed signers follow.
type CountQuorum struct{}

// Reached implements QuorumPolicy.
func (CountQuorum) Reached(s *Signers) bool {
	return HasQuorum(uint64(s.Count()), uint64(s.Total()))
}

// WeightQuorum sums vote weights instead of counting validators.
type WeightQuorum struct{}

// Reached implements QuorumPolicy.
func (WeightQuorum) Reached(s *Signers) bool {
	return HasQuorum(voteWeight(s.Validators), voteWeight(s.Roster))
}

func voteWeight(vs []types.Validator) uint64 {
	var w uint64
	for _, v := range vs {
		w += uint64(v.VoteWeight)
	}
	return w
}
