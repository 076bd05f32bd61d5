package light

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonproof/axonproof/core/types"
)

func TestHasQuorumBoundaries(t *testing.T) {
	tests := []struct {
		included, total uint64
		want            bool
	}{
		{0, 0, false},
		{0, 1, false},
		{1, 1, true},
		{1, 2, false},
		{2, 2, true},
		{2, 3, false},
		{3, 3, true},
		{2, 4, false},
		{3, 4, true},
		{4, 6, false},
		{5, 6, true},
		{66, 100, false},
		{67, 100, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, HasQuorum(tt.included, tt.total), "%d of %d", tt.included, tt.total)
	}
}

func TestHasQuorumThreshold(t *testing.T) {
	// The smallest quorum of n is floor(2n/3)+1.
	for n := uint64(1); n <= 200; n++ {
		least := 2*n/3 + 1
		require.False(t, HasQuorum(least-1, n), "n=%d", n)
		require.True(t, HasQuorum(least, n), "n=%d", n)
	}
}

func signersOf(weights []uint32, signed ...int) *Signers {
	s := &Signers{}
	for i, w := range weights {
		v := types.Validator{PubKey: []byte{byte(i)}, VoteWeight: w}
		s.Roster = append(s.Roster, v)
	}
	for _, i := range signed {
		s.Validators = append(s.Validators, s.Roster[i])
	}
	return s
}

func TestCountQuorum(t *testing.T) {
	require.False(t, CountQuorum{}.Reached(signersOf([]uint32{1, 1, 1}, 0, 1)))
	require.True(t, CountQuorum{}.Reached(signersOf([]uint32{1, 1, 1}, 0, 1, 2)))
	// Weights are ignored.
	require.True(t, CountQuorum{}.Reached(signersOf([]uint32{1, 1, 1, 100}, 0, 1, 2)))
}

func TestWeightQuorum(t *testing.T) {
	// 3 of 4 heads, but only 3 of 103 weight.
	require.False(t, WeightQuorum{}.Reached(signersOf([]uint32{1, 1, 1, 100}, 0, 1, 2)))
	// One heavy validator alone carries the weight.
	require.True(t, WeightQuorum{}.Reached(signersOf([]uint32{1, 1, 1, 100}, 3)))
	require.False(t, WeightQuorum{}.Reached(signersOf([]uint32{0, 0}, 0, 1)))
}
