package light

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/light/lighttest"
)

func TestBitSetMSBFirst(t *testing.T) {
	bm := []byte{0x80, 0x01}
	require.True(t, bitSet(bm, 0))
	for i := 1; i < 15; i++ {
		require.False(t, bitSet(bm, i), "bit %d", i)
	}
	require.True(t, bitSet(bm, 15))
	require.Equal(t, []byte{0xa0, 0x40}, lighttest.Bitmap(10, 0, 2, 9))
}

func TestSortValidatorsIsPure(t *testing.T) {
	in := []types.Validator{
		{PubKey: []byte{3}}, {PubKey: []byte{1}}, {PubKey: []byte{2}},
	}
	out := SortValidators(in)
	require.Equal(t, []byte{1}, out[0].PubKey)
	require.Equal(t, []byte{2}, out[1].PubKey)
	require.Equal(t, []byte{3}, out[2].PubKey)
	// Caller's slice keeps its order.
	require.Equal(t, []byte{3}, in[0].PubKey)
}

func TestSelectSigners(t *testing.T) {
	c, err := lighttest.NewCommittee(5, DefaultDST)
	require.NoError(t, err)

	s, err := SelectSigners(c.Roster(), c.Bitmap(0, 2, 4))
	require.NoError(t, err)
	require.Equal(t, 3, s.Count())
	require.Equal(t, 5, s.Total())
	require.Equal(t, c.Validators[0].PubKey, s.Validators[0].PubKey)
	require.Equal(t, c.Validators[2].PubKey, s.Validators[1].PubKey)
	require.Equal(t, c.Validators[4].PubKey, s.Validators[2].PubKey)
	for i, pk := range s.PublicKeys {
		require.Equal(t, s.Validators[i].PubKey, pk.Bytes())
	}
}

func TestSelectSignersSortsInput(t *testing.T) {
	c, err := lighttest.NewCommittee(4, DefaultDST)
	require.NoError(t, err)

	roster := c.Roster()
	roster[0], roster[3] = roster[3], roster[0]
	roster[1], roster[2] = roster[2], roster[1]
	shuffled := c.Roster()
	copy(shuffled, roster)

	s, err := SelectSigners(roster, c.Bitmap(0))
	require.NoError(t, err)
	require.Equal(t, c.Validators[0].PubKey, s.Validators[0].PubKey)
	require.Equal(t, shuffled, roster, "input must not be reordered")
}

func TestSelectSignersBitmapLength(t *testing.T) {
	c, err := lighttest.NewCommittee(10, DefaultDST)
	require.NoError(t, err)

	// One byte covers validators 0..7; 8 and 9 are implicit non-signers.
	s, err := SelectSigners(c.Roster(), []byte{0xff})
	require.NoError(t, err)
	require.Equal(t, 8, s.Count())
	require.Equal(t, 10, s.Total())

	// Trailing bits past the roster are ignored.
	s, err = SelectSigners(c.Roster(), []byte{0xff, 0xff, 0xff})
	require.NoError(t, err)
	require.Equal(t, 10, s.Count())

	s, err = SelectSigners(c.Roster(), nil)
	require.NoError(t, err)
	require.Zero(t, s.Count())
}

func TestSelectSignersInvalidKey(t *testing.T) {
	c, err := lighttest.NewCommittee(3, DefaultDST)
	require.NoError(t, err)

	roster := append(c.Roster(), types.Validator{PubKey: bytes.Repeat([]byte{0xff}, 48), VoteWeight: 1})
	// 0xff.. sorts last.
	_, err = SelectSigners(roster, lighttest.Bitmap(4, 0, 1, 2, 3))
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	// An unselected broken key is never decoded.
	s, err := SelectSigners(roster, lighttest.Bitmap(4, 0, 1, 2))
	require.NoError(t, err)
	require.Equal(t, 3, s.Count())
}

func TestSelectSignersDuplicateKey(t *testing.T) {
	c, err := lighttest.NewCommittee(3, DefaultDST)
	require.NoError(t, err)

	roster := append(c.Roster(), c.Validators[1])
	_, err = SelectSigners(roster, lighttest.Bitmap(4, 0))
	require.ErrorIs(t, err, ErrDuplicateValidator)
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestSelectSignersEmpty(t *testing.T) {
	_, err := SelectSigners(nil, []byte{0xff})
	require.ErrorIs(t, err, ErrEmptyValidatorSet)
}
