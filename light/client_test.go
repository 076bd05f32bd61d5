package light

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/light/lighttest"
)

func newTestClient(t *testing.T) (*Client, *lighttest.Committee, Checkpoint) {
	t.Helper()
	c, err := lighttest.NewCommittee(4, DefaultDST)
	require.NoError(t, err)
	trusted := Checkpoint{
		Number:    9,
		Hash:      types.HexToHash("0x09"),
		StateRoot: testPrevStateRoot,
	}
	client, err := NewClient(newTestVerifier(t), nil, trusted)
	require.NoError(t, err)
	return client, c, trusted
}

// nextBlock builds and commits the child of parent.
func nextBlock(t *testing.T, c *lighttest.Committee, parent Checkpoint, signers ...int) (*types.Block, *types.Proof) {
	t.Helper()
	block := lighttest.NewBlock(parent.Number+1, types.V0)
	block.Header.PrevHash = parent.Hash
	block.Header.StateRoot = types.BytesToHash([]byte{byte(parent.Number + 1)})
	proof, err := c.Commit(block, parent.StateRoot, 0, signers...)
	require.NoError(t, err)
	return block, proof
}

func TestClientAdvance(t *testing.T) {
	client, c, trusted := newTestClient(t)
	head := trusted
	for i := 0; i < 3; i++ {
		block, proof := nextBlock(t, c, head, lighttest.Indices(4)...)
		require.NoError(t, client.Advance(block, proof, c.Roster()))
		head = client.Head()
		require.Equal(t, block.Header.Number, head.Number)
		require.Equal(t, proof.BlockHash, head.Hash)
		require.Equal(t, block.Header.StateRoot, head.StateRoot)
	}
	cp, ok := client.Checkpoint(11)
	require.True(t, ok)
	require.Equal(t, types.BlockNumber(11), cp.Number)
}

func TestClientRejectsGap(t *testing.T) {
	client, c, trusted := newTestClient(t)
	block, proof := nextBlock(t, c, Checkpoint{Number: trusted.Number + 1, Hash: trusted.Hash, StateRoot: trusted.StateRoot}, lighttest.Indices(4)...)
	require.ErrorIs(t, client.Advance(block, proof, c.Roster()), ErrNotNextBlock)
	require.Equal(t, trusted, client.Head())
}

func TestClientRejectsFork(t *testing.T) {
	client, c, trusted := newTestClient(t)
	fork := trusted
	fork.Hash = types.HexToHash("0xf0")
	block, proof := nextBlock(t, c, fork, lighttest.Indices(4)...)
	require.ErrorIs(t, client.Advance(block, proof, c.Roster()), ErrNotNextBlock)
}

func TestClientRejectsWrongStateRoot(t *testing.T) {
	client, c, trusted := newTestClient(t)
	forged := trusted
	forged.StateRoot = types.HexToHash("0xbad")
	block, proof := nextBlock(t, c, forged, lighttest.Indices(4)...)

	require.ErrorIs(t, client.Advance(block, proof, c.Roster()), ErrInvalidProofBlockHash)
	require.Equal(t, trusted, client.Head())
}

func TestClientRejectsWeakProof(t *testing.T) {
	client, c, trusted := newTestClient(t)
	block, proof := nextBlock(t, c, trusted, 0, 1)
	require.ErrorIs(t, client.Advance(block, proof, c.Roster()), ErrNotEnoughSignatures)
	require.Equal(t, trusted, client.Head())
}

func TestNewClientNilVerifier(t *testing.T) {
	_, err := NewClient(nil, nil, Checkpoint{})
	require.ErrorIs(t, err, ErrNilInput)
}
