package light

import (
	"bytes"
	"testing"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/stretchr/testify/require"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/metrics"
)

// proveKey returns the proof nodes for key in tr.
func proveKey(t *testing.T, tr *trie.Trie, key []byte) [][]byte {
	t.Helper()
	db := memorydb.New()
	require.NoError(t, tr.Prove(key, db))
	var nodes [][]byte
	it := db.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		nodes = append(nodes, bytes.Clone(it.Value()))
	}
	require.NoError(t, it.Error())
	return nodes
}

// smallTrie holds values short enough that leaves are embedded in their
// parent, so a proof for one key also proves absence of its siblings.
func smallTrie(t *testing.T) *trie.Trie {
	t.Helper()
	tr := trie.NewEmpty(nil)
	require.NoError(t, tr.Update(ReceiptKey(0), []byte("a")))
	require.NoError(t, tr.Update(ReceiptKey(1), []byte("b")))
	return tr
}

func TestVerifyTrieProofPresent(t *testing.T) {
	tr := smallTrie(t)
	root := tr.Hash()
	present := metrics.TrieProofs.With(metrics.TrieProofPresent).Value()

	value, err := VerifyTrieProof(root, ReceiptKey(0), proveKey(t, tr, ReceiptKey(0)))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), value)
	require.Equal(t, present+1, metrics.TrieProofs.With(metrics.TrieProofPresent).Value())
}

func TestVerifyTrieProofNodeOrder(t *testing.T) {
	tr := smallTrie(t)
	nodes := proveKey(t, tr, ReceiptKey(1))
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	value, err := VerifyTrieProof(tr.Hash(), ReceiptKey(1), nodes)
	require.NoError(t, err)
	require.Equal(t, []byte("b"), value)
}

func TestVerifyTrieProofAbsent(t *testing.T) {
	tr := smallTrie(t)
	absent := metrics.TrieProofs.With(metrics.TrieProofAbsent).Value()

	value, err := VerifyTrieProof(tr.Hash(), ReceiptKey(2), proveKey(t, tr, ReceiptKey(0)))
	require.NoError(t, err)
	require.Nil(t, value)
	require.Equal(t, absent+1, metrics.TrieProofs.With(metrics.TrieProofAbsent).Value())
}

func TestVerifyTrieProofWrongRoot(t *testing.T) {
	tr := smallTrie(t)
	invalid := metrics.TrieProofs.With(metrics.TrieProofInvalid).Value()

	root := types.BytesToHash(bytes.Repeat([]byte{4}, 32))
	value, err := VerifyTrieProof(root, ReceiptKey(0), proveKey(t, tr, ReceiptKey(0)))
	require.ErrorIs(t, err, ErrTrieProof)
	require.Nil(t, value)
	require.Equal(t, invalid+1, metrics.TrieProofs.With(metrics.TrieProofInvalid).Value())
}

func TestVerifyTrieProofMissingNode(t *testing.T) {
	tr := smallTrie(t)
	_, err := VerifyTrieProof(tr.Hash(), ReceiptKey(0), nil)
	require.ErrorIs(t, err, ErrTrieProof)
}

func TestVerifyTrieProofTamperedNode(t *testing.T) {
	tr := smallTrie(t)
	nodes := proveKey(t, tr, ReceiptKey(0))
	nodes[0] = append(bytes.Clone(nodes[0][:len(nodes[0])-1]), nodes[0][len(nodes[0])-1]^1)
	_, err := VerifyTrieProof(tr.Hash(), ReceiptKey(0), nodes)
	require.ErrorIs(t, err, ErrTrieProof)
}

func testReceipts() gethtypes.Receipts {
	var receipts gethtypes.Receipts
	for i := 0; i < 3; i++ {
		r := &gethtypes.Receipt{
			Status:            gethtypes.ReceiptStatusSuccessful,
			CumulativeGasUsed: uint64(21_000 * (i + 1)),
			Logs:              []*gethtypes.Log{},
		}
		receipts = append(receipts, r)
	}
	return receipts
}

func receiptsTrie(t *testing.T, receipts gethtypes.Receipts) *trie.Trie {
	t.Helper()
	tr := trie.NewEmpty(nil)
	for i, r := range receipts {
		enc, err := r.MarshalBinary()
		require.NoError(t, err)
		require.NoError(t, tr.Update(ReceiptKey(uint64(i)), enc))
	}
	return tr
}

func TestVerifyReceiptProof(t *testing.T) {
	receipts := testReceipts()
	tr := receiptsTrie(t, receipts)
	root := tr.Hash()
	require.Equal(t, gethtypes.DeriveSha(receipts, trie.NewStackTrie(nil)), root)

	for i := range receipts {
		got, err := VerifyReceiptProof(root, uint64(i), proveKey(t, tr, ReceiptKey(uint64(i))))
		require.NoError(t, err)
		require.Equal(t, receipts[i].CumulativeGasUsed, got.CumulativeGasUsed)
		require.Equal(t, receipts[i].Status, got.Status)
	}
}

func TestVerifyReceiptProofWrongIndex(t *testing.T) {
	tr := receiptsTrie(t, testReceipts())
	// Leaves are hashed, so index 1 needs a node index 0's proof lacks.
	_, err := VerifyReceiptProof(tr.Hash(), 1, proveKey(t, tr, ReceiptKey(0)))
	require.ErrorIs(t, err, ErrTrieProof)
}

func TestVerifyReceiptProofUndecodable(t *testing.T) {
	tr := smallTrie(t)
	_, err := VerifyReceiptProof(tr.Hash(), 0, proveKey(t, tr, ReceiptKey(0)))
	require.ErrorIs(t, err, ErrTrieProof)
}
