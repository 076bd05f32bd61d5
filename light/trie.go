package light

import (
	"fmt"

	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/crypto"
	"github.com/axonproof/axonproof/metrics"
)

// VerifyTrieProof checks key against a Merkle-Patricia trie with the given
// root, using the nodes on the path from the root towards key. Nodes are
// looked up by their keccak256 hash, so their order does not matter.
//
// It returns the value if key is present and (nil, nil) if the proof shows
// key is absent. A node that is missing from the proof or does not hash to
// the reference its parent holds is an error wrapping ErrTrieProof, never an
// absence.
func VerifyTrieProof(root types.Hash, key []byte, nodes [][]byte) ([]byte, error) {
	db := memorydb.New()
	for _, node := range nodes {
		if err := db.Put(crypto.Keccak256(node), node); err != nil {
			return nil, err
		}
	}
	value, err := trie.VerifyProof(root, key, db)
	if err != nil {
		metrics.TrieProofs.With(metrics.TrieProofInvalid).Inc()
		return nil, fmt.Errorf("%w: %v", ErrTrieProof, err)
	}
	if value == nil {
		metrics.TrieProofs.With(metrics.TrieProofAbsent).Inc()
		return nil, nil
	}
	metrics.TrieProofs.With(metrics.TrieProofPresent).Inc()
	return value, nil
}

// ReceiptKey returns the receipts-trie key of the receipt at index.
func ReceiptKey(index uint64) []byte {
	key, _ := rlp.EncodeToBytes(index)
	return key
}

// VerifyReceiptProof checks the receipt at index against a receipts root.
// It returns (nil, nil) if the proof shows there is no receipt at index.
func VerifyReceiptProof(receiptsRoot types.Hash, index uint64, nodes [][]byte) (*gethtypes.Receipt, error) {
	value, err := VerifyTrieProof(receiptsRoot, ReceiptKey(index), nodes)
	if err != nil || value == nil {
		return nil, err
	}
	receipt := new(gethtypes.Receipt)
	if err := receipt.UnmarshalBinary(value); err != nil {
		return nil, fmt.Errorf("%w: receipt %d: %v", ErrTrieProof, index, err)
	}
	return receipt, nil
}
