package types

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Proof is the commit certificate of a block: an aggregate BLS signature over
// the precommit vote for BlockHash, plus a bitmap naming the signers.
//
// Bit i of Bitmap, counted MSB-first within each byte, marks the validator at
// index i of the roster sorted ascending by public key.
type Proof struct {
	Number    uint64
	Round     uint64
	BlockHash Hash
	Signature []byte
	Bitmap    []byte
}

type proofJSON struct {
	Number    hexutil.Uint64 `json:"number"`
	Round     hexutil.Uint64 `json:"round"`
	BlockHash Hash           `json:"block_hash"`
	Signature hexutil.Bytes  `json:"signature"`
	Bitmap    hexutil.Bytes  `json:"bitmap"`
}

// MarshalJSON implements json.Marshaler.
func (p Proof) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofJSON{
		Number:    hexutil.Uint64(p.Number),
		Round:     hexutil.Uint64(p.Round),
		BlockHash: p.BlockHash,
		Signature: p.Signature,
		Bitmap:    p.Bitmap,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Proof) UnmarshalJSON(input []byte) error {
	var dec proofJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	*p = Proof{
		Number:    uint64(dec.Number),
		Round:     uint64(dec.Round),
		BlockHash: dec.BlockHash,
		Signature: dec.Signature,
		Bitmap:    dec.Bitmap,
	}
	return nil
}

// Validator is a member of the committee as seen by the verifier.
type Validator struct {
	PubKey        []byte // compressed BLS12-381 G1 point
	ProposeWeight uint32
	VoteWeight    uint32
}

// String implements fmt.Stringer, abbreviating the key.
func (v Validator) String() string {
	pk := hexutil.Encode(v.PubKey)
	if len(pk) > 10 {
		pk = pk[:10]
	}
	return fmt.Sprintf("validator{%s… propose=%d vote=%d}", pk, v.ProposeWeight, v.VoteWeight)
}

// VoteTypePrecommit tags the vote whose aggregate signature commits a block.
const VoteTypePrecommit uint8 = 2

// Vote is the message validators sign. The verifier always rebuilds it from
// the block and proof; it is never taken from input.
type Vote struct {
	Height    uint64
	Round     uint64
	VoteType  uint8
	BlockHash []byte
}

// NewPrecommit returns the precommit vote for blockHash at height and round.
func NewPrecommit(height, round uint64, blockHash Hash) *Vote {
	return &Vote{
		Height:    height,
		Round:     round,
		VoteType:  VoteTypePrecommit,
		BlockHash: blockHash.Bytes(),
	}
}

// Hash returns keccak256(rlp([height, round, vote_type, block_hash])), the
// digest covered by the aggregate signature.
func (v *Vote) Hash() Hash {
	h, err := rlpHash(v)
	if err != nil {
		// A vote only holds integers and bytes.
		panic(fmt.Sprintf("types: vote encoding failed: %v", err))
	}
	return h
}
