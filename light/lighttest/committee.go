// Package lighttest builds signed block proofs for tests and fixtures.
package lighttest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/crypto"
)

// Committee is a validator set whose secret keys are known.
type Committee struct {
	// Validators are sorted ascending by public key, the canonical order.
	Validators []types.Validator

	dst  []byte
	keys []*crypto.SecretKey // aligned with Validators
}

// NewCommittee deterministically derives n validators with unit weights.
func NewCommittee(n int, dst string) (*Committee, error) {
	if n <= 0 {
		return nil, errors.New("lighttest: committee size must be positive")
	}
	type member struct {
		v  types.Validator
		sk *crypto.SecretKey
	}
	members := make([]member, n)
	for i := range members {
		ikm := make([]byte, 32)
		binary.BigEndian.PutUint64(ikm[24:], uint64(i)+1)
		sk, err := crypto.GenerateKey(crypto.Keccak256(ikm))
		if err != nil {
			return nil, err
		}
		members[i] = member{
			v:  types.Validator{PubKey: sk.PublicKey().Bytes(), ProposeWeight: 1, VoteWeight: 1},
			sk: sk,
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return string(members[i].v.PubKey) < string(members[j].v.PubKey)
	})
	c := &Committee{dst: []byte(dst)}
	for _, m := range members {
		c.Validators = append(c.Validators, m.v)
		c.keys = append(c.keys, m.sk)
	}
	return c, nil
}

// Roster returns a copy of the validators the caller may reorder freely.
func (c *Committee) Roster() []types.Validator {
	out := make([]types.Validator, len(c.Validators))
	copy(out, c.Validators)
	return out
}

// Bitmap returns the MSB-first bitmap selecting the canonical indices.
func (c *Committee) Bitmap(indices ...int) []byte {
	return Bitmap(len(c.Validators), indices...)
}

// Bitmap returns an MSB-first bitmap of n bits with the given bits set.
func Bitmap(n int, indices ...int) []byte {
	bm := make([]byte, (n+7)/8)
	for _, i := range indices {
		bm[i/8] |= 0x80 >> (uint(i) % 8)
	}
	return bm
}

// Sign returns the compressed aggregate signature of the given validators
// over digest.
func (c *Committee) Sign(digest []byte, indices ...int) ([]byte, error) {
	sigs := make([]*crypto.Signature, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(c.keys) {
			return nil, fmt.Errorf("lighttest: validator index %d out of range", i)
		}
		sigs = append(sigs, c.keys[i].Sign(digest, c.dst))
	}
	agg, err := crypto.AggregateSignatures(sigs)
	if err != nil {
		return nil, err
	}
	return agg.Bytes(), nil
}

// Commit produces the proof the given validators would sign for block at
// round, hashing it against prevStateRoot.
func (c *Committee) Commit(block *types.Block, prevStateRoot types.Hash, round uint64, indices ...int) (*types.Proof, error) {
	hash, err := types.NewProposal(block, prevStateRoot).Hash()
	if err != nil {
		return nil, err
	}
	digest := types.NewPrecommit(block.Header.Number, round, hash).Hash()
	sig, err := c.Sign(digest[:], indices...)
	if err != nil {
		return nil, err
	}
	return &types.Proof{
		Number:    block.Header.Number,
		Round:     round,
		BlockHash: hash,
		Signature: sig,
		Bitmap:    c.Bitmap(indices...),
	}, nil
}

// Indices returns 0..n-1.
func Indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// NewBlock returns a populated block at number with the given version.
func NewBlock(number uint64, version types.BlockVersion) *types.Block {
	b := &types.Block{
		Header: types.Header{
			Version:          version,
			PrevHash:         types.HexToHash(fmt.Sprintf("0x%x", number)),
			Proposer:         types.Address{0x8a, 0xb0, 0xcf},
			StateRoot:        types.HexToHash("0x5157"),
			TransactionsRoot: types.HexToHash("0x7872"),
			SignedTxsHash:    types.HexToHash("0x5178"),
			ReceiptsRoot:     types.HexToHash("0x7263"),
			Timestamp:        1_700_000_000 + number,
			Number:           number,
			ExtraData:        []types.ExtraData{{Inner: []byte{0x01}}},
			Proof: types.Proof{
				Number:    number - 1,
				BlockHash: types.HexToHash("0x9a7e"),
			},
			CallSystemScriptCount: 1,
			ChainID:               2022,
		},
		TxHashes: []types.Hash{types.HexToHash("0x01"), types.HexToHash("0x02")},
	}
	b.Header.GasLimit.SetUint64(30_000_000)
	b.Header.BaseFeePerGas.SetUint64(1_337)
	return b
}
