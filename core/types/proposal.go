package types

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// Proposal is the set of header fields a block hash commits to. It only
// exists to be hashed: the verifier builds it from the block being checked
// and the state root of the already verified predecessor.
type Proposal struct {
	Version               BlockVersion
	PrevHash              Hash
	Proposer              Address
	PrevStateRoot         Hash
	TransactionsRoot      Hash
	SignedTxsHash         Hash
	Timestamp             uint64
	Number                BlockNumber
	GasLimit              uint256.Int
	ExtraData             []ExtraData
	BaseFeePerGas         uint256.Int
	Proof                 Proof
	ChainID               uint64
	CallSystemScriptCount uint32
	TxHashes              []Hash
}

// NewProposal builds the proposal of block. prevStateRoot must come from the
// verified parent, never from block itself.
func NewProposal(block *Block, prevStateRoot Hash) *Proposal {
	h := &block.Header
	p := &Proposal{
		Version:               h.Version,
		PrevHash:              h.PrevHash,
		Proposer:              h.Proposer,
		PrevStateRoot:         prevStateRoot,
		TransactionsRoot:      h.TransactionsRoot,
		SignedTxsHash:         h.SignedTxsHash,
		Timestamp:             h.Timestamp,
		Number:                h.Number,
		ExtraData:             h.ExtraData,
		Proof:                 h.Proof,
		ChainID:               h.ChainID,
		CallSystemScriptCount: h.CallSystemScriptCount,
		TxHashes:              block.TxHashes,
	}
	p.GasLimit.Set(&h.GasLimit)
	p.BaseFeePerGas.Set(&h.BaseFeePerGas)
	return p
}

// EncodeRLP writes the canonical encoding selected by p.Version.
//
//	V0: [[version], prev_hash, proposer, prev_state_root, transactions_root,
//	     signed_txs_hash, timestamp, number, gas_limit(u64), [extra_data],
//	     proof, call_system_script_count, [tx_hashes]]
//	V1: [[version], prev_hash, proposer, prev_state_root, transactions_root,
//	     signed_txs_hash, timestamp, number, gas_limit, [extra_data],
//	     base_fee_per_gas, proof, chain_id, call_system_script_count,
//	     [tx_hashes]]
func (p *Proposal) EncodeRLP(w io.Writer) error {
	if !p.Version.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedBlockVersion, uint8(p.Version))
	}
	if p.Version == V0 && !p.GasLimit.IsUint64() {
		return fmt.Errorf("%w: %s", ErrGasLimitOverflow, p.GasLimit.Hex())
	}
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	if err := p.Version.EncodeRLP(buf); err != nil {
		return err
	}
	buf.WriteBytes(p.PrevHash[:])
	buf.WriteBytes(p.Proposer[:])
	buf.WriteBytes(p.PrevStateRoot[:])
	buf.WriteBytes(p.TransactionsRoot[:])
	buf.WriteBytes(p.SignedTxsHash[:])
	buf.WriteUint64(p.Timestamp)
	buf.WriteUint64(p.Number)
	switch p.Version {
	case V0:
		buf.WriteUint64(p.GasLimit.Uint64())
	default:
		buf.WriteUint256(&p.GasLimit)
	}
	extra := buf.List()
	for _, e := range p.ExtraData {
		inner := buf.List()
		buf.WriteBytes(e.Inner)
		buf.ListEnd(inner)
	}
	buf.ListEnd(extra)
	if p.Version == V1 {
		buf.WriteUint256(&p.BaseFeePerGas)
	}
	if err := rlp.Encode(buf, &p.Proof); err != nil {
		return err
	}
	if p.Version == V1 {
		buf.WriteUint64(p.ChainID)
	}
	buf.WriteUint64(uint64(p.CallSystemScriptCount))
	txs := buf.List()
	for _, h := range p.TxHashes {
		buf.WriteBytes(h[:])
	}
	buf.ListEnd(txs)
	buf.ListEnd(l)
	return buf.Flush()
}

// Hash returns keccak256 of the canonical encoding, i.e. the block hash.
func (p *Proposal) Hash() (Hash, error) {
	return rlpHash(p)
}
