package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var errMissingField = errors.New("types: missing required field")

type headerJSON struct {
	Version               BlockVersion    `json:"version"`
	PrevHash              *Hash           `json:"prev_hash"`
	Proposer              *Address        `json:"proposer"`
	StateRoot             *Hash           `json:"state_root"`
	TransactionsRoot      *Hash           `json:"transactions_root"`
	SignedTxsHash         *Hash           `json:"signed_txs_hash"`
	ReceiptsRoot          *Hash           `json:"receipts_root"`
	LogBloom              *Bloom          `json:"log_bloom"`
	Timestamp             *hexutil.Uint64 `json:"timestamp"`
	Number                *hexutil.Uint64 `json:"number"`
	GasUsed               *hexutil.Big    `json:"gas_used"`
	GasLimit              *hexutil.Big    `json:"gas_limit"`
	ExtraData             []ExtraData     `json:"extra_data"`
	BaseFeePerGas         *hexutil.Big    `json:"base_fee_per_gas"`
	Proof                 *Proof          `json:"proof"`
	CallSystemScriptCount hexutil.Uint64  `json:"call_system_script_count"`
	ChainID               hexutil.Uint64  `json:"chain_id"`
}

// MarshalJSON encodes the header with 0x-prefixed quantities.
func (h Header) MarshalJSON() ([]byte, error) {
	enc := headerJSON{
		Version:               h.Version,
		PrevHash:              &h.PrevHash,
		Proposer:              &h.Proposer,
		StateRoot:             &h.StateRoot,
		TransactionsRoot:      &h.TransactionsRoot,
		SignedTxsHash:         &h.SignedTxsHash,
		ReceiptsRoot:          &h.ReceiptsRoot,
		LogBloom:              &h.LogBloom,
		Timestamp:             (*hexutil.Uint64)(&h.Timestamp),
		Number:                (*hexutil.Uint64)(&h.Number),
		GasUsed:               (*hexutil.Big)(h.GasUsed.ToBig()),
		GasLimit:              (*hexutil.Big)(h.GasLimit.ToBig()),
		ExtraData:             h.ExtraData,
		BaseFeePerGas:         (*hexutil.Big)(h.BaseFeePerGas.ToBig()),
		Proof:                 &h.Proof,
		CallSystemScriptCount: hexutil.Uint64(h.CallSystemScriptCount),
		ChainID:               hexutil.Uint64(h.ChainID),
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON decodes a header. Hashes, number and timestamp are required.
func (h *Header) UnmarshalJSON(input []byte) error {
	var dec headerJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.PrevHash == nil {
		return fmt.Errorf("%w 'prev_hash' for Header", errMissingField)
	}
	if dec.Number == nil {
		return fmt.Errorf("%w 'number' for Header", errMissingField)
	}
	if dec.Timestamp == nil {
		return fmt.Errorf("%w 'timestamp' for Header", errMissingField)
	}
	if uint64(dec.CallSystemScriptCount) > math.MaxUint32 {
		return fmt.Errorf("types: call_system_script_count %d overflows uint32", dec.CallSystemScriptCount)
	}

	var out Header
	out.Version = dec.Version
	out.PrevHash = *dec.PrevHash
	if dec.Proposer != nil {
		out.Proposer = *dec.Proposer
	}
	if dec.StateRoot != nil {
		out.StateRoot = *dec.StateRoot
	}
	if dec.TransactionsRoot != nil {
		out.TransactionsRoot = *dec.TransactionsRoot
	}
	if dec.SignedTxsHash != nil {
		out.SignedTxsHash = *dec.SignedTxsHash
	}
	if dec.ReceiptsRoot != nil {
		out.ReceiptsRoot = *dec.ReceiptsRoot
	}
	if dec.LogBloom != nil {
		out.LogBloom = *dec.LogBloom
	}
	out.Timestamp = uint64(*dec.Timestamp)
	out.Number = uint64(*dec.Number)
	if err := setUint256(&out.GasUsed, dec.GasUsed, "gas_used"); err != nil {
		return err
	}
	if err := setUint256(&out.GasLimit, dec.GasLimit, "gas_limit"); err != nil {
		return err
	}
	out.ExtraData = dec.ExtraData
	if err := setUint256(&out.BaseFeePerGas, dec.BaseFeePerGas, "base_fee_per_gas"); err != nil {
		return err
	}
	if dec.Proof != nil {
		out.Proof = *dec.Proof
	}
	out.CallSystemScriptCount = uint32(dec.CallSystemScriptCount)
	out.ChainID = uint64(dec.ChainID)

	*h = out
	return nil
}

func setUint256(dst *uint256.Int, src *hexutil.Big, field string) error {
	if src == nil {
		dst.Clear()
		return nil
	}
	v, overflow := uint256.FromBig(src.ToInt())
	if overflow {
		return fmt.Errorf("types: %s overflows 256 bits", field)
	}
	dst.Set(v)
	return nil
}
