package types

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MetadataVersion is the inclusive block range a Metadata applies to.
type MetadataVersion struct {
	Start hexutil.Uint64 `json:"start"`
	End   hexutil.Uint64 `json:"end"`
}

// Contains reports whether number falls within the range.
func (v MetadataVersion) Contains(number BlockNumber) bool {
	return uint64(v.Start) <= number && number <= uint64(v.End)
}

// ConsensusConfig holds the consensus parameters of an epoch.
type ConsensusConfig struct {
	GasLimit       hexutil.Uint64 `json:"gas_limit"`
	Interval       hexutil.Uint64 `json:"interval"`
	ProposeRatio   hexutil.Uint64 `json:"propose_ratio"`
	PrevoteRatio   hexutil.Uint64 `json:"prevote_ratio"`
	PrecommitRatio hexutil.Uint64 `json:"precommit_ratio"`
	BrakeRatio     hexutil.Uint64 `json:"brake_ratio"`
	TxNumLimit     hexutil.Uint64 `json:"tx_num_limit"`
	MaxTxSize      hexutil.Uint64 `json:"max_tx_size"`
}

// ValidatorExtend is a roster entry as published in chain metadata.
type ValidatorExtend struct {
	BLSPubKey     hexutil.Bytes `json:"bls_pub_key"`
	PubKey        hexutil.Bytes `json:"pub_key"` // secp256k1 node key
	Address       Address       `json:"address"`
	ProposeWeight hexutil.Uint  `json:"propose_weight"`
	VoteWeight    hexutil.Uint  `json:"vote_weight"`
}

// UnmarshalJSON decodes the entry, rejecting weights that do not fit the
// verifier's 32-bit weights.
func (v *ValidatorExtend) UnmarshalJSON(input []byte) error {
	type validatorExtend ValidatorExtend
	var dec validatorExtend
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if uint64(dec.ProposeWeight) > math.MaxUint32 {
		return fmt.Errorf("types: propose_weight %d overflows uint32", uint64(dec.ProposeWeight))
	}
	if uint64(dec.VoteWeight) > math.MaxUint32 {
		return fmt.Errorf("types: vote_weight %d overflows uint32", uint64(dec.VoteWeight))
	}
	*v = ValidatorExtend(dec)
	return nil
}

// Validator returns the verifier's view of the entry, keyed by the BLS key.
func (v ValidatorExtend) Validator() Validator {
	return Validator{
		PubKey:        append([]byte(nil), v.BLSPubKey...),
		ProposeWeight: uint32(v.ProposeWeight),
		VoteWeight:    uint32(v.VoteWeight),
	}
}

// Metadata describes the validator set and consensus parameters of an epoch.
type Metadata struct {
	Version         MetadataVersion   `json:"version"`
	Epoch           hexutil.Uint64    `json:"epoch"`
	VerifierList    []ValidatorExtend `json:"verifier_list"`
	ConsensusConfig ConsensusConfig   `json:"consensus_config"`
}

// Validators returns a fresh validator list built from the metadata roster.
// Each call allocates, so callers can hand the result to a verifier without
// sharing it.
func (m *Metadata) Validators() []Validator {
	out := make([]Validator, len(m.VerifierList))
	for i, v := range m.VerifierList {
		out[i] = v.Validator()
	}
	return out
}
