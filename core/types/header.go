package types

import (
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// ErrUnsupportedBlockVersion is returned when a header carries a version
// this package has no canonical layout for.
var ErrUnsupportedBlockVersion = errors.New("types: unsupported block version")

// ErrGasLimitOverflow is returned when a V0 header's gas limit does not fit
// the 64 bits that layout commits to.
var ErrGasLimitOverflow = errors.New("types: gas limit overflows uint64")

// BlockVersion selects the field layout a block hash commits to. It is part
// of the encoding itself, so peers hashing under different versions always
// disagree instead of silently agreeing on a subset of fields.
type BlockVersion uint8

const (
	// V0 is the deployed layout: gas limit truncated to 64 bits, base fee
	// and chain id not committed.
	V0 BlockVersion = iota
	// V1 commits every header field the proposer controls, including the
	// base fee and the chain id.
	V1
)

// Valid reports whether v has a known canonical layout.
func (v BlockVersion) Valid() bool { return v <= V1 }

// String implements fmt.Stringer.
func (v BlockVersion) String() string { return fmt.Sprintf("V%d", uint8(v)) }

// MarshalText implements encoding.TextMarshaler.
func (v BlockVersion) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBlockVersion, uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *BlockVersion) UnmarshalText(input []byte) error {
	switch string(input) {
	case "V0":
		*v = V0
	case "V1":
		*v = V1
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedBlockVersion, input)
	}
	return nil
}

// EncodeRLP writes the version as a single-element list.
func (v BlockVersion) EncodeRLP(w io.Writer) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedBlockVersion, uint8(v))
	}
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	buf.WriteUint64(uint64(v))
	buf.ListEnd(l)
	return buf.Flush()
}

// DecodeRLP implements rlp.Decoder.
func (v *BlockVersion) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	n, err := s.Uint8()
	if err != nil {
		return err
	}
	if !BlockVersion(n).Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedBlockVersion, n)
	}
	*v = BlockVersion(n)
	return s.ListEnd()
}

// ExtraData is one opaque extra-data segment of a header. The first segment
// carries hardfork information.
type ExtraData struct {
	Inner hexutil.Bytes `json:"inner"`
}

// Header is a block header as produced by the proposer.
type Header struct {
	Version               BlockVersion
	PrevHash              Hash
	Proposer              Address
	StateRoot             Hash
	TransactionsRoot      Hash
	SignedTxsHash         Hash
	ReceiptsRoot          Hash
	LogBloom              Bloom
	Timestamp             uint64
	Number                BlockNumber
	GasUsed               uint256.Int
	GasLimit              uint256.Int
	ExtraData             []ExtraData
	BaseFeePerGas         uint256.Int
	Proof                 Proof // commit proof of the previous block
	CallSystemScriptCount uint32
	ChainID               uint64
}

// Block is a header together with the hashes of its transactions.
type Block struct {
	Header   Header `json:"header"`
	TxHashes []Hash `json:"tx_hashes"`
}
