// Package types defines the block, proof and validator structures a light
// client needs in order to check that a block was committed by its validator
// set.
package types

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"
)

const (
	HashLength    = common.HashLength
	AddressLength = common.AddressLength
)

// Hash represents the 32-byte Keccak256 hash of data.
type Hash = common.Hash

// Address represents the 20-byte address of an account.
type Address = common.Address

// Bloom represents a 2048-bit bloom filter.
type Bloom = gethtypes.Bloom

// BlockNumber is the height of a block.
type BlockNumber = uint64

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash { return common.BytesToHash(b) }

// HexToHash converts a hex string to Hash.
func HexToHash(s string) Hash { return common.HexToHash(s) }

// rlpHash encodes x and hashes the encoded bytes.
func rlpHash(x interface{}) (h Hash, err error) {
	sha := sha3.NewLegacyKeccak256()
	if err = rlp.Encode(sha, x); err != nil {
		return h, err
	}
	sha.Sum(h[:0])
	return h, nil
}
