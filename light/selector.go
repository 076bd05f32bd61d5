package light

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/crypto"
)

// Signers is the part of a roster selected by a proof bitmap.
type Signers struct {
	// Roster is the full validator set in canonical order.
	Roster []types.Validator
	// Validators are the selected entries, in canonical order.
	Validators []types.Validator
	// PublicKeys are the decoded keys of Validators, index for index.
	PublicKeys []*crypto.PublicKey
}

// Count returns the number of selected validators.
func (s *Signers) Count() int { return len(s.Validators) }

// Total returns the size of the roster the selection was made from.
func (s *Signers) Total() int { return len(s.Roster) }

// SortValidators returns a copy of validators sorted ascending by public key
// bytes, the order signers index their bitmap by. The input is not modified.
func SortValidators(validators []types.Validator) []types.Validator {
	sorted := slices.Clone(validators)
	slices.SortStableFunc(sorted, func(a, b types.Validator) int {
		return bytes.Compare(a.PubKey, b.PubKey)
	})
	return sorted
}

// bitSet reports whether bit i of bitmap is set, counting MSB-first within
// each byte.
func bitSet(bitmap []byte, i int) bool {
	return bitmap[i/8]&(0x80>>(uint(i)%8)) != 0
}

// SelectSigners sorts the roster canonically and picks the validators whose
// bitmap bit is set. Bits past the end of the roster are ignored; roster
// entries past the end of the bitmap did not sign. A selected key that does
// not decode fails the whole selection, since the roster itself is then
// untrustworthy.
func SelectSigners(validators []types.Validator, bitmap []byte) (*Signers, error) {
	if len(validators) == 0 {
		return nil, ErrEmptyValidatorSet
	}
	roster := SortValidators(validators)
	for i := 1; i < len(roster); i++ {
		if bytes.Equal(roster[i-1].PubKey, roster[i].PubKey) {
			return nil, fmt.Errorf("%w: %x", ErrDuplicateValidator, roster[i].PubKey)
		}
	}

	n := min(len(roster), len(bitmap)*8)
	s := &Signers{
		Roster:     roster,
		Validators: make([]types.Validator, 0, n),
		PublicKeys: make([]*crypto.PublicKey, 0, n),
	}
	for i := 0; i < n; i++ {
		if !bitSet(bitmap, i) {
			continue
		}
		pk, err := crypto.PublicKeyFromBytes(roster[i].PubKey)
		if err != nil {
			return nil, fmt.Errorf("%w: validator %d (%x): %v", ErrInvalidPublicKey, i, roster[i].PubKey, err)
		}
		s.Validators = append(s.Validators, roster[i])
		s.PublicKeys = append(s.PublicKeys, pk)
	}
	return s, nil
}
