package light

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axonproof/axonproof/crypto"
	"github.com/axonproof/axonproof/light/lighttest"
)

func TestSignatureVerifier(t *testing.T) {
	c, err := lighttest.NewCommittee(4, DefaultDST)
	require.NoError(t, err)

	digest := crypto.Keccak256([]byte("precommit"))
	sig, err := c.Sign(digest, 0, 1, 2)
	require.NoError(t, err)

	s, err := SelectSigners(c.Roster(), c.Bitmap(0, 1, 2))
	require.NoError(t, err)

	v := NewSignatureVerifier(DefaultDST)
	require.Equal(t, DefaultDST, v.DST())
	require.NoError(t, v.Verify(s.PublicKeys, digest, sig))

	// Wrong digest.
	err = v.Verify(s.PublicKeys, crypto.Keccak256([]byte("other")), sig)
	require.ErrorIs(t, err, ErrVerifyFailed)
	require.ErrorIs(t, err, ErrInvalidSignature)

	// Wrong key set.
	other, err := SelectSigners(c.Roster(), c.Bitmap(1, 2, 3))
	require.NoError(t, err)
	require.ErrorIs(t, v.Verify(other.PublicKeys, digest, sig), ErrVerifyFailed)

	// Wrong domain.
	require.ErrorIs(t, NewSignatureVerifier("OTHER").Verify(s.PublicKeys, digest, sig), ErrVerifyFailed)
}

func TestSignatureVerifierMalformed(t *testing.T) {
	c, err := lighttest.NewCommittee(1, DefaultDST)
	require.NoError(t, err)
	s, err := SelectSigners(c.Roster(), c.Bitmap(0))
	require.NoError(t, err)

	v := NewSignatureVerifier(DefaultDST)
	err = v.Verify(s.PublicKeys, make([]byte, 32), make([]byte, 10))
	require.ErrorIs(t, err, ErrMalformedSignature)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.NotErrorIs(t, err, ErrVerifyFailed)
}

func TestSignatureVerifierNoKeys(t *testing.T) {
	err := NewSignatureVerifier(DefaultDST).Verify(nil, make([]byte, 32), make([]byte, 96))
	require.ErrorIs(t, err, ErrNotEnoughSignatures)
}
