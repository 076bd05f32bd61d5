package light

import (
	"errors"
	"fmt"
)

// DefaultDST is the domain separation tag validators sign precommit votes
// under.
const DefaultDST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RONUL"

// QuorumMode selects how the commit threshold is measured.
type QuorumMode string

const (
	// QuorumByCount requires more than two thirds of the validators.
	QuorumByCount QuorumMode = "count"
	// QuorumByWeight requires more than two thirds of the total vote weight.
	QuorumByWeight QuorumMode = "weight"
)

// Config configures a Verifier.
type Config struct {
	// DST is the BLS domain separation tag. It must match the signer's
	// byte for byte.
	DST string

	// Quorum selects the threshold policy.
	Quorum QuorumMode
}

// DefaultConfig returns the configuration matching deployed signers.
func DefaultConfig() Config {
	return Config{
		DST:    DefaultDST,
		Quorum: QuorumByCount,
	}
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.DST == "" {
		return errors.New("config: dst must not be empty")
	}
	if len(c.DST) > 255 {
		return fmt.Errorf("config: dst longer than 255 bytes: %d", len(c.DST))
	}
	switch c.Quorum {
	case QuorumByCount, QuorumByWeight:
	default:
		return fmt.Errorf("config: unknown quorum mode %q", c.Quorum)
	}
	return nil
}

// policy returns the QuorumPolicy named by c.Quorum.
func (c *Config) policy() QuorumPolicy {
	if c.Quorum == QuorumByWeight {
		return WeightQuorum{}
	}
	return CountQuorum{}
}
