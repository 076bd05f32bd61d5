package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/axonproof/axonproof/core/types"
	"github.com/axonproof/axonproof/light"
	"github.com/axonproof/axonproof/log"
)

type blockFlags struct {
	block         string
	proof         string
	metadata      string
	prevStateRoot string
	dst           string
	quorum        string
}

func newBlockCommand() *cobra.Command {
	var flags blockFlags
	def := light.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Verify that a block was committed by its validator set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlock(cmd, &flags)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.block, "block", "", "block JSON file")
	fs.StringVar(&flags.proof, "proof", "", "commit proof JSON file")
	fs.StringVar(&flags.metadata, "metadata", "", "metadata JSON file holding the validator set")
	fs.StringVar(&flags.prevStateRoot, "prev-state-root", "", "state root of the verified parent block")
	fs.StringVar(&flags.dst, "dst", def.DST, "BLS signature domain separation tag")
	fs.StringVar(&flags.quorum, "quorum", string(def.Quorum), "quorum rule (count, weight)")
	for _, name := range []string{"block", "proof", "metadata", "prev-state-root"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runBlock(cmd *cobra.Command, flags *blockFlags) error {
	prevRoot, err := parseHash(flags.prevStateRoot)
	if err != nil {
		return fmt.Errorf("--prev-state-root: %w", err)
	}
	var (
		block    types.Block
		proof    types.Proof
		metadata types.Metadata
	)
	logger := log.Default().Module("axonverify")
	for _, in := range []struct {
		flag, path string
		v          any
	}{
		{"block", flags.block, &block},
		{"proof", flags.proof, &proof},
		{"metadata", flags.metadata, &metadata},
	} {
		if err := readJSON(in.path, in.v); err != nil {
			logger.Error("Cannot load input", "flag", in.flag, "path", in.path, "err", err)
			return fmt.Errorf("--%s: %w", in.flag, err)
		}
	}
	if !metadata.Version.Contains(block.Header.Number) {
		return fmt.Errorf("metadata covers blocks %d-%d, not block %d",
			uint64(metadata.Version.Start), uint64(metadata.Version.End), block.Header.Number)
	}

	cfg := light.Config{DST: flags.dst, Quorum: light.QuorumMode(flags.quorum)}
	v, err := light.NewVerifier(cfg, log.Default())
	if err != nil {
		return err
	}
	if err := v.VerifyBlockProof(&block, prevRoot, metadata.Validators(), &proof); err != nil {
		logger.Warn("Rejected block proof", "number", block.Header.Number, "err", err)
		return err
	}
	logger.Info("Verified block proof", "number", block.Header.Number, "hash", proof.BlockHash,
		"epoch", uint64(metadata.Epoch), "validators", len(metadata.VerifierList))
	fmt.Fprintf(cmd.OutOrStdout(), "block %d verified: hash %s, epoch %d\n",
		block.Header.Number, proof.BlockHash, uint64(metadata.Epoch))
	return nil
}

// parseHash decodes a 0x-prefixed 32-byte hex hash.
func parseHash(s string) (types.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return types.Hash{}, err
	}
	if len(b) != len(types.Hash{}) {
		return types.Hash{}, fmt.Errorf("want %d bytes, got %d", len(types.Hash{}), len(b))
	}
	return types.BytesToHash(b), nil
}
