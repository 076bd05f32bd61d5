package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/axonproof/axonproof/light"
	"github.com/axonproof/axonproof/log"
)

type receiptFlags struct {
	root  string
	index uint64
	proof string
}

func newReceiptCommand() *cobra.Command {
	var flags receiptFlags
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Verify a receipt against a receipts root",
		Long: "Verify a receipt against a receipts root. The proof file holds a JSON\n" +
			"array of 0x-hex trie nodes on the path to the receipt, in any order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReceipt(cmd, &flags)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.root, "root", "", "trusted receipts root")
	fs.Uint64Var(&flags.index, "index", 0, "transaction index of the receipt")
	fs.StringVar(&flags.proof, "proof", "", "proof nodes JSON file")
	_ = cmd.MarkFlagRequired("root")
	_ = cmd.MarkFlagRequired("proof")
	return cmd
}

func runReceipt(cmd *cobra.Command, flags *receiptFlags) error {
	root, err := parseHash(flags.root)
	if err != nil {
		return fmt.Errorf("--root: %w", err)
	}
	logger := log.Default().Module("axonverify")
	var encoded []hexutil.Bytes
	if err := readJSON(flags.proof, &encoded); err != nil {
		logger.Error("Cannot load input", "flag", "proof", "path", flags.proof, "err", err)
		return fmt.Errorf("--proof: %w", err)
	}
	nodes := make([][]byte, len(encoded))
	for i, n := range encoded {
		nodes[i] = n
	}

	receipt, err := light.VerifyReceiptProof(root, flags.index, nodes)
	if err != nil {
		logger.Warn("Rejected receipt proof", "root", root, "index", flags.index, "err", err)
		return err
	}
	out := cmd.OutOrStdout()
	if receipt == nil {
		logger.Info("Receipt proven absent", "root", root, "index", flags.index)
		fmt.Fprintf(out, "receipt %d: absent\n", flags.index)
		return nil
	}
	logger.Info("Verified receipt proof", "root", root, "index", flags.index, "status", receipt.Status)
	fmt.Fprintf(out, "receipt %d: status %d, cumulative gas %d, %d logs\n",
		flags.index, receipt.Status, receipt.CumulativeGasUsed, len(receipt.Logs))
	return nil
}
