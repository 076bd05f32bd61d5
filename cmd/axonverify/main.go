// Command axonverify checks Axon block commit proofs and receipt trie proofs
// from JSON files.
//
// Usage:
//
//	axonverify block --block block.json --proof proof.json \
//	    --metadata metadata.json --prev-state-root 0x...
//	axonverify receipt --root 0x... --index 3 --proof nodes.json
//	axonverify version
//
// Global flags:
//
//	--verbosity    Log level 0-5 (default: 3)
//	--metrics      Print verifier metrics as JSON after the command
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/axonproof/axonproof/log"
	"github.com/axonproof/axonproof/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. It takes the
// arguments without the program name so it can be tested in isolation.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	verbosity int
	metrics   bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var flags globalFlags
	root := &cobra.Command{
		Use:           "axonverify",
		Short:         "Verify Axon block proofs and receipt proofs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbosity < 0 || flags.verbosity > 5 {
				return fmt.Errorf("verbosity must be 0-5, got %d", flags.verbosity)
			}
			log.SetDefault(log.NewText(stderr, log.LevelFromVerbosity(flags.verbosity)))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !flags.metrics {
				return nil
			}
			return printMetrics(stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().IntVar(&flags.verbosity, "verbosity", 3, "log level 0-5 (0=silent, 5=debug)")
	root.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "print verifier metrics after the command")

	root.AddCommand(newBlockCommand(), newReceiptCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "axonverify %s (commit %s)\n", version, commit)
		},
	}
}

func printMetrics(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(metrics.DefaultRegistry.Snapshot())
}
