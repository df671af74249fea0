package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "biotext",
	Short: "Streaming codecs for biological record formats",
	Long: `biotext converts protein entries, short reads and mass spectra
between FASTA, CSV/TSV, FASTQ, MGF and UniProt-XML, streaming one
record at a time. Inputs and outputs ending in .gz or .zst are
compressed transparently.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var policyFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "default",
		"error policy: default, strict or lenient")
}
