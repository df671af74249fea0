package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fasta"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/uniprot"
)

var fetchWorkers int

var fetchCmd = &cobra.Command{
	Use:   "fetch <accession>...",
	Short: "Fetch UniProt entries and print them as FASTA",
	Long: `Fetch one or more UniProt entries by accession and write them to
stdout as FASTA, in the order given.

Example:
  biotext fetch P46406 P02769`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := codec.ParsePolicy(policyFlag)
		if err != nil {
			return err
		}

		client := uniprot.New()
		recs := make([]*record.UniProt, len(args))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(fetchWorkers)
		for i, acc := range args {
			i, acc := i, acc
			g.Go(func() error {
				rec, err := client.FetchAccession(ctx, acc)
				if err != nil {
					return fmt.Errorf("fetching %s: %w", acc, err)
				}
				recs[i] = rec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		return fasta.Codec{Policy: policy}.ToStream(os.Stdout, recs)
	},
}

func init() {
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 4, "concurrent fetches")
	rootCmd.AddCommand(fetchCmd)
}
