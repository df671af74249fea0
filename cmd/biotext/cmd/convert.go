package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/csvio"
	"github.com/tlunder/biotext/pkg/fasta"
	"github.com/tlunder/biotext/pkg/fastq"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/mgf"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/uniprotxml"
)

var (
	fromFormat  string
	toFormat    string
	fromMgfKind string
	toMgfKind   string
	delimiter   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a record file between formats",
	Long: `Convert a record file between formats of the same record family.

UniProt entries: fasta, csv, tsv, xml
Mass spectra:    mgf (dialect via --from-kind / --to-kind)
Short reads:     fastq

Example:
  biotext convert --from fasta --to tsv proteins.fasta.gz proteins.tsv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := codec.ParsePolicy(policyFlag)
		if err != nil {
			return err
		}

		in, err := fileio.Open(args[0])
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := fileio.Create(args[1])
		if err != nil {
			return err
		}

		if err := convert(in, out, policy); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	},
}

func convert(in io.Reader, out io.Writer, policy codec.Policy) error {
	switch {
	case isUniProtFormat(fromFormat) && isUniProtFormat(toFormat):
		recs, err := uniprotFrom(fromFormat, in, policy)
		if err != nil {
			return err
		}
		return uniprotTo(toFormat, out, recs, policy)
	case fromFormat == "mgf" && toFormat == "mgf":
		inKind, err := mgf.ParseKind(fromMgfKind)
		if err != nil {
			return err
		}
		outKind, err := mgf.ParseKind(toMgfKind)
		if err != nil {
			return err
		}
		specs, err := mgf.Codec{Kind: inKind, Policy: policy}.FromStream(in)
		if err != nil {
			return err
		}
		return mgf.Codec{Kind: outKind, Policy: policy}.ToStream(out, specs)
	case fromFormat == "fastq" && toFormat == "fastq":
		recs, err := fastq.Codec{Policy: policy}.FromStream(in)
		if err != nil {
			return err
		}
		return fastq.Codec{Policy: policy}.ToStream(out, recs)
	}
	return fmt.Errorf("cannot convert %s to %s: formats belong to different record families", fromFormat, toFormat)
}

func isUniProtFormat(f string) bool {
	switch f {
	case "fasta", "csv", "tsv", "xml":
		return true
	}
	return false
}

// delimFor resolves the --delimiter flag for a delimited format.
// Unset, it follows the format's native separator.
func delimFor(format string) (byte, error) {
	switch delimiter {
	case "":
		if format == "csv" {
			return ',', nil
		}
		return '\t', nil
	case "tab":
		return '\t', nil
	case "comma":
		return ',', nil
	}
	if len(delimiter) == 1 {
		return delimiter[0], nil
	}
	return 0, fmt.Errorf("delimiter must be a single byte, tab or comma, not %q", delimiter)
}

func uniprotFrom(format string, in io.Reader, policy codec.Policy) ([]*record.UniProt, error) {
	switch format {
	case "fasta":
		return fasta.Codec{Policy: policy}.FromStream(in)
	case "csv", "tsv":
		d, err := delimFor(format)
		if err != nil {
			return nil, err
		}
		return csvio.Codec{Delim: d, Policy: policy}.FromStream(in)
	case "xml":
		return uniprotxml.Codec{Policy: policy}.FromStream(in)
	}
	return nil, fmt.Errorf("unknown UniProt format %q", format)
}

func uniprotTo(format string, out io.Writer, recs []*record.UniProt, policy codec.Policy) error {
	switch format {
	case "fasta":
		return fasta.Codec{Policy: policy}.ToStream(out, recs)
	case "csv", "tsv":
		d, err := delimFor(format)
		if err != nil {
			return err
		}
		return csvio.Codec{Delim: d, Policy: policy}.ToStream(out, recs)
	case "xml":
		return uniprotxml.Codec{Policy: policy}.ToStream(out, recs)
	}
	return fmt.Errorf("unknown UniProt format %q", format)
}

func init() {
	convertCmd.Flags().StringVar(&fromFormat, "from", "", "input format (fasta, csv, tsv, xml, mgf, fastq)")
	convertCmd.Flags().StringVar(&toFormat, "to", "", "output format")
	convertCmd.Flags().StringVar(&fromMgfKind, "from-kind", "msconvert", "input MGF dialect (msconvert, pava, pwiz, fullms)")
	convertCmd.Flags().StringVar(&toMgfKind, "to-kind", "msconvert", "output MGF dialect")
	convertCmd.Flags().StringVar(&delimiter, "delimiter", "", "csv/tsv delimiter: tab, comma or a single byte (default: tab for tsv, comma for csv)")
	_ = convertCmd.MarkFlagRequired("from")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}
