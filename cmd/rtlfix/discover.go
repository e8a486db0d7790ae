package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dlvinn/rtlfix"
	"github.com/dlvinn/rtlfix/format"
	"github.com/dlvinn/rtlfix/mojibake"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <file>...",
	Short: "Scan documents for mojibake the repair table does not cover",
	Long: `Scan document text for suspicious high code points.

Known corruptions are listed with how often they occur; code points in
the high cp1252 range that the repair table does not map yet are
listed separately, so new corpora can grow the table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	var samples []string
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := rtlfix.Load(data, format.Detect(path))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, p := range doc.Paragraphs() {
			samples = append(samples, p.Text())
		}
	}

	report := mojibake.Discover(samples)

	if len(report.Known) > 0 {
		fmt.Println("known corruptions:")
		for _, r := range report.KnownSorted() {
			fixed, _ := mojibake.Lookup(r)
			fmt.Printf("  %q (U+%04X) x%d -> %q\n", r, r, report.Known[r], fixed)
		}
	}
	if len(report.Unmapped) > 0 {
		fmt.Println("unmapped code points:")
		for _, r := range report.UnmappedSorted() {
			fmt.Printf("  %q (U+%04X) x%d\n", r, r, report.Unmapped[r])
		}
	}
	if len(report.Known) == 0 && len(report.Unmapped) == 0 {
		fmt.Println("no suspicious code points found")
	}
	return nil
}
