package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rtlfix",
	Short: "Rtlfix - Arabic document encoding and layout repair",
	Long: `Rtlfix repairs Arabic DOCX and ODT documents that were produced
with legacy Windows-1256 tooling:

- mojibake repair (cp1256 text misread as cp1252)
- paragraph direction and alignment from the repaired text
- table column mirroring for right-to-left tables (DOCX)
- mis-ordered numbered headings ("Scope.2" back to "2. Scope")

Use rtlfix to fix single files or whole folders, discover unmapped
corruption in new corpora, and diagnose classification decisions.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(diagnoseCmd)
}
