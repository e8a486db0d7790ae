package main

import (
	"fmt"
	"os"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/dlvinn/rtlfix"
	"github.com/dlvinn/rtlfix/format"
	"github.com/dlvinn/rtlfix/mojibake"
	"github.com/dlvinn/rtlfix/text"
)

var diagnoseThreshold float64

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <file>",
	Short: "Show per-paragraph classification for one document",
	Long: `Walk one document and print, for each paragraph, its direction
classification, Arabic letter share, and any suspicious code points.
Use this to understand why a paragraph was (or was not) treated as
right-to-left before fixing a folder.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().Float64Var(&diagnoseThreshold, "threshold", text.DefaultRTLThreshold,
		"Arabic-letter fraction a paragraph must exceed to classify as RTL")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, err := rtlfix.Load(data, format.Detect(args[0]))
	if err != nil {
		return err
	}

	for i, p := range doc.Paragraphs() {
		s := p.Text()
		if s == "" {
			continue
		}

		arabic, letters := 0, 0
		suspicious := map[rune]int{}
		for _, r := range s {
			if unicode.IsLetter(r) {
				letters++
				if text.IsArabic(r) {
					arabic++
				}
			}
			if r >= 0x80 && r <= 0xFF {
				if _, ok := mojibake.Lookup(r); ok {
					suspicious[r]++
				}
			}
		}

		ratio := 0.0
		if letters > 0 {
			ratio = float64(arabic) / float64(letters)
		}
		dir := text.ClassifyWithThreshold(s, diagnoseThreshold)

		preview := []rune(s)
		if len(preview) > 40 {
			preview = preview[:40]
		}
		fmt.Printf("#%d %s arabic=%d/%d (%.0f%%) %q\n",
			i+1, dir, arabic, letters, ratio*100, string(preview))
		for r, n := range suspicious {
			fmt.Printf("    mojibake %q (U+%04X) x%d\n", r, r, n)
		}
	}
	return nil
}
