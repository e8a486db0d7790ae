// Package rtlfix repairs Arabic documents that suffered legacy
// encoding corruption and LTR-defaulted layout: it fixes
// cp1256-read-as-cp1252 mojibake, derives paragraph direction and
// alignment from the repaired text, mirrors table columns where the
// format supports it, and restores mis-ordered numbered headings.
//
// Basic usage:
//
//	data, _ := os.ReadFile("report.docx")
//	fixed, stats, err := rtlfix.Fix(data, format.Unknown)
//	if err != nil {
//	    // handle error
//	}
//	log.Println(stats)
package rtlfix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dlvinn/rtlfix/docx"
	"github.com/dlvinn/rtlfix/format"
	"github.com/dlvinn/rtlfix/model"
	"github.com/dlvinn/rtlfix/mojibake"
	"github.com/dlvinn/rtlfix/normalize"
	"github.com/dlvinn/rtlfix/odt"
)

// adapter is the per-format load/save contract.
type adapter interface {
	Load(data []byte) (*model.Document, error)
	Save(doc *model.Document) ([]byte, error)
}

// Load parses a document into the abstract model without fixing
// anything. Diagnostic tooling uses it to inspect text and structure.
func Load(data []byte, f format.Format) (*model.Document, error) {
	if f == format.Unknown {
		f = format.DetectBytes(data)
	}
	switch f {
	case format.DOCX:
		return docx.New().Load(data)
	case format.ODT, format.FlatODT:
		return odt.New().Load(data)
	default:
		return nil, fmt.Errorf("rtlfix: unsupported document format")
	}
}

// Fix normalizes one document held in memory. When f is
// format.Unknown the format is sniffed from the bytes. The returned
// slice is a complete output file; the input is never modified.
func Fix(data []byte, f format.Format, opts ...Option) ([]byte, model.FixStats, error) {
	var stats model.FixStats

	if f == format.Unknown {
		f = format.DetectBytes(data)
	}

	var a adapter
	switch f {
	case format.DOCX:
		a = docx.New()
	case format.ODT, format.FlatODT:
		a = odt.New()
	default:
		return nil, stats, fmt.Errorf("rtlfix: unsupported document format")
	}

	doc, err := a.Load(data)
	if err != nil {
		return nil, stats, err
	}

	stats = normalize.Normalize(doc, buildOptions(opts))

	out, err := a.Save(doc)
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// FixFile normalizes the document at inPath and writes the result to
// outPath atomically: output lands in a temp file next to outPath and
// is renamed into place only on success, so a failed fix never leaves
// a partial artifact. The context is checked between pipeline stages.
func FixFile(ctx context.Context, inPath, outPath string, opts ...Option) (model.FixStats, error) {
	var stats model.FixStats

	data, err := os.ReadFile(inPath)
	if err != nil {
		return stats, fmt.Errorf("rtlfix: reading %s: %w", inPath, err)
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	f := format.Detect(inPath)
	out, stats, err := Fix(data, f, opts...)
	if err != nil {
		return stats, err
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return stats, fmt.Errorf("rtlfix: creating temp output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return stats, fmt.Errorf("rtlfix: writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return stats, fmt.Errorf("rtlfix: closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return stats, fmt.Errorf("rtlfix: renaming output: %w", err)
	}
	return stats, nil
}

// DiscoverUnmapped scans text samples for suspicious cp1252 high
// bytes that the repair table does not cover yet. The result maps
// each unmapped code point to its occurrence count, for growing the
// table from real corpora.
func DiscoverUnmapped(samples []string) map[rune]int {
	return mojibake.Discover(samples).Unmapped
}
