// Package normalize applies the repair passes to an abstract document:
// mojibake repair over every run, direction and alignment per
// paragraph, table mirroring by RTL majority, and numbered-heading
// reorder. The passes run in that order because each depends on the
// full output of the previous one.
package normalize

import (
	"github.com/dlvinn/rtlfix/model"
	"github.com/dlvinn/rtlfix/mojibake"
	"github.com/dlvinn/rtlfix/text"
)

// Options controls which passes run and the classifier policy.
type Options struct {
	// RTLThreshold is the Arabic-letter fraction a span must strictly
	// exceed to classify as RTL.
	RTLThreshold float64

	// RepairEncoding enables the mojibake pass.
	RepairEncoding bool

	// ReorderHeadings enables the numbered-heading pass.
	ReorderHeadings bool
}

// DefaultOptions returns the options used by the engine facade.
func DefaultOptions() Options {
	return Options{
		RTLThreshold:    text.DefaultRTLThreshold,
		RepairEncoding:  true,
		ReorderHeadings: true,
	}
}

// Normalize mutates doc in place and returns the fix counters.
// It is idempotent: directionality and alignment are derived fresh
// from the current text on every call, and a table whose native form
// is already mirrored is never marked for reversal again.
func Normalize(doc *model.Document, opts Options) model.FixStats {
	var stats model.FixStats
	if opts.RTLThreshold <= 0 {
		opts.RTLThreshold = text.DefaultRTLThreshold
	}

	if opts.RepairEncoding {
		repairPass(doc, &stats)
	}
	layoutPass(doc, opts, &stats)
	if opts.ReorderHeadings {
		headingPass(doc, opts, &stats)
	}
	return stats
}

// repairPass runs mojibake repair over every run in the document,
// including runs nested in table cells.
func repairPass(doc *model.Document, stats *model.FixStats) {
	for _, p := range doc.Paragraphs() {
		for i := range p.Runs {
			fixed, n := mojibake.Repair(p.Runs[i].Text)
			if n > 0 {
				p.Runs[i].Text = fixed
				stats.EncodingFixes += n
			}
		}
	}
}

// layoutPass derives direction and alignment for every paragraph and
// the mirror state for every table.
func layoutPass(doc *model.Document, opts Options, stats *model.FixStats) {
	for _, b := range doc.Blocks {
		switch blk := b.(type) {
		case *model.Paragraph:
			normalizeParagraph(blk, opts, stats)
		case *model.Table:
			normalizeTable(blk, opts, stats)
		}
	}
}

// normalizeParagraph classifies the paragraph's concatenated text and,
// when RTL, asserts RTL direction and trailing-edge alignment. LTR
// paragraphs are left untouched rather than forced, so a normalized
// document re-normalizes to itself.
func normalizeParagraph(p *model.Paragraph, opts Options, stats *model.FixStats) {
	if text.ClassifyWithThreshold(p.Text(), opts.RTLThreshold) != text.RTL {
		return
	}
	if p.Direction != model.RTL {
		p.Direction = model.RTL
		stats.RTLParagraphs++
	}
	if p.Alignment != model.AlignTrailing {
		p.Alignment = model.AlignTrailing
		stats.Alignments++
	}
}

// normalizeTable marks a table RTL when a strict majority of its
// non-empty cells classify RTL, and normalizes every cell paragraph.
// Whether RTL actually reverses the native column order is up to the
// adapter; only formats that encode explicit column order mirror.
func normalizeTable(t *model.Table, opts Options, stats *model.FixStats) {
	rtlCells, totalCells := 0, 0
	for ri := range t.Rows {
		for ci := range t.Rows[ri].Cells {
			cell := &t.Rows[ri].Cells[ci]
			cellText := cell.Text()
			if cellText == "" {
				continue
			}
			totalCells++
			if text.ClassifyWithThreshold(cellText, opts.RTLThreshold) == text.RTL {
				rtlCells++
			}
		}
	}

	wasRTL := t.Direction == model.RTL || t.Mirrored
	if totalCells > 0 && rtlCells*2 > totalCells {
		t.Direction = model.RTL
	}

	for ri := range t.Rows {
		for ci := range t.Rows[ri].Cells {
			cell := &t.Rows[ri].Cells[ci]
			for _, p := range cell.Paragraphs {
				normalizeParagraph(p, opts, stats)
			}
			// Cells count once, when the table first turns RTL;
			// re-normalizing an already-RTL table reports nothing.
			if t.Direction == model.RTL && !wasRTL {
				stats.TableCells++
			}
		}
	}
}

// headingPass rewrites misordered numbered headings. It runs after the
// layout pass so classification sees post-repair text, matching the
// order the corruption is introduced in.
func headingPass(doc *model.Document, opts Options, stats *model.FixStats) {
	for _, p := range doc.Paragraphs() {
		line := p.Text()
		if fixed, ok := text.ReorderHeadingWithThreshold(line, opts.RTLThreshold); ok {
			p.SetText(fixed)
			stats.HeadingFixes++
		}
	}
}
