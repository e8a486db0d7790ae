package model

import "fmt"

// FixStats counts the corrections applied while processing one
// document. The counters are observational only: they never influence
// processing and are reset for every document.
type FixStats struct {
	RTLParagraphs int // paragraphs switched to RTL direction
	Alignments    int // paragraphs given trailing-edge alignment
	EncodingFixes int // individual code points repaired
	HeadingFixes  int // numbered headings reordered
	TableCells    int // table cells processed in RTL tables
}

// Add accumulates other into s. Batch drivers use it to build an
// aggregate summary across documents.
func (s *FixStats) Add(other FixStats) {
	s.RTLParagraphs += other.RTLParagraphs
	s.Alignments += other.Alignments
	s.EncodingFixes += other.EncodingFixes
	s.HeadingFixes += other.HeadingFixes
	s.TableCells += other.TableCells
}

// Total returns the sum of all counters.
func (s FixStats) Total() int {
	return s.RTLParagraphs + s.Alignments + s.EncodingFixes + s.HeadingFixes + s.TableCells
}

// String returns a compact human-readable summary.
func (s FixStats) String() string {
	return fmt.Sprintf("rtl=%d align=%d encoding=%d headings=%d cells=%d",
		s.RTLParagraphs, s.Alignments, s.EncodingFixes, s.HeadingFixes, s.TableCells)
}
