package mojibake

import "sort"

// Report holds the outcome of a discovery scan over text samples.
// Known counts occurrences of code points the table already repairs;
// Unmapped counts suspicious high-Latin code points the table does not
// cover yet. Discovery never mutates its input and never fails.
type Report struct {
	Known    map[rune]int
	Unmapped map[rune]int
}

// Discover scans text samples for corrupted code points. It is used
// offline to extend the transcoding table: a code point counts as
// unmapped when it sits in the 0x80–0xFF range, is not a table key,
// and is not already Arabic.
func Discover(samples []string) Report {
	m := codepointTable()
	rep := Report{
		Known:    make(map[rune]int),
		Unmapped: make(map[rune]int),
	}

	for _, s := range samples {
		for _, r := range s {
			if _, ok := m[r]; ok {
				rep.Known[r]++
				continue
			}
			if r >= 0x80 && r <= 0xFF && !inArabicBlock(r) {
				rep.Unmapped[r]++
			}
		}
	}
	return rep
}

// UnmappedSorted returns the unmapped code points in ascending order.
func (r Report) UnmappedSorted() []rune {
	out := make([]rune, 0, len(r.Unmapped))
	for cp := range r.Unmapped {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KnownSorted returns the recognized corrupted code points in
// ascending order.
func (r Report) KnownSorted() []rune {
	out := make([]rune, 0, len(r.Known))
	for cp := range r.Known {
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
