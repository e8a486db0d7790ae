package text

import "unicode"

// Direction represents the dominant writing direction of a text span.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic-script text.
	RTL
)

// String returns a string representation of the direction ("LTR" or "RTL").
func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// DefaultRTLThreshold is the Arabic-letter fraction above which a span
// classifies as RTL. The value is inherited from empirical tuning on
// the corrupted-document corpus; it is a policy constant, not an
// invariant, and callers may override it per classification.
const DefaultRTLThreshold = 0.30

// Classify returns the dominant direction of s using
// DefaultRTLThreshold.
func Classify(s string) Direction {
	return ClassifyWithThreshold(s, DefaultRTLThreshold)
}

// ClassifyWithThreshold returns RTL when the fraction of Arabic-range
// letters among all letters in s strictly exceeds threshold, LTR
// otherwise. Only letters enter the ratio, so whitespace padding,
// digits, and punctuation never change the verdict; text with no
// letters at all (including empty and whitespace-only text) classifies
// as LTR because there is no direction to assert. The threshold is
// exceeded-strictly: text exactly at the boundary classifies as LTR.
func ClassifyWithThreshold(s string, threshold float64) Direction {
	arabic := 0
	letters := 0

	for _, r := range s {
		if IsArabic(r) {
			arabic++
			letters++
		} else if unicode.IsLetter(r) {
			letters++
		}
	}

	if letters == 0 {
		return LTR
	}
	if float64(arabic) > float64(letters)*threshold {
		return RTL
	}
	return LTR
}

// IsArabic reports whether r is in an Arabic Unicode block.
// This includes:
//   - Arabic: U+0600–U+06FF
//   - Arabic Supplement: U+0750–U+077F
//   - Arabic Extended-A: U+08A0–U+08FF
//   - Arabic Presentation Forms-A: U+FB50–U+FDFF
//   - Arabic Presentation Forms-B: U+FE70–U+FEFF
func IsArabic(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}
