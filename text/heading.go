package text

import (
	"regexp"
	"strings"
)

// Manually numbered Arabic headings come out of visual bidi rendering
// with the ordinal marker glued to the line end, either directly
// ("النطاق.2") or after a space before the dot ("المجال .2"). The two
// surface variants are kept as separate anchored patterns so each is
// independently testable. Matching is anchored to the full line; a
// number embedded mid-sentence never matches.
var (
	headingGlued  = regexp.MustCompile(`^(.+?)\.(\d+(?:\.\d+)*)$`)
	headingSpaced = regexp.MustCompile(`^(.+?)\s+\.(\d+(?:\.\d+)*)$`)

	// Already in canonical "N. text" form; leave untouched.
	headingCanonical = regexp.MustCompile(`^\d+(?:\.\d+)*\.\s`)
)

// ReorderHeading rewrites a misordered numbered heading into canonical
// "<N>. <text>" form. It returns ok=false, leaving the line alone,
// when the line does not end in a dotted-integer marker, the preceding
// text is empty or not RTL-classified (ordinary decimals and filenames
// like "file.txt" are never touched), or the line is already canonical.
// Surrounding whitespace is stripped before matching, so a heading
// with a stray trailing space is still repaired.
func ReorderHeading(line string) (string, bool) {
	return ReorderHeadingWithThreshold(line, DefaultRTLThreshold)
}

// ReorderHeadingWithThreshold is ReorderHeading with an explicit RTL
// classification threshold for the heading body.
func ReorderHeadingWithThreshold(line string, threshold float64) (string, bool) {
	line = strings.TrimSpace(line)
	if headingCanonical.MatchString(line) {
		return "", false
	}

	m := headingGlued.FindStringSubmatch(line)
	if m == nil {
		m = headingSpaced.FindStringSubmatch(line)
	}
	if m == nil {
		return "", false
	}

	body := strings.TrimSpace(m[1])
	marker := m[2]
	if body == "" {
		return "", false
	}
	if ClassifyWithThreshold(body, threshold) != RTL {
		return "", false
	}

	return marker + ". " + body, true
}
