package mojibake

import "strings"

// Repair replaces every corrupted code point in s with its intended
// Arabic code point and returns the repaired string along with the
// number of replacements. Code points that are not table keys pass
// through unchanged, so clean text is returned as-is. The transform is
// a pure, order-preserving, single pass with no contextual lookahead.
func Repair(s string) (string, int) {
	m := codepointTable()

	// Most text is clean; avoid allocating until a hit is found.
	hit := -1
	for i, r := range s {
		if _, ok := m[r]; ok {
			hit = i
			break
		}
	}
	if hit < 0 {
		return s, 0
	}

	var b strings.Builder
	b.Grow(len(s) + utf8Slack)
	b.WriteString(s[:hit])

	count := 0
	for _, r := range s[hit:] {
		if mapped, ok := m[r]; ok {
			b.WriteRune(mapped)
			count++
		} else {
			b.WriteRune(r)
		}
	}
	return b.String(), count
}

// utf8Slack pads the builder: Arabic runes are one byte longer in
// UTF-8 than the Latin-1 runes they replace.
const utf8Slack = 16
