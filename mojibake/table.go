// Package mojibake repairs Arabic text that was corrupted by decoding
// Windows-1256 bytes as Windows-1252 (e.g. "ÂÈ" for "آب").
//
// The corruption source is a fixed single-byte codepage misread as
// another fixed single-byte codepage, so the corrupted-to-correct
// relationship is a total, static, one-to-one function over a bounded
// alphabet. The table is generated once at first use by cross-decoding
// every byte value through both codepages.
package mojibake

import (
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	tableOnce sync.Once
	table     map[rune]rune
)

// codepointTable returns the process-wide corrupted-to-intended map,
// building it on first use. The map is never mutated after
// construction and is safe to share across goroutines.
func codepointTable() map[rune]rune {
	tableOnce.Do(func() {
		table = buildTable()
	})
	return table
}

// buildTable cross-decodes every byte value: the rune a byte means in
// Windows-1256 is what the author typed; the rune the same byte shows
// as under Windows-1252 is the corruption we see. Only pairs whose
// intended rune is in the Arabic block are kept, so already-correct
// Latin text can never be altered.
func buildTable() map[rune]rune {
	m := make(map[rune]rune, 64)

	for b := 0; b < 256; b++ {
		intended := charmap.Windows1256.DecodeByte(byte(b))
		corrupted := charmap.Windows1252.DecodeByte(byte(b))

		if intended == utf8.RuneError || corrupted == utf8.RuneError {
			continue
		}
		if intended == corrupted {
			continue
		}
		if !inArabicBlock(intended) {
			continue
		}
		m[corrupted] = intended
	}

	// Word processors in the corrupted documents also emit NBSP where
	// a plain space was meant.
	m[' '] = ' '

	return m
}

// inArabicBlock reports whether r is in the core Arabic block
// (U+0600–U+06FF), which covers letters, diacritics, Arabic-Indic
// digits, and Arabic punctuation.
func inArabicBlock(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

// Lookup returns the intended rune for a corrupted code point.
func Lookup(r rune) (rune, bool) {
	mapped, ok := codepointTable()[r]
	return mapped, ok
}

// Table returns a copy of the corrupted-to-intended codepoint map.
func Table() map[rune]rune {
	src := codepointTable()
	out := make(map[rune]rune, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Entries returns the table as (corrupted, intended) pairs sorted by
// corrupted code point, for deterministic reporting.
func Entries() [][2]rune {
	src := codepointTable()
	out := make([][2]rune, 0, len(src))
	for k, v := range src {
		out = append(out, [2]rune{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
