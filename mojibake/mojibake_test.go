package mojibake

import "testing"

func TestRepairKnownWords(t *testing.T) {
	tests := []struct {
		name      string
		corrupted string
		want      string
		wantCount int
	}{
		{"august", "ÂÈ", "آب", 2},
		{"iraq", "ÇáÚÑÇÞ", "العراق", 6},
		{"hello", "ãÑÍÈÇ", "مرحبا", 5},
		{"baghdad", "ÈÛÏÇÏ", "بغداد", 5},
		{"you", "ÃäÊ", "أنت", 3},
	}

	for _, tt := range tests {
		got, count := Repair(tt.corrupted)
		if got != tt.want {
			t.Errorf("%s: Repair(%q) = %q, want %q", tt.name, tt.corrupted, got, tt.want)
		}
		if count != tt.wantCount {
			t.Errorf("%s: count = %d, want %d", tt.name, count, tt.wantCount)
		}
	}
}

func TestRepairIdentityOnCleanText(t *testing.T) {
	clean := []string{
		"",
		"plain ascii text",
		"العراق",      // already-correct Arabic
		"file.txt 42", // digits and punctuation
		"mixed العربية and English",
	}

	for _, s := range clean {
		got, count := Repair(s)
		if got != s {
			t.Errorf("Repair(%q) = %q, want unchanged", s, got)
		}
		if count != 0 {
			t.Errorf("Repair(%q) count = %d, want 0", s, count)
		}
	}
}

func TestRepairPassesThroughUnmapped(t *testing.T) {
	// ß maps to ك via cp1256 0xDF, but © (0xA9 in both codepages) is
	// identical in both and must survive.
	got, count := Repair("©x")
	if got != "©x" || count != 0 {
		t.Errorf("Repair(%q) = (%q, %d), want unchanged", "©x", got, count)
	}
}

func TestRepairNoDoubleApplicationDrift(t *testing.T) {
	// Repairing already-repaired text must change nothing further:
	// table values are never also keys.
	once, _ := Repair("ÂÈ ÇáÚÑÇÞ ãÑÍÈÇ")
	twice, count := Repair(once)
	if twice != once {
		t.Errorf("second Repair changed text: %q -> %q", once, twice)
	}
	if count != 0 {
		t.Errorf("second Repair count = %d, want 0", count)
	}
}

func TestRepairNBSP(t *testing.T) {
	got, count := Repair("a b")
	if got != "a b" || count != 1 {
		t.Errorf("Repair(NBSP) = (%q, %d), want (%q, 1)", got, count, "a b")
	}
}

func TestTableInjective(t *testing.T) {
	seen := make(map[rune]rune)
	for corrupted, intended := range Table() {
		if prev, dup := seen[intended]; dup {
			t.Errorf("table not injective: %U and %U both map to %U", prev, corrupted, intended)
		}
		seen[intended] = corrupted
	}
}

func TestTableValuesNeverKeys(t *testing.T) {
	m := Table()
	for _, intended := range m {
		if _, isKey := m[intended]; isKey {
			t.Errorf("table value %U is also a key; repair would drift", intended)
		}
	}
}

func TestTableCoversCoreAlphabet(t *testing.T) {
	// The corpus-observed corruption pairs that must be present.
	required := map[rune]rune{
		'Á': 'ء', 'Â': 'آ', 'Ã': 'أ', 'Ä': 'ؤ', 'Å': 'إ', 'Æ': 'ئ',
		'Ç': 'ا', 'È': 'ب', 'É': 'ة', 'Ê': 'ت', 'Ë': 'ث', 'Ì': 'ج',
		'Í': 'ح', 'Î': 'خ', 'Ï': 'د', 'Ð': 'ذ', 'Ñ': 'ر', 'Ò': 'ز',
		'Ó': 'س', 'Ô': 'ش', 'Õ': 'ص', 'Ö': 'ض', 'Ø': 'ط', 'Ù': 'ظ',
		'Ú': 'ع', 'Û': 'غ', 'Ü': 'ـ', 'Ý': 'ف', 'Þ': 'ق', 'ß': 'ك',
		'á': 'ل', 'ã': 'م', 'ä': 'ن', 'å': 'ه', 'æ': 'و', 'ì': 'ى',
		'í': 'ي',
	}

	for corrupted, intended := range required {
		got, ok := Lookup(corrupted)
		if !ok {
			t.Errorf("missing table entry for %q (%U)", corrupted, corrupted)
			continue
		}
		if got != intended {
			t.Errorf("Lookup(%q) = %q, want %q", corrupted, got, intended)
		}
	}

	if n := len(Table()); n < 45 {
		t.Errorf("table has %d entries, expected at least 45", n)
	}
}

func TestTableCopyIsDetached(t *testing.T) {
	c := Table()
	c['X'] = 'Y'
	if _, ok := Lookup('X'); ok {
		t.Error("mutating the returned copy leaked into the internal table")
	}
}

func TestDiscover(t *testing.T) {
	rep := Discover([]string{
		"ÂÈ",        // two known corrupted code points
		"x÷y",       // ÷ (0xF7) decodes as sukun in cp1256: known
		"ab" + "§", // 0x9F and § are suspicious but unmapped
		"نص عربي",   // clean Arabic: neither known nor unmapped
	})

	if rep.Known['Â'] != 1 || rep.Known['È'] != 1 {
		t.Errorf("expected ÂÈ counted as known, got %v", rep.Known)
	}
	if rep.Unmapped['§'] != 1 {
		t.Errorf("expected § counted as unmapped, got %v", rep.Unmapped)
	}
	for _, r := range "نص عربي" {
		if _, ok := rep.Unmapped[r]; ok {
			t.Errorf("Arabic rune %U wrongly reported unmapped", r)
		}
	}

	sorted := rep.UnmappedSorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] >= sorted[i] {
			t.Error("UnmappedSorted not in ascending order")
		}
	}
}

func TestEntriesSorted(t *testing.T) {
	entries := Entries()
	if len(entries) == 0 {
		t.Fatal("no entries")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1][0] >= entries[i][0] {
			t.Fatal("Entries not sorted by corrupted code point")
		}
	}
}
