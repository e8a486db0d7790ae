package text

import "testing"

func TestReorderHeading(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"glued marker", "النطاق.2", "2. النطاق", true},
		{"spaced marker", "المجال .2", "2. المجال", true},
		{"multi-level glued", "الفصل.1.2", "1.2. الفصل", true},
		{"multi-level spaced", "الباب الثاني .3.1", "3.1. الباب الثاني", true},
		{"trailing space in body", "النطاق .5", "5. النطاق", true},
		{"trailing space after marker", "النطاق.2 ", "2. النطاق", true},
		{"leading space", " النطاق.2", "2. النطاق", true},
		{"surrounding whitespace", "\t المجال .3 \t", "3. المجال", true},
		{"canonical with trailing space", "2. النطاق ", "", false},
		{"ltr filename", "file.txt", "", false},
		{"ltr decimal", "version.2", "", false},
		{"already canonical", "2. النطاق", "", false},
		{"already canonical multi-level", "1.2. الفصل", "", false},
		{"no marker", "النطاق", "", false},
		{"empty", "", "", false},
		{"marker only", ".2", "", false},
		{"plain number", "3.14", "", false},
		{"mid-sentence number untouched", "راجع القسم 2.5 أدناه", "", false},
	}

	for _, tt := range tests {
		got, ok := ReorderHeading(tt.line)
		if ok != tt.wantOK {
			t.Errorf("%s: ReorderHeading(%q) ok = %v, want %v", tt.name, tt.line, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%s: ReorderHeading(%q) = %q, want %q", tt.name, tt.line, got, tt.want)
		}
	}
}

func TestReorderHeadingWithThreshold(t *testing.T) {
	// A mixed-script body reorders under a permissive threshold and
	// is left alone when the caller demands near-total Arabic content.
	got, ok := ReorderHeadingWithThreshold("النطاق العام x.2", 0.1)
	if !ok || got != "2. النطاق العام x" {
		t.Errorf("low threshold reorder = %q, %v", got, ok)
	}
	if _, ok := ReorderHeadingWithThreshold("النطاق العام x.2", 0.95); ok {
		t.Error("high threshold should suppress the mixed-script reorder")
	}
}

func TestReorderHeadingIdempotent(t *testing.T) {
	fixed, ok := ReorderHeading("النطاق.2")
	if !ok {
		t.Fatal("expected first reorder to apply")
	}
	if _, again := ReorderHeading(fixed); again {
		t.Errorf("reordering %q a second time should be a no-op", fixed)
	}
}
