package model

import (
	"errors"
	"testing"
)

func TestParagraphText(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
		want string
	}{
		{"empty", nil, ""},
		{"single", []Run{{Text: "hello"}}, "hello"},
		{"multiple", []Run{{Text: "he"}, {Text: "llo"}, {Text: " world"}}, "hello world"},
	}

	for _, tt := range tests {
		p := &Paragraph{Runs: tt.runs}
		if got := p.Text(); got != tt.want {
			t.Errorf("%s: Text() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParagraphSetText(t *testing.T) {
	p := &Paragraph{Runs: []Run{
		{Text: "old", Bold: true, FontName: "Arial"},
		{Text: "tail", Italic: true},
	}}
	p.SetText("new")

	if len(p.Runs) != 1 {
		t.Fatalf("expected 1 run after SetText, got %d", len(p.Runs))
	}
	if p.Runs[0].Text != "new" {
		t.Errorf("Text = %q, want %q", p.Runs[0].Text, "new")
	}
	if !p.Runs[0].Bold || p.Runs[0].FontName != "Arial" {
		t.Error("SetText should preserve the first run's styling")
	}
}

func TestParagraphSetTextEmpty(t *testing.T) {
	p := &Paragraph{}
	p.SetText("text")
	if got := p.Text(); got != "text" {
		t.Errorf("Text() = %q, want %q", got, "text")
	}
}

func TestDocumentParagraphs(t *testing.T) {
	doc := &Document{Blocks: []Block{
		&Paragraph{Runs: []Run{{Text: "first"}}},
		&Table{Rows: []Row{
			{Cells: []Cell{
				{Paragraphs: []*Paragraph{{Runs: []Run{{Text: "cell1"}}}}},
				{Paragraphs: []*Paragraph{{Runs: []Run{{Text: "cell2"}}}}},
			}},
		}},
		&Paragraph{Runs: []Run{{Text: "last"}}},
	}}

	paras := doc.Paragraphs()
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs (incl. cells), got %d", len(paras))
	}

	want := []string{"first", "cell1", "cell2", "last"}
	for i, w := range want {
		if paras[i].Text() != w {
			t.Errorf("paragraph %d = %q, want %q", i, paras[i].Text(), w)
		}
	}

	if len(doc.Tables()) != 1 {
		t.Errorf("expected 1 table, got %d", len(doc.Tables()))
	}
}

func TestCellText(t *testing.T) {
	c := Cell{Paragraphs: []*Paragraph{
		{Runs: []Run{{Text: "a"}}},
		{Runs: []Run{{Text: "b"}}},
	}}
	if got := c.Text(); got != "a\nb" {
		t.Errorf("Cell.Text() = %q, want %q", got, "a\nb")
	}
}

func TestFixStatsAdd(t *testing.T) {
	var total FixStats
	total.Add(FixStats{RTLParagraphs: 1, EncodingFixes: 2})
	total.Add(FixStats{RTLParagraphs: 3, Alignments: 4, HeadingFixes: 5, TableCells: 6})

	want := FixStats{RTLParagraphs: 4, Alignments: 4, EncodingFixes: 2, HeadingFixes: 5, TableCells: 6}
	if total != want {
		t.Errorf("Add result = %+v, want %+v", total, want)
	}
	if total.Total() != 21 {
		t.Errorf("Total() = %d, want 21", total.Total())
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")

	var err error = &ParseError{Path: "word/document.xml", Reason: "bad zip", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ParseError should unwrap to inner error")
	}

	err = &SerializeError{Path: "content.xml", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("SerializeError should unwrap to inner error")
	}

	var pe *ParseError
	if !errors.As(&ParseError{Reason: "x"}, &pe) {
		t.Error("errors.As should match ParseError")
	}
}

func TestDirectionString(t *testing.T) {
	if LTR.String() != "LTR" || RTL.String() != "RTL" {
		t.Error("unexpected Direction strings")
	}
	if AlignDefault.String() != "default" || AlignTrailing.String() != "trailing" {
		t.Error("unexpected Alignment strings")
	}
}
