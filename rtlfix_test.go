package rtlfix

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlvinn/rtlfix/format"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	w, err = zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(document))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			defer rc.Close()
			var b bytes.Buffer
			b.ReadFrom(rc)
			return b.String()
		}
	}
	t.Fatal("document part missing")
	return ""
}

func TestFixRepairsMojibakeParagraph(t *testing.T) {
	input := buildDocx(t, "ÂÈ")

	out, stats, err := Fix(input, format.Unknown)
	if err != nil {
		t.Fatalf("Fix: %v", err)
	}

	if stats.EncodingFixes != 2 {
		t.Errorf("EncodingFixes = %d, want 2", stats.EncodingFixes)
	}
	if stats.RTLParagraphs != 1 {
		t.Errorf("RTLParagraphs = %d, want 1", stats.RTLParagraphs)
	}

	xmlOut := documentXML(t, out)
	if !strings.Contains(xmlOut, "آب") {
		t.Error("repaired text missing from output")
	}
	if strings.Contains(xmlOut, "ÂÈ") {
		t.Error("mojibake still present in output")
	}
	for _, want := range []string{"<w:bidi ", `<w:jc w:val="right"/>`} {
		if !strings.Contains(xmlOut, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestFixLeavesEnglishAlone(t *testing.T) {
	input := buildDocx(t, "an ordinary english paragraph")

	out, stats, err := Fix(input, format.DOCX)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total() != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
	xmlOut := documentXML(t, out)
	if strings.Contains(xmlOut, "w:bidi") {
		t.Error("LTR document gained RTL markers")
	}
}

func TestFixOptions(t *testing.T) {
	input := buildDocx(t, "ÂÈ")

	_, stats, err := Fix(input, format.DOCX, WithoutEncodingRepair())
	if err != nil {
		t.Fatal(err)
	}
	if stats.EncodingFixes != 0 {
		t.Errorf("EncodingFixes = %d with repair disabled", stats.EncodingFixes)
	}

	// Threshold of 0.99 keeps a mixed paragraph LTR.
	mixed := buildDocx(t, "نص with quite a lot of english words around it")
	_, stats, err = Fix(mixed, format.DOCX, WithRTLThreshold(0.99))
	if err != nil {
		t.Fatal(err)
	}
	if stats.RTLParagraphs != 0 {
		t.Errorf("RTLParagraphs = %d with 0.99 threshold", stats.RTLParagraphs)
	}
}

func TestFixHeadingEndToEnd(t *testing.T) {
	input := buildDocx(t, "ÇáäØÇÞ.2")

	out, stats, err := Fix(input, format.DOCX)
	if err != nil {
		t.Fatal(err)
	}
	if stats.HeadingFixes != 1 {
		t.Errorf("HeadingFixes = %d, want 1", stats.HeadingFixes)
	}
	if !strings.Contains(documentXML(t, out), "2. النطاق") {
		t.Error("heading not reordered in output")
	}
}

func TestFixUnsupportedFormat(t *testing.T) {
	if _, _, err := Fix([]byte("plain text file"), format.Unknown); err == nil {
		t.Fatal("expected error for unsupported input")
	}
}

func TestFixFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.docx")
	outPath := filepath.Join(dir, "doc_fixed.docx")
	if err := os.WriteFile(in, buildDocx(t, "ÂÈ"), 0o644); err != nil {
		t.Fatal(err)
	}

	stats, err := FixFile(context.Background(), in, outPath)
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if stats.EncodingFixes != 2 {
		t.Errorf("EncodingFixes = %d, want 2", stats.EncodingFixes)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(documentXML(t, data), "آب") {
		t.Error("output file lacks repaired text")
	}

	// No temp leftovers in the target directory.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want input and output only", len(entries))
	}
}

func TestFixFileCancelled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(in, buildDocx(t, "ÂÈ"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FixFile(ctx, in, filepath.Join(dir, "out.docx")); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDiscoverUnmapped(t *testing.T) {
	unmapped := DiscoverUnmapped([]string{"ÂÈ with a stray  byte "})
	if unmapped[''] != 2 {
		t.Errorf("unmapped[U+0081] = %d, want 2", unmapped[''])
	}
	if _, ok := unmapped['Â']; ok {
		t.Error("mapped code point reported as unmapped")
	}
}
