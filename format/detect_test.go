package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{FlatODT, "FlatODT"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, ".docx"},
		{ODT, ".odt"},
		{FlatODT, ".fodt"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"document.odt", ODT},
		{"document.ODT", ODT},
		{"document.fodt", FlatODT},
		{"document.FODT", FlatODT},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
		{"/path/to/file.odt", ODT},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func buildZIP(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectBytes(t *testing.T) {
	docxData := buildZIP(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<w:document/>",
	})
	odtData := buildZIP(t, map[string]string{
		"mimetype":    "application/vnd.oasis.opendocument.text",
		"content.xml": "<office:document-content/>",
	})
	odtNoMime := buildZIP(t, map[string]string{
		"content.xml": "<office:document-content/>",
	})
	flat := []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<office:document xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"/>`)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"docx archive", docxData, DOCX},
		{"odt archive", odtData, ODT},
		{"odt without mimetype", odtNoMime, ODT},
		{"flat odf", flat, FlatODT},
		{"flat odf leading whitespace", append([]byte("\n  "), flat...), FlatODT},
		{"plain xml", []byte(`<?xml version="1.0"?><html/>`), Unknown},
		{"plain text", []byte("hello world"), Unknown},
		{"empty", nil, Unknown},
		{"short", []byte("PK"), Unknown},
	}

	for _, tt := range tests {
		if got := DetectBytes(tt.data); got != tt.want {
			t.Errorf("%s: DetectBytes = %v, want %v", tt.name, got, tt.want)
		}
	}
}
