// Package format provides file format detection for the rtlfix engine.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates a zipped OpenDocument Text (.odt) document.
	ODT
	// FlatODT indicates a flat single-file OpenDocument (.fodt) document.
	FlatODT
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case FlatODT:
		return "FlatODT"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case ODT:
		return ".odt"
	case FlatODT:
		return ".fodt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".fodt":
		return FlatODT
	default:
		return Unknown
	}
}

// DetectBytes inspects document content to determine its format.
// This is more reliable than extension-based detection and
// distinguishes the two ZIP-based containers by their entries.
func DetectBytes(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic: PK\x03\x04
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return detectZIPFormat(data)
	}

	if detectFlatODFMagic(data) {
		return FlatODT
	}

	return Unknown
}

// detectZIPFormat inspects a ZIP archive to determine if it's DOCX or ODT.
func detectZIPFormat(data []byte) Format {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}

	// OpenDocument archives carry a mimetype entry at the start.
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				buf := make([]byte, 256)
				n, _ := rc.Read(buf)
				rc.Close()
				if strings.Contains(string(buf[:n]), "application/vnd.oasis.opendocument.text") {
					return ODT
				}
			}
		}
	}

	// Office Open XML markers.
	for _, f := range zr.File {
		switch {
		case f.Name == "[Content_Types].xml":
			continue
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX
		case f.Name == "content.xml":
			// ODT without a mimetype entry still has its content part.
			return ODT
		}
	}

	return Unknown
}

// detectFlatODFMagic checks whether the data looks like a flat
// OpenDocument XML stream (an <office:document> root element).
func detectFlatODFMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	if !bytes.HasPrefix(data, []byte("<?xml")) && !bytes.HasPrefix(data, []byte("<office:document")) {
		return false
	}

	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<office:document"))
}
