// Package docx provides the DOCX (Office Open XML) document adapter.
//
// Load maps word/document.xml into the abstract model; Save writes the
// normalized model back into the retained XML tree and repacks the
// archive, copying every untouched entry byte-identical. Only text,
// direction, alignment, and table column order are ever rewritten;
// all other run and paragraph properties pass through opaquely.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/dlvinn/rtlfix/internal/xmltree"
	"github.com/dlvinn/rtlfix/model"
)

const documentPath = "word/document.xml"

// Adapter loads and saves one DOCX document. An Adapter retains the
// native XML tree between Load and Save; use one Adapter per document.
type Adapter struct {
	input  []byte
	zr     *zip.Reader
	tree   []*xmltree.Node
	body   *xmltree.Node
	blocks []blockRef
}

// blockRef ties a model block to its native nodes, positionally.
type blockRef struct {
	para  *paraRef
	table *tableRef
}

// paraRef ties a model paragraph to its w:p node and text-bearing runs.
type paraRef struct {
	node *xmltree.Node
	runs []*xmltree.Node // direct w:r children that carry w:t text
}

// tableRef ties a model table to its w:tbl node. Cell paragraphs are
// tracked by identity because saving may mirror the cell order.
type tableRef struct {
	node      *xmltree.Node
	rows      []*xmltree.Node
	cellParas []cellPara
}

// New returns an empty Adapter.
func New() *Adapter {
	return &Adapter{}
}

// Load parses a DOCX archive into the abstract model. It fails with a
// *model.ParseError when the container or its main document part is
// malformed or missing.
func (a *Adapter) Load(data []byte) (*model.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &model.ParseError{Path: documentPath, Reason: "opening ZIP archive", Err: err}
	}
	a.input = data
	a.zr = zr

	if err := a.validate(); err != nil {
		return nil, err
	}

	content, err := a.fileContent(documentPath)
	if err != nil {
		return nil, &model.ParseError{Path: documentPath, Reason: "reading document part", Err: err}
	}

	a.tree, err = xmltree.Parse(content)
	if err != nil {
		return nil, &model.ParseError{Path: documentPath, Reason: "unmarshaling document.xml", Err: err}
	}

	root := xmltree.Root(a.tree)
	if root == nil || root.Local != "document" {
		return nil, &model.ParseError{Path: documentPath, Reason: "missing w:document root"}
	}
	a.body = root.Child("body")
	if a.body == nil {
		return nil, &model.ParseError{Path: documentPath, Reason: "missing w:body"}
	}

	doc := &model.Document{}
	for _, el := range a.body.Elements() {
		switch el.Local {
		case "p":
			p, ref := parseParagraph(el)
			doc.Blocks = append(doc.Blocks, p)
			a.blocks = append(a.blocks, blockRef{para: ref})
		case "tbl":
			t, ref := parseTable(el)
			doc.Blocks = append(doc.Blocks, t)
			a.blocks = append(a.blocks, blockRef{table: ref})
		}
	}
	return doc, nil
}

// validate checks that required DOCX entries exist.
func (a *Adapter) validate() error {
	required := []string{
		"[Content_Types].xml",
		documentPath,
	}

	fileMap := make(map[string]bool)
	for _, f := range a.zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return &model.ParseError{Path: name, Reason: "missing required file"}
		}
	}
	return nil
}

// fileContent reads one entry from the archive.
func (a *Adapter) fileContent(name string) ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(rc); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseParagraph maps a w:p element to a model paragraph. Only direct
// w:r children that carry w:t text become model runs; drawings,
// hyperlink content, and field runs stay untouched in the tree.
func parseParagraph(p *xmltree.Node) (*model.Paragraph, *paraRef) {
	ref := &paraRef{node: p}
	para := &model.Paragraph{}

	for _, r := range p.ChildElements("r") {
		text := runText(r)
		if text == "" && len(r.FindAll("t")) == 0 {
			continue
		}
		run := model.Run{Text: text}
		if rPr := r.Child("rPr"); rPr != nil {
			run.Bold = flagSet(rPr.Child("b"))
			run.Italic = flagSet(rPr.Child("i"))
			if fonts := rPr.Child("rFonts"); fonts != nil {
				run.FontName = fonts.Attr("ascii")
				if run.FontName == "" {
					run.FontName = fonts.Attr("cs")
				}
			}
		}
		para.Runs = append(para.Runs, run)
		ref.runs = append(ref.runs, r)
	}
	return para, ref
}

// runText concatenates the w:t descendants of a run.
func runText(r *xmltree.Node) string {
	var b strings.Builder
	for _, t := range r.FindAll("t") {
		b.WriteString(t.AllText())
	}
	return b.String()
}

// flagSet reports whether an OOXML boolean property element is present
// and not explicitly disabled.
func flagSet(n *xmltree.Node) bool {
	if n == nil {
		return false
	}
	val := n.Attr("val")
	return val != "false" && val != "0"
}

// parseTable maps a w:tbl element to a model table. A table whose
// w:tblPr already carries w:bidiVisual was mirrored by a previous fix
// run and loads as Mirrored so it is never reversed again.
func parseTable(tbl *xmltree.Node) (*model.Table, *tableRef) {
	ref := &tableRef{node: tbl}
	t := &model.Table{}

	if tblPr := tbl.Child("tblPr"); tblPr != nil {
		if bidi := tblPr.Child("bidiVisual"); flagSet(bidi) {
			t.Mirrored = true
		}
	}

	for _, tr := range tbl.ChildElements("tr") {
		ref.rows = append(ref.rows, tr)
		var row model.Row
		for _, tc := range tr.ChildElements("tc") {
			var cell model.Cell
			for _, p := range tc.ChildElements("p") {
				cp, cref := parseParagraph(p)
				cell.Paragraphs = append(cell.Paragraphs, cp)
				ref.cellParas = append(ref.cellParas, cellPara{para: cp, ref: cref})
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, ref
}

// cellPara ties a cell paragraph to its native ref; save walks these
// by identity because cell order may be mirrored.
type cellPara struct {
	para *model.Paragraph
	ref  *paraRef
}
