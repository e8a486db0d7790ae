// Package odt provides the ODF text-document adapter, covering both
// the zipped .odt container and the flat single-file .fodt form.
//
// Load maps content.xml (or the flat document) into the abstract
// model; Save writes run text back and marks RTL paragraphs through
// generated automatic styles. ODF tables keep their column order:
// style:writing-mode on the paragraph level is what ODF consumers
// honor for layout, so no cell mirroring is performed here.
package odt

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/dlvinn/rtlfix/internal/xmltree"
	"github.com/dlvinn/rtlfix/model"
)

const contentPath = "content.xml"

// Adapter loads and saves one ODF document. An Adapter retains the
// native XML tree between Load and Save; use one Adapter per document.
type Adapter struct {
	zr     *zip.Reader // nil for flat .fodt input
	tree   []*xmltree.Node
	root   *xmltree.Node
	blocks []blockRef

	// Automatic styles already carrying rl-tb writing mode, so a
	// second fix run leaves restyled paragraphs alone.
	rtlStyles  map[string]bool
	styleNames map[string]bool
}

type blockRef struct {
	para  *paraRef
	table *tableRef
}

// paraRef ties a model paragraph to its text:p or text:h node. Chunks
// are the text-bearing pieces that became model runs: leading
// character data and text:span elements.
type paraRef struct {
	node      *xmltree.Node
	chunks    []*xmltree.Node
	styleName string
}

// tableRef ties a model table to its table:table node. Cell
// paragraphs are written back through their own refs.
type tableRef struct {
	node      *xmltree.Node
	cellParas []cellPara
}

type cellPara struct {
	para *model.Paragraph
	ref  *paraRef
}

// New returns an empty Adapter.
func New() *Adapter {
	return &Adapter{}
}

// Load parses a zipped .odt archive or a flat .fodt XML stream into
// the abstract model. It fails with a *model.ParseError when the
// container or the document content is malformed or missing.
func (a *Adapter) Load(data []byte) (*model.Document, error) {
	content := data
	path := contentPath

	if isZip(data) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, &model.ParseError{Path: contentPath, Reason: "opening ZIP archive", Err: err}
		}
		a.zr = zr
		content, err = fileContent(zr, contentPath)
		if err != nil {
			return nil, &model.ParseError{Path: contentPath, Reason: "missing content.xml", Err: err}
		}
	} else {
		path = "document"
	}

	var err error
	a.tree, err = xmltree.Parse(content)
	if err != nil {
		return nil, &model.ParseError{Path: path, Reason: "unmarshaling document content", Err: err}
	}

	a.root = xmltree.Root(a.tree)
	if a.root == nil {
		return nil, &model.ParseError{Path: path, Reason: "missing document root"}
	}
	body := a.root.Child("body")
	if body == nil {
		return nil, &model.ParseError{Path: path, Reason: "missing office:body"}
	}
	text := body.Child("text")
	if text == nil {
		return nil, &model.ParseError{Path: path, Reason: "missing office:text"}
	}

	a.indexStyles()

	doc := &model.Document{}
	for _, el := range text.Elements() {
		switch el.Local {
		case "p", "h":
			p, ref := parseParagraph(el)
			doc.Blocks = append(doc.Blocks, p)
			a.blocks = append(a.blocks, blockRef{para: ref})
		case "list":
			for _, lp := range el.FindAll("p") {
				p, ref := parseParagraph(lp)
				doc.Blocks = append(doc.Blocks, p)
				a.blocks = append(a.blocks, blockRef{para: ref})
			}
		case "table":
			t, ref := parseTable(el)
			doc.Blocks = append(doc.Blocks, t)
			a.blocks = append(a.blocks, blockRef{table: ref})
		}
	}
	return doc, nil
}

// indexStyles records which automatic paragraph styles already force
// rl-tb writing mode, and every style name that is taken.
func (a *Adapter) indexStyles() {
	a.rtlStyles = make(map[string]bool)
	a.styleNames = make(map[string]bool)

	auto := a.root.Child("automatic-styles")
	if auto == nil {
		return
	}
	for _, s := range auto.ChildElements("style") {
		name := s.Attr("name")
		if name == "" {
			continue
		}
		a.styleNames[name] = true
		if s.Attr("family") != "paragraph" {
			continue
		}
		if pp := s.Child("paragraph-properties"); pp != nil && pp.Attr("writing-mode") == "rl-tb" {
			a.rtlStyles[name] = true
		}
	}
}

// parseParagraph maps a text:p or text:h element to a model
// paragraph. Direct character data and text:span children become
// runs; bookmarks, links, and field elements stay untouched in the
// tree and their text is not modeled.
func parseParagraph(p *xmltree.Node) (*model.Paragraph, *paraRef) {
	ref := &paraRef{node: p, styleName: p.Attr("style-name")}
	para := &model.Paragraph{}

	for _, c := range p.Children {
		switch {
		case c.Type == xmltree.TextNode && c.Text != "":
			para.Runs = append(para.Runs, model.Run{Text: c.Text})
			ref.chunks = append(ref.chunks, c)
		case c.Type == xmltree.ElementNode && c.Local == "span":
			para.Runs = append(para.Runs, model.Run{Text: c.AllText()})
			ref.chunks = append(ref.chunks, c)
		}
	}
	return para, ref
}

// parseTable maps a table:table element to a model table.
func parseTable(tbl *xmltree.Node) (*model.Table, *tableRef) {
	ref := &tableRef{node: tbl}
	t := &model.Table{}

	for _, tr := range tbl.ChildElements("table-row") {
		var row model.Row
		for _, tc := range tr.ChildElements("table-cell") {
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

func isZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && data[2] == 3 && data[3] == 4
}

func fileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
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
