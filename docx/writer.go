package docx

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/dlvinn/rtlfix/internal/xmltree"
	"github.com/dlvinn/rtlfix/model"
)

// Save serializes the normalized model back into the archive. Every
// entry other than word/document.xml is copied byte-identical, which
// keeps images, headers, footers, styles, and relationships untouched.
// It fails with a *model.SerializeError when the model no longer
// matches the tree retained by Load.
func (a *Adapter) Save(doc *model.Document) ([]byte, error) {
	if a.zr == nil || a.body == nil {
		return nil, &model.SerializeError{Path: documentPath, Reason: "no document loaded"}
	}
	if len(doc.Blocks) != len(a.blocks) {
		return nil, &model.SerializeError{
			Path:   documentPath,
			Reason: "document structure changed since load",
		}
	}

	for i, b := range doc.Blocks {
		ref := a.blocks[i]
		switch blk := b.(type) {
		case *model.Paragraph:
			if ref.para == nil {
				return nil, &model.SerializeError{Path: documentPath, Reason: "block type changed since load"}
			}
			saveParagraph(ref.para, blk)
		case *model.Table:
			if ref.table == nil {
				return nil, &model.SerializeError{Path: documentPath, Reason: "block type changed since load"}
			}
			saveTable(ref.table, blk)
		}
	}

	return a.repack(xmltree.Serialize(a.tree))
}

// saveParagraph writes run text and layout state back to a w:p node.
func saveParagraph(ref *paraRef, p *model.Paragraph) {
	if len(p.Runs) == len(ref.runs) {
		for i := range p.Runs {
			if p.Runs[i].Text != runText(ref.runs[i]) {
				setRunText(ref.runs[i], p.Runs[i].Text)
			}
		}
	} else {
		collapseRuns(ref, p.Text())
	}

	if p.Direction == model.RTL {
		setParagraphRTL(ref, p.Alignment == model.AlignTrailing)
	}
}

// collapseRuns rewrites the paragraph as a single run carrying text,
// keeping the first run's properties. This mirrors what a manual edit
// leaves behind and is how the heading repair lands in the XML.
func collapseRuns(ref *paraRef, text string) {
	if len(ref.runs) == 0 {
		if text == "" {
			return
		}
		r := xmltree.NewElement("w:r")
		t := xmltree.NewElement("w:t")
		r.AppendChild(t)
		ref.node.AppendChild(r)
		ref.runs = []*xmltree.Node{r}
		setRunText(r, text)
		return
	}

	setRunText(ref.runs[0], text)
	for _, extra := range ref.runs[1:] {
		ref.node.RemoveChild(extra)
	}
	ref.runs = ref.runs[:1]
}

// setRunText puts s into the run's first w:t and empties any others.
func setRunText(r *xmltree.Node, s string) {
	ts := r.FindAll("t")
	if len(ts) == 0 {
		t := xmltree.NewElement("w:t")
		r.AppendChild(t)
		ts = []*xmltree.Node{t}
	}
	ts[0].SetText(s)
	if s != strings.TrimSpace(s) {
		ts[0].SetAttr("xml:space", "preserve")
	}
	for _, extra := range ts[1:] {
		extra.SetText("")
	}
}

// setParagraphRTL asserts w:bidi (and w:jc right when trailing
// alignment is requested) in the paragraph properties, and w:rtl in
// every text run's properties. Existing markers are left alone, so
// saving an already-normalized document is a no-op.
func setParagraphRTL(ref *paraRef, trailing bool) {
	pPr := ref.node.Child("pPr")
	if pPr == nil {
		pPr = xmltree.NewElement("w:pPr")
		ref.node.InsertChildAt(0, pPr)
	}

	if pPr.Child("bidi") == nil {
		bidi := xmltree.NewElement("w:bidi")
		bidi.SetAttr("w:val", "1")
		pPr.AppendChild(bidi)
	}

	if trailing {
		jc := pPr.Child("jc")
		if jc == nil {
			jc = xmltree.NewElement("w:jc")
			pPr.AppendChild(jc)
		}
		jc.SetAttr("w:val", "right")
	}

	for _, r := range ref.runs {
		rPr := r.Child("rPr")
		if rPr == nil {
			rPr = xmltree.NewElement("w:rPr")
			r.InsertChildAt(0, rPr)
		}
		if rPr.Child("rtl") == nil {
			rtl := xmltree.NewElement("w:rtl")
			rtl.SetAttr("w:val", "1")
			rPr.AppendChild(rtl)
		}
	}
}

// saveTable mirrors an RTL table's column order, marks it with
// w:bidiVisual so a later run recognizes it, and writes back its cell
// paragraphs. Already-mirrored tables are never reversed again.
func saveTable(ref *tableRef, t *model.Table) {
	for _, cp := range ref.cellParas {
		saveParagraph(cp.ref, cp.para)
	}

	if t.Direction != model.RTL || t.Mirrored {
		return
	}

	for _, tr := range ref.rows {
		cells := tr.ChildElements("tc")
		if len(cells) <= 1 {
			continue
		}
		reversed := make([]*xmltree.Node, len(cells))
		for i, c := range cells {
			reversed[len(cells)-1-i] = c
		}
		tr.ReplaceElements("tc", reversed)
	}

	tblPr := ref.node.Child("tblPr")
	if tblPr == nil {
		tblPr = xmltree.NewElement("w:tblPr")
		ref.node.InsertChildAt(0, tblPr)
	}
	if tblPr.Child("bidiVisual") == nil {
		bidi := xmltree.NewElement("w:bidiVisual")
		bidi.SetAttr("w:val", "1")
		tblPr.AppendChild(bidi)
	}
}

// repack writes a new archive with content replacing the main
// document part. Untouched entries are raw-copied so their compressed
// bytes survive unchanged.
func (a *Adapter) repack(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range a.zr.File {
		if f.Name == documentPath {
			hdr := f.FileHeader
			w, err := zw.CreateHeader(&hdr)
			if err != nil {
				zw.Close()
				return nil, &model.SerializeError{Path: f.Name, Reason: "writing entry", Err: err}
			}
			if _, err := w.Write(content); err != nil {
				zw.Close()
				return nil, &model.SerializeError{Path: f.Name, Reason: "writing entry", Err: err}
			}
			continue
		}
		if err := zw.Copy(f); err != nil {
			zw.Close()
			return nil, &model.SerializeError{Path: f.Name, Reason: "copying entry", Err: err}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &model.SerializeError{Path: documentPath, Reason: "closing archive", Err: err}
	}
	return buf.Bytes(), nil
}
