package odt

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/dlvinn/rtlfix/internal/xmltree"
	"github.com/dlvinn/rtlfix/model"
)

// Save serializes the normalized model back into the document. For
// zipped input every entry other than content.xml is copied
// byte-identical, with mimetype kept first and uncompressed as ODF
// requires. For flat input the rewritten XML stream is the output.
// It fails with a *model.SerializeError when the model no longer
// matches the tree retained by Load.
func (a *Adapter) Save(doc *model.Document) ([]byte, error) {
	if a.root == nil {
		return nil, &model.SerializeError{Path: contentPath, Reason: "no document loaded"}
	}
	if len(doc.Blocks) != len(a.blocks) {
		return nil, &model.SerializeError{
			Path:   contentPath,
			Reason: "document structure changed since load",
		}
	}

	gen := &styleGen{adapter: a, byParent: make(map[string]string)}

	for i, b := range doc.Blocks {
		ref := a.blocks[i]
		switch blk := b.(type) {
		case *model.Paragraph:
			if ref.para == nil {
				return nil, &model.SerializeError{Path: contentPath, Reason: "block type changed since load"}
			}
			a.saveParagraph(ref.para, blk, gen)
		case *model.Table:
			if ref.table == nil {
				return nil, &model.SerializeError{Path: contentPath, Reason: "block type changed since load"}
			}
			for _, cp := range ref.table.cellParas {
				a.saveParagraph(cp.ref, cp.para, gen)
			}
		}
	}

	return a.repack(xmltree.Serialize(a.tree))
}

// saveParagraph writes run text back and, for RTL paragraphs, points
// the node at a generated rl-tb style derived from its original one.
// Paragraphs already styled rl-tb are left alone.
func (a *Adapter) saveParagraph(ref *paraRef, p *model.Paragraph, gen *styleGen) {
	if len(p.Runs) == len(ref.chunks) {
		for i := range p.Runs {
			if p.Runs[i].Text != chunkText(ref.chunks[i]) {
				setChunkText(ref.chunks[i], p.Runs[i].Text)
			}
		}
	} else {
		collapseChunks(ref, p.Text())
	}

	if p.Direction != model.RTL || a.rtlStyles[ref.styleName] {
		return
	}
	ref.node.SetAttr("text:style-name", gen.styleFor(ref.styleName))
}

// collapseChunks rewrites the paragraph's text as a single chunk,
// keeping the first chunk's node (and so a span's style) and removing
// the rest.
func collapseChunks(ref *paraRef, text string) {
	if len(ref.chunks) == 0 {
		if text == "" {
			return
		}
		t := xmltree.NewText(text)
		ref.node.AppendChild(t)
		ref.chunks = []*xmltree.Node{t}
		return
	}

	setChunkText(ref.chunks[0], text)
	for _, extra := range ref.chunks[1:] {
		ref.node.RemoveChild(extra)
	}
	ref.chunks = ref.chunks[:1]
}

func chunkText(n *xmltree.Node) string {
	return n.AllText()
}

func setChunkText(n *xmltree.Node, s string) {
	if n.Type == xmltree.TextNode {
		n.Text = s
		return
	}
	n.SetText(s)
}

// styleGen hands out one generated rl-tb automatic style per distinct
// parent style, appending each to office:automatic-styles on first
// use.
type styleGen struct {
	adapter  *Adapter
	byParent map[string]string
	counter  int
}

// styleFor returns the generated style name for a paragraph whose
// original style is parent, creating the style on first request.
func (g *styleGen) styleFor(parent string) string {
	if name, ok := g.byParent[parent]; ok {
		return name
	}

	var name string
	for {
		g.counter++
		name = fmt.Sprintf("P_rtl_%d", g.counter)
		if !g.adapter.styleNames[name] {
			break
		}
	}
	g.adapter.styleNames[name] = true
	g.adapter.rtlStyles[name] = true
	g.byParent[parent] = name

	style := xmltree.NewElement("style:style")
	style.SetAttr("style:name", name)
	style.SetAttr("style:family", "paragraph")
	if parent != "" {
		style.SetAttr("style:parent-style-name", parent)
	}
	props := xmltree.NewElement("style:paragraph-properties")
	props.SetAttr("style:writing-mode", "rl-tb")
	props.SetAttr("fo:text-align", "end")
	style.AppendChild(props)

	g.adapter.autoStyles().AppendChild(style)
	return name
}

// autoStyles returns the office:automatic-styles element, creating it
// just before office:body when the document has none.
func (a *Adapter) autoStyles() *xmltree.Node {
	if auto := a.root.Child("automatic-styles"); auto != nil {
		return auto
	}

	auto := xmltree.NewElement("office:automatic-styles")
	for i, c := range a.root.Children {
		if c.Type == xmltree.ElementNode && c.Local == "body" {
			a.root.InsertChildAt(i, auto)
			return auto
		}
	}
	a.root.AppendChild(auto)
	return auto
}

// repack writes the output container. Flat documents are returned as
// the serialized stream; zipped ones get a fresh archive with
// content.xml replaced and everything else raw-copied.
func (a *Adapter) repack(content []byte) ([]byte, error) {
	if a.zr == nil {
		return content, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// ODF requires the mimetype entry first and stored uncompressed;
	// raw-copying it preserves both.
	for _, f := range a.zr.File {
		if f.Name == "mimetype" {
			if err := zw.Copy(f); err != nil {
				zw.Close()
				return nil, &model.SerializeError{Path: f.Name, Reason: "copying entry", Err: err}
			}
			break
		}
	}

	for _, f := range a.zr.File {
		switch f.Name {
		case "mimetype":
			continue
		case contentPath:
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
		default:
			if err := zw.Copy(f); err != nil {
				zw.Close()
				return nil, &model.SerializeError{Path: f.Name, Reason: "copying entry", Err: err}
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &model.SerializeError{Path: contentPath, Reason: "closing archive", Err: err}
	}
	return buf.Bytes(), nil
}
