package model

// Direction represents the writing direction of a paragraph or cell.
// It is derived from the paragraph's current text on every
// normalization pass and is never treated as authoritative input.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
)

// String returns a string representation of the direction ("LTR" or "RTL").
func (d Direction) String() string {
	if d == RTL {
		return "RTL"
	}
	return "LTR"
}

// Alignment represents horizontal paragraph alignment.
type Alignment int

const (
	// AlignDefault leaves the native alignment untouched.
	AlignDefault Alignment = iota
	// AlignTrailing aligns to the line's logical end, which is the
	// visual right edge under RTL.
	AlignTrailing
)

// String returns a string representation of the alignment.
func (a Alignment) String() string {
	if a == AlignTrailing {
		return "trailing"
	}
	return "default"
}

// Document represents a parsed document as an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// Block is a top-level document element: either *Paragraph or *Table.
// Each block owns its content exclusively; blocks are never shared.
type Block interface {
	isBlock()
}

// Paragraph is an ordered sequence of text runs plus derived layout state.
type Paragraph struct {
	Runs      []Run
	Direction Direction
	Alignment Alignment
}

func (*Paragraph) isBlock() {}

// Run is a contiguous span of text with minimal opaque styling.
// Style fields are preserved through the pipeline but never interpreted.
type Run struct {
	Text     string
	Bold     bool
	Italic   bool
	FontName string
}

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	if p == nil {
		return ""
	}
	switch len(p.Runs) {
	case 0:
		return ""
	case 1:
		return p.Runs[0].Text
	}
	var n int
	for i := range p.Runs {
		n += len(p.Runs[i].Text)
	}
	buf := make([]byte, 0, n)
	for i := range p.Runs {
		buf = append(buf, p.Runs[i].Text...)
	}
	return string(buf)
}

// SetText collapses the paragraph to a single run carrying s.
// The first run's styling is preserved, matching what a manual edit
// in a word processor would leave behind.
func (p *Paragraph) SetText(s string) {
	if len(p.Runs) == 0 {
		p.Runs = []Run{{Text: s}}
		return
	}
	first := p.Runs[0]
	first.Text = s
	p.Runs = p.Runs[:1]
	p.Runs[0] = first
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []Row

	// Direction is the derived dominant direction of the table's cells.
	Direction Direction

	// Mirrored records that the native form already stores this
	// table's columns in visually mirrored order. Adapters set it on
	// load; a mirrored table is never reversed again.
	Mirrored bool
}

func (*Table) isBlock() {}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell
}

// Cell owns an ordered sequence of paragraphs.
type Cell struct {
	Paragraphs []*Paragraph
}

// Text returns the concatenated text of the cell's paragraphs,
// separated by newlines.
func (c *Cell) Text() string {
	switch len(c.Paragraphs) {
	case 0:
		return ""
	case 1:
		return c.Paragraphs[0].Text()
	}
	s := c.Paragraphs[0].Text()
	for _, p := range c.Paragraphs[1:] {
		s += "\n" + p.Text()
	}
	return s
}

// Paragraphs returns every paragraph in the document in order,
// including paragraphs nested inside table cells.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.Blocks {
		switch blk := b.(type) {
		case *Paragraph:
			out = append(out, blk)
		case *Table:
			for ri := range blk.Rows {
				for ci := range blk.Rows[ri].Cells {
					out = append(out, blk.Rows[ri].Cells[ci].Paragraphs...)
				}
			}
		}
	}
	return out
}

// Tables returns every table block in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Text returns all document text, one line per paragraph.
func (d *Document) Text() string {
	var s string
	for i, p := range d.Paragraphs() {
		if i > 0 {
			s += "\n"
		}
		s += p.Text()
	}
	return s
}
