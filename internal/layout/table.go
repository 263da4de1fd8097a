package layout

import (
	"github.com/jonathan/orcid-cv/internal/style"
)

// Padding is the space between a cell's edge and its content.
type Padding struct {
	Left, Right, Top, Bottom float64
}

// DefaultPadding matches the conventional table cell padding.
var DefaultPadding = Padding{Left: 6, Right: 6, Top: 3, Bottom: 3}

// Image is a picture drawn at a fixed size, optionally hyperlinked. It is
// read from Path, or from Data (PNG) when Path is empty.
type Image struct {
	Name string
	Path string
	Data []byte
	W, H float64
	Link string
}

// Cell holds at most one paragraph or image. An empty cell only
// contributes padding.
type Cell struct {
	Para  *Paragraph
	Image *Image
}

// Row is one table row. A spanning row draws its first cell across all
// columns. MinHeight reserves content height for rows that are empty.
type Row struct {
	Cells     []Cell
	Span      bool
	MinHeight float64
}

// Rule is a horizontal line drawn under one row.
type Rule struct {
	Row   int
	Width float64
	Color style.Color
}

// Table is a grid of cells with fixed column widths, top-aligned.
// A NoSplit table is moved whole to the next page when it does not fit.
type Table struct {
	Widths  []float64
	Rows    []Row
	Rules   []Rule
	NoSplit bool
	// Align places the table inside the frame; tables wider than the frame
	// are centered regardless.
	Align   style.Align
	Padding Padding

	rowHeights []float64
}

// Block is anything the paginator can place.
type Block interface {
	// Wrap lays the block out for the frame width and returns its height.
	Wrap(m Measurer, width float64) float64
	// Draw paints the block with its top-left corner at (x, y).
	Draw(c Canvas, x, y float64)
}

// Spacer is vertical space. A negative height pulls the next block up.
type Spacer struct {
	Height float64
}

func (s *Spacer) Wrap(Measurer, float64) float64 { return s.Height }

func (s *Spacer) Draw(Canvas, float64, float64) {}

// Width returns the sum of the column widths.
func (t *Table) Width() float64 {
	var w float64
	for _, cw := range t.Widths {
		w += cw
	}
	return w
}

func (t *Table) cellWidth(row Row, col int) float64 {
	if row.Span && col == 0 {
		return t.Width()
	}
	if col < len(t.Widths) {
		return t.Widths[col]
	}
	return 0
}

// Wrap lays out every cell and returns the table height.
func (t *Table) Wrap(m Measurer, _ float64) float64 {
	t.rowHeights = make([]float64, len(t.Rows))
	var total float64
	for i, row := range t.Rows {
		h := row.MinHeight
		for col, cell := range row.Cells {
			if row.Span && col > 0 {
				break
			}
			inner := t.cellWidth(row, col) - t.Padding.Left - t.Padding.Right
			var ch float64
			switch {
			case cell.Para != nil:
				ch = cell.Para.Wrap(m, inner)
			case cell.Image != nil:
				ch = cell.Image.H
			}
			if ch > h {
				h = ch
			}
		}
		t.rowHeights[i] = h + t.Padding.Top + t.Padding.Bottom
		total += t.rowHeights[i]
	}
	return total
}

// RowHeights returns the heights computed by the last Wrap.
func (t *Table) RowHeights() []float64 {
	return t.rowHeights
}

// Draw paints cells then rules. Wrap must have been called.
func (t *Table) Draw(c Canvas, x, y float64) {
	rowTop := y
	for i, row := range t.Rows {
		cx := x
		for col, cell := range row.Cells {
			if row.Span && col > 0 {
				break
			}
			w := t.cellWidth(row, col)
			inner := w - t.Padding.Left - t.Padding.Right
			switch {
			case cell.Para != nil:
				drawParagraph(c, cell.Para, cx+t.Padding.Left, rowTop+t.Padding.Top, inner)
			case cell.Image != nil:
				ix, iy := cx+t.Padding.Left, rowTop+t.Padding.Top
				c.Image(cell.Image, ix, iy)
				if cell.Image.Link != "" {
					c.Link(ix, iy, cell.Image.W, cell.Image.H, cell.Image.Link)
				}
			}
			cx += w
		}
		rowTop += t.rowHeights[i]
		for _, r := range t.Rules {
			if r.Row == i {
				c.Line(x, rowTop, x+t.Width(), rowTop, r.Width, r.Color)
			}
		}
	}
}

// split returns a table holding the rows that fit in avail and one holding
// the rest. head is nil when not even the first row fits.
func (t *Table) split(avail float64) (head, tail *Table) {
	var used float64
	n := 0
	for n < len(t.rowHeights) && used+t.rowHeights[n] <= avail {
		used += t.rowHeights[n]
		n++
	}
	if n == 0 {
		return nil, t
	}
	if n == len(t.Rows) {
		return t, nil
	}
	head = t.slice(0, n)
	tail = t.slice(n, len(t.Rows))
	return head, tail
}

func (t *Table) slice(from, to int) *Table {
	out := *t
	out.Rows = t.Rows[from:to]
	out.rowHeights = t.rowHeights[from:to]
	out.Rules = nil
	for _, r := range t.Rules {
		if r.Row >= from && r.Row < to {
			out.Rules = append(out.Rules, Rule{Row: r.Row - from, Width: r.Width, Color: r.Color})
		}
	}
	return &out
}
