package layout

import "github.com/jonathan/orcid-cv/internal/style"

// Canvas receives drawing operations in page coordinates: points, origin
// at the top-left corner, y growing downwards.
type Canvas interface {
	Text(x, y float64, font FontSpec, color style.Color, text string)
	Line(x1, y1, x2, y2, width float64, color style.Color)
	Image(img *Image, x, y float64)
	Link(x, y, w, h float64, url string)
}

// Backend is a Canvas that also measures text and owns the page sequence.
type Backend interface {
	Canvas
	Measurer
	AddPage()
	PageSize() (width, height float64)
}

// OpKind tags a recorded drawing operation.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpImage
	OpLink
)

// Op is one recorded drawing operation.
type Op struct {
	Kind   OpKind
	X, Y   float64
	X2, Y2 float64
	W, H   float64
	Font   FontSpec
	Color  style.Color
	Text   string
	Image  *Image
	URL    string
}

// Page is the recorded drawing state of one finished page. It implements
// Canvas so the paginator can draw into it and Replay can copy it onto a
// real backend later.
type Page struct {
	Number int
	Ops    []Op
}

func (p *Page) Text(x, y float64, font FontSpec, color style.Color, text string) {
	p.Ops = append(p.Ops, Op{Kind: OpText, X: x, Y: y, Font: font, Color: color, Text: text})
}

func (p *Page) Line(x1, y1, x2, y2, width float64, color style.Color) {
	p.Ops = append(p.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, W: width, Color: color})
}

func (p *Page) Image(img *Image, x, y float64) {
	p.Ops = append(p.Ops, Op{Kind: OpImage, X: x, Y: y, Image: img})
}

func (p *Page) Link(x, y, w, h float64, url string) {
	p.Ops = append(p.Ops, Op{Kind: OpLink, X: x, Y: y, W: w, H: h, URL: url})
}

// Replay draws every recorded operation onto c in order.
func (p *Page) Replay(c Canvas) {
	for _, op := range p.Ops {
		switch op.Kind {
		case OpText:
			c.Text(op.X, op.Y, op.Font, op.Color, op.Text)
		case OpLine:
			c.Line(op.X, op.Y, op.X2, op.Y2, op.W, op.Color)
		case OpImage:
			c.Image(op.Image, op.X, op.Y)
		case OpLink:
			c.Link(op.X, op.Y, op.W, op.H, op.URL)
		}
	}
}

// texts returns the text of every text operation, for inspection.
func (p *Page) texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
