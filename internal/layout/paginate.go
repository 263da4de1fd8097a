package layout

import (
	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/style"
)

// Frame is the content area of every page.
type Frame struct {
	X, Y          float64
	Width, Height float64
}

// Bottom returns the lowest y content may reach.
func (f Frame) Bottom() float64 {
	return f.Y + f.Height
}

// Paginator places blocks top to bottom and starts a new page whenever the
// next block does not fit. OnPage is called once per finished page, in
// order, with that page's recorded drawing state.
type Paginator struct {
	Measurer Measurer
	Frame    Frame
	OnPage   func(page *Page) error
	Log      *logger.Logger

	page  *Page
	y     float64
	count int
}

// Flow lays out blocks and returns the number of pages produced. At least
// one page is always emitted.
func (p *Paginator) Flow(blocks []Block) (int, error) {
	p.count = 0
	p.newPage()

	for _, b := range blocks {
		if err := p.place(b); err != nil {
			return p.count, err
		}
	}
	if err := p.finish(); err != nil {
		return p.count, err
	}
	return p.count, nil
}

func (p *Paginator) newPage() {
	p.count++
	p.page = &Page{Number: p.count}
	p.y = p.Frame.Y
}

func (p *Paginator) atTop() bool {
	return p.y <= p.Frame.Y
}

func (p *Paginator) finish() error {
	if p.OnPage == nil {
		return nil
	}
	return p.OnPage(p.page)
}

func (p *Paginator) breakPage() error {
	if err := p.finish(); err != nil {
		return err
	}
	p.newPage()
	return nil
}

func (p *Paginator) place(b Block) error {
	h := b.Wrap(p.Measurer, p.Frame.Width)

	if s, ok := b.(*Spacer); ok {
		switch {
		case s.Height > 0 && p.atTop():
			// no leading space on a fresh page
		case p.y+h > p.Frame.Bottom():
			p.y = p.Frame.Bottom()
		default:
			p.y += h
		}
		return nil
	}

	if p.y+h <= p.Frame.Bottom() {
		p.draw(b, h)
		return nil
	}

	t, isTable := b.(*Table)
	if isTable && t.NoSplit && h <= p.Frame.Height {
		if err := p.breakPage(); err != nil {
			return err
		}
		p.draw(b, h)
		return nil
	}
	if !isTable {
		if !p.atTop() {
			if err := p.breakPage(); err != nil {
				return err
			}
		}
		p.draw(b, h)
		return nil
	}

	if t.NoSplit {
		logger.OrNop(p.Log).Warn("table taller than a page, splitting by rows", "height", h)
	}
	return p.splitTable(t)
}

func (p *Paginator) splitTable(t *Table) error {
	rest := t
	for rest != nil {
		head, tail := rest.split(p.Frame.Bottom() - p.y)
		if head == nil {
			if p.atTop() {
				// a single row taller than the frame: draw it and let it overflow
				head, tail = rest.slice(0, 1), nil
				if len(rest.Rows) > 1 {
					tail = rest.slice(1, len(rest.Rows))
				}
			} else {
				if err := p.breakPage(); err != nil {
					return err
				}
				continue
			}
		}
		p.draw(head, sum(head.rowHeights))
		rest = tail
		if rest != nil {
			if err := p.breakPage(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Paginator) draw(b Block, h float64) {
	x := p.Frame.X
	if t, ok := b.(*Table); ok {
		x = p.tableX(t)
	}
	b.Draw(p.page, x, p.y)
	p.y += h
}

func (p *Paginator) tableX(t *Table) float64 {
	w := t.Width()
	if w > p.Frame.Width {
		return p.Frame.X + (p.Frame.Width-w)/2
	}
	switch t.Align {
	case "", style.AlignLeft:
		return p.Frame.X
	case style.AlignRight:
		return p.Frame.X + p.Frame.Width - w
	}
	return p.Frame.X + (p.Frame.Width-w)/2
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
