package layout

import (
	"fmt"
	"time"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/style"
)

// Mode selects how footers are stamped.
type Mode int

const (
	// TwoPass lays out every page first so footers can show the total.
	TwoPass Mode = iota
	// SinglePass draws each page as soon as it is finished; footers show
	// only the page number.
	SinglePass
)

func (m Mode) String() string {
	if m == SinglePass {
		return "single-pass"
	}
	return "two-pass"
}

// DateFormat is the footer date layout, e.g. "05-Mar-2025".
const DateFormat = "02-Jan-2006"

const (
	footerRuleGap   = 13
	footerRuleWidth = 0.5
	footerPageInset = 100
)

// Document paginates blocks with one style onto a backend.
type Document struct {
	Style style.Config
	Now   func() time.Time
	Log   *logger.Logger
}

// Frame returns the content area for the document's style.
func (d *Document) Frame() Frame {
	w, h := d.Style.PageDimensions()
	bottom := d.Style.BottomMargin
	if bottom <= 0 {
		bottom = d.Style.Margin
	}
	return Frame{
		X:      d.Style.Margin,
		Y:      d.Style.Margin,
		Width:  w - 2*d.Style.Margin,
		Height: h - d.Style.Margin - bottom,
	}
}

// Render flows blocks onto b and returns the page count.
func (d *Document) Render(b Backend, blocks []Block, mode Mode) (int, error) {
	log := logger.OrNop(d.Log)
	date := d.date()

	if mode == SinglePass {
		pag := &Paginator{
			Measurer: b,
			Frame:    d.Frame(),
			Log:      log,
			OnPage: func(page *Page) error {
				b.AddPage()
				page.Replay(b)
				d.stampFooter(b, fmt.Sprintf("Page %d", page.Number), date)
				return nil
			},
		}
		n, err := pag.Flow(blocks)
		if err != nil {
			return n, &Error{Message: "single-pass layout failed", Cause: err}
		}
		log.Debug("rendered document", "mode", mode.String(), "pages", n)
		return n, nil
	}

	pages, err := d.Layout(b, blocks)
	if err != nil {
		return 0, err
	}
	total := len(pages)
	for _, page := range pages {
		b.AddPage()
		page.Replay(b)
		d.stampFooter(b, fmt.Sprintf("Page %d of %d", page.Number, total), date)
	}
	log.Debug("rendered document", "mode", mode.String(), "pages", total)
	return total, nil
}

// Layout runs the first pass only and returns the recorded pages.
func (d *Document) Layout(m Measurer, blocks []Block) ([]*Page, error) {
	var pages []*Page
	pag := &Paginator{
		Measurer: m,
		Frame:    d.Frame(),
		Log:      d.Log,
		OnPage: func(page *Page) error {
			pages = append(pages, page)
			return nil
		},
	}
	if _, err := pag.Flow(blocks); err != nil {
		return nil, &Error{Message: "layout failed", Cause: err}
	}
	return pages, nil
}

func (d *Document) date() string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return now().Format(DateFormat)
}

// stampFooter draws the rule, the date at the left margin and the page
// label near the right edge.
func (d *Document) stampFooter(c Canvas, label, date string) {
	w, h := d.Style.PageDimensions()
	st := d.Style.Footer
	font := FontSpec{Family: st.Font, Bold: st.Bold, Size: st.Size}
	textY := h - d.Style.FooterOffset
	ruleY := textY - footerRuleGap

	c.Line(d.Style.Margin, ruleY, w-d.Style.Margin, ruleY, footerRuleWidth, "")
	c.Text(d.Style.Margin, textY, font, st.Color, date)
	c.Text(w-footerPageInset, textY, font, st.Color, label)
}
