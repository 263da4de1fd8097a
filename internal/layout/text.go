package layout

import (
	"strings"

	"github.com/jonathan/orcid-cv/internal/style"
)

// FontSpec selects a face and size on the backend.
type FontSpec struct {
	Family string
	Bold   bool
	Size   float64
}

// Measurer returns the advance width of text in points.
type Measurer interface {
	StringWidth(font FontSpec, text string) float64
}

// Fragment is a positioned piece of a laid-out line.
type Fragment struct {
	Text      string
	Font      FontSpec
	Underline bool
	Link      string
	X         float64
	Width     float64
}

// Line is one wrapped line of a paragraph.
type Line struct {
	Fragments []Fragment
	Width     float64
}

// Paragraph is styled inline markup that wraps to the width of its cell.
type Paragraph struct {
	Runs  []Run
	Style style.TextStyle

	lines []Line
}

// NewParagraph parses markup into a paragraph with the given style.
func NewParagraph(markup string, st style.TextStyle) *Paragraph {
	return &Paragraph{Runs: ParseMarkup(markup), Style: st}
}

// Text returns the paragraph's plain text with breaks as newlines.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		if r.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Lines returns the lines computed by the last Wrap.
func (p *Paragraph) Lines() []Line {
	return p.lines
}

// Height is the wrapped height: one leading per line.
func (p *Paragraph) Height() float64 {
	return float64(len(p.lines)) * p.Style.LineHeight()
}

type segment struct {
	run  int
	text string
}

type token struct {
	word  []segment
	space int // run index of a separating space, -1 when none
	brk   bool
}

// tokenize splits runs into words; a word may span runs ("<b>Smith</b>,").
func (p *Paragraph) tokenize() []token {
	var (
		toks []token
		cur  []segment
	)
	flush := func() {
		if len(cur) > 0 {
			toks = append(toks, token{word: cur, space: -1})
			cur = nil
		}
	}
	for i, r := range p.Runs {
		if r.Break {
			flush()
			toks = append(toks, token{brk: true, space: -1})
			continue
		}
		start := 0
		for j, ch := range r.Text {
			if ch != ' ' {
				continue
			}
			if j > start {
				cur = append(cur, segment{run: i, text: r.Text[start:j]})
			}
			flush()
			toks = append(toks, token{space: i})
			start = j + 1
		}
		if start < len(r.Text) {
			cur = append(cur, segment{run: i, text: r.Text[start:]})
		}
	}
	flush()
	return toks
}

func (p *Paragraph) font(r Run) FontSpec {
	return FontSpec{Family: p.Style.Font, Bold: p.Style.Bold || r.Bold, Size: p.Style.Size}
}

// Wrap breaks the paragraph into lines no wider than width. A single word
// wider than the line is kept whole.
func (p *Paragraph) Wrap(m Measurer, width float64) float64 {
	p.lines = nil
	var (
		line  []segment
		lineW float64
	)
	pendingSpace := -1
	segWidth := func(s segment) float64 {
		return m.StringWidth(p.font(p.Runs[s.run]), s.text)
	}
	emit := func() {
		p.lines = append(p.lines, p.buildLine(line, segWidth))
		line, lineW, pendingSpace = nil, 0, -1
	}

	for _, tok := range p.tokenize() {
		switch {
		case tok.brk:
			emit()
		case tok.word == nil:
			if len(line) > 0 {
				pendingSpace = tok.space
			}
		default:
			var w float64
			for _, s := range tok.word {
				w += segWidth(s)
			}
			spaceW := 0.0
			if pendingSpace >= 0 {
				spaceW = segWidth(segment{run: pendingSpace, text: " "})
			}
			if len(line) > 0 && lineW+spaceW+w > width {
				emit()
				spaceW = 0
			}
			if pendingSpace >= 0 && len(line) > 0 {
				line = append(line, segment{run: pendingSpace, text: " "})
			}
			pendingSpace = -1
			line = append(line, tok.word...)
			lineW += spaceW + w
		}
	}
	if len(line) > 0 {
		emit()
	}
	return p.Height()
}

// buildLine merges neighbouring segments of the same run into fragments.
func (p *Paragraph) buildLine(segs []segment, segWidth func(segment) float64) Line {
	var l Line
	for i := 0; i < len(segs); {
		j := i
		var sb strings.Builder
		for j < len(segs) && segs[j].run == segs[i].run {
			sb.WriteString(segs[j].text)
			j++
		}
		r := p.Runs[segs[i].run]
		frag := Fragment{
			Text:      sb.String(),
			Font:      p.font(r),
			Underline: r.Underline,
			Link:      r.Link,
			X:         l.Width,
		}
		frag.Width = segWidth(segment{run: segs[i].run, text: frag.Text})
		l.Width += frag.Width
		l.Fragments = append(l.Fragments, frag)
		i = j
	}
	return l
}

// alignOffset positions a line inside a box of the given width.
func alignOffset(a style.Align, box, line float64) float64 {
	switch a {
	case style.AlignRight:
		return box - line
	case style.AlignCenter:
		return (box - line) / 2
	}
	return 0
}

// drawParagraph draws wrapped lines with their top edge at y. Baselines sit
// one font size below each line's top.
func drawParagraph(c Canvas, p *Paragraph, x, y, width float64) {
	lh := p.Style.LineHeight()
	for i, l := range p.lines {
		top := y + float64(i)*lh
		baseline := top + p.Style.Size
		off := alignOffset(p.Style.Align, width, l.Width)
		for _, f := range l.Fragments {
			fx := x + off + f.X
			c.Text(fx, baseline, f.Font, p.Style.Color, f.Text)
			if f.Underline {
				uy := baseline + 0.1*f.Font.Size
				c.Line(fx, uy, fx+f.Width, uy, underlineWidth, p.Style.Color)
			}
			if f.Link != "" {
				c.Link(fx, top, f.Width, lh, f.Link)
			}
		}
	}
}

const underlineWidth = 1
