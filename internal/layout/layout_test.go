package layout

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/orcid-cv/internal/style"
)

// fixedMeasurer gives every rune half the font size in width.
type fixedMeasurer struct{}

func (fixedMeasurer) StringWidth(f FontSpec, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size / 2
}

// fakeBackend records finished pages.
type fakeBackend struct {
	fixedMeasurer
	pages []*Page
}

func (b *fakeBackend) cur() *Page { return b.pages[len(b.pages)-1] }

func (b *fakeBackend) AddPage() {
	b.pages = append(b.pages, &Page{Number: len(b.pages) + 1})
}

func (b *fakeBackend) PageSize() (float64, float64) { return 612, 792 }

func (b *fakeBackend) Text(x, y float64, f FontSpec, c style.Color, s string) {
	b.cur().Text(x, y, f, c, s)
}

func (b *fakeBackend) Line(x1, y1, x2, y2, w float64, c style.Color) {
	b.cur().Line(x1, y1, x2, y2, w, c)
}

func (b *fakeBackend) Image(img *Image, x, y float64) { b.cur().Image(img, x, y) }

func (b *fakeBackend) Link(x, y, w, h float64, url string) { b.cur().Link(x, y, w, h, url) }

var body = style.TextStyle{Font: "Helvetica", Size: 10}

func TestParseMarkup(t *testing.T) {
	runs := ParseMarkup(`eLife, <link href="https://www.doi.org/10.1/abc">DOI: <u>10.1/abc</u></link><br/><b>C. M. Greenspon</b> &amp; others`)
	require.Len(t, runs, 6)

	assert.Equal(t, Run{Text: "eLife, "}, runs[0])
	assert.Equal(t, Run{Text: "DOI: ", Link: "https://www.doi.org/10.1/abc"}, runs[1])
	assert.Equal(t, Run{Text: "10.1/abc", Underline: true, Link: "https://www.doi.org/10.1/abc"}, runs[2])
	assert.True(t, runs[3].Break)
	assert.Equal(t, Run{Text: "C. M. Greenspon", Bold: true}, runs[4])
	assert.Equal(t, Run{Text: " & others"}, runs[5])
}

func TestParseMarkup_MergesAndCollapses(t *testing.T) {
	runs := ParseMarkup("a\n  b<i>c</i>")
	require.Len(t, runs, 1)
	assert.Equal(t, "a bc", runs[0].Text)
}

func TestParagraphWrap(t *testing.T) {
	p := NewParagraph("aaaa bbbb cccc", body)
	// each word is 20pt, a space 5pt
	h := p.Wrap(fixedMeasurer{}, 46)
	require.Len(t, p.Lines(), 2)
	assert.Equal(t, "aaaa bbbb", p.Lines()[0].Fragments[0].Text)
	assert.Equal(t, "cccc", p.Lines()[1].Fragments[0].Text)
	assert.InDelta(t, 24.0, h, 1e-9)
}

func TestParagraphWrap_Breaks(t *testing.T) {
	p := NewParagraph("<br/>Postdoc<br/>UChicago<br/>a@x.org", body)
	p.Wrap(fixedMeasurer{}, 500)
	lines := p.Lines()
	require.Len(t, lines, 4)
	assert.Empty(t, lines[0].Fragments)
	assert.Equal(t, "a@x.org", lines[3].Fragments[0].Text)
	assert.Equal(t, "\nPostdoc\nUChicago\na@x.org", p.Text())
}

func TestParagraphWrap_WordAcrossRuns(t *testing.T) {
	p := NewParagraph("x <b>Smith</b>, y", body)
	p.Wrap(fixedMeasurer{}, 500)
	frags := p.Lines()[0].Fragments
	require.Len(t, frags, 3)
	assert.Equal(t, "x ", frags[0].Text)
	assert.Equal(t, "Smith", frags[1].Text)
	assert.True(t, frags[1].Font.Bold)
	assert.Equal(t, ", y", frags[2].Text)
	assert.InDelta(t, 10.0, frags[1].X, 1e-9)
}

func TestParagraphWrap_OverlongWordKept(t *testing.T) {
	p := NewParagraph("https://example.org/a/very/long/path", body)
	p.Wrap(fixedMeasurer{}, 20)
	assert.Len(t, p.Lines(), 1)
}

func TestParagraphWrap_Empty(t *testing.T) {
	p := NewParagraph("", body)
	assert.Zero(t, p.Wrap(fixedMeasurer{}, 100))
}

func TestDrawParagraph_RightAlignedWithLink(t *testing.T) {
	st := body
	st.Align = style.AlignRight
	p := NewParagraph(`<link href="https://x.org"><u>ab</u></link>`, st)
	p.Wrap(fixedMeasurer{}, 100)

	page := &Page{}
	drawParagraph(page, p, 0, 0, 100)
	require.Len(t, page.Ops, 3)
	assert.Equal(t, OpText, page.Ops[0].Kind)
	assert.InDelta(t, 90.0, page.Ops[0].X, 1e-9)
	assert.InDelta(t, 10.0, page.Ops[0].Y, 1e-9)
	assert.Equal(t, OpLine, page.Ops[1].Kind)
	assert.Equal(t, OpLink, page.Ops[2].Kind)
	assert.Equal(t, "https://x.org", page.Ops[2].URL)
}

func itemTable(title string, rows int) *Table {
	t := &Table{Widths: []float64{400, 112}, NoSplit: true, Padding: DefaultPadding}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, Row{Cells: []Cell{{Para: NewParagraph(fmt.Sprintf("%s %d", title, i), body)}, {}}})
	}
	return t
}

func TestTableWrap_RowHeights(t *testing.T) {
	tbl := &Table{
		Widths:  []float64{400, 112},
		Padding: DefaultPadding,
		Rows: []Row{
			{Cells: []Cell{{Para: NewParagraph("Heading", body)}}, Span: true},
			{MinHeight: 4},
			{Cells: []Cell{{Image: &Image{W: 15, H: 15}}}},
		},
		Rules: []Rule{{Row: 1, Width: 2, Color: "#808080"}},
	}
	h := tbl.Wrap(fixedMeasurer{}, 512)
	assert.Equal(t, []float64{18, 10, 21}, tbl.RowHeights())
	assert.InDelta(t, 49.0, h, 1e-9)

	page := &Page{}
	tbl.Draw(page, 50, 100)
	var rule *Op
	for i := range page.Ops {
		if page.Ops[i].Kind == OpLine {
			rule = &page.Ops[i]
		}
	}
	require.NotNil(t, rule)
	assert.InDelta(t, 128.0, rule.Y, 1e-9)
	assert.InDelta(t, 562.0, rule.X2, 1e-9)
}

func TestPaginator_NoSplitTableMovesToNextPage(t *testing.T) {
	var finished []int
	pag := &Paginator{
		Measurer: fixedMeasurer{},
		Frame:    Frame{X: 50, Y: 50, Width: 512, Height: 100},
		OnPage: func(p *Page) error {
			finished = append(finished, p.Number)
			return nil
		},
	}
	// each table: 3 rows x 18pt = 54pt; two do not fit in 100pt
	n, err := pag.Flow([]Block{itemTable("a", 3), &Spacer{Height: 5}, itemTable("b", 3)})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, finished)
}

func TestPaginator_SpacerSkippedAtTopOfPage(t *testing.T) {
	var pages []*Page
	pag := &Paginator{
		Measurer: fixedMeasurer{},
		Frame:    Frame{X: 0, Y: 50, Width: 512, Height: 700},
		OnPage:   func(p *Page) error { pages = append(pages, p); return nil },
	}
	_, err := pag.Flow([]Block{&Spacer{Height: 30}, itemTable("a", 1)})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	// first baseline: frame top + top padding + font size
	assert.InDelta(t, 63.0, pages[0].Ops[0].Y, 1e-9)
}

func TestPaginator_NegativeSpacerPullsUp(t *testing.T) {
	var pages []*Page
	pag := &Paginator{
		Measurer: fixedMeasurer{},
		Frame:    Frame{X: 0, Y: 0, Width: 512, Height: 700},
		OnPage:   func(p *Page) error { pages = append(pages, p); return nil },
	}
	_, err := pag.Flow([]Block{itemTable("a", 1), &Spacer{Height: -15}, itemTable("b", 1)})
	require.NoError(t, err)
	texts := pages[0].Ops
	require.Len(t, texts, 2)
	assert.InDelta(t, 13.0, texts[0].Y, 1e-9)
	assert.InDelta(t, 16.0, texts[1].Y, 1e-9)
}

func TestPaginator_OversizeTableSplits(t *testing.T) {
	var pages []*Page
	pag := &Paginator{
		Measurer: fixedMeasurer{},
		Frame:    Frame{X: 0, Y: 0, Width: 512, Height: 40},
		OnPage:   func(p *Page) error { pages = append(pages, p); return nil },
	}
	n, err := pag.Flow([]Block{itemTable("row", 5)})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"row 0", "row 1"}, pages[0].texts())
	assert.Equal(t, []string{"row 4"}, pages[2].texts())
}

func TestPaginator_EmptyFlowEmitsOnePage(t *testing.T) {
	count := 0
	pag := &Paginator{Measurer: fixedMeasurer{}, Frame: Frame{Height: 100}, OnPage: func(*Page) error { count++; return nil }}
	n, err := pag.Flow(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, count)
}

func testDocument() *Document {
	cfg := style.GreensponDefault()
	return &Document{
		Style: cfg,
		Now:   func() time.Time { return time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC) },
	}
}

func manyTables(n int) []Block {
	var blocks []Block
	for i := 0; i < n; i++ {
		blocks = append(blocks, itemTable(fmt.Sprintf("item%d", i), 2), &Spacer{Height: 5})
	}
	return blocks
}

func TestDocumentRender_TwoPassFooters(t *testing.T) {
	b := &fakeBackend{}
	n, err := testDocument().Render(b, manyTables(40), TwoPass)
	require.NoError(t, err)
	require.Greater(t, n, 1)
	require.Len(t, b.pages, n)

	for i, page := range b.pages {
		texts := page.texts()
		assert.Contains(t, texts, fmt.Sprintf("Page %d of %d", i+1, n))
		assert.Contains(t, texts, "05-Mar-2025")
	}
}

func TestDocumentRender_SinglePassFooters(t *testing.T) {
	b := &fakeBackend{}
	n, err := testDocument().Render(b, manyTables(40), SinglePass)
	require.NoError(t, err)
	require.Greater(t, n, 1)
	assert.Contains(t, b.pages[0].texts(), "Page 1")
	assert.NotContains(t, strings.Join(b.pages[0].texts(), "|"), " of ")
}

func TestDocumentFrame(t *testing.T) {
	f := testDocument().Frame()
	assert.Equal(t, Frame{X: 50, Y: 50, Width: 512, Height: 682}, f)
}

func TestPDF_WritesDocument(t *testing.T) {
	cfg := style.GreensponDefault()
	backend, err := NewPDF(cfg, PDFOptions{Title: "C. M. Greenspon - CV"})
	require.NoError(t, err)

	doc := &Document{Style: cfg, Now: func() time.Time { return time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC) }}
	n, err := doc.Render(backend, manyTables(3), TwoPass)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, backend.PageCount())

	var buf bytes.Buffer
	require.NoError(t, backend.Write(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "(Page 1 of 1)")
	assert.Contains(t, buf.String(), "(item0 0)")
}

func TestPDF_StringWidthScalesWithSize(t *testing.T) {
	backend, err := NewPDF(style.GreensponDefault(), PDFOptions{})
	require.NoError(t, err)
	small := backend.StringWidth(FontSpec{Family: "Helvetica", Size: 9}, "Greenspon")
	large := backend.StringWidth(FontSpec{Family: "Helvetica", Size: 18}, "Greenspon")
	assert.Greater(t, small, 0.0)
	assert.InDelta(t, 2*small, large, 1e-6)
}

func TestPDF_MissingFontFile(t *testing.T) {
	cfg := style.GreensponDefault()
	cfg.Fonts = []style.FontFace{{Family: "GillSans", Path: "testdata/missing.ttf"}}
	_, err := NewPDF(cfg, PDFOptions{})
	require.Error(t, err)
	var layoutErr *Error
	assert.ErrorAs(t, err, &layoutErr)
}
