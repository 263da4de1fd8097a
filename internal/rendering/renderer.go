package rendering

import (
	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/style"
)

// IconSource supplies the image drawn for a link label in the person header.
type IconSource interface {
	Icon(label string, size float64) (*layout.Image, error)
}

// Renderer builds section blocks with one style. The style is copied on
// construction and never modified.
type Renderer struct {
	style style.Config
	icons IconSource
	log   *logger.Logger
}

// New creates a renderer. icons may be nil, in which case the header has no
// link row.
func New(cfg style.Config, icons IconSource, log *logger.Logger) *Renderer {
	return &Renderer{
		style: cfg.Clone(),
		icons: icons,
		log:   logger.OrNop(log),
	}
}

// item is the common shape of every section entry: a title, a right-aligned
// date and a body line in markup.
type item struct {
	Title string
	Date  string
	Body  string
}

// itemTable builds one entry's table. A non-empty heading adds the section
// title and the rule beneath it; later entries are continuation tables.
func (r *Renderer) itemTable(kind, heading string, it item) (*layout.Table, error) {
	widths, err := r.style.ColumnWidths(kind)
	if err != nil {
		return nil, &RenderError{Message: "column widths for " + kind, Cause: err}
	}
	t := &layout.Table{
		Widths:  widths[:],
		NoSplit: true,
		Align:   style.AlignLeft,
		Padding: layout.DefaultPadding,
	}
	if heading != "" {
		t.Rows = append(t.Rows,
			layout.Row{Cells: []layout.Cell{{Para: layout.NewParagraph(heading, r.style.SectionTitle)}}, Span: true},
			layout.Row{},
		)
		t.Rules = []layout.Rule{{Row: 1, Width: r.style.RuleWidth, Color: r.style.RuleColor}}
	}
	t.Rows = append(t.Rows,
		layout.Row{Cells: []layout.Cell{
			{Para: layout.NewParagraph(it.Title, r.style.ItemTitle)},
			{Para: layout.NewParagraph(it.Date, r.style.ItemDate)},
		}},
		layout.Row{Cells: []layout.Cell{
			{Para: layout.NewParagraph(it.Body, r.style.ItemBody)},
			{},
		}},
	)
	return t, nil
}

// section turns sorted items into tables separated by item spacing. Only
// the first table carries the heading.
func (r *Renderer) section(kind, heading string, items []item) ([]layout.Block, error) {
	blocks := make([]layout.Block, 0, 2*len(items))
	for i, it := range items {
		h := ""
		if i == 0 {
			h = heading
		}
		t, err := r.itemTable(kind, h, it)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, t, &layout.Spacer{Height: r.style.ItemSpacing})
	}
	return blocks, nil
}
