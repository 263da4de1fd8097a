package rendering

import (
	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/style"
	"github.com/jonathan/orcid-cv/internal/types"
)

// headerOverlap pulls the link row up under the name.
const headerOverlap = -15

// Person renders the header: full name on the left; current role,
// organization and email on the right; then a row of linked icons.
func (r *Renderer) Person(p *types.Profile) ([]layout.Block, error) {
	widths, err := r.style.ColumnWidths(style.KindPerson)
	if err != nil {
		return nil, &RenderError{Message: "person header", Cause: err}
	}

	summary := "<br/>"
	if ids := SortAffiliations(p.Employment); len(ids) > 0 {
		current := p.Employment[ids[0]]
		summary += EscapeMarkup(current.Role) + "<br/>" + EscapeMarkup(current.Organization) + "<br/>"
	}
	summary += EscapeMarkup(p.Personal.Email)

	header := &layout.Table{
		Widths:  widths[:],
		NoSplit: true,
		Align:   style.AlignLeft,
		Padding: layout.DefaultPadding,
		Rows: []layout.Row{{Cells: []layout.Cell{
			{Para: layout.NewParagraph(EscapeMarkup(p.Personal.FullName), r.style.PersonTitle)},
			{Para: layout.NewParagraph(summary, r.style.PersonSummary)},
		}}},
	}
	blocks := []layout.Block{header}

	if row := r.linkRow(p.Personal); row != nil {
		blocks = append(blocks, &layout.Spacer{Height: headerOverlap}, row)
	}
	return append(blocks, &layout.Spacer{Height: r.style.ItemSpacing}), nil
}

func (r *Renderer) linkRow(person types.PersonalInfo) *layout.Table {
	if r.icons == nil {
		return nil
	}
	var cells []layout.Cell
	for _, label := range person.SortedLinkLabels() {
		img, err := r.icons.Icon(label, r.style.IconSize)
		if err != nil {
			r.log.Warn("skipping link icon", "label", label, "error", err)
			continue
		}
		img.Link = person.Links[label]
		cells = append(cells, layout.Cell{Image: img})
	}
	if len(cells) == 0 {
		return nil
	}
	widths := make([]float64, len(cells))
	for i := range widths {
		widths[i] = r.style.IconColumn
	}
	return &layout.Table{
		Widths:  widths,
		Rows:    []layout.Row{{Cells: cells}},
		NoSplit: true,
		Align:   style.AlignLeft,
		Padding: layout.DefaultPadding,
	}
}
