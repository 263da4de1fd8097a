package rendering

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/style"
	"github.com/jonathan/orcid-cv/internal/types"
)

// SelectWorks returns the ids of works whose type is one of tags, newest
// first. Undated works sort last; ties keep id order.
func SelectWorks(p *types.Profile, tags []string) []string {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var ids []string
	for _, id := range types.SortedKeys(p.Works) {
		if w := p.Works[id]; w != nil && want[w.Type] {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return p.Works[ids[i]].SortKey() > p.Works[ids[j]].SortKey()
	})
	return ids
}

// WorkBody builds the body line: venue, link and subtitle, then the author
// line on its own line.
func (r *Renderer) WorkBody(w *types.Work, person types.PersonalInfo) string {
	d := w.Display()
	parts := []string{EscapeMarkup(d.Venue)}
	if l := FormatLink(w.DOI); l != "" {
		parts = append(parts, l)
	}
	if d.Subtitle != "" {
		parts = append(parts, EscapeMarkup(d.Subtitle))
	}
	return strings.Join(parts, ", ") + "<br/>" + AuthorLine(w.Authors, person, r.style, r.log)
}

// Works renders the works whose type matches any of tags.
func (r *Renderer) Works(p *types.Profile, heading string, tags []string) ([]layout.Block, error) {
	ids := SelectWorks(p, tags)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s (%s): %w", heading, strings.Join(tags, ", "), ErrNoEntries)
	}
	items := make([]item, 0, len(ids))
	for _, id := range ids {
		w := p.Works[id]
		d := w.Display()
		items = append(items, item{
			Title: NormalizeHyphens(EscapeMarkup(d.Title)),
			Date:  EscapeMarkup(d.Date),
			Body:  r.WorkBody(w, p.Personal),
		})
	}
	r.log.Debug("rendered work section", "heading", heading, "entries", len(items))
	return r.section(style.KindWork, heading, items)
}
