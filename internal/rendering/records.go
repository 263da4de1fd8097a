package rendering

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/style"
	"github.com/jonathan/orcid-cv/internal/types"
)

// SortAffiliations returns affiliation ids by start year, newest first.
func SortAffiliations(m map[string]*types.Affiliation) []string {
	ids := types.SortedKeys(m)
	sort.SliceStable(ids, func(i, j int) bool {
		return types.YearValue(m[ids[i]].StartYear) > types.YearValue(m[ids[j]].StartYear)
	})
	return ids
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, EscapeMarkup(p))
		}
	}
	return strings.Join(kept, ", ")
}

// Affiliations renders the employment or education collection.
func (r *Renderer) Affiliations(p *types.Profile, heading, collection string) ([]layout.Block, error) {
	var m map[string]*types.Affiliation
	switch collection {
	case SectionEmployment:
		m = p.Employment
	case SectionEducation:
		m = p.Education
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, collection)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%s: %w", heading, ErrNoEntries)
	}
	var items []item
	for _, id := range SortAffiliations(m) {
		a := m[id]
		items = append(items, item{
			Title: EscapeMarkup(a.Role),
			Date:  EscapeMarkup(a.DateRange),
			Body:  joinNonEmpty(a.Organization, a.Department),
		})
	}
	return r.section(style.KindAffiliation, heading, items)
}

// Funding renders grants by start year, newest first.
func (r *Renderer) Funding(p *types.Profile, heading string) ([]layout.Block, error) {
	if len(p.Funding) == 0 {
		return nil, fmt.Errorf("%s: %w", heading, ErrNoEntries)
	}
	ids := types.SortedKeys(p.Funding)
	sort.SliceStable(ids, func(i, j int) bool {
		return types.YearValue(p.Funding[ids[i]].StartYear) > types.YearValue(p.Funding[ids[j]].StartYear)
	})
	var items []item
	for _, id := range ids {
		f := p.Funding[id]
		items = append(items, item{
			Title: EscapeMarkup(f.Title),
			Date:  EscapeMarkup(f.StartYear),
			Body:  joinNonEmpty(f.Org, f.Role, f.ID),
		})
	}
	return r.section(style.KindFunding, heading, items)
}

// Reviews renders peer-review activity by year, newest first. The journal
// is the title; entries whose journal could not be resolved show the role
// alone.
func (r *Renderer) Reviews(p *types.Profile, heading string) ([]layout.Block, error) {
	if len(p.Reviews) == 0 {
		return nil, fmt.Errorf("%s: %w", heading, ErrNoEntries)
	}
	ids := types.SortedKeys(p.Reviews)
	sort.SliceStable(ids, func(i, j int) bool {
		return types.YearValue(p.Reviews[ids[i]].Year) > types.YearValue(p.Reviews[ids[j]].Year)
	})
	var items []item
	for _, id := range ids {
		rv := p.Reviews[id]
		items = append(items, item{
			Title: EscapeMarkup(rv.Org),
			Date:  EscapeMarkup(rv.Year),
			Body:  EscapeMarkup(rv.Role),
		})
	}
	return r.section(style.KindReview, heading, items)
}
