package orcid

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/types"
)

// issnPrefixLen is the length of the "issn:" scheme on review group ids.
const issnPrefixLen = 5

// RepositoryResolver names the repository hosting a preprint DOI.
type RepositoryResolver interface {
	Repository(ctx context.Context, doi string) (string, error)
}

// JournalResolver names the journal registered under an ISSN.
type JournalResolver interface {
	Journal(ctx context.Context, issn string) (string, error)
}

// Normalizer turns parsed records into typed profile entries. Nil
// resolvers disable the matching enrichment.
type Normalizer struct {
	Repositories RepositoryResolver
	Journals     JournalResolver
	Log          *logger.Logger
}

func (n *Normalizer) log() *logger.Logger {
	return logger.OrNop(n.Log)
}

// Affiliation normalizes an employment or education record.
func (n *Normalizer) Affiliation(rec *Record) *types.Affiliation {
	a := &types.Affiliation{
		Organization: rec.String("organization", "name"),
		Department:   rec.String("department-name"),
		Role:         rec.String("role-title"),
		StartYear:    rec.String("start-date", "year"),
		EndYear:      rec.String("end-date", "year"),
	}
	a.DateRange = types.FormatDateRange(a.StartYear, a.EndYear)
	return a
}

// Work normalizes a work record. Preprints get their hosting repository
// as journal when a resolver is configured; failures keep the original value.
func (n *Normalizer) Work(ctx context.Context, rec *Record) *types.Work {
	w := &types.Work{
		Type:    rec.String("type"),
		Title:   rec.String("title", "title"),
		Journal: rec.String("journal-title"),
		DOI:     rec.String("url"),
		Year:    n.dateField(rec, "year"),
		Month:   n.dateField(rec, "month"),
		Authors: n.authors(rec),
	}

	switch w.Type {
	case types.WorkPreprint:
		n.resolveRepository(ctx, w)
	case types.WorkSoftware:
		w.Subtitle = rec.String("title", "subtitle")
	}
	return w
}

func (n *Normalizer) dateField(rec *Record, field string) int {
	raw := rec.String("publication-date", field)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n.log().Warn("unparseable publication date", "field", field, "value", raw, "put_code", rec.PutCode())
		return 0
	}
	return v
}

// authors accepts one contributor element or many and always returns a list.
func (n *Normalizer) authors(rec *Record) []string {
	var names []string
	for _, item := range rec.List("contributors", "contributor") {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		v, _ := lookup(m, "credit-name")
		name := text(v)
		if name == "" {
			n.log().Debug("contributor without credit name", "put_code", rec.PutCode())
			continue
		}
		names = append(names, name)
	}
	return names
}

func (n *Normalizer) resolveRepository(ctx context.Context, w *types.Work) {
	if w.DOI == "" || n.Repositories == nil {
		return
	}
	n.log().Info("looking up host repository", "title", w.Title)
	name, err := n.Repositories.Repository(ctx, w.DOI)
	if err != nil {
		n.log().Warn("could not look up preprint", "title", w.Title, "error", err)
		return
	}
	w.Journal = name
}

// Funding normalizes a funding record. ID takes the first external id value
// when the export carries one.
func (n *Normalizer) Funding(rec *Record) *types.Funding {
	f := &types.Funding{
		Title:     rec.String("title", "title"),
		Role:      rec.String("organization-defined-type"),
		Org:       rec.String("organization", "name"),
		StartYear: rec.String("start-date", "year"),
		EndYear:   rec.String("end-date", "year"),
		Value:     rec.String("amount", "#text"),
	}
	if rec.Has("external-ids") {
		for _, item := range rec.List("external-ids", "external-id") {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if v, ok := lookup(m, "external-id-value"); ok {
				f.ID = text(v)
				break
			}
		}
	}
	return f
}

// Review normalizes a peer-review record and resolves the journal name from
// the review group ISSN.
func (n *Normalizer) Review(ctx context.Context, rec *Record) *types.Review {
	r := &types.Review{
		Year: rec.String("review-completion-date", "year"),
		Role: rec.String("review-type"),
	}

	groupID := rec.String("review-group-id")
	if len(groupID) <= issnPrefixLen {
		n.log().Warn("review group id carries no ISSN", "group_id", groupID, "put_code", rec.PutCode())
		return r
	}
	issn := groupID[issnPrefixLen:]
	if n.Journals == nil {
		return r
	}
	name, err := n.Journals.Journal(ctx, issn)
	if err != nil || name == "" {
		n.log().Warn("could not identify ISSN", "issn", issn, "error", err)
		return r
	}
	r.Org = name
	return r
}

// Person normalizes person.xml. Exactly one email must be flagged primary.
func (n *Normalizer) Person(rec *Record) (types.PersonalInfo, error) {
	p := types.PersonalInfo{
		FamilyName: rec.String("name", "family-name"),
		GivenName:  rec.String("name", "given-names"),
		Links: map[string]string{
			"ORCID": "https://orcid.org/" + rec.String("name", "-path"),
		},
	}
	p.FullName = p.GivenName + " " + p.FamilyName
	p.ShortName = Initialize(p.FullName)
	p.FirstName = FirstName(p.FullName)

	if rec.Has("researcher-urls") {
		for _, item := range rec.List("researcher-urls", "researcher-url") {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			label, _ := lookup(m, "url-name")
			url, _ := lookup(m, "url")
			if text(label) == "" {
				continue
			}
			p.Links[text(label)] = text(url)
		}
	}

	var primary []string
	for _, item := range rec.List("emails", "email") {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		flag, _ := lookup(m, "-primary")
		if text(flag) != "true" {
			continue
		}
		addr, _ := lookup(m, "email")
		primary = append(primary, text(addr))
	}
	if len(primary) != 1 {
		return p, &Error{
			Path:    rec.source,
			Message: fmt.Sprintf("found %d primary emails", len(primary)),
			Cause:   ErrPrimaryEmail,
		}
	}
	p.Email = primary[0]
	return p, nil
}
