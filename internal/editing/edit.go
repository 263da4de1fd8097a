// Package editing mutates a loaded profile before rendering. Edits are never
// persisted; they are re-applied to a freshly loaded profile on every run.
package editing

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/orcid-cv/internal/orcid"
	"github.com/jonathan/orcid-cv/internal/types"
)

// EqualContributionMarker is appended to co-first and co-last authors.
const EqualContributionMarker = "*"

// Collection names a keyed collection of the profile.
type Collection string

// Profile collections addressable by edits. The names match the cache keys.
const (
	CollectionWork       Collection = "work"
	CollectionEmployment Collection = "employment"
	CollectionEducation  Collection = "education"
	CollectionFunding    Collection = "funding"
	CollectionReviews    Collection = "reviews"
	CollectionPersonal   Collection = "personal"
)

// AddEqualAuthor appends the marker to the first numFirst and the last
// numLast authors. The two ranges are applied independently, so on short
// lists an author in both gets the marker twice.
func AddEqualAuthor(authors []string, numFirst, numLast int) {
	n := len(authors)
	for i := range authors {
		if i < numFirst {
			authors[i] += EqualContributionMarker
		}
		if i >= n-numLast {
			authors[i] += EqualContributionMarker
		}
	}
}

// MarkEqualContribution applies AddEqualAuthor to the authors of one work.
func MarkEqualContribution(p *types.Profile, workID string, numFirst, numLast int) error {
	w, ok := p.Works[workID]
	if !ok {
		return notFound("mark equal contribution", CollectionWork, workID)
	}
	if numFirst < 0 || numLast < 0 {
		return &EditError{Op: "mark equal contribution", Message: fmt.Sprintf("negative author count for %s", workID)}
	}
	AddEqualAuthor(w.Authors, numFirst, numLast)
	return nil
}

// NewID returns an id for an injected entry.
func NewID() string {
	return uuid.NewString()
}

func idOrNew(id string) string {
	if id == "" {
		return NewID()
	}
	return id
}

// InsertWork adds or replaces a work and returns its id. An empty id is
// replaced by a generated one.
func InsertWork(p *types.Profile, id string, w *types.Work) string {
	id = idOrNew(id)
	p.EnsureCollections()
	p.Works[id] = w
	return id
}

// InsertFunding adds or replaces a funding entry, e.g. a pending application.
func InsertFunding(p *types.Profile, id string, f *types.Funding) string {
	id = idOrNew(id)
	p.EnsureCollections()
	p.Funding[id] = f
	return id
}

// InsertReview adds or replaces a review entry.
func InsertReview(p *types.Profile, id string, r *types.Review) string {
	id = idOrNew(id)
	p.EnsureCollections()
	p.Reviews[id] = r
	return id
}

// InsertAffiliation adds an employment or education entry. The date range
// is derived when left empty.
func InsertAffiliation(p *types.Profile, c Collection, id string, a *types.Affiliation) (string, error) {
	p.EnsureCollections()
	if a.DateRange == "" {
		a.DateRange = types.FormatDateRange(a.StartYear, a.EndYear)
	}
	id = idOrNew(id)
	switch c {
	case CollectionEmployment:
		p.Employment[id] = a
	case CollectionEducation:
		p.Education[id] = a
	default:
		return "", &EditError{Op: "insert affiliation", Message: string(c), Cause: ErrUnknownCollection}
	}
	return id, nil
}

// Delete removes an entry from a collection.
func Delete(p *types.Profile, c Collection, id string) error {
	m, err := collection(p, c)
	if err != nil {
		return &EditError{Op: "delete", Message: string(c), Cause: err}
	}
	key := reflect.ValueOf(id)
	if !m.MapIndex(key).IsValid() {
		return notFound("delete", c, id)
	}
	m.SetMapIndex(key, reflect.Value{})
	return nil
}

// Override sets one field, addressed by its cache key, on one entry.
// Integer fields are parsed; author lists are split on ";".
func Override(p *types.Profile, c Collection, id, field, value string) error {
	if c == CollectionPersonal {
		return overridePersonal(&p.Personal, field, value)
	}
	m, err := collection(p, c)
	if err != nil {
		return &EditError{Op: "override", Message: string(c), Cause: err}
	}
	entry := m.MapIndex(reflect.ValueOf(id))
	if !entry.IsValid() || entry.IsNil() {
		return notFound("override", c, id)
	}
	if err := setField(entry.Elem(), field, value); err != nil {
		return &EditError{Op: "override", Message: fmt.Sprintf("%s %s", c, id), Cause: err}
	}
	if a, ok := entry.Interface().(*types.Affiliation); ok && field != "date_range" {
		a.DateRange = types.FormatDateRange(a.StartYear, a.EndYear)
	}
	return nil
}

func overridePersonal(p *types.PersonalInfo, field, value string) error {
	switch field {
	case "fullname", "name-short", "firstname":
		return &EditError{Op: "override", Message: "personal " + field, Cause: ErrDerivedField}
	case "links":
		return &EditError{Op: "override", Message: "personal links", Cause: ErrUnknownField}
	}
	if err := setField(reflect.ValueOf(p).Elem(), field, value); err != nil {
		return &EditError{Op: "override", Message: "personal", Cause: err}
	}
	p.FullName = p.GivenName + " " + p.FamilyName
	p.ShortName = orcid.Initialize(p.FullName)
	p.FirstName = orcid.FirstName(p.FullName)
	return nil
}

// MergeWorks folds a duplicate work into the kept one: every empty field of
// the kept work takes the duplicate's value, then the duplicate is deleted.
func MergeWorks(p *types.Profile, keepID, duplicateID string) error {
	keep, ok := p.Works[keepID]
	if !ok {
		return notFound("merge works", CollectionWork, keepID)
	}
	dup, ok := p.Works[duplicateID]
	if !ok {
		return notFound("merge works", CollectionWork, duplicateID)
	}
	if keepID == duplicateID {
		return nil
	}

	fillString(&keep.Type, dup.Type)
	fillString(&keep.Title, dup.Title)
	fillString(&keep.Subtitle, dup.Subtitle)
	fillString(&keep.Journal, dup.Journal)
	fillString(&keep.DOI, dup.DOI)
	if keep.Year == 0 {
		keep.Year = dup.Year
		if keep.Month == 0 {
			keep.Month = dup.Month
		}
	}
	if len(keep.Authors) == 0 {
		keep.Authors = append([]string(nil), dup.Authors...)
	}

	delete(p.Works, duplicateID)
	return nil
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func notFound(op string, c Collection, id string) error {
	return &EditError{Op: op, Message: fmt.Sprintf("%s %q", c, id), Cause: ErrEntryNotFound}
}

// collection returns the keyed map behind c as a settable reflect value.
func collection(p *types.Profile, c Collection) (reflect.Value, error) {
	p.EnsureCollections()
	switch c {
	case CollectionWork:
		return reflect.ValueOf(p.Works), nil
	case CollectionEmployment:
		return reflect.ValueOf(p.Employment), nil
	case CollectionEducation:
		return reflect.ValueOf(p.Education), nil
	case CollectionFunding:
		return reflect.ValueOf(p.Funding), nil
	case CollectionReviews:
		return reflect.ValueOf(p.Reviews), nil
	}
	return reflect.Value{}, ErrUnknownCollection
}

// setField assigns value to the struct field whose json tag is name.
func setField(v reflect.Value, name, value string) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if tag != name {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(value)
		case reflect.Int:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
			f.SetInt(int64(n))
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				return fmt.Errorf("field %s: %w", name, ErrUnknownField)
			}
			f.Set(reflect.ValueOf(splitList(value)))
		default:
			return fmt.Errorf("field %s: %w", name, ErrUnknownField)
		}
		return nil
	}
	return fmt.Errorf("field %s: %w", name, ErrUnknownField)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
