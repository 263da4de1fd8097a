package editing

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/types"
)

// Edits is the on-disk description of a run's manual profile edits.
// Apply runs inserts, merges, overrides, equal-contribution marks and
// deletes, in that order.
type Edits struct {
	Insert       Inserts            `yaml:"insert"`
	Merge        []MergeEdit        `yaml:"merge" validate:"dive"`
	Override     []OverrideEdit     `yaml:"override" validate:"dive"`
	EqualAuthors []EqualAuthorsEdit `yaml:"equal_authors" validate:"dive"`
	Delete       []DeleteEdit       `yaml:"delete" validate:"dive"`
}

// Inserts lists entries that are not backed by any XML file.
type Inserts struct {
	Works      []WorkEntry        `yaml:"works" validate:"dive"`
	Funding    []FundingEntry     `yaml:"funding" validate:"dive"`
	Reviews    []ReviewEntry      `yaml:"reviews" validate:"dive"`
	Employment []AffiliationEntry `yaml:"employment" validate:"dive"`
	Education  []AffiliationEntry `yaml:"education" validate:"dive"`
}

// WorkEntry is an injected work. Key defaults to a generated id.
type WorkEntry struct {
	Key      string   `yaml:"key"`
	Type     string   `yaml:"type" validate:"required"`
	Title    string   `yaml:"title" validate:"required"`
	Subtitle string   `yaml:"subtitle"`
	Journal  string   `yaml:"journal"`
	DOI      string   `yaml:"doi"`
	Year     int      `yaml:"year" validate:"gte=0"`
	Month    int      `yaml:"month" validate:"gte=0,lte=12"`
	Authors  []string `yaml:"authors"`
}

// FundingEntry is an injected funding entry, typically a pending application.
type FundingEntry struct {
	Key       string `yaml:"key"`
	Title     string `yaml:"title" validate:"required"`
	Role      string `yaml:"role"`
	Org       string `yaml:"org"`
	ID        string `yaml:"id"`
	StartYear string `yaml:"start_year" validate:"omitempty,numeric"`
	EndYear   string `yaml:"end_year" validate:"omitempty,numeric"`
	Value     string `yaml:"value"`
}

// ReviewEntry is an injected review entry.
type ReviewEntry struct {
	Key  string `yaml:"key"`
	Year string `yaml:"year" validate:"omitempty,numeric"`
	Role string `yaml:"role"`
	Org  string `yaml:"org" validate:"required"`
}

// AffiliationEntry is an injected employment or education entry.
type AffiliationEntry struct {
	Key          string `yaml:"key"`
	Organization string `yaml:"organization" validate:"required"`
	Department   string `yaml:"department"`
	Role         string `yaml:"role"`
	StartYear    string `yaml:"start_date" validate:"omitempty,numeric"`
	EndYear      string `yaml:"end_date" validate:"omitempty,numeric"`
}

// MergeEdit folds Duplicate into Keep.
type MergeEdit struct {
	Keep      string `yaml:"keep" validate:"required"`
	Duplicate string `yaml:"duplicate" validate:"required,nefield=Keep"`
}

// OverrideEdit sets one field of one entry.
type OverrideEdit struct {
	Collection Collection `yaml:"collection" validate:"required,oneof=work employment education funding reviews personal"`
	ID         string     `yaml:"id"`
	Field      string     `yaml:"field" validate:"required"`
	Value      string     `yaml:"value"`
}

// EqualAuthorsEdit marks co-first and co-last authors of one work.
type EqualAuthorsEdit struct {
	Work  string `yaml:"work" validate:"required"`
	First int    `yaml:"first" validate:"gte=0"`
	Last  int    `yaml:"last" validate:"gte=0"`
}

// DeleteEdit removes one entry.
type DeleteEdit struct {
	Collection Collection `yaml:"collection" validate:"required,oneof=work employment education funding reviews"`
	ID         string     `yaml:"id" validate:"required"`
}

// LoadEdits reads and validates an edits file.
func LoadEdits(path string) (*Edits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &EditError{Op: "load", Message: path, Cause: err}
	}
	return ParseEdits(data)
}

// ParseEdits decodes and validates edits YAML.
func ParseEdits(data []byte) (*Edits, error) {
	var e Edits
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, &EditError{Op: "load", Message: "invalid YAML", Cause: err}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks struct constraints on every edit.
func (e *Edits) Validate() error {
	if err := validator.New().Struct(e); err != nil {
		return &EditError{Op: "validate", Message: "invalid edits", Cause: err}
	}
	return nil
}

// Count returns the number of individual edits.
func (e *Edits) Count() int {
	in := e.Insert
	return len(in.Works) + len(in.Funding) + len(in.Reviews) + len(in.Employment) + len(in.Education) +
		len(e.Merge) + len(e.Override) + len(e.EqualAuthors) + len(e.Delete)
}

// Apply mutates p. It stops at the first failing edit.
func (e *Edits) Apply(p *types.Profile, log *logger.Logger) error {
	log = logger.OrNop(log)

	for _, w := range e.Insert.Works {
		id := InsertWork(p, w.Key, &types.Work{
			Type: w.Type, Title: w.Title, Subtitle: w.Subtitle, Journal: w.Journal,
			DOI: w.DOI, Year: w.Year, Month: w.Month, Authors: w.Authors,
		})
		log.Debug("inserted work", "id", id, "title", w.Title)
	}
	for _, f := range e.Insert.Funding {
		id := InsertFunding(p, f.Key, &types.Funding{
			Title: f.Title, Role: f.Role, Org: f.Org, ID: f.ID,
			StartYear: f.StartYear, EndYear: f.EndYear, Value: f.Value,
		})
		log.Debug("inserted funding", "id", id, "title", f.Title)
	}
	for _, r := range e.Insert.Reviews {
		id := InsertReview(p, r.Key, &types.Review{Year: r.Year, Role: r.Role, Org: r.Org})
		log.Debug("inserted review", "id", id, "org", r.Org)
	}
	if err := insertAffiliations(p, CollectionEmployment, e.Insert.Employment); err != nil {
		return err
	}
	if err := insertAffiliations(p, CollectionEducation, e.Insert.Education); err != nil {
		return err
	}

	for _, m := range e.Merge {
		if err := MergeWorks(p, m.Keep, m.Duplicate); err != nil {
			return err
		}
		log.Debug("merged works", "keep", m.Keep, "duplicate", m.Duplicate)
	}
	for _, o := range e.Override {
		if err := Override(p, o.Collection, o.ID, o.Field, o.Value); err != nil {
			return err
		}
	}
	for _, ea := range e.EqualAuthors {
		if err := MarkEqualContribution(p, ea.Work, ea.First, ea.Last); err != nil {
			return err
		}
	}
	for _, d := range e.Delete {
		if err := Delete(p, d.Collection, d.ID); err != nil {
			return err
		}
	}

	log.Info("applied profile edits", "count", e.Count())
	return nil
}

func insertAffiliations(p *types.Profile, c Collection, entries []AffiliationEntry) error {
	for _, a := range entries {
		_, err := InsertAffiliation(p, c, a.Key, &types.Affiliation{
			Organization: a.Organization, Department: a.Department, Role: a.Role,
			StartYear: a.StartYear, EndYear: a.EndYear,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// String summarizes the edits for verbose output.
func (e *Edits) String() string {
	return fmt.Sprintf("%d inserts, %d merges, %d overrides, %d equal-author marks, %d deletes",
		len(e.Insert.Works)+len(e.Insert.Funding)+len(e.Insert.Reviews)+len(e.Insert.Employment)+len(e.Insert.Education),
		len(e.Merge), len(e.Override), len(e.EqualAuthors), len(e.Delete))
}
