package rendering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/types"
)

// Section kinds accepted in a plan.
const (
	SectionPerson     = "person"
	SectionEmployment = "employment"
	SectionEducation  = "education"
	SectionWork       = "work"
	SectionFunding    = "funding"
	SectionReview     = "review"
)

// Section is one entry of a build plan. Types selects work types and is
// only used by work sections. A Required section that selects nothing
// fails the build; otherwise it is skipped.
type Section struct {
	Kind     string   `json:"kind" yaml:"kind" validate:"required,oneof=person employment education work funding review"`
	Heading  string   `json:"heading,omitempty" yaml:"heading"`
	Types    []string `json:"types,omitempty" yaml:"types"`
	Required bool     `json:"required,omitempty" yaml:"required"`
}

// Plan is the ordered list of sections in a document.
type Plan []Section

// QuickBuildPlan is the default document layout.
func QuickBuildPlan() Plan {
	return Plan{
		{Kind: SectionPerson, Required: true},
		{Kind: SectionEmployment, Heading: "Employment"},
		{Kind: SectionEducation, Heading: "Education"},
		{Kind: SectionWork, Heading: "Research Publications", Types: []string{types.WorkJournalArticle}},
		{Kind: SectionWork, Heading: "Talks", Types: []string{types.WorkLectureSpeech}},
		{Kind: SectionWork, Heading: "Preprints", Types: []string{types.WorkPreprint}},
	}
}

// FullPlan folds preprints into publications and adds funding, book
// chapters, software and peer review.
func FullPlan() Plan {
	return Plan{
		{Kind: SectionPerson, Required: true},
		{Kind: SectionEmployment, Heading: "Employment"},
		{Kind: SectionEducation, Heading: "Education"},
		{Kind: SectionWork, Heading: "Research Publications", Types: []string{types.WorkJournalArticle, types.WorkPreprint}},
		{Kind: SectionWork, Heading: "Talks", Types: []string{types.WorkPublicSpeech, types.WorkLectureSpeech, types.WorkConferencePresentation}},
		{Kind: SectionFunding, Heading: "Funding"},
		{Kind: SectionWork, Heading: "Book Chapters", Types: []string{types.WorkBookChapter}},
		{Kind: SectionWork, Heading: "Software", Types: []string{types.WorkSoftware}},
		{Kind: SectionReview, Heading: "Peer Review"},
	}
}

var plans = map[string]func() Plan{
	"quick": QuickBuildPlan,
	"full":  FullPlan,
}

// PlanByName returns a built-in plan.
func PlanByName(name string) (Plan, error) {
	if name == "" {
		return QuickBuildPlan(), nil
	}
	f, ok := plans[name]
	if !ok {
		return nil, fmt.Errorf("unknown plan %q", name)
	}
	return f(), nil
}

// PlanNames lists the built-in plans.
func PlanNames() []string {
	names := make([]string, 0, len(plans))
	for n := range plans {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SectionResult reports what one plan section produced.
type SectionResult struct {
	Kind    string
	Heading string
	Entries int
	Skipped bool
}

// Blocks renders every section of the plan in order.
func (r *Renderer) Blocks(p *types.Profile, plan Plan) ([]layout.Block, []SectionResult, error) {
	var (
		blocks  []layout.Block
		results []SectionResult
	)
	for _, s := range plan {
		bs, err := r.Section(p, s)
		res := SectionResult{Kind: s.Kind, Heading: s.Heading}
		switch {
		case errors.Is(err, ErrNoEntries) && !s.Required:
			r.log.Info("skipping empty section", "heading", s.Heading, "kind", s.Kind)
			res.Skipped = true
		case err != nil:
			return nil, results, err
		default:
			res.Entries = countEntries(s, bs)
			blocks = append(blocks, bs...)
		}
		results = append(results, res)
	}
	return blocks, results, nil
}

// Section renders one plan section.
func (r *Renderer) Section(p *types.Profile, s Section) ([]layout.Block, error) {
	switch s.Kind {
	case SectionPerson:
		return r.Person(p)
	case SectionEmployment, SectionEducation:
		return r.Affiliations(p, s.Heading, s.Kind)
	case SectionWork:
		return r.Works(p, s.Heading, s.Types)
	case SectionFunding:
		return r.Funding(p, s.Heading)
	case SectionReview:
		return r.Reviews(p, s.Heading)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s.Kind)
}

func countEntries(s Section, blocks []layout.Block) int {
	if s.Kind == SectionPerson {
		return 1
	}
	return len(blocks) / 2
}
