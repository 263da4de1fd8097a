// Package types provides type definitions for the normalized ORCID profile used throughout the orcid-cv system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strconv"
)

// Profile is the aggregate root built once per run by the loader.
// Map keys are opaque per-entry ids (the XML file name without ".xml",
// or a generated id for injected entries).
type Profile struct {
	Personal   PersonalInfo            `json:"personal"`
	Works      map[string]*Work        `json:"work"`
	Employment map[string]*Affiliation `json:"employment"`
	Education  map[string]*Affiliation `json:"education"`
	Funding    map[string]*Funding     `json:"funding"`
	Reviews    map[string]*Review      `json:"reviews"`
}

// NewProfile returns a profile with all collections allocated.
func NewProfile() *Profile {
	return &Profile{
		Works:      map[string]*Work{},
		Employment: map[string]*Affiliation{},
		Education:  map[string]*Affiliation{},
		Funding:    map[string]*Funding{},
		Reviews:    map[string]*Review{},
	}
}

// EnsureCollections allocates any nil collection, e.g. after decoding a
// cache written by an older run that omitted an empty map.
func (p *Profile) EnsureCollections() {
	if p.Works == nil {
		p.Works = map[string]*Work{}
	}
	if p.Employment == nil {
		p.Employment = map[string]*Affiliation{}
	}
	if p.Education == nil {
		p.Education = map[string]*Affiliation{}
	}
	if p.Funding == nil {
		p.Funding = map[string]*Funding{}
	}
	if p.Reviews == nil {
		p.Reviews = map[string]*Review{}
	}
}

// PersonalInfo holds the profile owner's identity and contact details.
type PersonalInfo struct {
	FamilyName string            `json:"lastname"`
	GivenName  string            `json:"givenname"`
	FullName   string            `json:"fullname"`
	ShortName  string            `json:"name-short"`
	FirstName  string            `json:"firstname"`
	Email      string            `json:"email"`
	Links      map[string]string `json:"links"`
}

// SortedLinkLabels returns link labels with "ORCID" first and the rest
// alphabetically, so the header icon row is stable between runs.
func (p PersonalInfo) SortedLinkLabels() []string {
	labels := make([]string, 0, len(p.Links))
	for label := range p.Links {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i] == "ORCID" {
			return labels[j] != "ORCID"
		}
		if labels[j] == "ORCID" {
			return false
		}
		return labels[i] < labels[j]
	})
	return labels
}

// SortedKeys returns the keys of any collection in ascending order.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// YearValue parses a year string for sorting. Unparseable or empty years
// sort as 0.
func YearValue(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}
