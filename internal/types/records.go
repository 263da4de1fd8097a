// Package types provides type definitions for the normalized ORCID profile used throughout the orcid-cv system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Affiliation is an employment or education entry.
type Affiliation struct {
	Organization string `json:"organization"`
	Department   string `json:"department"`
	Role         string `json:"role"`
	StartYear    string `json:"start_date"`
	EndYear      string `json:"end_date"`
	DateRange    string `json:"date_range"`
}

// FormatDateRange renders "{start} - present" for ongoing entries and
// "{start} - {end}" otherwise.
func FormatDateRange(start, end string) string {
	if end == "" {
		return start + " - present"
	}
	return start + " - " + end
}

// Funding is a grant or award. ID carries the award identifier, or a
// status such as "Pending" for injected applications.
type Funding struct {
	Title     string `json:"title"`
	Role      string `json:"role"`
	Org       string `json:"org"`
	ID        string `json:"id"`
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
	Value     string `json:"value"`
}

// Review is a peer-review activity. Org is resolved from the review group
// ISSN and stays empty when the lookup fails.
type Review struct {
	Year string `json:"year"`
	Role string `json:"role"`
	Org  string `json:"org"`
}
