// Package types provides type definitions for the normalized ORCID profile used throughout the orcid-cv system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strconv"

// Work type tags recognized by the renderers.
const (
	WorkJournalArticle         = "journal-article"
	WorkPreprint               = "preprint"
	WorkSoftware               = "software"
	WorkBookChapter            = "book-chapter"
	WorkLectureSpeech          = "lecture-speech"
	WorkPublicSpeech           = "public-speech"
	WorkConferencePresentation = "conference-presentation"
)

// Work is any citable output. Type drives both sorting and how the other
// fields are displayed (see Display).
type Work struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Journal  string   `json:"journal"`
	DOI      string   `json:"doi"`
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Authors  []string `json:"authors"`
}

// SortKey orders works by year then month. Undated works get 0 and sort last
// in descending order.
func (w *Work) SortKey() int {
	return w.Year*1000 + w.Month
}

// WorkDisplay is the type-dependent view of a work used by the renderers.
type WorkDisplay struct {
	Title    string
	Venue    string
	Date     string
	Subtitle string
}

// Display resolves the per-type field remapping. Software entries keep
// their release venue in Subtitle and a free-form date in Journal.
func (w *Work) Display() WorkDisplay {
	switch w.Type {
	case WorkSoftware:
		return WorkDisplay{
			Title: w.Title,
			Venue: w.Subtitle,
			Date:  w.Journal,
		}
	default:
		date := ""
		if w.Year != 0 {
			date = strconv.Itoa(w.Year)
		}
		return WorkDisplay{
			Title:    w.Title,
			Venue:    w.Journal,
			Date:     date,
			Subtitle: w.Subtitle,
		}
	}
}
