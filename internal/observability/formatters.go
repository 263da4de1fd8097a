// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/orcid-cv/internal/editing"
	"github.com/jonathan/orcid-cv/internal/rendering"
	"github.com/jonathan/orcid-cv/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintProfile outputs the owner's identity and the size of each collection.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s (%s)\n", profile.Personal.FullName, profile.Personal.ShortName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Personal.Email))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Works:       %d\n", len(profile.Works)))
	sb.WriteString(fmt.Sprintf("Employment:  %d\n", len(profile.Employment)))
	sb.WriteString(fmt.Sprintf("Education:   %d\n", len(profile.Education)))
	sb.WriteString(fmt.Sprintf("Funding:     %d\n", len(profile.Funding)))
	sb.WriteString(fmt.Sprintf("Reviews:     %d\n", len(profile.Reviews)))

	if len(profile.Personal.Links) > 0 {
		sb.WriteString("\nLinks:\n")
		labels := profile.Personal.SortedLinkLabels()
		count := min(len(labels), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", labels[i], profile.Personal.Links[labels[i]]))
		}
		if len(labels) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(labels)-maxItemsToShow))
		}
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEdits outputs a summary of the edits applied to the profile.
func (p *Printer) PrintEdits(edits *editing.Edits) {
	if edits == nil || edits.Count() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applied %d edits:\n", edits.Count()))
	sb.WriteString(edits.String())

	p.printBox("PROFILE EDITS", sb.String())
}

// PrintSections outputs each planned section with its entry count.
func (p *Printer) PrintSections(sections []rendering.SectionResult) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range sections {
		heading := s.Heading
		if heading == "" {
			heading = "(" + s.Kind + ")"
		}
		if s.Skipped {
			sb.WriteString(fmt.Sprintf("○ %-28s skipped (no entries)", heading))
		} else {
			sb.WriteString(fmt.Sprintf("• %-28s %d", heading, s.Entries))
		}
		if i < len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SECTIONS", sb.String())
}

// PrintBuild outputs where the document was written and how it was paginated.
func (p *Printer) PrintBuild(result *rendering.BuildResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", result.Title))
	sb.WriteString(fmt.Sprintf("Output:   %s\n", result.Output))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", result.Pages))
	sb.WriteString(fmt.Sprintf("Mode:     %s", result.Mode))

	p.printBox("✅ CV WRITTEN", sb.String())
}
