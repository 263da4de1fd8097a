package enrich

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/orcid-cv/internal/fetch"
	"github.com/jonathan/orcid-cv/internal/logger"
)

// ISSNPortalURL is the public ISSN registry record endpoint.
const ISSNPortalURL = "https://portal.issn.org/resource/ISSN/"

// PageRenderer renders a JavaScript-driven page to HTML.
type PageRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ISSNResolver names the journal registered under an ISSN by scraping the
// ISSN portal record page.
type ISSNResolver struct {
	BaseURL string
	Options *fetch.Options
	// Browser, when set, re-renders the page if the static HTML has no name.
	Browser PageRenderer
	Log     *logger.Logger
}

// NewISSNResolver returns a resolver against the public ISSN portal.
func NewISSNResolver(opts *fetch.Options, browser PageRenderer, log *logger.Logger) *ISSNResolver {
	return &ISSNResolver{
		BaseURL: ISSNPortalURL,
		Options: opts,
		Browser: browser,
		Log:     logger.OrNop(log),
	}
}

// Journal returns the title-cased journal name for issn.
func (r *ISSNResolver) Journal(ctx context.Context, issn string) (string, error) {
	log := logger.OrNop(r.Log)
	base := r.BaseURL
	if base == "" {
		base = ISSNPortalURL
	}
	url := base + issn

	res, err := fetch.URL(ctx, url, r.Options)
	if err != nil && res == nil {
		return "", &LookupError{Key: issn, Message: "ISSN portal request failed", Cause: err}
	}
	if name := JournalFromLines(res.Lines(), issn); name != "" {
		return name, nil
	}
	if name := journalFromTitle(res.HTML); name != "" {
		return name, nil
	}

	if r.Browser != nil {
		log.Debug("static ISSN page had no name, rendering in browser", "issn", issn)
		html, err := r.Browser.Render(ctx, url)
		if err != nil {
			return "", &LookupError{Key: issn, Message: "browser fallback failed", Cause: err}
		}
		if name := JournalFromLines(strings.Split(html, "\n"), issn); name != "" {
			return name, nil
		}
		if name := journalFromTitle(html); name != "" {
			return name, nil
		}
	}
	return "", &LookupError{Key: issn, Message: "no journal name on ISSN page", Cause: ErrNotFound}
}

// JournalFromLines finds the first line mentioning issn and returns the
// title-cased text after its "|" separator, up to the next markup delimiter.
// Later lines are never consulted, even when the first match has no name.
func JournalFromLines(lines []string, issn string) string {
	for _, line := range lines {
		if strings.Contains(line, issn) {
			return afterBar(line)
		}
	}
	return ""
}

func journalFromTitle(html string) string {
	title, err := fetch.ExtractTitle(html)
	if err != nil {
		return ""
	}
	return afterBar(title)
}

func afterBar(s string) string {
	idx := strings.Index(s, "|")
	if idx < 0 {
		return ""
	}
	rest := s[idx+1:]
	if end := strings.IndexAny(rest, `<"|`); end >= 0 {
		rest = rest[:end]
	}
	rest = strings.TrimSpace(fetch.StripMarkup(rest))
	rest = strings.TrimRight(rest, ". ")
	if rest == "" {
		return ""
	}
	return TitleCase(rest)
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
