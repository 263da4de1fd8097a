// Package enrich resolves the best-effort fields the ORCID export leaves
// empty: the repository hosting a preprint and the journal behind a
// review-group ISSN.
package enrich

import (
	"context"
	"strings"

	"github.com/jonathan/orcid-cv/internal/fetch"
	"github.com/jonathan/orcid-cv/internal/logger"
)

// DOIBaseURL prefixes bare DOIs before resolution.
const DOIBaseURL = "https://doi.org/"

// DOIResolver follows a DOI to its landing page and names the host.
type DOIResolver struct {
	Options *fetch.Options
	Log     *logger.Logger
}

// NewDOIResolver returns a resolver using opts for HTTP requests.
func NewDOIResolver(opts *fetch.Options, log *logger.Logger) *DOIResolver {
	return &DOIResolver{Options: opts, Log: logger.OrNop(log)}
}

// Repository resolves doi and returns the repository name derived from the
// final URL, e.g. "bioRxiv" for https://www.biorxiv.org/content/....
func (r *DOIResolver) Repository(ctx context.Context, doi string) (string, error) {
	target := doi
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = DOIBaseURL + strings.TrimPrefix(target, "doi:")
	}

	res, err := fetch.URL(ctx, target, r.Options)
	if res == nil {
		return "", &LookupError{Key: doi, Message: "DOI resolution failed", Cause: err}
	}
	if err != nil {
		// landing pages often refuse bots; the redirect target is all we need
		logger.OrNop(r.Log).Debug("DOI landing page returned an error", "doi", doi, "final_url", res.FinalURL, "error", err)
	}
	return RepositoryName(res.FinalURL)
}

// RepositoryName extracts the second-level domain following "www." in a
// URL. URLs without "www." are not recognized.
func RepositoryName(finalURL string) (string, error) {
	start := strings.Index(finalURL, "www.")
	if start < 0 {
		return "", &LookupError{Key: finalURL, Message: "no www. host in resolved URL", Cause: ErrNotFound}
	}
	host := finalURL[start+len("www."):]
	if slash := strings.IndexAny(host, "/?#"); slash >= 0 {
		host = host[:slash]
	}
	dot := strings.LastIndex(host, ".")
	if dot <= 0 {
		return "", &LookupError{Key: finalURL, Message: "resolved host has no domain suffix", Cause: ErrNotFound}
	}
	name := host[:dot]
	return strings.ReplaceAll(name, "rxiv", "Rxiv"), nil
}
