package orcid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/schemas"
	"github.com/jonathan/orcid-cv/internal/types"
	schemadefs "github.com/jonathan/orcid-cv/schemas"
)

// CacheFile is the serialized profile written next to the export.
const CacheFile = "ORCID.json"

// Export layout, relative to the profile directory.
const (
	PersonFile     = "person.xml"
	EmploymentsDir = "affiliations/employments"
	EducationsDir  = "affiliations/educations"
	WorksDir       = "works"
	FundingsDir    = "fundings"
	ReviewsDir     = "peer_reviews"
)

// Options controls cache use for a single load.
type Options struct {
	// Refresh ignores an existing cache but still rewrites it.
	Refresh bool
	// NoCache neither reads nor writes the cache.
	NoCache bool
	// CachePath overrides <dir>/ORCID.json.
	CachePath string
}

// Loader assembles a profile from an export directory.
type Loader struct {
	Normalizer *Normalizer
	Log        *logger.Logger
}

// NewLoader returns a loader that logs through log and enriches entries
// with the given resolvers (either may be nil).
func NewLoader(repos RepositoryResolver, journals JournalResolver, log *logger.Logger) *Loader {
	log = logger.OrNop(log)
	return &Loader{
		Normalizer: &Normalizer{Repositories: repos, Journals: journals, Log: log},
		Log:        log,
	}
}

func cachePath(dir string, opts Options) string {
	if opts.CachePath != "" {
		return opts.CachePath
	}
	return filepath.Join(dir, CacheFile)
}

// Load returns the profile for dir. An existing cache is returned verbatim
// without any freshness check; otherwise the XML tree is parsed and the
// cache written.
func (l *Loader) Load(ctx context.Context, dir string, opts Options) (*types.Profile, error) {
	log := logger.OrNop(l.Log)
	path := cachePath(dir, opts)

	if !opts.Refresh && !opts.NoCache {
		if _, err := os.Stat(path); err == nil {
			log.Info("loading profile from local cache", "path", path)
			return ReadCache(path)
		}
	}

	profile, err := l.Parse(ctx, dir)
	if err != nil {
		return nil, err
	}

	if !opts.NoCache {
		log.Info("saving local cache", "path", path)
		if err := WriteCache(path, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// Parse reads the whole XML tree. Missing collection directories yield
// empty collections; a missing person.xml is an error.
func (l *Loader) Parse(ctx context.Context, dir string) (*types.Profile, error) {
	log := logger.OrNop(l.Log)
	norm := l.Normalizer
	if norm == nil {
		norm = &Normalizer{Log: log}
	}

	personPath := filepath.Join(dir, PersonFile)
	personData, err := LoadXML(personPath)
	if err != nil {
		return nil, err
	}
	personal, err := norm.Person(NewRecord(personData, personPath, log))
	if err != nil {
		return nil, err
	}

	profile := types.NewProfile()
	profile.Personal = personal

	err = eachRecord(ctx, dir, EmploymentsDir, log, func(id string, rec *Record) {
		profile.Employment[id] = norm.Affiliation(rec)
	})
	if err == nil {
		err = eachRecord(ctx, dir, EducationsDir, log, func(id string, rec *Record) {
			profile.Education[id] = norm.Affiliation(rec)
		})
	}
	if err == nil {
		err = eachRecord(ctx, dir, WorksDir, log, func(id string, rec *Record) {
			profile.Works[id] = norm.Work(ctx, rec)
		})
	}
	if err == nil {
		err = eachRecord(ctx, dir, FundingsDir, log, func(id string, rec *Record) {
			profile.Funding[id] = norm.Funding(rec)
		})
	}
	if err == nil {
		err = eachRecord(ctx, dir, ReviewsDir, log, func(id string, rec *Record) {
			profile.Reviews[id] = norm.Review(ctx, rec)
		})
	}
	if err != nil {
		return nil, err
	}

	log.Info("parsed profile export",
		"dir", dir,
		"works", len(profile.Works),
		"employment", len(profile.Employment),
		"education", len(profile.Education),
		"funding", len(profile.Funding),
		"reviews", len(profile.Reviews))
	return profile, nil
}

// eachRecord parses every *.xml file in dir/sub in name order and hands it
// to fn keyed by the file name without extension.
func eachRecord(ctx context.Context, dir, sub string, log *logger.Logger, fn func(id string, rec *Record)) error {
	full := filepath.Join(dir, filepath.FromSlash(sub))
	entries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("collection directory missing", "dir", full)
			return nil
		}
		return &Error{Path: full, Message: "failed to list directory", Cause: err}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".xml") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(full, entry.Name())
		data, err := LoadXML(path)
		if err != nil {
			return err
		}
		fn(strings.TrimSuffix(entry.Name(), ".xml"), NewRecord(data, path, log))
	}
	return nil
}

// ReadCache loads and schema-checks a serialized profile.
func ReadCache(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read cache", Cause: err}
	}
	if err := schemas.ValidateJSONBytes(schemadefs.ProfileCache, data); err != nil {
		return nil, &Error{Path: path, Message: "cache does not match schema", Cause: err}
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &Error{Path: path, Message: "failed to decode cache", Cause: err}
	}
	profile.EnsureCollections()
	return &profile, nil
}

// WriteCache serializes the profile with four-space indentation.
func WriteCache(path string, profile *types.Profile) error {
	data, err := json.MarshalIndent(profile, "", "    ")
	if err != nil {
		return &Error{Path: path, Message: "failed to encode cache", Cause: err}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &Error{Path: path, Message: "failed to write cache", Cause: err}
	}
	return nil
}

// WorkListing identifies one work file for manual edits.
type WorkListing struct {
	Index   int
	ID      string
	Title   string
	PutCode string
}

func (w WorkListing) String() string {
	return fmt.Sprintf("%d: %s (%s)", w.Index, w.Title, w.PutCode)
}

// ListWorks enumerates the works directory without enrichment so edits can
// reference entries by id.
func ListWorks(ctx context.Context, dir string, log *logger.Logger) ([]WorkListing, error) {
	log = logger.OrNop(log)
	var out []WorkListing
	err := eachRecord(ctx, dir, WorksDir, log, func(id string, rec *Record) {
		out = append(out, WorkListing{
			Index:   len(out),
			ID:      id,
			Title:   rec.String("title", "title"),
			PutCode: rec.PutCode(),
		})
	})
	return out, err
}
