// Package schemas embeds the JSON Schemas for the files orcid-cv reads back from disk.
package schemas

import _ "embed"

// ProfileCache is the schema of the ORCID.json profile cache.
//
//go:embed profile_cache.schema.json
var ProfileCache string
