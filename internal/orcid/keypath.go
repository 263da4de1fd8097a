package orcid

import (
	"strings"

	"github.com/jonathan/orcid-cv/internal/logger"
)

// Record is one parsed XML file with the lookup helpers the normalizers use.
// Lookups never fail: a missing key or empty element logs a diagnostic and
// yields the empty string.
type Record struct {
	data   map[string]interface{}
	source string
	log    *logger.Logger
}

// NewRecord wraps a parsed record. source names the file in diagnostics.
func NewRecord(data map[string]interface{}, source string, log *logger.Logger) *Record {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Record{data: data, source: source, log: logger.OrNop(log)}
}

// PutCode returns the record's ORCID put-code attribute, or "".
func (r *Record) PutCode() string {
	if v, ok := lookup(r.data, "-put-code"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Get walks keys through nested maps and returns whatever sits at the end
// of the path: a map, a slice or a scalar. A missing or nil step logs the
// joined path with the record's put-code and returns "".
func (r *Record) Get(keys ...string) interface{} {
	var cur interface{} = r.data
	for _, key := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return r.missing(keys)
		}
		v, ok := lookup(m, key)
		if !ok || v == nil {
			return r.missing(keys)
		}
		cur = v
	}
	return cur
}

// String is Get for scalar fields. Elements carrying attributes resolve to
// their "#text"; any other non-string value yields "".
func (r *Record) String(keys ...string) string {
	return text(r.Get(keys...))
}

// List is Get normalized to a slice: a single element becomes a one-item
// list and a missing path an empty one.
func (r *Record) List(keys ...string) []interface{} {
	return asList(r.Get(keys...))
}

// Has reports whether the top-level key exists, without logging.
func (r *Record) Has(key string) bool {
	_, ok := lookup(r.data, key)
	return ok
}

func (r *Record) missing(keys []string) string {
	r.log.Info("could not find field",
		"path", strings.Join(keys, "-"),
		"put_code", r.PutCode(),
		"source", r.source)
	return ""
}

// lookup matches a key exactly, then by local name so "common:title" and
// "title" both address the same element regardless of namespace handling.
func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	want := localName(key)
	for k, v := range m {
		if localName(k) == want {
			return v, true
		}
	}
	return nil, false
}

func localName(key string) string {
	prefix := ""
	if strings.HasPrefix(key, "-") {
		prefix, key = "-", key[1:]
	}
	if i := strings.LastIndex(key, ":"); i >= 0 {
		key = key[i+1:]
	}
	return prefix + key
}

func text(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		if s, ok := t["#text"].(string); ok {
			return s
		}
	}
	return ""
}

func asList(v interface{}) []interface{} {
	switch t := v.(type) {
	case []interface{}:
		return t
	case map[string]interface{}:
		return []interface{}{t}
	case string:
		if t == "" {
			return nil
		}
		return []interface{}{t}
	}
	return nil
}
