package orcid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/orcid-cv/internal/logger"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestRecordGet_ResolvesNestedPath(t *testing.T) {
	log, logs := observedLogger()
	rec := NewRecord(map[string]interface{}{
		"a": map[string]interface{}{"b": "x"},
	}, "test.xml", log)

	assert.Equal(t, "x", rec.Get("a", "b"))
	assert.Equal(t, 0, logs.Len())
}

func TestRecordGet_MissingPathReturnsEmptyAndLogs(t *testing.T) {
	log, logs := observedLogger()
	rec := NewRecord(map[string]interface{}{
		"-put-code": "42",
		"a":         map[string]interface{}{"b": "x"},
	}, "test.xml", log)

	assert.Equal(t, "", rec.Get("a", "c"))

	entries := logs.FilterMessage("could not find field").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "a-c", ctx["path"])
	assert.Equal(t, "42", ctx["put_code"])
}

func TestRecordGet_NilValueIsMissing(t *testing.T) {
	log, logs := observedLogger()
	rec := NewRecord(map[string]interface{}{"a": nil}, "test.xml", log)

	assert.Equal(t, "", rec.Get("a"))
	assert.Equal(t, 1, logs.Len())
}

func TestRecordGet_StepThroughScalarIsMissing(t *testing.T) {
	rec := NewRecord(map[string]interface{}{"a": "leaf"}, "test.xml", nil)
	assert.Equal(t, "", rec.Get("a", "b"))
}

func TestRecordGet_ReturnsContainers(t *testing.T) {
	list := []interface{}{"x", "y"}
	rec := NewRecord(map[string]interface{}{
		"m": map[string]interface{}{"l": list},
	}, "test.xml", nil)

	assert.Equal(t, list, rec.Get("m", "l"))
	assert.IsType(t, map[string]interface{}{}, rec.Get("m"))
}

func TestRecordGet_MatchesNamespacedKeys(t *testing.T) {
	rec := NewRecord(map[string]interface{}{
		"work:title": map[string]interface{}{"common:title": "Paper"},
	}, "test.xml", nil)

	assert.Equal(t, "Paper", rec.String("title", "title"))
	assert.Equal(t, "Paper", rec.String("work:title", "common:title"))
}

func TestRecordString_UsesTextOfAttributedElement(t *testing.T) {
	rec := NewRecord(map[string]interface{}{
		"amount": map[string]interface{}{"-currency-code": "USD", "#text": "100"},
	}, "test.xml", nil)

	assert.Equal(t, "100", rec.String("amount"))
	assert.Equal(t, "USD", rec.String("amount", "-currency-code"))
}

func TestRecordList_NormalizesShape(t *testing.T) {
	single := map[string]interface{}{"credit-name": "A"}
	many := []interface{}{single, map[string]interface{}{"credit-name": "B"}}
	rec := NewRecord(map[string]interface{}{
		"one":  map[string]interface{}{"c": single},
		"many": map[string]interface{}{"c": many},
	}, "test.xml", nil)

	assert.Len(t, rec.List("one", "c"), 1)
	assert.Len(t, rec.List("many", "c"), 2)
	assert.Empty(t, rec.List("none", "c"))
}

func TestRecordHas_DoesNotLog(t *testing.T) {
	log, logs := observedLogger()
	rec := NewRecord(map[string]interface{}{"researcher-url:researcher-urls": ""}, "p.xml", log)

	assert.True(t, rec.Has("researcher-urls"))
	assert.False(t, rec.Has("emails"))
	assert.Equal(t, 0, logs.Len())
}

func TestParseXML_StripsRootAndKeepsAttributes(t *testing.T) {
	m, err := ParseXML([]byte(`<work:work put-code="7" xmlns:work="w" xmlns:common="c">
		<work:title><common:title>T</common:title></work:title>
		<work:type>preprint</work:type>
	</work:work>`))
	require.NoError(t, err)

	rec := NewRecord(m, "inline", nil)
	assert.Equal(t, "7", rec.PutCode())
	assert.Equal(t, "T", rec.String("title", "title"))
	assert.Equal(t, "preprint", rec.String("type"))
}

func TestParseXML_Malformed(t *testing.T) {
	_, err := ParseXML([]byte(`<a><b></a>`))
	assert.Error(t, err)
}

func TestLoadXML_MissingFile(t *testing.T) {
	_, err := LoadXML("testdata/does-not-exist.xml")
	require.Error(t, err)

	var orcidErr *Error
	assert.ErrorAs(t, err, &orcidErr)
}
