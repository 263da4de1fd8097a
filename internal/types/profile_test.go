package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkSortKey(t *testing.T) {
	assert.Equal(t, 2024006, (&Work{Year: 2024, Month: 6}).SortKey())
	assert.Equal(t, 2023000, (&Work{Year: 2023}).SortKey())
	assert.Equal(t, 0, (&Work{}).SortKey())
}

func TestWorkDisplay_Default(t *testing.T) {
	w := &Work{Type: WorkJournalArticle, Title: "T", Journal: "eLife", Subtitle: "S", Year: 2021}
	d := w.Display()
	assert.Equal(t, "T", d.Title)
	assert.Equal(t, "eLife", d.Venue)
	assert.Equal(t, "2021", d.Date)
	assert.Equal(t, "S", d.Subtitle)
}

func TestWorkDisplay_UndatedShowsEmptyDate(t *testing.T) {
	d := (&Work{Type: WorkPreprint}).Display()
	assert.Equal(t, "", d.Date)
}

func TestWorkDisplay_SoftwareRemapsFields(t *testing.T) {
	w := &Work{Type: WorkSoftware, Title: "tool", Subtitle: "GitHub release", Journal: "2019 - present", Year: 2019}
	d := w.Display()
	assert.Equal(t, "GitHub release", d.Venue)
	assert.Equal(t, "2019 - present", d.Date)
	assert.Empty(t, d.Subtitle)
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "2020 - present", FormatDateRange("2020", ""))
	assert.Equal(t, "2015 - 2020", FormatDateRange("2015", "2020"))
}

func TestYearValue(t *testing.T) {
	assert.Equal(t, 2020, YearValue("2020"))
	assert.Equal(t, 0, YearValue(""))
	assert.Equal(t, 0, YearValue("n/a"))
}

func TestSortedLinkLabels_ORCIDFirst(t *testing.T) {
	p := PersonalInfo{Links: map[string]string{
		"Twitter": "t", "ORCID": "o", "GitHub": "g",
	}}
	assert.Equal(t, []string{"ORCID", "GitHub", "Twitter"}, p.SortedLinkLabels())
}

func TestProfile_JSONKeys(t *testing.T) {
	p := NewProfile()
	p.Personal.ShortName = "C. M. Greenspon"
	p.Works["1"] = &Work{Type: WorkPreprint}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"personal", "work", "employment", "education", "funding", "reviews"} {
		assert.Contains(t, raw, key)
	}
	assert.Contains(t, string(raw["personal"]), `"name-short":"C. M. Greenspon"`)
}

func TestEnsureCollections(t *testing.T) {
	p := &Profile{}
	p.EnsureCollections()
	assert.NotNil(t, p.Works)
	assert.NotNil(t, p.Employment)
	assert.NotNil(t, p.Education)
	assert.NotNil(t, p.Funding)
	assert.NotNil(t, p.Reviews)
}
