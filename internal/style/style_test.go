package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnWidths_Default(t *testing.T) {
	cfg := GreensponDefault()
	require.Equal(t, 512.0, cfg.TableWidth())

	tests := []struct {
		kind string
		want [2]float64
	}{
		{KindWork, [2]float64{439, 73}},
		{KindAffiliation, [2]float64{427, 85}},
		{KindFunding, [2]float64{427, 85}},
		{KindReview, [2]float64{427, 85}},
		{KindPerson, [2]float64{366, 146}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := cfg.ColumnWidths(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnWidths_UnknownKind(t *testing.T) {
	_, err := GreensponDefault().ColumnWidths("gallery")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPageDimensions(t *testing.T) {
	w, h := GreensponDefault().PageDimensions()
	assert.Equal(t, 612.0, w)
	assert.Equal(t, 792.0, h)

	a4 := GreensponDefault()
	a4.PageSize = "a4"
	w, _ = a4.PageDimensions()
	assert.InDelta(t, 595.28, w, 0.001)
}

func TestLineHeight(t *testing.T) {
	assert.InDelta(t, 10.8, TextStyle{Size: 9}.LineHeight(), 1e-9)
	assert.Equal(t, 14.0, TextStyle{Size: 9, Leading: 14}.LineHeight())
}

func TestColorRGB(t *testing.T) {
	r, g, b := Color("#808080").RGB()
	assert.Equal(t, []int{128, 128, 128}, []int{r, g, b})

	r, g, b = Color("bogus").RGB()
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Validate(GreensponDefault()))
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup("fancy")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestRegistry_LookupEmptyIsDefault(t *testing.T) {
	cfg, err := NewRegistry().Lookup("")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, cfg.Name)
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	r := NewRegistry()
	cfg, err := r.Lookup(DefaultName)
	require.NoError(t, err)
	cfg.ColumnRatios[KindWork] = 2

	again, err := r.Lookup(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, 7.0, again.ColumnRatios[KindWork])
}

const styleYAML = `
styles:
  - name: compact
    margin: 36
    item_spacing: 3
    initialize_authors: false
    column_ratios:
      work: 8
    item_body:
      font: Helvetica
      size: 8
  - name: compact-a4
    base: compact
    page_size: a4
`

func TestRegistry_LoadYAML(t *testing.T) {
	r := NewRegistry()
	names, err := r.LoadYAML([]byte(styleYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"compact", "compact-a4"}, names)
	assert.Equal(t, []string{"compact", "compact-a4", DefaultName}, r.Names())

	compact, err := r.Lookup("compact")
	require.NoError(t, err)
	assert.Equal(t, 36.0, compact.Margin)
	assert.False(t, compact.InitializeAuthors)
	assert.True(t, compact.EmboldenAuthor)
	assert.Equal(t, 8.0, compact.ColumnRatios[KindWork])
	assert.Equal(t, 6.0, compact.ColumnRatios[KindAffiliation])
	assert.Equal(t, 8.0, compact.ItemBody.Size)
	assert.Equal(t, 11.0, compact.ItemTitle.Size)

	a4, err := r.Lookup("compact-a4")
	require.NoError(t, err)
	assert.Equal(t, "a4", a4.PageSize)
	assert.Equal(t, 36.0, a4.Margin)
}

func TestRegistry_LoadYAMLInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown base":   "styles:\n  - name: x\n    base: nope\n",
		"missing name":   "styles:\n  - margin: 10\n",
		"bad page size":  "styles:\n  - name: x\n    page_size: tabloid\n",
		"zero font size": "styles:\n  - name: x\n    item_body:\n      font: Helvetica\n      size: 0\n",
		"bad font style": "styles:\n  - name: x\n    fonts:\n      - family: Gill\n        style: X\n        path: g.ttf\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.LoadYAML([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRegistry_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(styleYAML), 0o644))

	names, err := NewRegistry().LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	_, err = NewRegistry().LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
