// Package style defines the named, immutable rendering parameter sets.
package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultName is the built-in style used when none is requested.
const DefaultName = "greenspon-default"

var (
	// ErrUnknownStyle is returned when a style name is not registered.
	ErrUnknownStyle = errors.New("unknown style")
	// ErrUnknownKind is returned for section kinds without a column ratio.
	ErrUnknownKind = errors.New("no column ratio for section kind")
)

// Section kinds that carry a column ratio.
const (
	KindWork        = "work"
	KindAffiliation = "affiliation"
	KindFunding     = "funding"
	KindReview      = "review"
	KindPerson      = "person"
)

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Color is a "#rrggbb" hex string.
type Color string

// RGB returns the color components, or black for malformed values.
func (c Color) RGB() (r, g, b int) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// TextStyle describes one paragraph style.
type TextStyle struct {
	Font  string  `yaml:"font" validate:"required"`
	Bold  bool    `yaml:"bold"`
	Size  float64 `yaml:"size" validate:"gt=0"`
	Align Align   `yaml:"align" validate:"omitempty,oneof=left right center"`
	Color Color   `yaml:"color" validate:"omitempty,hexcolor"`
	// Leading defaults to 1.2 x Size.
	Leading float64 `yaml:"leading" validate:"gte=0"`
}

// LineHeight returns the leading used to stack wrapped lines.
func (t TextStyle) LineHeight() float64 {
	if t.Leading > 0 {
		return t.Leading
	}
	return t.Size * 1.2
}

// FontFace is a TrueType font registered with the PDF backend under Family.
// Style is "" for regular, "B", "I" or "BI".
type FontFace struct {
	Family string `yaml:"family" validate:"required"`
	Style  string `yaml:"style" validate:"omitempty,oneof=B I BI"`
	Path   string `yaml:"path" validate:"required"`
}

// Config is a complete set of rendering parameters. Values are copied when
// handed out by a Registry, so a run cannot alter the registered style.
type Config struct {
	Name         string             `yaml:"name" validate:"required"`
	PageSize     string             `yaml:"page_size" validate:"required,oneof=letter a4 legal"`
	Margin       float64            `yaml:"margin" validate:"gt=0"`
	BottomMargin float64            `yaml:"bottom_margin" validate:"gte=0"`
	ItemSpacing  float64            `yaml:"item_spacing" validate:"gte=0"`
	RuleWidth    float64            `yaml:"rule_width" validate:"gte=0"`
	RuleColor    Color              `yaml:"rule_color" validate:"omitempty,hexcolor"`
	IconSize     float64            `yaml:"icon_size" validate:"gt=0"`
	IconColumn   float64            `yaml:"icon_column" validate:"gtefield=IconSize"`
	FooterOffset float64            `yaml:"footer_offset" validate:"gte=0"`
	ColumnRatios map[string]float64 `yaml:"column_ratios" validate:"required,dive,gt=1"`

	InitializeAuthors bool `yaml:"initialize_authors"`
	EmboldenAuthor    bool `yaml:"embolden_author"`

	PersonTitle   TextStyle `yaml:"person_title"`
	PersonSummary TextStyle `yaml:"person_summary"`
	SectionTitle  TextStyle `yaml:"section_title"`
	ItemTitle     TextStyle `yaml:"item_title"`
	ItemDate      TextStyle `yaml:"item_date"`
	ItemBody      TextStyle `yaml:"item_body"`
	Footer        TextStyle `yaml:"footer"`

	Fonts []FontFace `yaml:"fonts" validate:"dive"`
}

// Page dimensions in points.
var pageSizes = map[string][2]float64{
	"letter": {612, 792},
	"a4":     {595.28, 841.89},
	"legal":  {612, 1008},
}

// PageDimensions returns the page width and height in points.
func (c Config) PageDimensions() (width, height float64) {
	d, ok := pageSizes[c.PageSize]
	if !ok {
		d = pageSizes["letter"]
	}
	return d[0], d[1]
}

// TableWidth is the usable width between the left and right margins,
// truncated to whole points.
func (c Config) TableWidth() float64 {
	w, _ := c.PageDimensions()
	return math.Trunc(w - 2*c.Margin)
}

// ColumnWidths splits the table width into the left content column and the
// right date column for a section kind. Funding and review sections fall
// back to the affiliation ratio.
func (c Config) ColumnWidths(kind string) ([2]float64, error) {
	ratio, ok := c.ColumnRatios[kind]
	if !ok && (kind == KindFunding || kind == KindReview) {
		ratio, ok = c.ColumnRatios[KindAffiliation]
	}
	if !ok || ratio <= 0 {
		return [2]float64{}, fmt.Errorf("style %s: %w: %s", c.Name, ErrUnknownKind, kind)
	}
	tw := c.TableWidth()
	right := math.Round(tw / ratio)
	return [2]float64{tw - right, right}, nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := c
	out.ColumnRatios = make(map[string]float64, len(c.ColumnRatios))
	for k, v := range c.ColumnRatios {
		out.ColumnRatios[k] = v
	}
	out.Fonts = append([]FontFace(nil), c.Fonts...)
	return out
}

// GreensponDefault returns the built-in style: US letter, 50pt margins,
// Helvetica throughout.
func GreensponDefault() Config {
	return Config{
		Name:         DefaultName,
		PageSize:     "letter",
		Margin:       50,
		BottomMargin: 60,
		ItemSpacing:  5,
		RuleWidth:    2,
		RuleColor:    "#808080",
		IconSize:     15,
		IconColumn:   20,
		FooterOffset: 28,
		ColumnRatios: map[string]float64{
			KindWork:        7,
			KindAffiliation: 6,
			KindPerson:      3.5,
		},
		InitializeAuthors: true,
		EmboldenAuthor:    true,
		PersonTitle:       TextStyle{Font: "Helvetica", Bold: true, Size: 22, Align: AlignLeft},
		PersonSummary:     TextStyle{Font: "Helvetica", Size: 9, Align: AlignRight},
		SectionTitle:      TextStyle{Font: "Helvetica", Bold: true, Size: 18, Align: AlignLeft},
		ItemTitle:         TextStyle{Font: "Helvetica", Bold: true, Size: 11, Align: AlignLeft},
		ItemDate:          TextStyle{Font: "Helvetica", Bold: true, Size: 9, Align: AlignRight},
		ItemBody:          TextStyle{Font: "Helvetica", Size: 9, Align: AlignLeft},
		Footer:            TextStyle{Font: "Helvetica", Size: 9, Align: AlignLeft},
	}
}
