// Package icons supplies the link icons drawn in the CV header. An icon is
// read from "<label>.png" in the icon directory when present, otherwise a
// round badge with the label's initials is generated.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/logger"
)

// Pixels is the side of every icon bitmap. Icons are drawn at 15pt, so this
// keeps them sharp when printed.
const Pixels = 96

var brandColors = map[string]color.NRGBA{
	"orcid":          {R: 0xA6, G: 0xCE, B: 0x39, A: 0xFF},
	"github":         {R: 0x24, G: 0x29, B: 0x2E, A: 0xFF},
	"google scholar": {R: 0x42, G: 0x85, B: 0xF4, A: 0xFF},
	"twitter":        {R: 0x1D, G: 0xA1, B: 0xF2, A: 0xFF},
	"linkedin":       {R: 0x0A, G: 0x66, B: 0xC2, A: 0xFF},
}

var palette = []color.NRGBA{
	{R: 0x4E, G: 0x79, B: 0xA7, A: 0xFF},
	{R: 0xF2, G: 0x8E, B: 0x2B, A: 0xFF},
	{R: 0xE1, G: 0x57, B: 0x59, A: 0xFF},
	{R: 0x76, G: 0xB7, B: 0xB2, A: 0xFF},
	{R: 0x59, G: 0xA1, B: 0x4F, A: 0xFF},
	{R: 0xB0, G: 0x7A, B: 0xA1, A: 0xFF},
}

// Source renders and caches icons by label.
type Source struct {
	Dir string

	face  font.Face
	cache map[string]*layout.Image
	log   *logger.Logger
}

// NewSource prepares the badge font. dir may be empty.
func NewSource(dir string, log *logger.Logger) (*Source, error) {
	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse badge font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    Pixels * 0.42,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return &Source{
		Dir:   dir,
		face:  face,
		cache: map[string]*layout.Image{},
		log:   logger.OrNop(log),
	}, nil
}

// Icon returns the image for label sized to size points.
func (s *Source) Icon(label string, size float64) (*layout.Image, error) {
	if img, ok := s.cache[label]; ok {
		out := *img
		out.W, out.H = size, size
		return &out, nil
	}

	data, err := s.fromDir(label)
	if err != nil {
		return nil, err
	}
	if data == nil {
		buf, err := s.Badge(label)
		if err != nil {
			return nil, err
		}
		data = buf.Bytes()
		s.log.Debug("generated link icon", "label", label)
	}

	img := &layout.Image{Name: "icon-" + label, Data: data}
	s.cache[label] = img
	out := *img
	out.W, out.H = size, size
	return &out, nil
}

// fromDir loads "<label>.png" from the icon directory, squared and scaled.
// It returns nil data when there is no such file.
func (s *Source) fromDir(label string) ([]byte, error) {
	if s.Dir == "" {
		return nil, nil
	}
	path := filepath.Join(s.Dir, label+".png")
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read icon %s: %w", path, err)
	}
	buf, err := squarePNG(raw, Pixels)
	if err != nil {
		return nil, fmt.Errorf("icon %s: %w", path, err)
	}
	s.log.Debug("loaded link icon", "label", label, "path", path)
	return buf.Bytes(), nil
}

// Badge draws a filled circle with the label's initials.
func (s *Source) Badge(label string) (bytes.Buffer, error) {
	dc := gg.NewContext(Pixels, Pixels)
	half := float64(Pixels) / 2

	dc.DrawCircle(half, half, half)
	dc.SetColor(Color(label))
	dc.Fill()

	dc.SetFontFace(s.face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(Initials(label), half, half, 0.5, 0.35)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// Color picks the badge background: a brand color for well-known sites,
// otherwise a stable palette entry.
func Color(label string) color.NRGBA {
	if c, ok := brandColors[strings.ToLower(label)]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Initials returns up to two letters for a badge: "iD" for ORCID, the first
// letters of the first two words, the capitals of a camel-case word, or the
// first two letters of any other single word.
func Initials(label string) string {
	if strings.EqualFold(label, "orcid") {
		return "iD"
	}
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch len(words) {
	case 0:
		return "?"
	case 1:
		r := []rune(words[0])
		var upper []rune
		for _, c := range r {
			if unicode.IsUpper(c) {
				upper = append(upper, c)
			}
		}
		if len(upper) >= 2 {
			return string(upper[:2])
		}
		if len(r) == 1 {
			return strings.ToUpper(string(r))
		}
		return strings.ToUpper(string(r[0])) + string(r[1])
	}
	a, b := []rune(words[0]), []rune(words[1])
	return strings.ToUpper(string(a[0]) + string(b[0]))
}

// squarePNG center-crops an image to a square and scales it to size.
func squarePNG(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewNRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContextForImage(dst)
	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}
