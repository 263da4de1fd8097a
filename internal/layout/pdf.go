package layout

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/orcid-cv/internal/logger"
	"github.com/jonathan/orcid-cv/internal/style"
)

// PDFOptions sets document metadata and output details.
type PDFOptions struct {
	Title    string
	Author   string
	Compress bool
	Log      *logger.Logger
}

// PDF is a Backend writing through go-pdf/fpdf. Core font families are fed
// cp1252 text; families registered from TrueType files take UTF-8.
type PDF struct {
	pdf    *fpdf.Fpdf
	width  float64
	height float64
	tr     func(string) string
	ttf    map[string]bool
	images map[string]bool
	log    *logger.Logger
}

// NewPDF creates a backend sized for cfg and registers its TrueType fonts.
func NewPDF(cfg style.Config, opts PDFOptions) (*PDF, error) {
	w, h := cfg.PageDimensions()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opts.Compress)
	pdf.SetCreator("orcid-cv", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}

	p := &PDF{
		pdf:    pdf,
		width:  w,
		height: h,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		ttf:    map[string]bool{},
		images: map[string]bool{},
		log:    logger.OrNop(opts.Log),
	}
	for _, face := range cfg.Fonts {
		if err := p.registerFont(face); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *PDF) registerFont(face style.FontFace) error {
	if _, err := os.Stat(face.Path); err != nil {
		return &Error{Message: "font file " + face.Path, Cause: err}
	}
	p.pdf.AddUTF8Font(face.Family, face.Style, face.Path)
	if p.pdf.Err() {
		return &Error{Message: "failed to register font " + face.Family, Cause: p.pdf.Error()}
	}
	p.ttf[fontKey(face.Family, face.Style)] = true
	p.log.Debug("registered font", "family", face.Family, "style", face.Style)
	return nil
}

func fontKey(family, styleStr string) string {
	return strings.ToLower(family) + "|" + styleStr
}

// setFont selects the face and reports whether text must be UTF-8. A bold
// request for a TrueType family without a bold face uses the regular one.
func (p *PDF) setFont(f FontSpec) bool {
	styleStr := ""
	if f.Bold {
		styleStr = "B"
	}
	if p.ttf[fontKey(f.Family, styleStr)] {
		p.pdf.SetFont(f.Family, styleStr, f.Size)
		return true
	}
	if p.ttf[fontKey(f.Family, "")] {
		p.pdf.SetFont(f.Family, "", f.Size)
		return true
	}
	p.pdf.SetFont(f.Family, styleStr, f.Size)
	return false
}

func (p *PDF) encode(utf8 bool, text string) string {
	if utf8 {
		return text
	}
	return p.tr(text)
}

// StringWidth implements Measurer.
func (p *PDF) StringWidth(font FontSpec, text string) float64 {
	utf8 := p.setFont(font)
	return p.pdf.GetStringWidth(p.encode(utf8, text))
}

// PageSize implements Backend.
func (p *PDF) PageSize() (float64, float64) {
	return p.width, p.height
}

// AddPage implements Backend.
func (p *PDF) AddPage() {
	p.pdf.AddPage()
}

// PageCount returns the number of pages added so far.
func (p *PDF) PageCount() int {
	return p.pdf.PageCount()
}

func (p *PDF) Text(x, y float64, font FontSpec, color style.Color, text string) {
	utf8 := p.setFont(font)
	r, g, b := color.RGB()
	p.pdf.SetTextColor(r, g, b)
	p.pdf.Text(x, y, p.encode(utf8, text))
}

func (p *PDF) Line(x1, y1, x2, y2, width float64, color style.Color) {
	r, g, b := color.RGB()
	p.pdf.SetDrawColor(r, g, b)
	p.pdf.SetLineWidth(width)
	p.pdf.Line(x1, y1, x2, y2)
}

func (p *PDF) Image(img *Image, x, y float64) {
	name := img.Name
	if name == "" {
		name = img.Path
	}
	opts := fpdf.ImageOptions{ImageType: imageType(img)}
	if img.Path == "" && !p.images[name] {
		p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		p.images[name] = true
	}
	if img.Path != "" {
		name = img.Path
	}
	p.pdf.ImageOptions(name, x, y, img.W, img.H, false, opts, 0, "")
}

func imageType(img *Image) string {
	if img.Path == "" {
		return "PNG"
	}
	return ""
}

func (p *PDF) Link(x, y, w, h float64, url string) {
	p.pdf.LinkString(x, y, w, h, url)
}

// Write finishes the document and writes it to w.
func (p *PDF) Write(w io.Writer) error {
	if err := p.pdf.Output(w); err != nil {
		return &Error{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

// Save writes the document to path.
func (p *PDF) Save(path string) error {
	if err := p.pdf.OutputFileAndClose(path); err != nil {
		return &Error{Message: "failed to write " + path, Cause: err}
	}
	return nil
}
