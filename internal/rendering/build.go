package rendering

import (
	"time"

	"github.com/jonathan/orcid-cv/internal/layout"
	"github.com/jonathan/orcid-cv/internal/types"
)

// BuildOptions controls document output.
type BuildOptions struct {
	Output   string
	Mode     layout.Mode
	Compress bool
	Now      func() time.Time
}

// BuildResult summarizes a written document.
type BuildResult struct {
	Output   string
	Title    string
	Pages    int
	Mode     layout.Mode
	Sections []SectionResult
}

// Title is the document title stored in the PDF metadata.
func Title(p *types.Profile) string {
	return p.Personal.FullName + " - CV"
}

// Build renders the plan and writes the PDF to opts.Output.
func (r *Renderer) Build(p *types.Profile, plan Plan, opts BuildOptions) (*BuildResult, error) {
	blocks, sections, err := r.Blocks(p, plan)
	if err != nil {
		return nil, err
	}

	title := Title(p)
	backend, err := layout.NewPDF(r.style, layout.PDFOptions{
		Title:    title,
		Author:   p.Personal.FullName,
		Compress: opts.Compress,
		Log:      r.log,
	})
	if err != nil {
		return nil, &RenderError{Message: "failed to create PDF backend", Cause: err}
	}

	doc := &layout.Document{Style: r.style, Now: opts.Now, Log: r.log}
	pages, err := doc.Render(backend, blocks, opts.Mode)
	if err != nil {
		return nil, &RenderError{Message: "failed to lay out document", Cause: err}
	}
	if err := backend.Save(opts.Output); err != nil {
		return nil, &RenderError{Message: "failed to save document", Cause: err}
	}

	r.log.Info("wrote document", "path", opts.Output, "pages", pages, "mode", opts.Mode.String())
	return &BuildResult{
		Output:   opts.Output,
		Title:    title,
		Pages:    pages,
		Mode:     opts.Mode,
		Sections: sections,
	}, nil
}
