// Package preview renders the document tree to HTML for the live
// on-screen view. The tree is rebuilt by the caller on every read, so
// the preview can never show stale state.
package preview

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/document"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer renders document trees to HTML.
type Renderer struct {
	tpl *template.Template
}

// NewRenderer parses the embedded preview template.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("invoice.html").Funcs(template.FuncMap{
		"dataURI": dataURI,
		"upper":   strings.ToUpper,
		"deref":   func(a *assets.Asset) assets.Asset { return *a },
		"columns": func() []document.Column { return document.Columns[:] },
	}).ParseFS(templates, "templates/invoice.html")
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render writes the HTML preview of the tree.
func (r *Renderer) Render(w io.Writer, doc document.Document) error {
	if err := r.tpl.ExecuteTemplate(w, "invoice.html", doc); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}

// dataURI inlines an embedded asset; unresolved assets fall back to
// their original reference so a failed fetch degrades instead of
// breaking the page.
func dataURI(a assets.Asset) template.URL {
	if !a.Embedded() {
		return template.URL(a.Ref)
	}
	return template.URL("data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.Data))
}
