// Package export serializes a document tree into the downloadable PDF
// artifact. Output is byte-reproducible for identical inputs: the
// creation date is pinned and every layout constant is fixed here, not
// configurable per invoice.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/document"
)

// Layout constants, ISO A4 in millimeters.
const (
	pageMargin   = 19.0
	contentWidth = 210 - 2*pageMargin

	cardHeight     = 22.0
	tableRowHeight = 9.0
	summaryWidth   = 70.0
	footerY        = 282.0
)

// Font files looked up in the font directory. NotoSans carries the
// extended currency glyphs (Cedi, Naira) that the core fonts lack; a
// missing glyph would silently corrupt an amount, so numeric cells use
// it whenever available.
const (
	unicodeFontRegular = "NotoSans-Regular.ttf"
	unicodeFontBold    = "NotoSans-Bold.ttf"
)

// creationDate pins the PDF metadata so identical trees serialize to
// identical bytes.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Exporter renders document trees to PDF bytes.
type Exporter struct {
	fontDir    string
	hasUnicode bool
}

// New constructs an Exporter. The font directory is probed once; when
// the NotoSans files are absent the exporter degrades to the Helvetica
// core font rather than failing renders.
func New(fontDir string) *Exporter {
	e := &Exporter{fontDir: fontDir}
	if fontDir != "" {
		if _, err := os.Stat(filepath.Join(fontDir, unicodeFontRegular)); err == nil {
			e.hasUnicode = true
		}
	}
	return e
}

// UnicodeReady reports whether the extended-glyph font was found.
func (e *Exporter) UnicodeReady() bool { return e.hasUnicode }

// Render serializes the tree into a single A4 PDF. A failure is
// reported to the caller and never mutates the inputs.
func (e *Exporter) Render(doc document.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", e.fontDir)
	pdf.SetCreationDate(creationDate)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	// The break margin keeps body content clear of the footer band.
	pdf.SetAutoPageBreak(true, pageMargin+10)

	numFont := "Helvetica"
	if e.hasUnicode {
		pdf.AddUTF8Font("NotoSans", "", unicodeFontRegular)
		if _, err := os.Stat(filepath.Join(e.fontDir, unicodeFontBold)); err == nil {
			pdf.AddUTF8Font("NotoSans", "B", unicodeFontBold)
		} else {
			pdf.AddUTF8Font("NotoSans", "B", unicodeFontRegular)
		}
		numFont = "NotoSans"
	}

	p := &page{pdf: pdf, doc: doc, numFont: numFont}
	// The brand footer belongs on every emitted page, so it is drawn
	// from the page-close hook rather than appended after the sections.
	pdf.SetFooterFunc(p.footer)
	pdf.AddPage()

	p.header()
	p.businessCard()
	p.details()
	p.itemsTable()
	p.totals()
	p.notes()

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type page struct {
	pdf     *gofpdf.Fpdf
	doc     document.Document
	numFont string
}

func (p *page) accent() (int, int, int) {
	return hexToRGB(p.doc.Theme.Accent)
}

func (p *page) header() {
	pdf := p.pdf
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(contentWidth, 4, strings.ToUpper(p.doc.Header.Label), "", 1, "L", false, 0, "")

	r, g, b := p.accent()
	pdf.SetTextColor(r, g, b)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentWidth, 8, p.doc.Header.InvoiceNumber, "", 1, "L", false, 0, "")

	pdf.SetDrawColor(226, 232, 240)
	y := pdf.GetY() + 2
	pdf.Line(pageMargin, y, pageMargin+contentWidth, y)
	pdf.SetY(y + 4)
}

func (p *page) businessCard() {
	pdf := p.pdf
	r, g, b := p.accent()
	top := pdf.GetY()

	pdf.SetFillColor(r, g, b)
	pdf.RoundedRect(pageMargin, top, contentWidth, cardHeight, 3, "1234", "F")

	textX := pageMargin + 6
	if logo := p.doc.Business.Logo; logo != nil && embeddableImage(*logo) {
		name, opts := registerImage(pdf, "logo", *logo)
		if name != "" {
			pdf.ImageOptions(name, pageMargin+5, top+5, 12, 12, false, opts, 0, "")
			textX += 14
		}
	}

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(textX, top+10, p.doc.Business.Name)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(textX, top+15, p.doc.Business.ContactLine)

	pdf.SetFont("Helvetica", "", 6)
	dateLabel := strings.ToUpper(p.doc.Business.DateLabel)
	labelW := pdf.GetStringWidth(dateLabel)
	pdf.Text(pageMargin+contentWidth-6-labelW, top+9, dateLabel)
	pdf.SetFont("Helvetica", "", 8)
	dateW := pdf.GetStringWidth(p.doc.Business.IssueDate)
	pdf.Text(pageMargin+contentWidth-6-dateW, top+14, p.doc.Business.IssueDate)

	pdf.SetY(top + cardHeight + 8)
}

func (p *page) details() {
	pdf := p.pdf
	colW := (contentWidth - 8) / 2
	top := pdf.GetY()

	p.detailColumn(pageMargin, top, colW, p.doc.Details.LeftTitle, p.doc.Details.Left)
	bottom := pdf.GetY()
	p.detailColumn(pageMargin+colW+8, top, colW, p.doc.Details.RightTitle, p.doc.Details.BillTo)
	if pdf.GetY() > bottom {
		bottom = pdf.GetY()
	}
	pdf.SetY(bottom + 8)
}

func (p *page) detailColumn(x, y, w float64, title string, rows []document.DetailRow) {
	pdf := p.pdf
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(w, 5, strings.ToUpper(title), "B", 2, "L", false, 0, "")
	pdf.SetY(pdf.GetY() + 2)

	for _, row := range rows {
		pdf.SetX(x)
		if row.Emphasis {
			r, g, b := p.accent()
			pdf.SetTextColor(r, g, b)
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			pdf.SetTextColor(100, 116, 139)
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.CellFormat(w, 5, row.Text, "", 2, "L", false, 0, "")
	}
}

func (p *page) itemsTable() {
	pdf := p.pdf
	r, g, b := p.accent()

	pdf.SetTextColor(r, g, b)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentWidth, 6, p.doc.Items.Title, "", 1, "L", false, 0, "")

	// Header band on the light companion tone.
	lr, lg, lb := hexToRGB(p.doc.Theme.Light)
	pdf.SetFillColor(lr, lg, lb)
	pdf.SetTextColor(71, 85, 105)
	pdf.SetFont("Helvetica", "B", 7)
	for i, col := range document.Columns {
		ln := 0
		if i == len(document.Columns)-1 {
			ln = 1
		}
		pdf.CellFormat(colWidth(col), 7, strings.ToUpper(col.Title), "", ln, alignCode(col.Align), true, 0, "")
	}

	pdf.SetDrawColor(241, 245, 249)
	for _, row := range p.doc.Items.Rows {
		cells := [4]string{row.Name, row.Quantity, row.Rate, row.Amount}
		for i, col := range document.Columns {
			ln := 0
			if i == len(document.Columns)-1 {
				ln = 1
			}
			switch i {
			case 0:
				pdf.SetTextColor(15, 23, 42)
				pdf.SetFont("Helvetica", "B", 8)
			case 3:
				pdf.SetTextColor(15, 23, 42)
				pdf.SetFont(p.numFont, "B", 8)
			default:
				pdf.SetTextColor(100, 116, 139)
				pdf.SetFont(p.numFont, "", 8)
			}
			pdf.CellFormat(colWidth(col), tableRowHeight, cells[i], "B", ln, alignCode(col.Align), false, 0, "")
		}
	}
	pdf.SetY(pdf.GetY() + 6)
}

func (p *page) totals() {
	pdf := p.pdf
	t := p.doc.Totals
	x := pageMargin + contentWidth - summaryWidth

	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.SetY(pdf.GetY() + 3)

	p.summaryRow(x, t.SubtotalLabel, t.Subtotal)
	if t.HasPaid {
		p.summaryRow(x, t.PaidLabel, t.Paid)
	}

	// Total-due row rides on an accent-filled band.
	r, g, b := p.accent()
	y := pdf.GetY() + 2
	pdf.SetFillColor(r, g, b)
	pdf.RoundedRect(x, y, summaryWidth, 10, 2, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(x+4, y+6.5, t.TotalLabel)
	pdf.SetFont(p.numFont, "B", 11)
	w := pdf.GetStringWidth(t.TotalDue)
	pdf.Text(x+summaryWidth-4-w, y+6.8, t.TotalDue)
	pdf.SetY(y + 14)
}

func (p *page) summaryRow(x float64, label, value string) {
	pdf := p.pdf
	pdf.SetX(x)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(summaryWidth/2, 5, label, "", 0, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont(p.numFont, "", 8)
	pdf.CellFormat(summaryWidth/2, 5, value, "", 1, "R", false, 0, "")
}

func (p *page) notes() {
	if p.doc.Notes == nil {
		return
	}
	pdf := p.pdf
	pdf.SetY(pdf.GetY() + 4)
	pdf.SetDrawColor(226, 232, 240)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.SetY(pdf.GetY() + 3)

	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentWidth, 5, strings.ToUpper(p.doc.Notes.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(contentWidth, 4.5, p.doc.Notes.Text, "", "L", false)
}

func (p *page) footer() {
	pdf := p.pdf
	pdf.SetDrawColor(241, 245, 249)
	pdf.Line(pageMargin, footerY-4, pageMargin+contentWidth, footerY-4)

	pdf.SetTextColor(37, 51, 68)
	pdf.SetFont("Helvetica", "", 7)
	text := p.doc.Footer.Text

	brand := p.doc.Footer.Brand
	if embeddableImage(brand) {
		name, opts := registerImage(pdf, "brand", brand)
		if name != "" {
			textW := pdf.GetStringWidth(text)
			startX := pageMargin + (contentWidth-textW-22)/2
			pdf.Text(startX, footerY, text)
			pdf.ImageOptions(name, startX+textW+2, footerY-5, 20, 0, false, opts, 0, "")
			return
		}
	}
	// Degraded: fall back to the asset's reference name.
	if brand.Ref != "" {
		text = text + " " + brand.Ref
	}
	w := pdf.GetStringWidth(text)
	pdf.Text(pageMargin+(contentWidth-w)/2, footerY, text)
}

func colWidth(c document.Column) float64 {
	return contentWidth * c.WidthPct / 100
}

func alignCode(a document.Align) string {
	switch a {
	case document.AlignCenter:
		return "C"
	case document.AlignRight:
		return "R"
	}
	return "L"
}

// embeddableImage reports whether gofpdf can embed the asset. SVG is
// vector-only here; its slot collapses in the PDF paths.
func embeddableImage(a assets.Asset) bool {
	if !a.Embedded() {
		return false
	}
	switch imageType(a) {
	case "PNG", "JPG":
		return true
	}
	return false
}

func imageType(a assets.Asset) string {
	switch {
	case strings.Contains(a.MIME, "png"):
		return "PNG"
	case strings.Contains(a.MIME, "jpeg"), strings.Contains(a.MIME, "jpg"):
		return "JPG"
	}
	return ""
}

func registerImage(pdf *gofpdf.Fpdf, name string, a assets.Asset) (string, gofpdf.ImageOptions) {
	opts := gofpdf.ImageOptions{ImageType: imageType(a), ReadDpi: true}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(a.Data))
	if info == nil {
		return "", opts
	}
	return name, opts
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 30, 41, 59
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 30, 41, 59
	}
	return r, g, b
}
