// Package document builds the abstract invoice document tree: the
// single styled representation every output adapter consumes. Building
// the tree is a pure function of the invoice data and the resolved
// theme, so preview, file export and email always agree.
package document

import (
	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/theme"
)

// Align is a column text alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Column describes one fixed items-table column. Widths are renderer
// constants, never configurable per invoice.
type Column struct {
	Title    string
	WidthPct float64
	Align    Align
}

// Columns is the fixed items-table layout: description, quantity,
// rate, amount.
var Columns = [4]Column{
	{Title: "Description", WidthPct: 45, Align: AlignLeft},
	{Title: "Qty", WidthPct: 15, Align: AlignCenter},
	{Title: "Rate", WidthPct: 18, Align: AlignRight},
	{Title: "Amount", WidthPct: 22, Align: AlignRight},
}

// Header is the top block: invoice label plus accent-colored number.
type Header struct {
	Label         string
	InvoiceNumber string
}

// BusinessCard is the accent-filled brand card.
type BusinessCard struct {
	Logo        *assets.Asset
	Name        string
	ContactLine string
	DateLabel   string
	IssueDate   string
}

// DetailRow is one line of the two-column details block. Emphasis
// marks the accent-colored client name row.
type DetailRow struct {
	Text     string
	Emphasis bool
}

// Details holds the two columns: invoice metadata on the left, the
// conditional bill-to rows on the right.
type Details struct {
	LeftTitle  string
	Left       []DetailRow
	RightTitle string
	BillTo     []DetailRow
}

// ItemRow is one rendered items-table row. All cells are preformatted
// strings so adapters never re-derive numbers.
type ItemRow struct {
	Name     string
	Quantity string
	Rate     string
	Amount   string
}

// ItemsTable is the fixed four-column table in insertion order.
type ItemsTable struct {
	Title string
	Rows  []ItemRow
}

// Totals is the summary block. Paid is present only when an amount was
// actually paid.
type Totals struct {
	SubtotalLabel string
	Subtotal      string
	PaidLabel     string
	Paid          string
	HasPaid       bool
	TotalLabel    string
	TotalDue      string
}

// Notes is present only when the invoice carries a note.
type Notes struct {
	Title string
	Text  string
}

// Footer is the fixed brand mark, centered on every page.
type Footer struct {
	Text  string
	Brand assets.Asset
}

// Document is one invoice's abstract paginated tree, built in fixed
// section order.
type Document struct {
	Theme    theme.Theme
	Header   Header
	Business BusinessCard
	Details  Details
	Items    ItemsTable
	Totals   Totals
	Notes    *Notes
	Footer   Footer
}
