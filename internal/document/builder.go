package document

import (
	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/money"
	"github.com/invigen/invigen/internal/theme"
)

const (
	headerLabel     = "New Invoice"
	issueDateLabel  = "Issue Date"
	leftColumnTitle = "Invoice Details"
	billToTitle     = "Bill To"
	itemsTitle      = "Invoice Items"
	subtotalLabel   = "Subtotal"
	paidLabel       = "Paid"
	totalLabel      = "Total Due"
	notesTitle      = "Notes"
	footerText      = "Generated with"

	// contactFallback fills the card contact line when no client email
	// was entered.
	contactFallback = "info@company.com"

	issueDateFormat = "Jan 2, 2006"
)

// Build assembles the document tree from a consistent snapshot of the
// invoice data and a fully-resolved theme. Identical inputs always
// yield a structurally identical tree.
func Build(data invoice.Data, th theme.Theme) Document {
	contact := data.Client.Email
	if contact == "" {
		contact = contactFallback
	}

	doc := Document{
		Theme: th,
		Header: Header{
			Label:         headerLabel,
			InvoiceNumber: data.InvoiceNumber,
		},
		Business: BusinessCard{
			Logo:        th.Logo,
			Name:        data.BusinessName,
			ContactLine: contact,
			DateLabel:   issueDateLabel,
			IssueDate:   data.IssueDate.Format(issueDateFormat),
		},
		Details: buildDetails(data),
		Items:   buildItems(data),
		Totals:  buildTotals(data),
		Footer: Footer{
			Text:  footerText,
			Brand: th.BrandFooter,
		},
	}

	if data.Note != "" {
		doc.Notes = &Notes{Title: notesTitle, Text: data.Note}
	}
	return doc
}

func buildDetails(data invoice.Data) Details {
	d := Details{
		LeftTitle: leftColumnTitle,
		Left: []DetailRow{
			{Text: "Invoice #: " + data.InvoiceNumber},
			{Text: "Currency: " + string(data.Currency)},
		},
		RightTitle: billToTitle,
	}
	// Fixed bill-to order: name, email, phone. Absent fields produce
	// no row at all.
	if data.Client.Name != "" {
		d.BillTo = append(d.BillTo, DetailRow{Text: data.Client.Name, Emphasis: true})
	}
	if data.Client.Email != "" {
		d.BillTo = append(d.BillTo, DetailRow{Text: data.Client.Email})
	}
	if data.Client.Phone != "" {
		d.BillTo = append(d.BillTo, DetailRow{Text: data.Client.Phone})
	}
	return d
}

func buildItems(data invoice.Data) ItemsTable {
	t := ItemsTable{Title: itemsTitle}
	for _, it := range data.Items {
		t.Rows = append(t.Rows, ItemRow{
			Name:     it.Name,
			Quantity: formatQuantity(it.Quantity),
			Rate:     money.FormatNumber(it.UnitPrice, data.Currency),
			Amount:   money.Format(it.Line().Total(), data.Currency),
		})
	}
	return t
}

func buildTotals(data invoice.Data) Totals {
	t := Totals{
		SubtotalLabel: subtotalLabel,
		Subtotal:      money.Format(data.Subtotal(), data.Currency),
		TotalLabel:    totalLabel,
		TotalDue:      money.Format(data.BalanceDue(), data.Currency),
	}
	if data.AmountPaid.Float64() > 0 {
		t.HasPaid = true
		t.PaidLabel = paidLabel
		t.Paid = "-" + money.FormatNumber(data.AmountPaid, data.Currency)
	}
	return t
}

// formatQuantity zero-pads quantities below ten to two digits. An
// uncommitted empty field displays as a bare zero.
func formatQuantity(n money.Number) string {
	raw := n.String()
	if raw == "" {
		return "0"
	}
	if n.Float64() >= 0 && n.Float64() < 10 {
		return "0" + raw
	}
	return raw
}
