package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/money"
	"github.com/invigen/invigen/internal/theme"
)

func fixtureData() invoice.Data {
	return invoice.Data{
		BusinessName:  "Acme Studio",
		InvoiceNumber: "INV-001",
		IssueDate:     time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Currency:      money.USD,
		Client:        invoice.Client{Name: "Jordan Lee"},
		Items: []invoice.LineItem{
			{Name: "Design", Quantity: money.NumberOf(2), UnitPrice: money.NumberOf(150)},
		},
		AmountPaid: money.NumberOf(0),
	}
}

func fixtureTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.Resolve("#3b82f6", nil, assets.Asset{Ref: "brand.png"})
	require.NoError(t, err)
	return th
}

func TestBuild_Deterministic(t *testing.T) {
	data := fixtureData()
	th := fixtureTheme(t)
	first := Build(data, th)
	second := Build(data, th)
	require.Equal(t, first, second)
}

func TestBuild_SectionOrderAndContent(t *testing.T) {
	doc := Build(fixtureData(), fixtureTheme(t))

	assert.Equal(t, "New Invoice", doc.Header.Label)
	assert.Equal(t, "INV-001", doc.Header.InvoiceNumber)
	assert.Equal(t, "Acme Studio", doc.Business.Name)
	assert.Equal(t, "Mar 5, 2026", doc.Business.IssueDate)
	// No client email entered: contact line falls back.
	assert.Equal(t, "info@company.com", doc.Business.ContactLine)
	assert.Equal(t, "Generated with", doc.Footer.Text)
	assert.Equal(t, "brand.png", doc.Footer.Brand.Ref)
	assert.Nil(t, doc.Notes)
}

func TestBuild_EmptyPaidInvoice(t *testing.T) {
	doc := Build(fixtureData(), fixtureTheme(t))

	assert.Equal(t, "$300.00", doc.Totals.Subtotal)
	assert.Equal(t, "$300.00", doc.Totals.TotalDue)
	assert.False(t, doc.Totals.HasPaid)
	assert.Empty(t, doc.Totals.Paid)
}

func TestBuild_Overpayment(t *testing.T) {
	data := fixtureData()
	data.Items = []invoice.LineItem{
		{Name: "Service", Quantity: money.NumberOf(1), UnitPrice: money.NumberOf(100)},
	}
	data.AmountPaid = money.NumberOf(150)

	doc := Build(data, fixtureTheme(t))
	assert.Equal(t, "$100.00", doc.Totals.Subtotal)
	assert.True(t, doc.Totals.HasPaid)
	assert.Equal(t, "-$150.00", doc.Totals.Paid)
	assert.Equal(t, "$-50.00", doc.Totals.TotalDue)
}

func TestBuild_ConditionalBillToRows(t *testing.T) {
	data := fixtureData()
	data.Client = invoice.Client{Name: "Jordan Lee"}
	doc := Build(data, fixtureTheme(t))
	require.Len(t, doc.Details.BillTo, 1)
	assert.Equal(t, "Jordan Lee", doc.Details.BillTo[0].Text)
	assert.True(t, doc.Details.BillTo[0].Emphasis)

	data.Client.Email = "jordan@example.com"
	doc = Build(data, fixtureTheme(t))
	require.Len(t, doc.Details.BillTo, 2)
	assert.Equal(t, "Jordan Lee", doc.Details.BillTo[0].Text)
	assert.Equal(t, "jordan@example.com", doc.Details.BillTo[1].Text)
	// The contact line now uses the real email.
	assert.Equal(t, "jordan@example.com", doc.Business.ContactLine)
}

func TestBuild_QuantityZeroPadding(t *testing.T) {
	data := fixtureData()
	data.Items = []invoice.LineItem{
		{Name: "A", Quantity: money.NumberOf(2), UnitPrice: money.NumberOf(1)},
		{Name: "B", Quantity: money.NumberOf(12), UnitPrice: money.NumberOf(1)},
		{Name: "C", Quantity: money.Number{}, UnitPrice: money.NumberOf(1)},
	}
	doc := Build(data, fixtureTheme(t))
	require.Len(t, doc.Items.Rows, 3)
	assert.Equal(t, "02", doc.Items.Rows[0].Quantity)
	assert.Equal(t, "12", doc.Items.Rows[1].Quantity)
	assert.Equal(t, "0", doc.Items.Rows[2].Quantity)
}

func TestBuild_RowOrderIsInsertionOrder(t *testing.T) {
	data := fixtureData()
	data.Items = []invoice.LineItem{
		{Name: "Zebra", Quantity: money.NumberOf(1), UnitPrice: money.NumberOf(5)},
		{Name: "Alpha", Quantity: money.NumberOf(1), UnitPrice: money.NumberOf(1)},
	}
	doc := Build(data, fixtureTheme(t))
	assert.Equal(t, "Zebra", doc.Items.Rows[0].Name)
	assert.Equal(t, "Alpha", doc.Items.Rows[1].Name)
}

func TestBuild_NotesOnlyWhenPresent(t *testing.T) {
	data := fixtureData()
	data.Note = "Payment due within 14 days."
	doc := Build(data, fixtureTheme(t))
	require.NotNil(t, doc.Notes)
	assert.Equal(t, "Notes", doc.Notes.Title)
	assert.Equal(t, "Payment due within 14 days.", doc.Notes.Text)
}

func TestBuild_CurrencyFollowsCode(t *testing.T) {
	data := fixtureData()
	data.Currency = money.GHS
	data.Items = []invoice.LineItem{
		{Name: "Consulting", Quantity: money.NumberOf(1), UnitPrice: money.NumberOf(42.5)},
	}
	doc := Build(data, fixtureTheme(t))
	assert.Equal(t, "₵42.50", doc.Items.Rows[0].Rate)
	assert.Equal(t, "Currency: GHS", doc.Details.Left[1].Text)
}

func TestColumns_FixedLayout(t *testing.T) {
	assert.Equal(t, 45.0, Columns[0].WidthPct)
	assert.Equal(t, 15.0, Columns[1].WidthPct)
	assert.Equal(t, 18.0, Columns[2].WidthPct)
	assert.Equal(t, 22.0, Columns[3].WidthPct)
	assert.Equal(t, AlignCenter, Columns[1].Align)
	assert.Equal(t, AlignRight, Columns[2].Align)
	assert.Equal(t, AlignRight, Columns[3].Align)
}
