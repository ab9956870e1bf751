package preview

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/document"
	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/money"
	"github.com/invigen/invigen/internal/theme"
)

func renderFixture(t *testing.T, data invoice.Data) string {
	t.Helper()
	th, err := theme.Resolve("#10b981", nil, assets.Asset{Ref: "invigen.png"})
	require.NoError(t, err)
	r, err := NewRenderer()
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, r.Render(buf, document.Build(data, th)))
	return buf.String()
}

func fixtureData() invoice.Data {
	return invoice.Data{
		BusinessName:  "Acme Studio",
		InvoiceNumber: "INV-007",
		IssueDate:     time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Currency:      money.EUR,
		Client:        invoice.Client{Name: "Jordan Lee", Email: "jordan@example.com"},
		Items: []invoice.LineItem{
			{Name: "Design", Quantity: money.NumberOf(2), UnitPrice: money.NumberOf(150)},
		},
		AmountPaid: money.NumberOf(100),
	}
}

func TestRender_ContainsDocumentContent(t *testing.T) {
	html := renderFixture(t, fixtureData())

	assert.Contains(t, html, "INV-007")
	assert.Contains(t, html, "Acme Studio")
	assert.Contains(t, html, "Jordan Lee")
	assert.Contains(t, html, "€300.00")
	assert.Contains(t, html, "-€100.00")
	assert.Contains(t, html, "€200.00")
	// Accent flows from the resolved theme into the styles.
	assert.Contains(t, html, "#10b981")
	// Unresolved brand asset degrades to its reference name.
	assert.Contains(t, html, "invigen.png")
}

func TestRender_OmitsAbsentSections(t *testing.T) {
	data := fixtureData()
	data.AmountPaid = money.NumberOf(0)
	data.Note = ""
	data.Client = invoice.Client{}
	html := renderFixture(t, data)

	assert.NotContains(t, html, ">Paid<")
	assert.NotContains(t, html, "class=\"notes\"")
	// Empty client produces zero bill-to rows but keeps the column title.
	assert.Contains(t, html, "Bill To")
	assert.NotContains(t, html, "row emphasis")
}

func TestRender_ReflectsEveryRebuild(t *testing.T) {
	data := fixtureData()
	before := renderFixture(t, data)
	data.Items[0].UnitPrice = money.NumberOf(175)
	after := renderFixture(t, data)
	assert.NotEqual(t, before, after)
	assert.Contains(t, after, "€350.00")
}
