// Package invoice owns the editing-session data model. State lives in
// process memory for the duration of one session and is never
// persisted.
package invoice

import (
	"time"

	"github.com/invigen/invigen/internal/money"
)

// LineItem is one billable row. Quantity and UnitPrice tolerate the
// transient empty string a form emits mid-edit.
type LineItem struct {
	Name      string       `json:"name"`
	Quantity  money.Number `json:"quantity"`
	UnitPrice money.Number `json:"price"`
}

// Line adapts the item for the financial calculator.
func (li LineItem) Line() money.Line {
	return money.Line{Quantity: li.Quantity, UnitPrice: li.UnitPrice}
}

// Client is the optional bill-to party. Absent fields are omitted from
// the document entirely, never rendered blank.
type Client struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Data is the mutable form state of one invoice, owned exclusively by
// its editing session.
type Data struct {
	BusinessName  string       `json:"businessName"`
	InvoiceNumber string       `json:"invoiceNumber"`
	IssueDate     time.Time    `json:"issueDate"`
	Currency      money.Code   `json:"currency"`
	Client        Client       `json:"client"`
	Items         []LineItem   `json:"items"`
	AmountPaid    money.Number `json:"amountPaid"`
	Note          string       `json:"note"`
}

// NewData returns the session-start state: today's date, USD, a single
// blank line item at quantity one.
func NewData(now time.Time) Data {
	return Data{
		IssueDate:  now,
		Currency:   money.USD,
		Items:      []LineItem{blankItem()},
		AmountPaid: money.NumberOf(0),
	}
}

func blankItem() LineItem {
	return LineItem{Quantity: money.NumberOf(1), UnitPrice: money.NumberOf(0)}
}

// Lines projects the items for the calculator.
func (d Data) Lines() []money.Line {
	lines := make([]money.Line, len(d.Items))
	for i, it := range d.Items {
		lines[i] = it.Line()
	}
	return lines
}

// Subtotal is recomputed on every call, never stored.
func (d Data) Subtotal() float64 {
	return money.Subtotal(d.Lines())
}

// BalanceDue may be negative when overpaid; no clamping.
func (d Data) BalanceDue() float64 {
	return money.BalanceDue(d.Lines(), d.AmountPaid)
}

// Clone returns a deep copy so renders read a momentarily-consistent
// snapshot while the session keeps mutating.
func (d Data) Clone() Data {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}
