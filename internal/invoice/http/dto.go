package invoicehttp

import (
	"fmt"
	"time"

	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/money"
	"github.com/invigen/invigen/internal/platform/httpx"
	"github.com/invigen/invigen/internal/theme"
)

const issueDateLayout = "2006-01-02"

// ItemPayload is one line item as the form sends it.
type ItemPayload struct {
	Name     string       `json:"name"`
	Quantity money.Number `json:"quantity"`
	Price    money.Number `json:"price"`
}

// UpdateInvoiceRequest is a partial update: nil fields keep their
// current value, present fields replace it. A non-nil Items slice
// replaces the whole item list.
type UpdateInvoiceRequest struct {
	BusinessName  *string       `json:"businessName"`
	InvoiceNumber *string       `json:"invoiceNumber"`
	IssueDate     *string       `json:"issueDate" validate:"omitempty,datetime=2006-01-02"`
	Currency      *string       `json:"currency"`
	ClientName    *string       `json:"clientName"`
	ClientEmail   *string       `json:"clientEmail" validate:"omitempty,email"`
	ClientPhone   *string       `json:"clientPhone"`
	Items         []ItemPayload `json:"items"`
	AmountPaid    *money.Number `json:"amountPaid"`
	Note          *string       `json:"note"`
}

// apply merges the request into the working copy. It runs inside the
// session's commit-on-success update, so a returned error leaves the
// stored state untouched.
func (req UpdateInvoiceRequest) apply(d *invoice.Data) error {
	if req.BusinessName != nil {
		d.BusinessName = *req.BusinessName
	}
	if req.InvoiceNumber != nil {
		d.InvoiceNumber = *req.InvoiceNumber
	}
	if req.IssueDate != nil {
		t, err := time.Parse(issueDateLayout, *req.IssueDate)
		if err != nil {
			return fmt.Errorf("%w: issueDate must be YYYY-MM-DD", httpx.ErrValidation)
		}
		d.IssueDate = t
	}
	if req.Currency != nil {
		d.Currency = money.Code(*req.Currency)
	}
	if req.ClientName != nil {
		d.Client.Name = *req.ClientName
	}
	if req.ClientEmail != nil {
		d.Client.Email = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		d.Client.Phone = *req.ClientPhone
	}
	if req.Items != nil {
		if len(req.Items) == 0 {
			return fmt.Errorf("%w: invoice needs at least one line item", httpx.ErrValidation)
		}
		items := make([]invoice.LineItem, len(req.Items))
		for i, it := range req.Items {
			items[i] = invoice.LineItem{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.Price}
		}
		d.Items = items
	}
	if req.AmountPaid != nil {
		if req.AmountPaid.Float64() < 0 {
			return fmt.Errorf("%w: amountPaid cannot be negative", httpx.ErrValidation)
		}
		d.AmountPaid = *req.AmountPaid
	}
	if req.Note != nil {
		d.Note = *req.Note
	}
	return nil
}

// ThemeResponse reports the saved customization without echoing logo bytes.
type ThemeResponse struct {
	Accent  string `json:"accent"`
	Light   string `json:"light"`
	HasLogo bool   `json:"hasLogo"`
}

// SessionResponse is the full session state plus the derived totals,
// recomputed on every read.
type SessionResponse struct {
	ID                  string         `json:"id"`
	Invoice             invoice.Data   `json:"invoice"`
	Subtotal            float64        `json:"subtotal"`
	BalanceDue          float64        `json:"balanceDue"`
	SubtotalFormatted   string         `json:"subtotalFormatted"`
	BalanceDueFormatted string         `json:"balanceDueFormatted"`
	Theme               *ThemeResponse `json:"theme,omitempty"`
}

func sessionResponse(id string, data invoice.Data, th *theme.Theme) SessionResponse {
	resp := SessionResponse{
		ID:                  id,
		Invoice:             data,
		Subtotal:            data.Subtotal(),
		BalanceDue:          data.BalanceDue(),
		SubtotalFormatted:   money.Format(data.Subtotal(), data.Currency),
		BalanceDueFormatted: money.Format(data.BalanceDue(), data.Currency),
	}
	if th != nil {
		resp.Theme = &ThemeResponse{Accent: th.Accent, Light: th.Light, HasLogo: th.HasLogo()}
	}
	return resp
}
