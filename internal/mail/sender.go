package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/invigen/invigen/internal/document"
	"github.com/invigen/invigen/internal/export"
	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/platform/httpx"
	"github.com/invigen/invigen/internal/theme"
)

// DefaultMaxAttachmentBytes is the encoded-payload ceiling observed on
// the relay. It is injectable configuration, not a property of the
// core; confirm against whichever transport is substituted.
const DefaultMaxAttachmentBytes = 50_000

const emailDateFormat = "1/2/2006"

// PDFRenderer serializes a document tree to PDF bytes.
type PDFRenderer interface {
	Render(doc document.Document) ([]byte, error)
}

// Sender is the email delivery adapter.
type Sender struct {
	transport Transport
	renderer  PDFRenderer
	maxBytes  int
	now       func() time.Time
}

// NewSender constructs a Sender. maxBytes caps the base64-encoded
// attachment; zero selects the default ceiling.
func NewSender(transport Transport, renderer PDFRenderer, maxBytes int) *Sender {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	return &Sender{
		transport: transport,
		renderer:  renderer,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Send renders the invoice with the email variant of the theme and
// hands it to the relay. The payload size is checked locally before
// any transport attempt, and no failure mutates the invoice data.
func (s *Sender) Send(ctx context.Context, data invoice.Data, th theme.Theme) error {
	if data.Client.Email == "" {
		return fmt.Errorf("%w: client email is required to send", httpx.ErrValidation)
	}

	// Only this path downgrades the logo; the theme itself is not
	// modified.
	emailTheme := th
	if th.Logo != nil {
		shrunk := ShrinkLogo(*th.Logo)
		emailTheme.Logo = &shrunk
	}

	pdf, err := s.renderer.Render(document.Build(data, emailTheme))
	if err != nil {
		return fmt.Errorf("render email attachment: %w", err)
	}

	encoded := base64.StdEncoding.EncodedLen(len(pdf))
	if encoded > s.maxBytes {
		return fmt.Errorf("%w: encoded attachment is %d bytes, ceiling is %d",
			httpx.ErrPayloadTooLarge, encoded, s.maxBytes)
	}

	msg := Message{
		Recipient: data.Client.Email,
		Params:    Metadata(data, s.now()),
		Attachment: &Attachment{
			Filename: export.Filename(data.BusinessName, data.InvoiceNumber),
			Content:  pdf,
		},
	}
	return s.transport.Send(ctx, msg)
}

// Metadata assembles the structured template parameters the relay
// merges into the email body.
func Metadata(data invoice.Data, now time.Time) map[string]string {
	clientName := data.Client.Name
	if clientName == "" {
		clientName = "Valued Client"
	}
	clientPhone := data.Client.Phone
	if clientPhone == "" {
		clientPhone = "Not provided"
	}
	note := data.Note
	if note == "" {
		note = "No additional notes"
	}
	return map[string]string{
		"client_name":    clientName,
		"client_phone":   clientPhone,
		"invoice_number": data.InvoiceNumber,
		"businessName":   data.BusinessName,
		"date":           data.IssueDate.Format(emailDateFormat),
		"currency":       string(data.Currency),
		"subtotal":       fmt.Sprintf("%.2f", data.Subtotal()),
		"amount_paid":    fmt.Sprintf("%.2f", data.AmountPaid.Float64()),
		"balance_due":    fmt.Sprintf("%.2f", data.BalanceDue()),
		"note":           note,
		"year":           strconv.Itoa(now.Year()),
	}
}

var _ PDFRenderer = (*export.Exporter)(nil)
