// Package mail delivers the invoice document through a transactional
// email relay. The relay handles templating and network delivery; this
// package's obligations are the metadata fields and the payload ceiling.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/invigen/invigen/internal/platform/httpx"
)

// Message is the tuple handed to the relay: recipient, structured
// metadata, and an optional attachment.
type Message struct {
	Recipient  string
	Params     map[string]string
	Attachment *Attachment
}

// Attachment is a file delivered alongside the templated body.
type Attachment struct {
	Filename string
	Content  []byte
}

// Transport sends one message to one recipient.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Relay wraps the relay service's REST API.
type Relay struct {
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
}

// NewRelay constructs a relay client.
func NewRelay(baseURL, serviceID, templateID, publicKey string) *Relay {
	return &Relay{
		baseURL:    baseURL,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send delivers one message. A relay-reported size rejection maps to
// the distinct payload-too-large error so callers can tell the user to
// shrink the logo or fall back to a manual download.
func (r *Relay) Send(ctx context.Context, msg Message) error {
	params := make(map[string]string, len(msg.Params)+3)
	for k, v := range msg.Params {
		params[k] = v
	}
	params["client_email"] = msg.Recipient
	if msg.Attachment != nil {
		params["attachment"] = base64.StdEncoding.EncodeToString(msg.Attachment.Content)
		params["attachment_name"] = msg.Attachment.Filename
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      r.serviceID,
		TemplateID:     r.templateID,
		UserID:         r.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		return fmt.Errorf("%w: relay rejected the attachment", httpx.ErrPayloadTooLarge)
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%w: relay status %d: %s", httpx.ErrTransport, resp.StatusCode, string(detail))
	}
	return nil
}
