// Package invoicehttp exposes the invoice editing session over HTTP.
package invoicehttp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/document"
	"github.com/invigen/invigen/internal/export"
	"github.com/invigen/invigen/internal/invoice"
	"github.com/invigen/invigen/internal/platform/httpx"
	"github.com/invigen/invigen/internal/theme"
)

// Previewer renders the document tree as HTML.
type Previewer interface {
	Render(w io.Writer, doc document.Document) error
}

// PDFExporter serializes the document tree to PDF bytes.
type PDFExporter interface {
	Render(doc document.Document) ([]byte, error)
}

// EmailSender delivers the invoice to the billed client.
type EmailSender interface {
	Send(ctx context.Context, data invoice.Data, th theme.Theme) error
}

// Handler serves the editing-session endpoints.
type Handler struct {
	logger      *slog.Logger
	store       *invoice.Store
	validate    *validator.Validate
	brandFooter assets.Asset
	previewer   Previewer
	exporter    PDFExporter
	sender      EmailSender
}

// NewHandler wires the session store and the three output adapters.
func NewHandler(logger *slog.Logger, store *invoice.Store, brandFooter assets.Asset, previewer Previewer, exporter PDFExporter, sender EmailSender) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		store:       store,
		validate:    validator.New(),
		brandFooter: brandFooter,
		previewer:   previewer,
		exporter:    exporter,
		sender:      sender,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusCreated, sessionResponse(s.ID, data, th))
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusOK, sessionResponse(s.ID, data, th))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := s.Update(req.apply); err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusOK, sessionResponse(s.ID, data, th))
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	s.AddItem()
	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusOK, sessionResponse(s.ID, data, th))
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: item index must be an integer", httpx.ErrValidation))
		return
	}
	if err := s.RemoveItem(index); err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusOK, sessionResponse(s.ID, data, th))
}

// handleDiscard ends an editing session immediately instead of waiting
// for TTL expiry. Discarding an unknown id is a no-op.
func (h *Handler) handleDiscard(w http.ResponseWriter, r *http.Request) {
	h.store.Drop(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// handleSaveTheme accepts the customizer form: an accent choice plus an
// optional logo upload. Omitting the file keeps a previously saved logo.
func (h *Handler) handleSaveTheme(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := r.ParseMultipartForm(theme.MaxLogoBytes + 512*1024); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: expected multipart form", httpx.ErrValidation))
		return
	}

	logo, err := h.logoFromForm(r, s)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resolved, err := theme.Resolve(r.FormValue("accent"), logo, h.brandFooter)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	s.SaveTheme(resolved)

	data, th := s.Snapshot()
	httpx.JSON(w, http.StatusOK, sessionResponse(s.ID, data, th))
}

// logoFromForm reads the uploaded logo, or carries the existing one
// forward when the form omits the file.
func (h *Handler) logoFromForm(r *http.Request, s *invoice.Session) (*assets.Asset, error) {
	file, header, err := r.FormFile("logo")
	if err == http.ErrMissingFile {
		_, saved := s.Snapshot()
		if saved != nil {
			return saved.Logo, nil
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable logo upload", httpx.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, theme.MaxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable logo upload", httpx.ErrValidation)
	}
	return &assets.Asset{
		Ref:  header.Filename,
		MIME: header.Header.Get("Content-Type"),
		Data: data,
	}, nil
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	doc := document.Build(data, h.themeOrDefault(th))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.previewer.Render(w, doc); err != nil {
		h.logger.Warn("render preview", slog.Any("error", err))
	}
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	if data.BusinessName == "" || data.InvoiceNumber == "" {
		httpx.RespondError(w, fmt.Errorf("%w: business name and invoice number are required before download", httpx.ErrValidation))
		return
	}

	doc := document.Build(data, h.themeOrDefault(th))
	pdfBytes, err := h.exporter.Render(doc)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(data.BusinessName, data.InvoiceNumber)))
	if _, err := w.Write(pdfBytes); err != nil {
		h.logger.Warn("write pdf", slog.Any("error", err))
	}
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	data, th := s.Snapshot()
	if err := h.sender.Send(r.Context(), data, h.themeOrDefault(th)); err != nil {
		h.logger.Error("send invoice", slog.String("session", s.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) session(r *http.Request) (*invoice.Session, error) {
	return h.store.Get(chi.URLParam(r, "sessionID"))
}

// themeOrDefault falls back to the neutral default when the user never
// opened the customizer.
func (h *Handler) themeOrDefault(th *theme.Theme) theme.Theme {
	if th != nil {
		return *th
	}
	return theme.Default(h.brandFooter)
}
