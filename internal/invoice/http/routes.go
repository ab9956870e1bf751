package invoicehttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Download and send renders are the expensive paths; keep them behind a
// tighter per-IP limit than the form mutations.
const (
	renderRateLimit  = 10
	renderRateWindow = time.Minute
)

// MountRoutes registers the session endpoints under /api/sessions.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(renderRateLimit, renderRateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleShow)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDiscard)
			r.Post("/items", h.handleAddItem)
			r.Delete("/items/{index}", h.handleRemoveItem)
			r.Put("/theme", h.handleSaveTheme)
			r.Get("/preview", h.handlePreview)
			r.Group(func(gr chi.Router) {
				gr.Use(limiter)
				gr.Get("/download", h.handleDownload)
				gr.Post("/send", h.handleSend)
			})
		})
	})
}
