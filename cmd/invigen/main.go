package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invigen/invigen/internal/app"
	"github.com/invigen/invigen/internal/assets"
	"github.com/invigen/invigen/internal/export"
	"github.com/invigen/invigen/internal/invoice"
	invoicehttp "github.com/invigen/invigen/internal/invoice/http"
	"github.com/invigen/invigen/internal/mail"
	"github.com/invigen/invigen/internal/preview"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	fetcher := assets.NewFetcher()
	brandFooter, err := fetcher.Fetch(ctx, cfg.BrandFooterRef)
	if err != nil {
		// Renders degrade to a text-only footer; no reason to refuse startup.
		logger.Warn("resolve brand footer", slog.String("ref", cfg.BrandFooterRef), slog.Any("error", err))
	}

	previewer, err := preview.NewRenderer()
	if err != nil {
		logger.Error("parse preview templates", slog.Any("error", err))
		os.Exit(1)
	}

	exporter := export.New(cfg.FontDir)
	if !exporter.UnicodeReady() {
		logger.Warn("unicode fonts unavailable, some currency symbols will degrade", slog.String("dir", cfg.FontDir))
	}

	relay := mail.NewRelay(cfg.RelayURL, cfg.RelayServiceID, cfg.RelayTemplate, cfg.RelayPublicKey)
	sender := mail.NewSender(relay, exporter, cfg.MailMaxAttachmentBytes)

	store := invoice.NewStore(cfg.SessionTTL)
	handler := invoicehttp.NewHandler(logger, store, brandFooter, previewer, exporter, sender)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		InvoiceHandler: handler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
