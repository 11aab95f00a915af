package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/smartdev09/startup-perks/internal/api"
	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/dataset"
	"github.com/smartdev09/startup-perks/internal/seo"
	"github.com/smartdev09/startup-perks/internal/web"
)

func loadStore(cfg *config.Config) (*dataset.Store, error) {
	if cfg.Dataset.Dir != "" {
		return dataset.LoadFromDir(cfg.Dataset.Dir)
	}
	return dataset.LoadDefault()
}

func runServe() error {
	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	instanceID := uuid.NewString()
	slog.Info("starting perksd",
		"version", Version,
		"instance_id", instanceID,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("dataset ready", "perks", store.Count(), "featured", len(store.Featured()))

	pages, err := web.NewHandlers(store, cfg.Site)
	if err != nil {
		return fmt.Errorf("failed to build page handlers: %w", err)
	}

	server := api.NewServer(cfg.Server, store, pages, instanceID)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("perksd stopped")
	return nil
}

// runValidate loads the dataset and reports what the loader enforces plus
// the category membership the loader only warns about. Unknown categories
// render fine but should not ship.
func runValidate(dir string, out io.Writer) error {
	var (
		store *dataset.Store
		err   error
	)
	if dir != "" {
		store, err = dataset.LoadFromDir(dir)
	} else {
		store, err = dataset.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("dataset invalid: %w", err)
	}

	unknown := 0
	for _, perk := range store.All() {
		if !perk.Category.Valid() {
			fmt.Fprintf(out, "perk %q: unknown category %q\n", perk.ID, perk.Category)
			unknown++
		}
	}
	if unknown > 0 {
		return fmt.Errorf("%d perk(s) with unknown categories", unknown)
	}

	stats := store.Stats()
	fmt.Fprintf(out, "ok: %d perks, %d featured, estimated value $%d\n",
		stats.TotalPerks, len(store.Featured()), stats.EstimatedValue)
	return nil
}

func runSitemap(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	sitemap := seo.BuildSitemap(cfg.Site, store, time.Now())
	data, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	fmt.Fprint(out, xml.Header)
	fmt.Fprintln(out, string(data))
	return nil
}
