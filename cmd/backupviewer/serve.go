package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/backupviewer/internal/api"
	"github.com/MikeSquared-Agency/backupviewer/internal/config"
	"github.com/MikeSquared-Agency/backupviewer/internal/export"
	"github.com/MikeSquared-Agency/backupviewer/internal/loader"
	"github.com/MikeSquared-Agency/backupviewer/internal/notify"
	"github.com/MikeSquared-Agency/backupviewer/internal/store"
)

var (
	servePort  int
	serveFile  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the viewer and attachment server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides VIEWER_PORT)")
	serveCmd.Flags().StringVar(&serveFile, "file", "", "export to load at startup (overrides VIEWER_EXPORT_FILE)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the startup export when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveFile != "" {
		cfg.ExportFile = serveFile
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = serveWatch
	}
	setupLogging(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	slog.Info("backupviewer starting", "port", cfg.Port, "attachments_dir", cfg.AttachmentsDir, "mount", cfg.AttachmentsMount)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load events are optional; the viewer works without NATS.
	var publisher loader.Publisher
	if cfg.NatsURL != "" {
		nc, err := notify.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer nc.Close()
		publisher = nc
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, load events disabled")
	}

	st := store.New()
	ld := loader.New(st, export.Options{Location: loc}, publisher, slog.Default())

	if cfg.ExportFile != "" {
		if _, err := ld.LoadFile(ctx, cfg.ExportFile); err != nil {
			slog.Error("failed to load startup export", "path", cfg.ExportFile, "error", err)
		}
		if cfg.Watch {
			go func() {
				if err := ld.Watch(ctx, cfg.ExportFile); err != nil && ctx.Err() == nil {
					slog.Error("export watcher stopped", "error", err)
				}
			}()
		}
	}

	srv := api.NewServer(api.Options{
		Port:             cfg.Port,
		AttachmentsDir:   cfg.AttachmentsDir,
		AttachmentsMount: cfg.AttachmentsMount,
		WebRoot:          cfg.WebRoot,
		MaxUploadBytes:   cfg.MaxUploadBytes(),
	}, st, ld, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	slog.Info("backupviewer ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
	}

	slog.Info("shutting down")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
	}
	slog.Info("backupviewer stopped")
	return nil
}
