// Command kanacheck-server provides an HTTP REST API for kanacheck.
//
// Configuration comes from the environment:
//
//	PORT=8080 LOG_LEVEL=debug kanacheck-server
//	KANACHECK_ALLOW_FILE=/etc/kanacheck/allow.yaml KANACHECK_STRICT=true kanacheck-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alfex4936/kanacheck/internal/allow"
	"github.com/Alfex4936/kanacheck/internal/config"
	"github.com/Alfex4936/kanacheck/kanacheck"
	serverhttp "github.com/Alfex4936/kanacheck/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFile)

	srv := kanacheck.NewServer(logger, nil, cfg.StrictMode)
	if cfg.AllowFile != "" {
		f, err := watchAllowFile(cfg.AllowFile, srv, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.AllowFile).Msg("allow list")
		}
		defer f.Close()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           serverhttp.NewRouter(cfg, logger, srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Bool("strict", cfg.StrictMode).
		Str("allow_file", cfg.AllowFile).
		Msg("server starting")

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	logger.Info().Msg("bye")
}

// watchAllowFile loads the server allow list and swaps it in on every
// good edit. A broken edit is logged and the old list stays.
func watchAllowFile(path string, srv *kanacheck.Server, logger zerolog.Logger) (*allow.File, error) {
	f, err := allow.OpenFile(path)
	if err != nil {
		return nil, err
	}
	srv.SetAllow(f.List())
	f.OnChange(func(list []string) {
		srv.SetAllow(list)
		logger.Info().Str("file", path).Int("entries", len(list)).Msg("allow list reloaded")
	})
	if err := f.Watch(); err != nil {
		f.Close()
		return nil, err
	}
	go func() {
		for err := range f.Errors() {
			logger.Error().Err(err).Str("file", path).Msg("allow list reload failed")
		}
	}()
	logger.Info().Str("file", path).Int("entries", len(f.List())).Msg("allow list loaded")
	return f, nil
}
