package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/mdnotebook/internal/api"
	"github.com/dgallion1/mdnotebook/internal/events"
	"github.com/dgallion1/mdnotebook/internal/notebook"
	"github.com/urfave/cli/v2"
)

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := newLogger(c.App.Writer, cfg, false)
	if err != nil {
		return err
	}

	sink := events.NewLogSink(log)
	svc := notebook.NewService(notebook.NewFileStore(cfg.NotebookPath), sink, log)
	srv := api.NewServer(svc, log, cfg)

	httpServer := &http.Server{
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	sink.Emit(ctx, events.Event{
		Kind:    events.ServerStarted,
		Message: "notebook server started",
		Attrs:   map[string]string{"addr": ln.Addr().String(), "notebook": cfg.NotebookPath},
	})

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}

	sink.Emit(shutdownCtx, events.Event{
		Kind:    events.ServerStopped,
		Message: "notebook server stopped",
		Attrs:   map[string]string{"addr": ln.Addr().String()},
	})
	return nil
}
