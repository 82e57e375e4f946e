package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmorenov/ragchat/internal/adapters/cli"
	"github.com/dmorenov/ragchat/internal/bootstrap"
	"github.com/dmorenov/ragchat/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		server := &http.Server{
			Addr:        ":" + cfg.MetricsPort,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	if app.Watcher != nil {
		go func() {
			if err := app.Watcher.Run(ctx, cfg.WatchDir); err != nil {
				log.Printf("watcher error: %v", err)
			}
		}()
	}

	repl := cli.NewREPL(app.Docs, app.Chat, app.AvailabilityState, cfg.Extensions(), os.Stdin, os.Stdout)
	if err := repl.Run(ctx); err != nil {
		log.Fatalf("repl error: %v", err)
	}
}
