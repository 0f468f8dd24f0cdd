package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neolatino/neolatino-api/internal/api"
	"github.com/neolatino/neolatino-api/internal/auth"
	"github.com/neolatino/neolatino-api/internal/config"
	"github.com/neolatino/neolatino-api/internal/feed"
	"github.com/neolatino/neolatino-api/internal/store"
	"github.com/neolatino/neolatino-api/internal/ws"
)

// wsInterval is how often the WebSocket hub pushes the status document to
// connected clients, independent of feed refreshes.
const wsInterval = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("neolatino-api starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"feed_url", cfg.Feed.URL,
		"refresh_interval", cfg.Refresh.Interval,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The initial build is synchronous: the server does not come up without a
	// complete dictionary to serve.
	fetcher := feed.NewHTTPFetcher(cfg.Feed)
	st, err := store.New(ctx, fetcher)
	if err != nil {
		slog.Error("initial dictionary build failed", "err", err)
		os.Exit(1)
	}
	slog.Info("dictionary loaded", "entries", st.Len())

	// WebSocket hub — pushes the status document to connected clients.
	hub := ws.New(st, wsInterval)
	go hub.Run(ctx)

	// Background refresh loop. Failures keep the previous dataset; a
	// successful refresh is pushed to WebSocket clients immediately.
	intervals := make(chan time.Duration, 1)
	go refreshLoop(ctx, st, hub, cfg.Refresh.Interval, intervals)

	// Config watcher: a changed refresh interval is applied live; Watch
	// itself logs anything that needs a restart.
	go func() {
		err := config.Watch(ctx, *configPath, cfg, func(next *config.Config) {
			select {
			case intervals <- next.Refresh.Interval:
			default:
			}
		})
		if err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Combined HTTP server: REST API + metrics + WebSocket hub on HTTPPort.
	// The API and the hub share the same key check; /metrics stays open for
	// the scraper.
	protect := func(next http.Handler) http.Handler {
		return auth.APIKeyMiddleware(
			cfg.Server.Auth.Mode,
			cfg.Server.Auth.EffectiveHeader(),
			cfg.Server.Auth.Key(),
			next,
		)
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", protect(api.New(st)))
	httpMux.Handle("/metrics", api.Metrics(st))
	httpMux.Handle("/ws/status", protect(hub))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("neolatino-api shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}

// refreshLoop re-fetches the dictionary every interval. The interval can be
// changed at runtime through the intervals channel (config reload).
func refreshLoop(ctx context.Context, st *store.Dictionary, hub *ws.Hub, interval time.Duration, intervals <-chan time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case next := <-intervals:
			if next == interval {
				continue
			}
			slog.Info("refresh interval updated", "old", interval, "new", next)
			interval = next
			t.Reset(interval)

		case <-t.C:
			if err := st.Refresh(ctx); err != nil {
				slog.Error("scheduled refresh failed — keeping previous dataset", "err", err)
				continue
			}
			slog.Info("dictionary refreshed", "entries", st.Len())
			hub.Broadcast()
		}
	}
}
