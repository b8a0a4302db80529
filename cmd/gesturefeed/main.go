// Command gesturefeed serves a gesture engine over WebSocket.
//
// Clients send pointer frames as JSON and every connected client receives
// the recognized gestures. Zones and thresholds come from a YAML file:
//
//	server:
//	  listen: 127.0.0.1:8787
//	  path: /ws
//	logging:
//	  level: debug
//	presets:
//	  carousel:
//	    swipe_threshold: 80
//	    enabled_directions: horizontal
//	zones:
//	  - id: gallery
//	    preset: carousel
//	  - id: card
//	    config:
//	      long_press_time: 700ms
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/wsfeed"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	listen := flag.String("listen", "", "override server.listen")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gesturefeed:", err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	logger, err := newLogger(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gesturefeed:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("gesturefeed exiting", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	engine := gesture.New(gesture.Options{Logger: logger})
	cfg.register(engine, func(ev gesture.Event) {
		logger.Debug("gesture", "zone", ev.ZoneID, "type", ev.Type.String())
	})
	// The stream must exist before the loop owns the engine.
	stream := engine.Events()
	loop := gesture.NewLoop(engine, cfg.Server.QueueSize)

	srv := wsfeed.NewServer(logger, wsfeed.LoopFrames(loop), wsfeed.ServerConfig{
		Hub: wsfeed.HubConfig{SendBuf: cfg.Server.SendBuf},
	})
	mux := http.NewServeMux()
	srv.Register(mux, cfg.Server.Path)
	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ignoreCanceled(loop.Run(ctx))
	})
	g.Go(func() error {
		srv.Hub().Run(ctx)
		return nil
	})
	g.Go(func() error {
		return ignoreCanceled(srv.Forward(ctx, stream))
	})
	g.Go(func() error {
		logger.Info("gesturefeed listening", "addr", cfg.Server.Listen, "path", cfg.Server.Path, "zones", len(cfg.Zones))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
