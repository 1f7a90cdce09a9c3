package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smarteventparser/internal/apis/smartevent"
	"smarteventparser/internal/bootstrap"
	"smarteventparser/internal/cache"
	"smarteventparser/internal/config"
	"smarteventparser/internal/fetch"
	httpserver "smarteventparser/internal/http-server"
	"smarteventparser/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		host       = flag.String("host", "", "override host")
		port       = flag.Int("port", 0, "override port")
	)
	flag.Parse()

	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Env:       cfg.Env,
		Service:   "smartevent-api",
	})
	slog.SetDefault(log)

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if cfg.SmartEvent.Host == "" {
		log.Error("smartevent host must not be empty (set in config.yaml or via SMARTEVENT_HOST)")
		os.Exit(1)
	}

	transport, err := bootstrap.BuildTransport(cfg, log, 10)
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	smartSvc := smartevent.New(transport, cfg.SmartEvent.Host, cfg.SmartEvent.APIVersion, log)
	store := cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	fetcher := fetch.New(smartSvc, store, log)

	api := httpserver.New(log)

	api.RegisterRoutes(httpserver.Deps{
		Fetcher:         fetcher,
		DefaultChannel:  cfg.SmartEvent.Channel,
		DefaultLanguage: cfg.SmartEvent.Language,
		Timeout:         30 * time.Second,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("api started", "addr", addr, "channel", cfg.SmartEvent.Channel)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-stop:
		log.Info("shutdown signal received", "signal", sig.String())

		// let in-flight requests finish
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			_ = srv.Close()
		}
		log.Info("server stopped gracefully")

	case err := <-errCh:

		if errors.Is(err, http.ErrServerClosed) {
			log.Info("server closed")
			return
		}
		log.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}
