package client

import (
	"log/slog"
	"net/http"
	"time"

	"smarteventparser/internal/client/httpc"
	"smarteventparser/internal/client/transport"
)

type Transport = transport.Transport

type Options struct {
	HTTPClient *http.Client
	Retries    int
	Workers    int

	BaseDelay time.Duration
	MaxDelay  time.Duration

	Logger *slog.Logger
}

func Build(opts Options) (Transport, error) {
	return transport.Build(transport.Options{
		HTTPClient:  opts.HTTPClient,
		Retries:     opts.Retries,
		Concurrency: opts.Workers,
		BaseDelay:   opts.BaseDelay,
		MaxDelay:    opts.MaxDelay,
		Logger:      opts.Logger,
	})
}

func NewHTTPClient(connectTimeout, totalTimeout, dnsCacheTTL time.Duration) *http.Client {
	return httpc.New(httpc.Options{
		ConnectTimeout: connectTimeout,
		TotalTimeout:   totalTimeout,
		DNSCacheTTL:    dnsCacheTTL,
	})
}
