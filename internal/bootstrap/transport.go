package bootstrap

import (
	"log/slog"
	"time"

	"smarteventparser/internal/client"
	"smarteventparser/internal/client/transport"
	"smarteventparser/internal/config"
)

func BuildTransport(cfg *config.Config, log *slog.Logger, concurrency int) (transport.Transport, error) {
	log.Info("profile",
		"env", cfg.Env,
		"host", cfg.SmartEvent.Host,
		"api_version", cfg.SmartEvent.APIVersion,
		"retries", cfg.HTTP.Retries,
	)

	httpClient := client.NewHTTPClient(
		time.Duration(cfg.HTTP.ConnectTimeoutSeconds)*time.Second,
		time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second,
		time.Duration(cfg.HTTP.DNSCacheSeconds)*time.Second,
	)

	return client.Build(client.Options{
		HTTPClient: httpClient,
		Retries:    cfg.HTTP.Retries,
		Workers:    concurrency,
		Logger:     log,
	})
}
