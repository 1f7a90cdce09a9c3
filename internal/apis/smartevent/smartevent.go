package smartevent

import (
	"context"
	"log/slog"
	"net/http"

	"smarteventparser/internal/apis/smartevent/endpoints"
	"smarteventparser/internal/client"
)

// Service is the raw upstream API: one GET per entity action per channel.
type Service interface {
	GetEntities(ctx context.Context, action, channel string) ([]byte, error)
}

type service struct {
	api *endpoints.Client
	log *slog.Logger
}

func New(transport client.Transport, host string, version int, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{log: logger}
	s.api = endpoints.New(transport, host, version, s.applyDefaultHeaders)
	return s
}

func (s *service) applyDefaultHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smarteventparser/1.0")
}

func (s *service) GetEntities(ctx context.Context, action, channel string) ([]byte, error) {
	return s.api.GetEntities(ctx, action, channel)
}
