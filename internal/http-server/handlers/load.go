package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"smarteventparser/internal/apis/smartevent/endpoints"
	"smarteventparser/internal/catalog"
	"smarteventparser/internal/http-server/query"
	"smarteventparser/internal/http-server/respond"
)

// Options wires one handler: the fetcher the per-request catalog loads
// through plus the channel/language defaults used when the query string
// does not override them.
type Options struct {
	Log             *slog.Logger
	Fetcher         catalog.Fetcher
	DefaultChannel  string
	DefaultLanguage string
	Timeout         time.Duration
}

func (o Options) normalized() Options {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// loadCatalog builds a request-scoped catalog so filter calls never leak
// visibility state between requests. It writes the error response itself
// when loading fails.
func loadCatalog(ctx context.Context, w http.ResponseWriter, r *http.Request, opts Options) (*catalog.Catalog, bool) {
	channel := opts.DefaultChannel
	if v, ok := query.String(r, "channel"); ok {
		channel = v
	}
	language := opts.DefaultLanguage
	if v, ok := query.String(r, "language"); ok {
		language = v
	}
	if channel == "" {
		respond.WriteBadRequest(w, "channel is required")
		return nil, false
	}

	cat := catalog.New(opts.Fetcher, opts.Log)
	if err := cat.LoadData(ctx, channel, language); err != nil {
		writeLoadError(w, opts.Log, err, channel, language)
		return nil, false
	}
	return cat, true
}

func writeLoadError(w http.ResponseWriter, log *slog.Logger, err error, channel, language string) {
	switch {
	case errors.Is(err, catalog.ErrChannelNotFound):
		respond.WriteError(w, http.StatusNotFound, "channel_not_found", "channel "+channel+" not found")
	case errors.Is(err, catalog.ErrLanguageNotFound):
		respond.WriteError(w, http.StatusBadRequest, "language_not_found", "language "+language+" not available")
	default:
		var apiErr *endpoints.APIError
		if errors.As(err, &apiErr) {
			respond.WriteError(w, http.StatusBadGateway, "upstream_error", apiErr.Error())
			return
		}
		log.Error("catalog load failed", "err", err, "channel", channel, "language", language)
		respond.WriteInternalError(w)
	}
}

func requireGet(w http.ResponseWriter, r *http.Request, opts Options) bool {
	if r.Method != http.MethodGet {
		respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
		return false
	}
	if opts.Fetcher == nil {
		opts.Log.Error("handler misconfigured: fetcher is nil", "path", r.URL.Path)
		respond.WriteInternalError(w)
		return false
	}
	return true
}
