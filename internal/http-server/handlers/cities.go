package handlers

import (
	"context"
	"net/http"
	"time"

	"smarteventparser/internal/http-server/respond"
)

// NewCitiesHandler serves GET /cities: unique city category names across
// the whole catalog, filter state ignored.
func NewCitiesHandler(opts Options) http.HandlerFunc {
	opts = opts.normalized()

	return func(w http.ResponseWriter, r *http.Request) {
		if !requireGet(w, r, opts) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		cat, ok := loadCatalog(ctx, w, r, opts)
		if !ok {
			return
		}

		cities := cat.Cities()
		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"fetched_at": time.Now().UTC().Format(time.RFC3339),
			"language":   cat.Language(),
			"count":      len(cities),
			"cities":     cities,
		})
	}
}
