package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"smarteventparser/internal/catalog"
	"smarteventparser/internal/http-server/query"
	"smarteventparser/internal/http-server/respond"
	"smarteventparser/internal/repository"
)

// NewEventsHandler serves GET /events: the visible event list for a
// channel, optionally narrowed by date, category names (match=or|and)
// and excluded ids. The date and category filters are alternatives; a
// date wins when both are sent. Exclusion composes on top of either.
func NewEventsHandler(opts Options) http.HandlerFunc {
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

		if date, ok := query.String(r, "date"); ok {
			cat.FindByDate(date)
		} else if names, ok := query.Strings(r, "categories"); ok {
			mode := catalog.MatchOR
			if m, _ := query.String(r, "match"); strings.EqualFold(m, "and") {
				mode = catalog.MatchAND
			}
			cat.FindByCategoryName(names, mode)
		}
		if ids, ok := query.Strings(r, "exclude"); ok {
			cat.Exclude(ids)
		}

		events := cat.Events()
		respond.WriteJSON(w, http.StatusOK, repository.EventsResult{
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
			Channel:   repository.FromChannel(cat.Channel()),
			Language:  cat.Language(),
			Events:    repository.FromEvents(events),
			Count:     len(events),
		})
	}
}
