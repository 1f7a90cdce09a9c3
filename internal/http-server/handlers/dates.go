package handlers

import (
	"context"
	"net/http"
	"time"

	"smarteventparser/internal/http-server/query"
	"smarteventparser/internal/http-server/respond"
)

// NewDatesHandler serves GET /dates: unique ascending event dates, plus
// the capped first/last pair used for calendar bounds. An optional
// `variants` list narrows the dates to the events behind those master
// variant ids.
func NewDatesHandler(opts Options) http.HandlerFunc {
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

		variantIDs, _ := query.Strings(r, "variants")
		dates := cat.EventDates(variantIDs)

		body := map[string]any{
			"fetched_at": time.Now().UTC().Format(time.RFC3339),
			"count":      len(dates),
			"dates":      dates,
		}
		if first, last, ok := cat.FirstAndLastDate(); ok {
			body["first"] = first.Format("2006-01-02")
			body["last"] = last.Format("2006-01-02")
		}

		respond.WriteJSON(w, http.StatusOK, body)
	}
}
