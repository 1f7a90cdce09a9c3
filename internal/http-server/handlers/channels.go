package handlers

import (
	"context"
	"net/http"
	"time"

	"smarteventparser/internal/http-server/respond"
	"smarteventparser/internal/repository"
)

// NewChannelsHandler serves GET /channels: every sales channel the
// loaded catalog knows about.
func NewChannelsHandler(opts Options) http.HandlerFunc {
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

		type channelView struct {
			Code            string   `json:"code"`
			Name            string   `json:"name,omitempty"`
			Description     string   `json:"description,omitempty"`
			Enabled         bool     `json:"enabled"`
			ContactEmail    string   `json:"contact_email,omitempty"`
			BaseCurrency    string   `json:"base_currency,omitempty"`
			DefaultLanguage string   `json:"default_language,omitempty"`
			Currencies      []string `json:"currencies,omitempty"`
			Languages       []string `json:"languages,omitempty"`
		}

		channels := cat.Channels()
		out := make([]channelView, 0, len(channels))
		for _, ch := range channels {
			out = append(out, channelView{
				Code:            ch.Code(),
				Name:            ch.Name(),
				Description:     ch.Description(),
				Enabled:         ch.Enabled(),
				ContactEmail:    ch.ContactEmail(),
				BaseCurrency:    ch.BaseCurrency(),
				DefaultLanguage: ch.DefaultLanguage(),
				Currencies:      ch.Currencies(),
				Languages:       ch.Languages(),
			})
		}

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"fetched_at": time.Now().UTC().Format(time.RFC3339),
			"active":     repository.FromChannel(cat.Channel()),
			"count":      len(out),
			"channels":   out,
		})
	}
}
