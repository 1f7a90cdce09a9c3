package query

import (
	"net/http"
	"strings"
)

func String(r *http.Request, key string) (val string, present bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Strings reads a comma-separated list parameter, dropping empty items.
func Strings(r *http.Request, key string) (vals []string, present bool) {
	raw, ok := String(r, key)
	if !ok {
		return nil, false
	}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			vals = append(vals, part)
		}
	}
	return vals, len(vals) > 0
}
