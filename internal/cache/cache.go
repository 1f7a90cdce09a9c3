// Package cache is a small file-backed TTL store for raw upstream
// responses. One entry per key, stored as a JSON envelope so the expiry
// survives process restarts.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultTTL = 300 * time.Second

type envelope struct {
	ExpiresAt time.Time `json:"expires_at"`
	Payload   []byte    `json:"payload"`
}

type Store struct {
	dir string
	ttl time.Duration
	log *slog.Logger

	now func() time.Time
}

func New(dir string, ttl time.Duration, log *slog.Logger) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{dir: dir, ttl: ttl, log: log, now: time.Now}
}

// Store writes the payload under key with a fresh TTL. Writes go through
// a temp file and a rename so readers never see a torn entry.
func (s *Store) Store(key string, payload []byte) error {
	b, err := json.Marshal(envelope{
		ExpiresAt: s.now().Add(s.ttl),
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cache store %s: %w", key, err)
	}
	return nil
}

// Retrieve returns the stored payload. Expired entries are only handed
// out when allowStale is set; that path backs the degraded mode used when
// the upstream is down.
func (s *Store) Retrieve(key string, allowStale bool) ([]byte, bool) {
	env, ok := s.read(key)
	if !ok {
		return nil, false
	}
	if !allowStale && s.now().After(env.ExpiresAt) {
		return nil, false
	}
	return env.Payload, true
}

// IsExpired reports whether the key needs a refresh; missing counts as
// expired.
func (s *Store) IsExpired(key string) bool {
	env, ok := s.read(key)
	if !ok {
		return true
	}
	return s.now().After(env.ExpiresAt)
}

func (s *Store) read(key string) (envelope, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		s.log.Warn("dropping corrupt cache entry", "key", key, "err", err)
		_ = os.Remove(s.path(key))
		return envelope{}, false
	}
	return env, true
}

func (s *Store) path(key string) string {
	// keys are "{kind}-{channel}"; keep anything surprising out of the
	// file name
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.dir, safe+".cache.json")
}
