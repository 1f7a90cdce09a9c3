package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client speaks the versioned openapi surface of a SmartEvent backend:
// GET {host}/openapi/v{version}/{action}?channel={code}.
type Client struct {
	Doer         Doer
	Host         string
	Version      int
	ApplyHeaders func(*http.Request)
}

func New(doer Doer, host string, version int, applyHeaders func(*http.Request)) *Client {
	if version <= 0 {
		version = 1
	}
	return &Client{
		Doer:         doer,
		Host:         strings.TrimRight(host, "/"),
		Version:      version,
		ApplyHeaders: applyHeaders,
	}
}

func (c *Client) newReq(ctx context.Context, method, path string) (*http.Request, error) {
	if c.Host == "" {
		return nil, fmt.Errorf("host is empty")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Host+path, nil)
	if err != nil {
		return nil, err
	}
	if c.ApplyHeaders != nil {
		c.ApplyHeaders(req)
	}
	return req, nil
}
