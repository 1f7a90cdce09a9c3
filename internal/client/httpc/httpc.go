package httpc

import (
	"net"
	"net/http"
	"time"
)

type Options struct {
	ConnectTimeout time.Duration
	TotalTimeout   time.Duration
	DNSCacheTTL    time.Duration // kept short; the upstream sits behind a rotating LB
}

func New(opts Options) *http.Client {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 2 * time.Second
	}
	if opts.TotalTimeout <= 0 {
		opts.TotalTimeout = 4 * time.Second
	}

	keepAlive := opts.DNSCacheTTL
	if keepAlive <= 0 {
		keepAlive = time.Second
	}

	tr := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: keepAlive,
		}).DialContext,

		TLSHandshakeTimeout:   opts.ConnectTimeout,
		ResponseHeaderTimeout: opts.TotalTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     keepAlive,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   opts.TotalTimeout,
	}
}
