/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/internal/config"
	"github.com/mikeb26/chesssystem/s3store"
)

// OpenWebCache returns the S3 backed web cache named by cfg, or an in-memory
// cache when no bucket is configured or the bucket cannot be reached.
func OpenWebCache(ctx context.Context, cfg *config.Config,
	logger zerolog.Logger) httpcache.Cache {

	if cfg.WebCacheBucket == "" {
		return httpcache.NewMemoryCache()
	}

	store := s3store.New(ctx, cfg.WebCacheBucket, s3store.WithGzip(cfg.CacheGzip),
		s3store.WithLogger(logger))
	if err := store.Init(); err != nil {
		logger.Warn().Err(err).Str("bucket", cfg.WebCacheBucket).
			Msg("httpcache: failed to init S3 cache; falling back to in-memory cache")
		return httpcache.NewMemoryCache()
	}

	return store.Cache()
}

// NewCachedHttpClient returns an http.Client caching responses in cache for
// maxAge regardless of what the origin says. base is the transport used on
// a miss; nil means http.DefaultTransport.
func NewCachedHttpClient(cache httpcache.Cache, maxAge time.Duration,
	base http.RoundTripper) *http.Client {

	if base == nil {
		base = http.DefaultTransport
	}

	hc := httpcache.NewTransport(cache)
	// origin headers may say not to cache; override them before httpcache
	// sees the response
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: base,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so the caller's request is left alone
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
