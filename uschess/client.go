/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/internal"
)

const apiBase = "https://ratings-api.uschess.org"

// Client talks to the USCF ratings API through a response cache.
type Client struct {
	httpClient30day *http.Client
	httpClient1day  *http.Client
	logger          zerolog.Logger
}

func NewClient(cache httpcache.Cache, logger zerolog.Logger) *Client {
	return &Client{
		// rated events are rarely (if ever) updated after the fact
		httpClient30day: internal.NewCachedHttpClient(cache, 30*24*time.Hour, nil),
		httpClient1day:  internal.NewCachedHttpClient(cache, 24*time.Hour, nil),
		logger:          logger,
	}
}

// getJSON fetches url with hc and decodes the body into out. what names the
// resource in errors.
func (client *Client) getJSON(ctx context.Context, hc *http.Client,
	url string, what string, out any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to create %v request: %w", what, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected %v status %d: %s", what,
			resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %v JSON: %w", what, err)
	}

	return nil
}
