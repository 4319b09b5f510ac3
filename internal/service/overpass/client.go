// Package overpass downloads city nodes from an Overpass API endpoint.
package overpass

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"geoquiz/internal/config"
	"geoquiz/internal/dataset"
	"geoquiz/internal/model"
)

// Cache stores raw payloads between runs
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// KeyFunc derives a cache key from endpoint and query
type KeyFunc func(endpoint, query string) string

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("overpass returned code %d: %s", e.Code, e.Body)
}

type Client struct {
	session   *http.Client
	endpoint  string
	userAgent string

	cache    Cache
	cacheKey KeyFunc
}

func NewClient(endpoint, userAgent string) *Client {
	return &Client{
		session:   &http.Client{Timeout: config.HTTPTimeout},
		endpoint:  endpoint,
		userAgent: userAgent,
	}
}

// WithHTTPClient replaces the default http client
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.session = h
	return c
}

// WithCache makes Fetch consult cache before calling the endpoint.
func (c *Client) WithCache(cache Cache, key KeyFunc) *Client {
	c.cache = cache
	c.cacheKey = key
	return c
}

// Invalidate drops the cached payload for query so the next Fetch goes to the
// endpoint. It is a no-op without a cache.
func (c *Client) Invalidate(ctx context.Context, query string) error {
	if c.cache == nil {
		return nil
	}
	key := c.cacheKey(c.endpoint, query)
	if err := c.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	log.Printf("Dropped cached Overpass payload %s", key)
	return nil
}

// Result is a validated raw payload
type Result struct {
	Payload  []byte
	Response *model.OverpassResponse
	Cached   bool
}

// Fetch sends query as a single form POST. Non-2xx responses and payloads
// without an elements array are errors; there is no retry.
func (c *Client) Fetch(ctx context.Context, query string) (*Result, error) {
	var key string
	if c.cache != nil {
		key = c.cacheKey(c.endpoint, query)
		payload, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("Overpass cache unavailable, fetching: %v", err)
		} else if ok {
			resp, err := dataset.DecodeRaw(payload)
			if err == nil {
				log.Printf("Using cached Overpass payload %s", key)
				return &Result{Payload: payload, Response: resp, Cached: true}, nil
			}
			log.Printf("Ignoring unusable cached payload %s: %v", key, err)
		}
	}

	payload, err := c.post(ctx, query)
	if err != nil {
		return nil, err
	}

	resp, err := dataset.DecodeRaw(payload)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, payload); err != nil {
			log.Printf("Failed to cache Overpass payload: %v", err)
		}
	}

	return &Result{Payload: payload, Response: resp}, nil
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
