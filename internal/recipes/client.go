// Package recipes is a client for TheMealDB-compatible recipe APIs.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"recipebox/internal/domain"
)

// maxBodySize bounds how much of a response body is read
const maxBodySize = 8 << 20

// preloadConcurrency bounds the number of category requests in flight
const preloadConcurrency = 4

// Config configures a Client
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables rate limiting
	Burst             int
	UserAgent         string
	DetailCacheSize   int // 0 disables the detail cache
	DetailCacheTTL    time.Duration
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLimiter replaces the request rate limiter. nil disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// Client talks to the recipe API
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	details *expirable.LRU[string, domain.Recipe]
	group   singleflight.Group
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &userAgentTransport{
				base:      NewTransport(nil),
				userAgent: cfg.UserAgent,
			},
		},
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	if cfg.DetailCacheSize > 0 {
		c.details = expirable.NewLRU[string, domain.Recipe](cfg.DetailCacheSize, nil, cfg.DetailCacheTTL)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns the recipes whose name matches query. No match is an empty
// slice, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Recipe, error) {
	var resp mealsResponse
	if err := c.get(ctx, "search.php", url.Values{"s": {query}}, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	recipes := toRecipes(resp.Meals)
	if c.details != nil {
		for _, r := range recipes {
			c.details.Add(r.ID, r)
		}
	}
	return recipes, nil
}

// Lookup returns the full recipe for id. Concurrent lookups of the same id
// share one request; results are cached for the configured TTL.
func (c *Client) Lookup(ctx context.Context, id string) (*domain.Recipe, error) {
	if c.details != nil {
		if r, ok := c.details.Get(id); ok {
			return &r, nil
		}
	}

	ch := c.group.DoChan(id, func() (any, error) {
		// Detached from any single caller so one cancellation does not fail
		// the others sharing the request.
		return c.fetchDetail(context.WithoutCancel(ctx), id)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		r := res.Val.(domain.Recipe)
		return &r, nil
	}
}

func (c *Client) fetchDetail(ctx context.Context, id string) (domain.Recipe, error) {
	var resp mealsResponse
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &resp); err != nil {
		return domain.Recipe{}, fmt.Errorf("lookup %s: %w", id, err)
	}
	if len(resp.Meals) == 0 {
		return domain.Recipe{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}

	r := resp.Meals[0].toRecipe()
	if c.details != nil {
		c.details.Add(id, r)
	}
	return r, nil
}

// Categories lists all recipe categories
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "categories.php", nil, &resp); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	out := make([]domain.Category, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		out = append(out, cat.toCategory())
	}
	return out, nil
}

// ByCategory lists the recipes in a category. The API only returns id, name
// and thumbnail here, so Category is filled in from the argument.
func (c *Client) ByCategory(ctx context.Context, category string) ([]domain.Recipe, error) {
	var resp mealsResponse
	if err := c.get(ctx, "filter.php", url.Values{"c": {category}}, &resp); err != nil {
		return nil, fmt.Errorf("category %q: %w", category, err)
	}

	recipes := toRecipes(resp.Meals)
	for i := range recipes {
		if recipes[i].Category == "" {
			recipes[i].Category = category
		}
	}
	return recipes, nil
}

// Random returns one random recipe
func (c *Client) Random(ctx context.Context) (*domain.Recipe, error) {
	var resp mealsResponse
	if err := c.get(ctx, "random.php", nil, &resp); err != nil {
		return nil, fmt.Errorf("random: %w", err)
	}
	if len(resp.Meals) == 0 {
		return nil, fmt.Errorf("random: %w", ErrNotFound)
	}
	r := resp.Meals[0].toRecipe()
	return &r, nil
}

// Preload fetches several categories concurrently. The first failure cancels
// the remaining requests.
func (c *Client) Preload(ctx context.Context, categories []string) (map[string][]domain.Recipe, error) {
	results := make([][]domain.Recipe, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for i, category := range categories {
		g.Go(func() error {
			recipes, err := c.ByCategory(gctx, category)
			if err != nil {
				return err
			}
			results[i] = recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.Recipe, len(categories))
	for i, category := range categories {
		out[category] = results[i]
	}
	log.Printf("Preloaded %d categories", len(out))
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, into any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := c.base.ResolveReference(&url.URL{Path: endpoint})
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{Code: resp.StatusCode, URL: u.String()}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(into); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
