// Package crossref is a rate-limited client for the Crossref works
// API. Searches resolve a free-text query plus filters to the best
// ranked record; identifier lookups resolve an exact DOI.
package crossref

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// PolitenessInterval is the minimum spacing between outbound
	// requests, per Crossref API etiquette.
	PolitenessInterval = 100 * time.Millisecond

	// SearchRows is how many ranked results a search requests.
	SearchRows = 5
)

// Client is a rate-limited HTTP client for the Crossref works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto attaches a contact address to every request. Crossref
// routes identified callers through its polite priority pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new Crossref works API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(PolitenessInterval), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchWorks resolves a free-text query and filter set to the best
// ranked work. An empty result list is not an error: it returns
// (nil, nil) so callers can distinguish absent from failed.
func (c *Client) SearchWorks(ctx context.Context, query string, filters Filters) (*Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	b := requests.
		URL(c.baseURL+"/works").
		Client(c.httpClient).
		UserAgent(c.userAgent()).
		Accept("application/json").
		Param("query", query).
		ParamInt("rows", SearchRows).
		Param("sort", "score").
		Param("order", "desc")
	if f := filters.Encode(); f != "" {
		b = b.Param("filter", f)
	}
	if c.mailto != "" {
		b = b.Param("mailto", c.mailto)
	}

	var resp worksResponse
	if err := b.ToJSON(&resp).Fetch(ctx); err != nil {
		return nil, classify(err)
	}

	if len(resp.Message.Items) == 0 {
		return nil, nil
	}
	first := resp.Message.Items[0]
	return &first, nil
}

// WorkByDOI fetches the single work registered under doi. Returns
// ErrNotFound when the DOI resolves to no record.
func (c *Client) WorkByDOI(ctx context.Context, doi string) (*Work, error) {
	doi = NormalizeDOI(doi)
	if doi == "" {
		return nil, ErrNotFound
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	b := requests.
		URL(c.baseURL+"/works/"+url.PathEscape(doi)).
		Client(c.httpClient).
		UserAgent(c.userAgent()).
		Accept("application/json")
	if c.mailto != "" {
		b = b.Param("mailto", c.mailto)
	}

	var resp workResponse
	if err := b.ToJSON(&resp).Fetch(ctx); err != nil {
		return nil, classify(err)
	}
	return &resp.Message, nil
}

// userAgent builds a habanero-style identifying User-Agent, including
// the mailto address when one is configured.
func (c *Client) userAgent() string {
	if c.mailto != "" {
		return fmt.Sprintf("fixbibtex (https://github.com/jaimergp/fixbibtex; mailto:%s)", c.mailto)
	}
	return "fixbibtex (https://github.com/jaimergp/fixbibtex)"
}

// classify maps transport-layer errors onto the package sentinels so
// callers can branch without knowing the HTTP library. Non-success
// statuses carry an *APIError preserving the status code.
func classify(err error) error {
	var re *requests.ResponseError
	if errors.As(err, &re) {
		apiErr := &APIError{
			StatusCode: re.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", re.StatusCode),
		}
		switch re.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, apiErr)
		default:
			return fmt.Errorf("%w: %w", ErrAPIError, apiErr)
		}
	}
	switch {
	case errors.Is(err, requests.ErrHandler):
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	case errors.Is(err, requests.ErrTransport):
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	case errors.Is(err, requests.ErrValidator):
		return fmt.Errorf("%w: %v", ErrAPIError, err)
	default:
		return err
	}
}

// NormalizeDOI normalizes a DOI for lookup. It removes common URL
// prefixes (https://doi.org/, doi:) and converts to lowercase.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
