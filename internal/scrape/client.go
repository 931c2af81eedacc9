// Package scrape turns a product URL into filtered markdown. Two fetch
// methods are available: a direct fetcher that downloads and renders the
// page itself, and a hosted scraping provider treated as an opaque HTTP
// API. The Manager picks between them.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paxth/paxth/internal/config"
	"github.com/paxth/paxth/internal/metrics"
)

// Result is one scraped page: the source URL and filtered markdown content.
// ArchiveFile is the on-disk copy when archiving is enabled.
type Result struct {
	URL         string
	Markdown    string
	ArchiveFile string
}

// Client issues requests against the hosted scraping provider. It performs
// no retries; retry policy, if any, belongs to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	metrics    *metrics.Metrics
	log        *slog.Logger
	now        func() time.Time
}

func NewClient(cfg config.ScrapeConfig, m *metrics.Metrics, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Data struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// ValidateURL reports whether rawURL is a dispatchable http(s) URL.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidURL, rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: %q: missing host", ErrInvalidURL, rawURL)
	}
	return nil
}

// Fetch scrapes one URL into markdown. The URL is validated before any
// network call; provider failures come back as *ProviderError.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return Result{URL: rawURL}, err
	}

	body, err := json.Marshal(scrapeRequest{URL: rawURL, Formats: []string{"markdown"}})
	if err != nil {
		return Result{URL: rawURL}, &ProviderError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return Result{URL: rawURL}, &ProviderError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.metrics.IncRequest("scrape")
	start := c.now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration("scrape", time.Since(start))
	if err != nil {
		return Result{URL: rawURL}, &ProviderError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{URL: rawURL}, &ProviderError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", strings.TrimSpace(string(snippet))),
		}
	}

	var decoded scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{URL: rawURL}, &ProviderError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	markdown := FilterMarkdown(decoded.Data.Markdown)
	if markdown == "" {
		return Result{URL: rawURL}, &ProviderError{Status: resp.StatusCode, Err: fmt.Errorf("empty content for %s", rawURL)}
	}

	c.log.Debug("scraped", "url", rawURL, "raw_chars", len(decoded.Data.Markdown), "filtered_chars", len(markdown))

	return Result{URL: rawURL, Markdown: markdown}, nil
}
