package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paxth/paxth/internal/config"
)

func newTestClient(t *testing.T, cfg config.ScrapeConfig) *Client {
	t.Helper()
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://scrape.test/v1"
	}
	c := NewClient(cfg, nil, nil)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestFetchSuccess(t *testing.T) {
	c := newTestClient(t, config.ScrapeConfig{APIKey: "fc-test"})

	httpmock.RegisterResponder("POST", "https://scrape.test/v1/scrape",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"data": map[string]any{
				"markdown": "# Acme TV X55\n\nScreen size: 55 inch",
			},
		}))

	res, err := c.Fetch(context.Background(), "https://shop.example/acme-x55")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/acme-x55", res.URL)
	assert.Contains(t, res.Markdown, "Screen size: 55 inch")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchInvalidURLMakesNoCall(t *testing.T) {
	c := newTestClient(t, config.ScrapeConfig{})

	for _, bad := range []string{"", "not-a-url", "ftp://example.com/x", "https://"} {
		_, err := c.Fetch(context.Background(), bad)
		assert.True(t, errors.Is(err, ErrInvalidURL), "url %q", bad)
	}
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestFetchProviderStatusError(t *testing.T) {
	c := newTestClient(t, config.ScrapeConfig{})

	httpmock.RegisterResponder("POST", "https://scrape.test/v1/scrape",
		httpmock.NewStringResponder(502, "upstream blew up"))

	_, err := c.Fetch(context.Background(), "https://shop.example/p")
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 502, perr.Status)
	assert.Contains(t, perr.Error(), "upstream blew up")
}

func TestFetchEmptyContentIsProviderError(t *testing.T) {
	c := newTestClient(t, config.ScrapeConfig{})

	httpmock.RegisterResponder("POST", "https://scrape.test/v1/scrape",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"data": map[string]any{"markdown": ""},
		}))

	_, err := c.Fetch(context.Background(), "https://shop.example/p")
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Error(), "empty content")
}
