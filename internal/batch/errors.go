package batch

import (
	"context"
	"errors"

	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/schema"
	"github.com/paxth/paxth/internal/scrape"
)

// Error kind labels, used in batch results, HTTP responses, the export error
// column and metrics.
const (
	KindUnknownCategory = "unknown_category"
	KindInvalidURL      = "invalid_url"
	KindScrapeProvider  = "scrape_provider_error"
	KindExtractProvider = "extraction_provider_error"
	KindMalformed       = "malformed_response"
	KindCanceled        = "canceled"
	KindOther           = "other"
)

// Kind classifies a pipeline error into its label. Every error the pipeline
// produces maps to one of the known kinds; anything else is "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, schema.ErrUnknownCategory):
		return KindUnknownCategory
	case errors.Is(err, scrape.ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, extract.ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}

	var scrapeErr *scrape.ProviderError
	if errors.As(err, &scrapeErr) {
		return KindScrapeProvider
	}
	var extractErr *extract.ProviderError
	if errors.As(err, &extractErr) {
		return KindExtractProvider
	}
	return KindOther
}
