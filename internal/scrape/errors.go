package scrape

import (
	"errors"
	"fmt"
)

// ErrInvalidURL indicates the input URL failed validation; no provider call
// was made.
var ErrInvalidURL = errors.New("invalid url")

// ProviderError indicates the scrape provider failed: transport error,
// non-2xx status, or empty content. Status is zero when no HTTP response was
// received.
type ProviderError struct {
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("scrape provider: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("scrape provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
