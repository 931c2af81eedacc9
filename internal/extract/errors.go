package extract

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the provider answered but the response could
// not be parsed into the attribute→candidates shape.
var ErrMalformedResponse = errors.New("malformed extraction response")

// ProviderError indicates the extraction provider call itself failed.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("extraction provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
