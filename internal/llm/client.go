package llm

import (
	"context"
)

// Client is the generation contract the extraction pipeline depends on.
// Implementations wrap one hosted provider each.
type Client interface {
	Generate(ctx context.Context, system string, prompt string) (string, error)
}
