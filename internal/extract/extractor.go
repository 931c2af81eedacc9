// Package extract turns scraped markdown into attribute values via an LLM
// provider.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/paxth/paxth/internal/config"
	"github.com/paxth/paxth/internal/llm"
	"github.com/paxth/paxth/internal/metrics"
	"github.com/paxth/paxth/internal/schema"
)

// Result maps attribute name to an ordered candidate list. Every requested
// attribute has an entry; attributes without evidence map to an empty list.
type Result map[string][]string

type Extractor struct {
	LLM             llm.Client
	Prompts         config.ExtractionPrompts
	MaxContentChars int
	Metrics         *metrics.Metrics
	Log             *slog.Logger
}

func NewExtractor(client llm.Client, prompts config.ExtractionPrompts, maxContentChars int, m *metrics.Metrics, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	if maxContentChars <= 0 {
		maxContentChars = 15000
	}
	return &Extractor{
		LLM:             client,
		Prompts:         prompts,
		MaxContentChars: maxContentChars,
		Metrics:         m,
		Log:             log,
	}
}

// Extract requests a value for every attribute in attrs. The result carries
// one entry per attribute, in-schema attributes only; anything else the
// provider volunteers is dropped.
func (e *Extractor) Extract(ctx context.Context, category string, content string, attrs []schema.Attribute) (Result, error) {
	system, prompt := e.buildPrompt(category, content, attrs)

	e.Metrics.IncRequest("llm")
	start := time.Now()
	response, err := e.LLM.Generate(ctx, system, prompt)
	e.Metrics.ObserveDuration("llm", time.Since(start))
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	parsed, err := parseObject(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := make(Result, len(attrs))
	for _, a := range attrs {
		result[a.Name] = candidates(parsed[a.Name])
	}

	e.Log.Debug("extracted", "category", category, "attributes", len(attrs))
	return result, nil
}

func (e *Extractor) buildPrompt(category string, content string, attrs []schema.Attribute) (system string, prompt string) {
	var lines []string
	hinted := false
	for _, a := range attrs {
		if a.Hint != "" {
			hinted = true
			lines = append(lines, fmt.Sprintf("- %s: %s", a.Name, a.Hint))
		} else {
			lines = append(lines, fmt.Sprintf("- %s", a.Name))
		}
	}

	system = e.Prompts.System
	if hinted {
		system = e.Prompts.SystemHinted
	}
	prompt = fmt.Sprintf(e.Prompts.User, category, strings.Join(lines, "\n"), truncate(content, e.MaxContentChars))
	return system, prompt
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for !utf8.ValidString(cut) && len(cut) > 0 {
		cut = cut[:len(cut)-1]
	}
	return cut
}
