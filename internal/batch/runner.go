// Package batch drives the fetch → extract → assemble pipeline over one or
// many records, isolating failures per record.
package batch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/paxth/paxth/internal/assemble"
	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/metrics"
	"github.com/paxth/paxth/internal/schema"
	"github.com/paxth/paxth/internal/scrape"
)

// Fetcher is the page-scrape dependency.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (scrape.Result, error)
}

// Extractor is the attribute-extraction dependency.
type Extractor interface {
	Extract(ctx context.Context, category string, content string, attrs []schema.Attribute) (extract.Result, error)
}

// Record is one unit of input: a product to look up plus any operator
// overrides keyed by attribute name.
type Record struct {
	SKU       string            `json:"sku"`
	URL       string            `json:"url"`
	Category  string            `json:"category"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Item is the outcome for one record. Exactly one of Row and Err is set.
type Item struct {
	Record Record
	Row    *assemble.Row
	Err    error
}

// Result is the outcome of a batch run, one item per input record, in input
// order.
type Result struct {
	RunID string
	Items []Item
}

// Rows returns the successful rows in input order.
func (r Result) Rows() []assemble.Row {
	var rows []assemble.Row
	for _, item := range r.Items {
		if item.Row != nil {
			rows = append(rows, *item.Row)
		}
	}
	return rows
}

// Runner executes the pipeline. Processing is sequential; the only shared
// state across records is the appended result slice.
type Runner struct {
	fetcher   Fetcher
	extractor Extractor
	metrics   *metrics.Metrics
	log       *slog.Logger
}

func NewRunner(fetcher Fetcher, extractor Extractor, m *metrics.Metrics, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		fetcher:   fetcher,
		extractor: extractor,
		metrics:   m,
		log:       log,
	}
}

// ProcessOne runs the pipeline for a single record: schema lookup, fetch,
// extract, assemble. Used directly by single-SKU mode.
func (r *Runner) ProcessOne(ctx context.Context, rec Record) (*assemble.Row, error) {
	attrs, err := schema.For(rec.Category)
	if err != nil {
		return nil, err
	}
	extractionAttrs, err := schema.ExtractionAttributes(rec.Category)
	if err != nil {
		return nil, err
	}

	scraped, err := r.fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		return nil, err
	}

	extraction, err := r.extractor.Extract(ctx, rec.Category, scraped.Markdown, extractionAttrs)
	if err != nil {
		return nil, err
	}

	row := assemble.Assemble(rec.SKU, attrs, extraction, rec.Overrides)
	r.metrics.IncRow()
	return &row, nil
}

// Run processes records sequentially, in input order. A record's failure is
// recorded at its position and never aborts the batch. On context
// cancellation the current record completes and the remaining ones are
// recorded as canceled, preserving output length and order.
func (r *Runner) Run(ctx context.Context, records []Record) Result {
	result := Result{
		RunID: uuid.NewString(),
		Items: make([]Item, 0, len(records)),
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			for _, rest := range records[i:] {
				result.Items = append(result.Items, Item{Record: rest, Err: err})
				r.metrics.IncBatchRecord(KindCanceled)
			}
			break
		}

		row, err := r.ProcessOne(ctx, rec)
		if err != nil {
			kind := Kind(err)
			r.metrics.IncError(kind)
			r.metrics.IncBatchRecord("error")
			r.log.Warn("record failed", "run_id", result.RunID, "sku", rec.SKU, "kind", kind, "error", err)
			result.Items = append(result.Items, Item{Record: rec, Err: err})
			continue
		}

		r.metrics.IncBatchRecord("ok")
		r.log.Info("record processed", "run_id", result.RunID, "sku", rec.SKU, "category", rec.Category)
		result.Items = append(result.Items, Item{Record: rec, Row: row})
	}

	return result
}
