package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/schema"
	"github.com/paxth/paxth/internal/scrape"
)

type fakeFetcher struct {
	calls   int
	failURL string
	err     error
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (scrape.Result, error) {
	f.calls++
	if err := scrape.ValidateURL(rawURL); err != nil {
		return scrape.Result{URL: rawURL}, err
	}
	if rawURL == f.failURL {
		return scrape.Result{URL: rawURL}, f.err
	}
	return scrape.Result{URL: rawURL, Markdown: "# Product\nBrand: Acme"}, nil
}

type fakeExtractor struct {
	calls  int
	err    error
	values map[string][]string
}

func (f *fakeExtractor) Extract(ctx context.Context, category string, content string, attrs []schema.Attribute) (extract.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(extract.Result, len(attrs))
	for _, a := range attrs {
		result[a.Name] = f.values[a.Name]
	}
	return result, nil
}

func record(sku, url string) Record {
	return Record{SKU: sku, URL: url, Category: "TV"}
}

func TestRunBatchIsolation(t *testing.T) {
	fetcher := &fakeFetcher{}
	extractor := &fakeExtractor{values: map[string][]string{"brand": {"Acme"}}}
	runner := NewRunner(fetcher, extractor, nil, nil)

	records := []Record{
		record("SKU-1", "https://shop.example/1"),
		record("SKU-2", "not a url"),
		record("SKU-3", "https://shop.example/3"),
	}
	result := runner.Run(context.Background(), records)

	require.Len(t, result.Items, 3)
	assert.NotEmpty(t, result.RunID)

	assert.NotNil(t, result.Items[0].Row)
	assert.NoError(t, result.Items[0].Err)

	assert.Nil(t, result.Items[1].Row)
	assert.Equal(t, KindInvalidURL, Kind(result.Items[1].Err))

	assert.NotNil(t, result.Items[2].Row)
	assert.Equal(t, "SKU-3", result.Items[2].Row.SKU)
}

func TestRunPreservesInputOrder(t *testing.T) {
	fetcher := &fakeFetcher{}
	extractor := &fakeExtractor{}
	runner := NewRunner(fetcher, extractor, nil, nil)

	var records []Record
	for i := 0; i < 5; i++ {
		records = append(records, record(fmt.Sprintf("SKU-%d", i), fmt.Sprintf("https://shop.example/%d", i)))
	}
	result := runner.Run(context.Background(), records)

	require.Len(t, result.Items, 5)
	for i, item := range result.Items {
		assert.Equal(t, records[i].SKU, item.Record.SKU)
	}
}

func TestRunUnknownCategorySkipsFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	runner := NewRunner(fetcher, &fakeExtractor{}, nil, nil)

	result := runner.Run(context.Background(), []Record{
		{SKU: "SKU-1", URL: "https://shop.example/1", Category: "Toasters"},
	})

	require.Len(t, result.Items, 1)
	assert.Equal(t, KindUnknownCategory, Kind(result.Items[0].Err))
	assert.Equal(t, 0, fetcher.calls)
}

func TestRunScrapeProviderFailureIsRecorded(t *testing.T) {
	fetcher := &fakeFetcher{
		failURL: "https://shop.example/down",
		err:     &scrape.ProviderError{Status: 502, Err: errors.New("bad gateway")},
	}
	extractor := &fakeExtractor{}
	runner := NewRunner(fetcher, extractor, nil, nil)

	result := runner.Run(context.Background(), []Record{
		record("SKU-1", "https://shop.example/down"),
		record("SKU-2", "https://shop.example/up"),
	})

	assert.Equal(t, KindScrapeProvider, Kind(result.Items[0].Err))
	assert.NotNil(t, result.Items[1].Row)
	// extraction never ran for the failed record
	assert.Equal(t, 1, extractor.calls)
}

func TestRunExtractionFailureIsRecorded(t *testing.T) {
	runner := NewRunner(&fakeFetcher{}, &fakeExtractor{err: &extract.ProviderError{Err: errors.New("timeout")}}, nil, nil)

	result := runner.Run(context.Background(), []Record{record("SKU-1", "https://shop.example/1")})
	assert.Equal(t, KindExtractProvider, Kind(result.Items[0].Err))
}

func TestRunCancellationRecordsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(&fakeFetcher{}, &fakeExtractor{}, nil, nil)
	result := runner.Run(ctx, []Record{
		record("SKU-1", "https://shop.example/1"),
		record("SKU-2", "https://shop.example/2"),
	})

	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, KindCanceled, Kind(item.Err))
	}
}

func TestProcessOneAppliesOverrides(t *testing.T) {
	extractor := &fakeExtractor{values: map[string][]string{"brand": {"Acme"}}}
	runner := NewRunner(&fakeFetcher{}, extractor, nil, nil)

	rec := Record{
		SKU:       "SKU-1",
		URL:       "https://shop.example/1",
		Category:  "TV",
		Overrides: map[string]string{"base_code": "BC-9", "brand": "OtherBrand"},
	}
	row, err := runner.ProcessOne(context.Background(), rec)
	require.NoError(t, err)

	attrs, err := schema.For("TV")
	require.NoError(t, err)
	require.Len(t, row.Cells, len(attrs))

	byName := map[string]int{}
	for i, a := range attrs {
		byName[a.Name] = i
	}
	assert.Equal(t, "BC-9", row.Cells[byName["base_code"]].Value)
	assert.Equal(t, "OtherBrand", row.Cells[byName["brand"]].Value)
}

func TestKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{nil, ""},
		{fmt.Errorf("%w: %q", schema.ErrUnknownCategory, "x"), KindUnknownCategory},
		{fmt.Errorf("%w: bad", scrape.ErrInvalidURL), KindInvalidURL},
		{&scrape.ProviderError{Status: 500, Err: errors.New("x")}, KindScrapeProvider},
		{&extract.ProviderError{Err: errors.New("x")}, KindExtractProvider},
		{fmt.Errorf("%w: no JSON", extract.ErrMalformedResponse), KindMalformed},
		{context.Canceled, KindCanceled},
		{errors.New("mystery"), KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, Kind(tc.err))
	}
}
