package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/paxth/paxth/internal/batch"
	"github.com/paxth/paxth/internal/schema"
)

// ReadRecords parses a batch input table. Required columns: sku and url;
// category is taken per row when the column exists, otherwise
// defaultCategory applies to the whole batch. Any other column whose name
// matches an attribute of the row's category becomes a per-row override
// when non-empty; columns that match no attribute are ignored. Rows with an
// unknown category keep every extra column, since there is no attribute
// list to check against and the runner rejects the row anyway.
func ReadRecords(r io.Reader, defaultCategory string) ([]batch.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	skuIdx, ok := index["sku"]
	if !ok {
		return nil, fmt.Errorf("input is missing required column %q", "sku")
	}
	urlIdx, ok := index["url"]
	if !ok {
		return nil, fmt.Errorf("input is missing required column %q", "url")
	}
	categoryIdx, hasCategory := index["category"]
	if !hasCategory && defaultCategory == "" {
		return nil, fmt.Errorf("input has no category column and no default category was given")
	}

	var records []batch.Record
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec := batch.Record{
			SKU:      strings.TrimSpace(fields[skuIdx]),
			URL:      strings.TrimSpace(fields[urlIdx]),
			Category: defaultCategory,
		}
		if hasCategory {
			if c := strings.TrimSpace(fields[categoryIdx]); c != "" {
				rec.Category = c
			}
		}

		attrNames := overrideNames(rec.Category)
		for col, i := range index {
			if i == skuIdx || i == urlIdx || (hasCategory && i == categoryIdx) {
				continue
			}
			if attrNames != nil && !attrNames[col] {
				continue
			}
			if v := strings.TrimSpace(fields[i]); v != "" {
				if rec.Overrides == nil {
					rec.Overrides = make(map[string]string)
				}
				rec.Overrides[col] = v
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

// overrideNames is the set of attribute names overridable for category, or
// nil when the category is unknown.
func overrideNames(category string) map[string]bool {
	attrs, err := schema.For(category)
	if err != nil {
		return nil
	}
	names := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		names[a.Name] = true
	}
	return names
}
