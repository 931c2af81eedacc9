// Package export writes assembled rows as CSV files matching the category
// template, and reads batch input tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/paxth/paxth/internal/assemble"
	"github.com/paxth/paxth/internal/batch"
	"github.com/paxth/paxth/internal/schema"
)

// Header returns the CSV header for a category: the identifier column
// followed by the schema's header labels, in schema order.
func Header(category string) ([]string, error) {
	attrs, err := schema.For(category)
	if err != nil {
		return nil, err
	}
	header := make([]string, 0, len(attrs)+1)
	header = append(header, "sku")
	for _, a := range attrs {
		header = append(header, a.Header)
	}
	return header, nil
}

// WriteRows writes the header and one record per row. Every row must come
// from the named category's schema; a cell-count mismatch is an error rather
// than a silently misaligned file.
func WriteRows(w io.Writer, category string, rows []assemble.Row) error {
	header, err := Header(category)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		if len(row.Cells)+1 != len(header) {
			return fmt.Errorf("row %s has %d cells, category %q expects %d", row.SKU, len(row.Cells), category, len(header)-1)
		}
		record := append([]string{row.SKU}, row.Values()...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTemplate writes the category header plus empty sample rows, the
// starting point an operator fills in.
func WriteTemplate(w io.Writer, category string, sampleRows int) error {
	header, err := Header(category)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	empty := make([]string, len(header))
	for i := 0; i < sampleRows; i++ {
		if err := cw.Write(empty); err != nil {
			return fmt.Errorf("write template row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteErrors writes the failure report for a batch run: one line per failed
// record with its error kind and message.
func WriteErrors(w io.Writer, result batch.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sku", "url", "category", "error_kind", "error"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range result.Items {
		if item.Err == nil {
			continue
		}
		record := []string{item.Record.SKU, item.Record.URL, item.Record.Category, batch.Kind(item.Err), item.Err.Error()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Filename builds a unique export filename for a category.
func Filename(category string) string {
	return fmt.Sprintf("%s_%s.csv", slug(category), uuid.NewString()[:8])
}

// TemplateFilename is the stable download name for a category's template,
// the same for every download of the same category.
func TemplateFilename(category string) string {
	return slug(category) + "_template.csv"
}

func slug(category string) string {
	s := strings.ToLower(category)
	return strings.ReplaceAll(s, " ", "_")
}

// ExportFile writes rows to a fresh uniquely named file under dir and
// returns its path.
func ExportFile(dir string, category string, rows []assemble.Row) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, Filename(category))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteRows(f, category, rows); err != nil {
		return "", err
	}
	return path, nil
}
