// Package assemble merges extracted candidates and operator overrides into
// an exportable row.
package assemble

import (
	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/schema"
)

// Source records where a cell value came from.
type Source string

const (
	// Scraped marks a value proposed by the extraction provider.
	Scraped Source = "scraped"
	// Manual marks an operator-supplied override or candidate selection.
	Manual Source = "manual"
	// Unset marks a cell with no value from either side.
	Unset Source = "unset"
)

// Cell is one attribute value plus its provenance. Candidates carries every
// value the extractor proposed for the attribute, in order, so a client can
// offer alternatives for manual selection.
type Cell struct {
	Attribute  string   `json:"attribute"`
	Value      string   `json:"value"`
	Source     Source   `json:"source"`
	Candidates []string `json:"candidates,omitempty"`
}

// Row is one product: its SKU plus one cell per schema attribute, in schema
// order.
type Row struct {
	SKU   string `json:"sku"`
	Cells []Cell `json:"cells"`
}

// Values returns the cell values in schema order.
func (r Row) Values() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Value
	}
	return out
}

// Assemble resolves one cell per attribute, in schema order. Precedence per
// attribute: override, then first extracted candidate, then unset. A
// candidate selection made by an operator arrives here as an override.
func Assemble(sku string, attrs []schema.Attribute, extraction extract.Result, overrides map[string]string) Row {
	cells := make([]Cell, len(attrs))
	for i, a := range attrs {
		cands := extraction[a.Name]
		cell := Cell{Attribute: a.Name, Candidates: cands}
		switch {
		case overrides[a.Name] != "":
			cell.Value = overrides[a.Name]
			cell.Source = Manual
		case len(cands) > 0:
			cell.Value = cands[0]
			cell.Source = Scraped
		default:
			cell.Value = ""
			cell.Source = Unset
		}
		cells[i] = cell
	}
	return Row{SKU: sku, Cells: cells}
}
