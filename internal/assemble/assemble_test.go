package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/schema"
)

var tvAttrs = []schema.Attribute{
	{Name: "brand", Header: "Brand"},
	{Name: "size_inches", Header: "Screen Size"},
}

func TestAssembleScrapedAndUnset(t *testing.T) {
	extraction := extract.Result{
		"brand":       {"Acme"},
		"size_inches": {},
	}

	row := Assemble("SKU-1", tvAttrs, extraction, nil)

	require.Len(t, row.Cells, len(tvAttrs))
	assert.Equal(t, Cell{Attribute: "brand", Value: "Acme", Source: Scraped, Candidates: []string{"Acme"}}, row.Cells[0])
	assert.Equal(t, "", row.Cells[1].Value)
	assert.Equal(t, Unset, row.Cells[1].Source)
}

func TestAssembleOverridePrecedence(t *testing.T) {
	extraction := extract.Result{
		"brand":       {"Acme"},
		"size_inches": {},
	}
	overrides := map[string]string{"size_inches": "55"}

	row := Assemble("SKU-1", tvAttrs, extraction, overrides)

	assert.Equal(t, "Acme", row.Cells[0].Value)
	assert.Equal(t, Scraped, row.Cells[0].Source)
	assert.Equal(t, "55", row.Cells[1].Value)
	assert.Equal(t, Manual, row.Cells[1].Source)
}

// An override beats a scraped candidate for the same attribute.
func TestAssembleOverrideBeatsCandidate(t *testing.T) {
	extraction := extract.Result{"brand": {"Acme", "ACME Corp"}}
	overrides := map[string]string{"brand": "Acme International"}

	row := Assemble("SKU-1", tvAttrs, extraction, overrides)

	assert.Equal(t, "Acme International", row.Cells[0].Value)
	assert.Equal(t, Manual, row.Cells[0].Source)
	// alternatives stay visible for selection
	assert.Equal(t, []string{"Acme", "ACME Corp"}, row.Cells[0].Candidates)
}

func TestAssembleCellOrderMatchesSchema(t *testing.T) {
	for _, category := range schema.Categories() {
		attrs, err := schema.For(category)
		require.NoError(t, err)

		row := Assemble("SKU-1", attrs, extract.Result{}, nil)
		require.Len(t, row.Cells, len(attrs), category)
		for i, a := range attrs {
			assert.Equal(t, a.Name, row.Cells[i].Attribute, category)
		}
	}
}

func TestAssembleIdempotent(t *testing.T) {
	extraction := extract.Result{"brand": {"Acme"}}
	overrides := map[string]string{"size_inches": "55"}

	first := Assemble("SKU-1", tvAttrs, extraction, overrides)
	second := Assemble("SKU-1", tvAttrs, extraction, overrides)
	assert.Equal(t, first, second)
}

func TestRowValues(t *testing.T) {
	row := Assemble("SKU-1", tvAttrs, extract.Result{"brand": {"Acme"}}, map[string]string{"size_inches": "55"})
	assert.Equal(t, []string{"Acme", "55"}, row.Values())
}
