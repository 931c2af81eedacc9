package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMarkdownDropsNoiseSections(t *testing.T) {
	input := strings.Join([]string{
		"# Acme X55 TV",
		"",
		"55 inch 4K display.",
		"",
		"## Related Products",
		"",
		"Another TV you might like.",
		"",
		"## Specifications",
		"",
		"Refresh rate: 120Hz",
	}, "\n")

	out := FilterMarkdown(input)
	assert.Contains(t, out, "55 inch 4K display.")
	assert.Contains(t, out, "Refresh rate: 120Hz")
	assert.NotContains(t, out, "Another TV you might like.")
	assert.NotContains(t, out, "Related Products")
}

func TestFilterMarkdownDropsLinkHeavyLines(t *testing.T) {
	input := strings.Join([]string{
		"Product details here.",
		"- [Home](/) ",
		"[a](1) [b](2) [c](3) [d](4) [e](5)",
		"Weight: 12kg",
	}, "\n")

	out := FilterMarkdown(input)
	assert.Contains(t, out, "Product details here.")
	assert.Contains(t, out, "Weight: 12kg")
	assert.NotContains(t, out, "[Home](/)")
	assert.NotContains(t, out, "[e](5)")
}

func TestFilterMarkdownCollapsesBlankRuns(t *testing.T) {
	out := FilterMarkdown("a\n\n\n\n\n\nb")
	assert.Equal(t, "a\n\n\nb", out)
}

func TestFilterMarkdownResumesAtContentHeading(t *testing.T) {
	input := strings.Join([]string{
		"## Customer Reviews",
		"Five stars!",
		"## Technical Details",
		"Voltage: 220V",
	}, "\n")

	out := FilterMarkdown(input)
	assert.NotContains(t, out, "Five stars!")
	assert.Contains(t, out, "Voltage: 220V")
}
