package scrape

import (
	"regexp"
	"strings"
)

// Section headings that introduce non-product noise (related products,
// reviews, navigation, newsletter blocks).
var noiseSections = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^#+\s*(related|recommended|you may|also like|customers also|similar)`),
	regexp.MustCompile(`(?i)^#+\s*(reviews?|ratings?|customer feedback|testimonials)`),
	regexp.MustCompile(`(?i)^#+\s*(footer|navigation|menu|links)`),
	regexp.MustCompile(`(?i)^#+\s*(share|social|follow us)`),
	regexp.MustCompile(`(?i)^#+\s*(newsletter|subscribe|sign up)`),
	regexp.MustCompile(`(?i)^#+\s*(recently viewed|browsing history)`),
	regexp.MustCompile(`(?i)^#+\s*(compare|wishlist)`),
}

// Headings that end a noise section because they carry product content again.
var contentHeadings = []string{
	"description", "specification", "feature", "detail",
	"overview", "about", "highlight", "what's in",
	"technical", "dimension", "warranty",
}

var (
	headingLine  = regexp.MustCompile(`^#+\s+`)
	bareLinkLine = regexp.MustCompile(`^\s*[\*\-]\s*\[.*?\]\(.*?\)\s*$`)
	blankRuns    = regexp.MustCompile(`\n{4,}`)
)

// FilterMarkdown strips boilerplate sections and link-heavy lines from
// scraped markdown so the extraction prompt carries mostly product content.
func FilterMarkdown(markdown string) string {
	lines := strings.Split(markdown, "\n")
	filtered := make([]string, 0, len(lines))
	skipSection := false

	for _, line := range lines {
		for _, pat := range noiseSections {
			if pat.MatchString(line) {
				skipSection = true
				break
			}
		}

		if skipSection && headingLine.MatchString(line) {
			lower := strings.ToLower(line)
			for _, good := range contentHeadings {
				if strings.Contains(lower, good) {
					skipSection = false
					break
				}
			}
		}

		if skipSection {
			continue
		}
		if bareLinkLine.MatchString(line) {
			continue
		}
		// lines stuffed with links are navigation
		if strings.Count(line, "](") > 3 {
			continue
		}

		filtered = append(filtered, line)
	}

	result := strings.Join(filtered, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n\n")
	return strings.TrimSpace(result)
}
