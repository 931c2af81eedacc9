package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"

	"github.com/paxth/paxth/internal/config"
	"github.com/paxth/paxth/internal/metrics"
)

// DirectClient downloads a product page itself and renders the HTML into
// markdown, with no hosted provider in the loop. Pages that need a
// JavaScript render come back empty here; the Manager falls through to
// the provider in that case.
type DirectClient struct {
	collector *colly.Collector
	metrics   *metrics.Metrics
	log       *slog.Logger
}

func NewDirectClient(cfg config.ScrapeConfig, m *metrics.Metrics, log *slog.Logger) *DirectClient {
	if log == nil {
		log = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
	)
	collector.SetRequestTimeout(timeout)
	collector.IgnoreRobotsTxt = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
	})

	return &DirectClient{
		collector: collector,
		metrics:   m,
		log:       log,
	}
}

// Fetch downloads rawURL and renders its body into filtered markdown.
// Failures come back as *ProviderError so the error kind matches what the
// hosted provider would report.
func (d *DirectClient) Fetch(ctx context.Context, rawURL string) (Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return Result{URL: rawURL}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{URL: rawURL}, err
	}

	var (
		markdown string
		status   int
		fetchErr error
	)

	c := d.collector.Clone()
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})
	c.OnHTML("html", func(e *colly.HTMLElement) {
		markdown = FilterMarkdown(renderMarkdown(e.DOM))
	})

	d.metrics.IncRequest("scrape_direct")
	start := time.Now()
	err := c.Visit(rawURL)
	c.Wait()
	d.metrics.ObserveDuration("scrape_direct", time.Since(start))

	if fetchErr != nil {
		return Result{URL: rawURL}, &ProviderError{Status: status, Err: fetchErr}
	}
	if err != nil {
		return Result{URL: rawURL}, &ProviderError{Err: err}
	}
	if markdown == "" {
		return Result{URL: rawURL}, &ProviderError{Status: status, Err: fmt.Errorf("empty content for %s", rawURL)}
	}

	d.log.Debug("scraped direct", "url", rawURL, "status", status, "filtered_chars", len(markdown))

	return Result{URL: rawURL, Markdown: markdown}, nil
}

// Elements whose subtrees never carry product data.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"nav":      true,
	"footer":   true,
	"header":   true,
	"form":     true,
	"svg":      true,
	"button":   true,
}

// renderMarkdown flattens a parsed document into markdown-ish text:
// headings keep their level, everything else that carries text becomes a
// line of its own.
func renderMarkdown(doc *goquery.Selection) string {
	var b strings.Builder

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		b.WriteString("# " + collapseSpace(title) + "\n\n")
	}

	doc.Find("body").Each(func(_ int, body *goquery.Selection) {
		renderNode(&b, body)
	})

	return b.String()
}

func renderNode(b *strings.Builder, s *goquery.Selection) {
	s.Children().Each(func(_ int, child *goquery.Selection) {
		name := goquery.NodeName(child)
		if skipElements[name] {
			return
		}
		switch name {
		case "h1", "h2", "h3", "h4":
			if text := collapseSpace(child.Text()); text != "" {
				level := int(name[1] - '0')
				b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
			}
		case "p", "li", "td", "th", "dt", "dd", "figcaption", "caption":
			if text := collapseSpace(child.Text()); text != "" {
				b.WriteString(text + "\n")
			}
		default:
			if child.Children().Length() > 0 {
				renderNode(b, child)
				return
			}
			if !isTextBearing(child) {
				return
			}
			if text := collapseSpace(child.Text()); text != "" {
				b.WriteString(text + "\n")
			}
		}
	})
}

// isTextBearing reports whether a childless node holds its own text, as
// opposed to inheriting it from a handled ancestor.
func isTextBearing(s *goquery.Selection) bool {
	if len(s.Nodes) == 0 {
		return false
	}
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
