package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paxth/paxth/internal/config"
)

// Fetch methods the Manager can route to.
const (
	// MethodAuto tries the direct fetcher first and falls back to the
	// hosted provider when it fails.
	MethodAuto = "auto"
	// MethodDirect uses only the direct fetcher.
	MethodDirect = "direct"
	// MethodProvider uses only the hosted provider.
	MethodProvider = "provider"
)

// Fetcher is one way of turning a URL into markdown.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Result, error)
}

// Manager routes fetches to the configured method and archives the
// filtered markdown when an archive directory is set.
type Manager struct {
	method     string
	direct     Fetcher
	provider   Fetcher
	archiveDir string
	log        *slog.Logger
	now        func() time.Time
}

func NewManager(cfg config.ScrapeConfig, direct, provider Fetcher, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.Default()
	}
	method := strings.ToLower(strings.TrimSpace(cfg.Method))
	switch method {
	case "":
		method = MethodAuto
	case MethodAuto, MethodDirect, MethodProvider:
	case "firecrawl":
		method = MethodProvider
	default:
		return nil, fmt.Errorf("unknown scrape method %q", cfg.Method)
	}
	return &Manager{
		method:     method,
		direct:     direct,
		provider:   provider,
		archiveDir: cfg.ArchiveDir,
		log:        log,
		now:        time.Now,
	}, nil
}

// Fetch resolves one URL through the configured method. Under MethodAuto
// any direct failure past URL validation falls through to the provider;
// the provider's error wins when both fail.
func (m *Manager) Fetch(ctx context.Context, rawURL string) (Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return Result{URL: rawURL}, err
	}

	var (
		result Result
		err    error
	)
	switch m.method {
	case MethodDirect:
		result, err = m.direct.Fetch(ctx, rawURL)
	case MethodProvider:
		result, err = m.provider.Fetch(ctx, rawURL)
	default:
		result, err = m.direct.Fetch(ctx, rawURL)
		if err != nil {
			if ctx.Err() != nil {
				return Result{URL: rawURL}, err
			}
			m.log.Info("direct fetch failed, falling back to provider", "url", rawURL, "error", err)
			result, err = m.provider.Fetch(ctx, rawURL)
		}
	}
	if err != nil {
		return Result{URL: rawURL}, err
	}

	if m.archiveDir != "" {
		result.ArchiveFile = m.archive(result.URL, result.Markdown)
	}
	return result, nil
}

// archive writes a copy of the filtered markdown for audit. Failure to
// archive never fails the fetch.
func (m *Manager) archive(rawURL, markdown string) string {
	if err := os.MkdirAll(m.archiveDir, 0o755); err != nil {
		m.log.Warn("archive dir", "error", err)
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	domain := strings.TrimPrefix(parsed.Host, "www.")
	domain = strings.ReplaceAll(domain, ".", "_")
	name := fmt.Sprintf("%s_%s.md", domain, m.now().Format("20060102_150405"))
	path := filepath.Join(m.archiveDir, name)

	content := fmt.Sprintf("# URL: %s\n# Scraped: %s\n\n%s", rawURL, m.now().Format(time.RFC3339), markdown)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		m.log.Warn("archive write", "path", path, "error", err)
		return ""
	}
	return name
}
