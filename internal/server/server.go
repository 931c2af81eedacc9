package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paxth/paxth/internal/batch"
	"github.com/paxth/paxth/internal/config"
	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/llm"
	"github.com/paxth/paxth/internal/metrics"
	"github.com/paxth/paxth/internal/scrape"
)

type Server struct {
	Cfg     *config.Config
	Runner  *batch.Runner
	Metrics *metrics.Metrics
}

// NewServer wires the pipeline from configuration: scrape manager, LLM
// client, extractor, runner.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	m := metrics.New()
	logger := slog.Default()

	direct := scrape.NewDirectClient(cfg.Scrape, m, logger)
	provider := scrape.NewClient(cfg.Scrape, m, logger)
	fetcher, err := scrape.NewManager(cfg.Scrape, direct, provider, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize scrape manager: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initialize llm client: %w", err)
	}
	extractor := extract.NewExtractor(llmClient, cfg.Prompts, cfg.Extract.MaxContentChars, m, logger)

	return &Server{
		Cfg:     cfg,
		Runner:  batch.NewRunner(fetcher, extractor, m, logger),
		Metrics: m,
	}, nil
}

// MustNewServer is the cmd/server entrypoint helper; it loads configuration
// the way the process expects it (TOML file, then env).
func MustNewServer(configPath string) *Server {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()

	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	return srv
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})))

	r.GET("/categories", s.Categories)
	r.GET("/categories/:name/template", s.Template)

	r.POST("/products", s.ProcessProduct)
	r.POST("/batch", s.RunBatch)
	r.POST("/batch/export", s.ExportBatch)

	return r
}
