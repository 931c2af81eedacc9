package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/paxth/paxth/internal/assemble"
	"github.com/paxth/paxth/internal/batch"
	"github.com/paxth/paxth/internal/config"
	"github.com/paxth/paxth/internal/export"
	"github.com/paxth/paxth/internal/extract"
	"github.com/paxth/paxth/internal/llm"
	"github.com/paxth/paxth/internal/metrics"
	"github.com/paxth/paxth/internal/scrape"
)

func main() {
	inputPath := flag.String("input", "", "batch input CSV (columns: sku, url, optional category, optional overrides)")
	category := flag.String("category", "", "default category for rows without one")
	configPath := flag.String("config", "config/config.toml", "configuration file")
	outDir := flag.String("out", "", "export directory (default from config)")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if *outDir != "" {
		cfg.Export.Dir = *outDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *inputPath, *category); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, inputPath, defaultCategory string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := export.ReadRecords(f, defaultCategory)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("input has no records")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	m := metrics.New()

	direct := scrape.NewDirectClient(cfg.Scrape, m, logger)
	provider := scrape.NewClient(cfg.Scrape, m, logger)
	fetcher, err := scrape.NewManager(cfg.Scrape, direct, provider, logger)
	if err != nil {
		return fmt.Errorf("initialize scrape manager: %w", err)
	}
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("initialize llm client: %w", err)
	}
	extractor := extract.NewExtractor(llmClient, cfg.Prompts, cfg.Extract.MaxContentChars, m, logger)
	runner := batch.NewRunner(fetcher, extractor, m, logger)

	logger.Info("batch starting", "records", len(records))
	result := runner.Run(ctx, records)

	// one export file per category present in the batch
	byCategory := map[string][]assemble.Row{}
	failed := 0
	for _, item := range result.Items {
		if item.Err != nil {
			failed++
			continue
		}
		byCategory[item.Record.Category] = append(byCategory[item.Record.Category], *item.Row)
	}

	for category, rows := range byCategory {
		path, err := export.ExportFile(cfg.Export.Dir, category, rows)
		if err != nil {
			return fmt.Errorf("export %s: %w", category, err)
		}
		logger.Info("exported", "category", category, "rows", len(rows), "file", path)
	}

	if failed > 0 {
		if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		errPath := filepath.Join(cfg.Export.Dir, fmt.Sprintf("errors_%s.csv", result.RunID[:8]))
		ef, err := os.Create(errPath)
		if err != nil {
			return fmt.Errorf("create error report: %w", err)
		}
		defer ef.Close()
		if err := export.WriteErrors(ef, result); err != nil {
			return fmt.Errorf("write error report: %w", err)
		}
		logger.Warn("batch finished with failures", "failed", failed, "total", len(records), "report", errPath)
	} else {
		logger.Info("batch finished", "total", len(records))
	}
	return nil
}
