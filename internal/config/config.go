package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type ScrapeConfig struct {
	// Method selects the fetch path: "auto" tries the direct fetcher and
	// falls back to the hosted provider, "direct" and "provider" pin one.
	Method         string `toml:"method"`
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// ArchiveDir, when set, receives a copy of every filtered markdown
	// document for audit. Empty disables archiving.
	ArchiveDir string `toml:"archive_dir"`
}

type ExtractConfig struct {
	// MaxContentChars caps how much scraped markdown is embedded into the
	// extraction prompt.
	MaxContentChars int `toml:"max_content_chars"`
}

// ExtractionPrompts are fmt templates. System is used when no attribute
// carries a mapping hint, SystemHinted when at least one does. User takes
// category, attribute list and document content, in that order.
type ExtractionPrompts struct {
	System       string `toml:"system"`
	SystemHinted string `toml:"system_hinted"`
	User         string `toml:"user"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

type Config struct {
	LLM     LLMConfig         `toml:"llm"`
	Scrape  ScrapeConfig      `toml:"scrape"`
	Extract ExtractConfig     `toml:"extract"`
	Prompts ExtractionPrompts `toml:"prompts"`
	Export  ExportConfig      `toml:"export"`
}

const defaultSystemPrompt = `You are a product data extraction specialist.
Extract product attribute values from the provided content accurately.
Return ONLY a valid JSON object with the exact attribute names as keys.
A value may be a string, or an array of candidate strings when the content is ambiguous.
If a value cannot be found, use an empty string "".
Do not include any explanation, just the JSON object.`

const defaultSystemHintedPrompt = `You are a product data extraction and content creation specialist.
Your task is to extract and FORMAT product data according to specific rules.

IMPORTANT RULES:
1. For attributes with an extraction rule: follow the rule exactly
2. For formatted attributes (name, title): follow the exact format specified
3. For product description: write unique, engaging content without copying
4. For keywords: generate relevant SEO keywords separated by commas

Return ONLY a valid JSON object with the exact attribute names as keys.
A value may be a string, or an array of candidate strings when the content is ambiguous.
If a value cannot be found, use an empty string "".
Do not include any explanation, just the JSON object.`

const defaultUserPrompt = `Product Category: %s

Extract and format values for these attributes:
%s

Content to extract from:
%s

Return a JSON object with attribute names as keys and properly formatted values.
Example format:
{"brand": "Samsung", "model": "Galaxy S24"}`

// Default returns a fully usable configuration with the provider endpoints
// the tool ships against.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "deepseek",
			Model:       "deepseek-chat",
			Temperature: 0.1,
			MaxTokens:   4000,
		},
		Scrape: ScrapeConfig{
			Method:         "auto",
			BaseURL:        "https://api.firecrawl.dev/v1",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			TimeoutSeconds: 60,
		},
		Extract: ExtractConfig{
			MaxContentChars: 15000,
		},
		Prompts: ExtractionPrompts{
			System:       defaultSystemPrompt,
			SystemHinted: defaultSystemHintedPrompt,
			User:         defaultUserPrompt,
		},
		Export: ExportConfig{
			Dir: "exports",
		},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error;
// callers get the defaults plus whatever the environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays the well-known environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("SCRAPE_METHOD"); v != "" {
		c.Scrape.Method = v
	}
	if v := os.Getenv("SCRAPE_API_KEY"); v != "" {
		c.Scrape.APIKey = v
	}
	if v := os.Getenv("SCRAPE_BASE_URL"); v != "" {
		c.Scrape.BaseURL = v
	}
	if v := os.Getenv("SCRAPE_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Scrape.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
}
