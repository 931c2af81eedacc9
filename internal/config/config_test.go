package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.LLM.Provider)
	assert.Equal(t, "deepseek-chat", cfg.LLM.Model)
	assert.Equal(t, "auto", cfg.Scrape.Method)
	assert.Equal(t, "https://api.firecrawl.dev/v1", cfg.Scrape.BaseURL)
	assert.Equal(t, 60, cfg.Scrape.TimeoutSeconds)
	assert.NotEmpty(t, cfg.Scrape.UserAgent)
	assert.Equal(t, 15000, cfg.Extract.MaxContentChars)
	assert.NotEmpty(t, cfg.Prompts.System)
	assert.NotEmpty(t, cfg.Prompts.User)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[llm]
provider = "claude"
model = "claude-sonnet-4-20250514"

[scrape]
timeout_seconds = 30
archive_dir = "mdfiles"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, 30, cfg.Scrape.TimeoutSeconds)
	assert.Equal(t, "mdfiles", cfg.Scrape.ArchiveDir)
	// untouched sections keep their defaults
	assert.Equal(t, "https://api.firecrawl.dev/v1", cfg.Scrape.BaseURL)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nprovider="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("SCRAPE_METHOD", "provider")
	t.Setenv("SCRAPE_TIMEOUT_SECONDS", "15")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "provider", cfg.Scrape.Method)
	assert.Equal(t, 15, cfg.Scrape.TimeoutSeconds)
}
