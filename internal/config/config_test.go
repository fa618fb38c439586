package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HartBrook/lyra/internal/errors"
)

func testPaths(t *testing.T) *Paths {
	t.Helper()
	dir := t.TempDir()
	return NewPathsWithOverrides(filepath.Join(dir, "config"), filepath.Join(dir, "cache"))
}

func writeConfig(t *testing.T, paths *Paths, content string) {
	t.Helper()
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvProvider, EnvModel, EnvJudgeModel, EnvServerAddr} {
		t.Setenv(key, "")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	clearEnv(t)
	paths := testPaths(t)

	cfg, err := LoadOrDefault(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	if cfg.Generation.Model != "gpt-4o" || cfg.Generation.Temperature != 0.2 || cfg.Generation.MaxTokens != 600 {
		t.Errorf("Generation = %+v, want gpt-4o/0.2/600", cfg.Generation)
	}
	if cfg.Judge.MaxTokens != 256 {
		t.Errorf("Judge.MaxTokens = %d, want 256", cfg.Judge.MaxTokens)
	}
	if cfg.History.Path != paths.HistoryFile {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, paths.HistoryFile)
	}
	if cfg.Exports.Dir != paths.ExportsDir {
		t.Errorf("Exports.Dir = %q, want %q", cfg.Exports.Dir, paths.ExportsDir)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want warn/console", cfg.Log)
	}
}

func TestLoadOrDefault_PartialFile(t *testing.T) {
	clearEnv(t)
	paths := testPaths(t)
	writeConfig(t, paths, `
provider: anthropic
generation:
  model: claude-sonnet-4-20250514
  temperature: 0
`)

	cfg, err := LoadOrDefault(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Generation.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Generation.Model = %q", cfg.Generation.Model)
	}
	// An explicit zero temperature is kept.
	if cfg.Generation.Temperature != 0 {
		t.Errorf("Generation.Temperature = %g, want 0", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != DefaultMaxTokens {
		t.Errorf("Generation.MaxTokens = %d, want %d", cfg.Generation.MaxTokens, DefaultMaxTokens)
	}
	if cfg.Judge.Model != DefaultAnthropicModel {
		t.Errorf("Judge.Model = %q, want %q", cfg.Judge.Model, DefaultAnthropicModel)
	}
}

func TestLoadOrDefault_EnvOverrides(t *testing.T) {
	paths := testPaths(t)
	writeConfig(t, paths, "provider: openai\n")
	t.Setenv(EnvProvider, "anthropic")
	t.Setenv(EnvModel, "claude-opus-4-20250514")
	t.Setenv(EnvJudgeModel, "gpt-4o-mini")
	t.Setenv(EnvServerAddr, "127.0.0.1:9000")

	cfg, err := LoadOrDefault(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Generation.Model != "claude-opus-4-20250514" {
		t.Errorf("Generation.Model = %q", cfg.Generation.Model)
	}
	if cfg.Judge.Model != "gpt-4o-mini" {
		t.Errorf("Judge.Model = %q", cfg.Judge.Model)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadOrDefault_EnvProviderPicksModel(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "anthropic")

	cfg, err := LoadOrDefault(testPaths(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Generation.Model != DefaultAnthropicModel {
		t.Errorf("Generation.Model = %q, want %q", cfg.Generation.Model, DefaultAnthropicModel)
	}
}

func TestLoadOrDefault_InvalidEnvProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProvider, "cohere")

	_, err := LoadOrDefault(testPaths(t))

	if !errors.HasCode(err, errors.ErrConfigInvalid) {
		t.Fatalf("expected ConfigInvalid, got %v", err)
	}
}

func TestLoadFrom_NotFound(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if !errors.HasCode(err, errors.ErrConfigNotFound) {
		t.Fatalf("expected ConfigNotFound, got %v", err)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "bad yaml",
			content: "provider: [unclosed",
			wantMsg: "failed to parse config YAML",
		},
		{
			name:    "unknown provider",
			content: "provider: cohere\n",
			wantMsg: "unknown provider",
		},
		{
			name:    "temperature too high",
			content: "generation:\n  temperature: 2.5\n",
			wantMsg: "generation.temperature",
		},
		{
			name:    "negative judge temperature",
			content: "judge:\n  temperature: -1\n",
			wantMsg: "judge.temperature",
		},
		{
			name:    "zero max tokens",
			content: "generation:\n  max_tokens: 0\n",
			wantMsg: "generation.max_tokens",
		},
		{
			name:    "bad log level",
			content: "log:\n  level: verbose\n",
			wantMsg: "log.level",
		},
		{
			name:    "bad log format",
			content: "log:\n  format: xml\n",
			wantMsg: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testPaths(t)
			writeConfig(t, paths, tt.content)

			_, err := LoadFrom(paths.ConfigFile)

			if !errors.HasCode(err, errors.ErrConfigInvalid) {
				t.Fatalf("expected ConfigInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	clearEnv(t)
	paths := testPaths(t)
	cfg := Default(paths)
	cfg.Provider = "anthropic"
	cfg.Judge.MaxTokens = 128

	if err := SaveTo(cfg, paths.ConfigFile); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadOrDefault(paths)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if loaded.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", loaded.Provider)
	}
	if loaded.Judge.MaxTokens != 128 {
		t.Errorf("Judge.MaxTokens = %d, want 128", loaded.Judge.MaxTokens)
	}
}
