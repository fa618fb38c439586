// Package config handles lyra configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HartBrook/lyra/internal/errors"
	"gopkg.in/yaml.v3"
)

// ModelConfig contains settings for one model role.
type ModelConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// HistoryConfig contains session history settings.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// ExportsConfig contains export settings.
type ExportsConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Config represents the lyra configuration file.
type Config struct {
	Version int `yaml:"version"`

	// Provider selects the hosted model API: openai or anthropic.
	Provider string `yaml:"provider"`

	// BaseURL overrides the provider's API endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	Generation ModelConfig   `yaml:"generation"`
	Judge      ModelConfig   `yaml:"judge"`
	History    HistoryConfig `yaml:"history"`
	Exports    ExportsConfig `yaml:"exports"`
	Server     ServerConfig  `yaml:"server"`
	Log        LogConfig     `yaml:"log"`
}

// Default values.
const (
	DefaultVersion        = 1
	DefaultProvider       = "openai"
	DefaultModel          = "gpt-4o"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultTemperature    = 0.2
	DefaultMaxTokens      = 600
	DefaultJudgeMaxTokens = 256
	DefaultServerAddr     = ":8080"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
)

const maxTemperature = 2.0

// Environment overrides.
const (
	EnvProvider   = "LYRA_PROVIDER"
	EnvModel      = "LYRA_MODEL"
	EnvJudgeModel = "LYRA_JUDGE_MODEL"
	EnvServerAddr = "LYRA_SERVER_ADDR"
)

var (
	validProviders  = map[string]bool{"openai": true, "anthropic": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"console": true, "json": true}
)

// Default returns the configuration used when no file exists.
func Default(paths *Paths) *Config {
	cfg := newBase(paths)
	cfg.applyDefaults(paths)
	return cfg
}

// newBase holds every default except the models, which depend on the provider.
func newBase(paths *Paths) *Config {
	return &Config{
		Version:  DefaultVersion,
		Provider: DefaultProvider,
		Generation: ModelConfig{
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Judge: ModelConfig{
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultJudgeMaxTokens,
		},
		History: HistoryConfig{Path: paths.HistoryFile},
		Exports: ExportsConfig{Dir: paths.ExportsDir},
		Server:  ServerConfig{Addr: DefaultServerAddr},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// DefaultModelFor returns the model used when none is configured.
func DefaultModelFor(provider string) string {
	if provider == "anthropic" {
		return DefaultAnthropicModel
	}
	return DefaultModel
}

// Load reads and validates config from the default location.
func Load() (*Config, error) {
	return LoadFrom(NewPaths().ConfigFile)
}

// LoadFrom reads and validates config from a specific path.
// Fields absent from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	paths := NewPaths()
	cfg, err := decode(path, paths)
	if err != nil {
		return nil, err
	}
	return cfg.finish(paths)
}

// LoadOrDefault reads the config file in paths, falling back to defaults when it is missing.
// Environment overrides are applied either way.
func LoadOrDefault(paths *Paths) (*Config, error) {
	cfg, err := decode(paths.ConfigFile, paths)
	if errors.HasCode(err, errors.ErrConfigNotFound) {
		cfg, err = newBase(paths), nil
	}
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg.finish(paths)
}

func decode(path string, paths *Paths) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}

	cfg := newBase(paths)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}
	return cfg, nil
}

func (c *Config) finish(paths *Paths) (*Config, error) {
	c.applyDefaults(paths)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	return SaveTo(cfg, NewPaths().ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	if !validProviders[c.Provider] {
		return errors.ConfigInvalid(fmt.Sprintf("unknown provider %q (use openai or anthropic)", c.Provider))
	}

	roles := []struct {
		name string
		m    ModelConfig
	}{
		{"generation", c.Generation},
		{"judge", c.Judge},
	}
	for _, r := range roles {
		name, m := r.name, r.m
		if m.Temperature < 0 || m.Temperature > maxTemperature {
			return errors.ConfigInvalid(fmt.Sprintf("%s.temperature must be between 0 and 2, got %g", name, m.Temperature))
		}
		if m.MaxTokens < 1 {
			return errors.ConfigInvalid(fmt.Sprintf("%s.max_tokens must be at least 1, got %d", name, m.MaxTokens))
		}
	}

	if !validLogLevels[c.Log.Level] {
		return errors.ConfigInvalid(fmt.Sprintf("unknown log.level %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		return errors.ConfigInvalid(fmt.Sprintf("unknown log.format %q (use console or json)", c.Log.Format))
	}

	return nil
}

// applyDefaults sets default values for fields the file set to empty.
func (c *Config) applyDefaults(paths *Paths) {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Generation.Model == "" {
		c.Generation.Model = DefaultModelFor(c.Provider)
	}
	if c.Judge.Model == "" {
		c.Judge.Model = DefaultModelFor(c.Provider)
	}
	if c.History.Path == "" {
		c.History.Path = paths.HistoryFile
	}
	if c.Exports.Dir == "" {
		c.Exports.Dir = paths.ExportsDir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Generation.Model = v
	}
	if v := os.Getenv(EnvJudgeModel); v != "" {
		c.Judge.Model = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Exists checks if a config file exists at the default location.
func Exists() bool {
	_, err := os.Stat(NewPaths().ConfigFile)
	return err == nil
}
