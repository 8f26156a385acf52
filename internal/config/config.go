// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Extraction ExtractionConfig `yaml:"extraction"`
	LLM        LLMConfig        `yaml:"llm"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// FetchConfig defines how search result pages are retrieved.
type FetchConfig struct {
	Backend   string          `yaml:"backend"` // http, browser
	BaseURL   string          `yaml:"base_url"`
	UserAgent string          `yaml:"user_agent"`
	Timeout   time.Duration   `yaml:"timeout"`
	Retries   int             `yaml:"retries"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles outbound page fetches.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ExtractionConfig controls how listings are pulled out of fetched pages.
type ExtractionConfig struct {
	Mode          string `yaml:"mode"` // auto, markup, delegate
	MaxResults    int    `yaml:"max_results"`
	MaxChunkChars int    `yaml:"max_chunk_chars"`
}

// LLMConfig defines delegate backend settings.
type LLMConfig struct {
	Backend     string          `yaml:"backend"` // ollama, anthropic, openai
	Ollama      OllamaConfig    `yaml:"ollama"`
	Anthropic   AnthropicConfig `yaml:"anthropic"`
	OpenAI      OpenAIConfig    `yaml:"openai"`
	Concurrency int             `yaml:"concurrency"`
	Timeout     time.Duration   `yaml:"timeout"`
}

// OllamaConfig defines Ollama-specific settings.
type OllamaConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// AnthropicConfig defines Anthropic API settings.
type AnthropicConfig struct {
	Model string `yaml:"model"`
}

// OpenAIConfig defines OpenAI-compatible endpoint settings.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// ScheduleConfig defines the background refresh behavior of the server.
type ScheduleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	WatchTerms      []string      `yaml:"watch_terms"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration usable without any config file, suitable
// for one-shot CLI runs against a local Ollama.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyFetchDefaults(&cfg.Fetch)
	applyExtractionDefaults(&cfg.Extraction)
	applyLLMDefaults(&cfg.LLM)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyFetchDefaults(f *FetchConfig) {
	if f.Backend == "" {
		f.Backend = "http"
	}
	if f.BaseURL == "" {
		f.BaseURL = "https://www.ebay.co.uk/sch/i.html"
	}
	if f.UserAgent == "" {
		f.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	}
	if f.Timeout == 0 {
		f.Timeout = 30 * time.Second
	}
	if f.Retries == 0 {
		f.Retries = 3
	}
	if f.RateLimit.PerSecond == 0 {
		f.RateLimit.PerSecond = 1.0
	}
	if f.RateLimit.Burst == 0 {
		f.RateLimit.Burst = 2
	}
}

func applyExtractionDefaults(e *ExtractionConfig) {
	if e.Mode == "" {
		e.Mode = "auto"
	}
	if e.MaxResults == 0 {
		e.MaxResults = 50
	}
	if e.MaxChunkChars == 0 {
		e.MaxChunkChars = 6000
	}
}

func applyLLMDefaults(l *LLMConfig) {
	if l.Backend == "" {
		l.Backend = "ollama"
	}
	if l.Ollama.Endpoint == "" {
		l.Ollama.Endpoint = "http://localhost:11434"
	}
	if l.Ollama.Model == "" {
		l.Ollama.Model = "llama3.2"
	}
	if l.Concurrency == 0 {
		l.Concurrency = 2
	}
	if l.Timeout == 0 {
		l.Timeout = 120 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Fetch.Backend {
	case "http", "browser":
	default:
		errs = append(errs, fmt.Errorf("fetch.backend must be one of: http, browser (got %q)", cfg.Fetch.Backend))
	}

	switch cfg.Extraction.Mode {
	case "auto", "markup", "delegate":
	default:
		errs = append(errs, fmt.Errorf("extraction.mode must be one of: auto, markup, delegate (got %q)", cfg.Extraction.Mode))
	}

	switch cfg.LLM.Backend {
	case "ollama":
		if cfg.LLM.Ollama.Endpoint == "" {
			errs = append(errs, fmt.Errorf("llm.ollama.endpoint is required when backend is ollama"))
		}
	case "anthropic":
		// API key comes from env, model must be set.
		if cfg.LLM.Anthropic.Model == "" {
			errs = append(errs, fmt.Errorf("llm.anthropic.model is required when backend is anthropic"))
		}
	case "openai":
		if cfg.LLM.OpenAI.Model == "" {
			errs = append(errs, fmt.Errorf("llm.openai.model is required when backend is openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("llm.backend must be one of: ollama, anthropic, openai (got %q)", cfg.LLM.Backend))
	}

	return errors.Join(errs...)
}
