// File: internal/config/config.go
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type PipelineConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type AnalyzerConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

type GenerationConfig struct {
	PollInterval     time.Duration `yaml:"poll_interval"`
	RefreshDelay     time.Duration `yaml:"refresh_delay"`
	SubmitRateLimit  int           `yaml:"submit_rate_limit"` // starts per reading per window
	SubmitRateWindow time.Duration `yaml:"submit_rate_window"`
	MaxReadingTokens int           `yaml:"max_reading_tokens"`
	TokenModel       string        `yaml:"token_model"` // tokenizer used for the length precheck
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
	Generation GenerationConfig `yaml:"generation"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig() (*Config, error) {
	var configPath string = ""
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Pipeline.RequestTimeout <= 0 {
		cfg.Pipeline.RequestTimeout = 10 * time.Second
	}
	if cfg.Analyzer.RequestTimeout <= 0 {
		cfg.Analyzer.RequestTimeout = 15 * time.Second
	}
	if cfg.Analyzer.CacheTTL <= 0 {
		cfg.Analyzer.CacheTTL = 24 * time.Hour
	}
	if cfg.Generation.PollInterval <= 0 {
		cfg.Generation.PollInterval = 2 * time.Second
	}
	if cfg.Generation.RefreshDelay <= 0 {
		cfg.Generation.RefreshDelay = 2 * time.Second
	}
	if cfg.Generation.SubmitRateLimit <= 0 {
		cfg.Generation.SubmitRateLimit = 5
	}
	if cfg.Generation.SubmitRateWindow <= 0 {
		cfg.Generation.SubmitRateWindow = 10 * time.Minute
	}
	if cfg.Generation.MaxReadingTokens <= 0 {
		cfg.Generation.MaxReadingTokens = 6000
	}
	if cfg.Generation.TokenModel == "" {
		cfg.Generation.TokenModel = "gpt-4o-mini"
	}

	// Minimal validation
	if cfg.Server.APIKey == "" {
		return nil, errors.New("server.api_key is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Pipeline.BaseURL == "" {
		return nil, errors.New("pipeline.base_url is required")
	}
	if cfg.Analyzer.BaseURL == "" {
		return nil, errors.New("analyzer.base_url is required")
	}

	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
