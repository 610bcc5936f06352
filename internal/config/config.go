// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

// PaperConfig holds everything the gateway sends to Paper that is not user input.
type PaperConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIVersion   string `yaml:"api_version"`
	ContractID   string `yaml:"contract_id"`
	SecretKey    string `yaml:"secret_key"`
	MintFunction string `yaml:"mint_function"`
	Currency     string `yaml:"currency"`
	// Timeout bounds the outbound call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Paper     PaperConfig     `yaml:"paper"`
	CORS      CORSConfig      `yaml:"cors"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	Runtime RuntimeConfig `yaml:"-"`
}

// Environment variables that override the YAML file.
const (
	EnvContractID     = "CONTRACT_ID"
	EnvPaperSecretKey = "PAPER_API_SECRET_KEY"
	EnvPaperBaseURL   = "PAPER_BASE_URL"
	EnvHTTPAddr       = "HTTP_ADDR"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	EnvOTLPEndpoint   = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
)

// LoadConfig reads the optional YAML file at path, then a .env file if present,
// then applies environment overrides and defaults. A missing YAML file is not an error.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// .env is optional, real environment wins over it.
	_ = godotenv.Load()

	applyEnv(&cfg)
	applyDefaults(&cfg)

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := lookup(EnvContractID); ok {
		cfg.Paper.ContractID = v
	}
	if v, ok := lookup(EnvPaperSecretKey); ok {
		cfg.Paper.SecretKey = v
	}
	if v, ok := lookup(EnvPaperBaseURL); ok {
		cfg.Paper.BaseURL = v
	}
	if v, ok := lookup(EnvHTTPAddr); ok {
		cfg.HTTP.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(EnvCORSOrigins); ok {
		cfg.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if v, ok := lookup(EnvOTLPEndpoint); ok {
		cfg.Telemetry.Endpoint = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Paper.BaseURL == "" {
		cfg.Paper.BaseURL = "https://withpaper.com"
	}
	cfg.Paper.BaseURL = strings.TrimRight(cfg.Paper.BaseURL, "/")
	if cfg.Paper.APIVersion == "" {
		cfg.Paper.APIVersion = "2022-08-12"
	}
	if cfg.Paper.MintFunction == "" {
		cfg.Paper.MintFunction = "claimTo"
	}
	if cfg.Paper.Currency == "" {
		cfg.Paper.Currency = "MATIC"
	}
	if cfg.Paper.Timeout < 0 {
		cfg.Paper.Timeout = 0
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "paper-checkout"
	}
	if cfg.Telemetry.Endpoint == "" {
		cfg.Telemetry.Endpoint = "http://localhost:4318/v1/traces"
	}
}

// MissingSecrets reports which provider settings are empty. The gateway does not
// refuse to start on them; the provider rejects the request instead.
func (c *Config) MissingSecrets() []string {
	var out []string
	if c.Paper.ContractID == "" {
		out = append(out, EnvContractID)
	}
	if c.Paper.SecretKey == "" {
		out = append(out, EnvPaperSecretKey)
	}
	return out
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
