//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvContractID, EnvPaperSecretKey, EnvPaperBaseURL, EnvHTTPAddr,
		EnvLogLevel, EnvLogFormat, EnvCORSOrigins, EnvOTLPEndpoint,
	} {
		t.Setenv(k, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Addr != ":3000" {
		t.Fatalf("addr: got %q", cfg.HTTP.Addr)
	}
	if cfg.Paper.BaseURL != "https://withpaper.com" || cfg.Paper.APIVersion != "2022-08-12" {
		t.Fatalf("paper defaults: %+v", cfg.Paper)
	}
	if cfg.Paper.MintFunction != "claimTo" || cfg.Paper.Currency != "MATIC" {
		t.Fatalf("mint defaults: %+v", cfg.Paper)
	}
	if cfg.Paper.Timeout != 0 {
		t.Fatalf("timeout must default to none, got %v", cfg.Paper.Timeout)
	}
	if got := cfg.MissingSecrets(); len(got) != 2 {
		t.Fatalf("expected both secrets reported missing, got %v", got)
	}
}

func TestLoadConfig_YAMLThenEnvOverride(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http:
  addr: ":9000"
paper:
  base_url: "http://paper.local/"
  contract_id: "from-yaml"
  secret_key: "yaml-secret"
  timeout: 5s
cors:
  allowed_origins: ["http://a.test"]
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvContractID, "from-env")
	t.Setenv(EnvCORSOrigins, "http://b.test, http://c.test")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Addr != ":9000" {
		t.Fatalf("addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Paper.BaseURL != "http://paper.local" {
		t.Fatalf("base url should be trimmed: %q", cfg.Paper.BaseURL)
	}
	if cfg.Paper.ContractID != "from-env" {
		t.Fatalf("env must override yaml: %q", cfg.Paper.ContractID)
	}
	if cfg.Paper.SecretKey != "yaml-secret" {
		t.Fatalf("secret: %q", cfg.Paper.SecretKey)
	}
	if cfg.Paper.Timeout != 5*time.Second {
		t.Fatalf("timeout: %v", cfg.Paper.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "http://c.test" {
		t.Fatalf("origins: %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Runtime.Dev {
		t.Fatal("dev flag not propagated")
	}
	if got := cfg.MissingSecrets(); len(got) != 0 {
		t.Fatalf("unexpected missing: %v", got)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected parse error")
	}
}
