package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Afolstee/politiscope/pkg/discourse/discourseerr"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":5000" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.LLM.Model != "grok-beta" {
		t.Fatalf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 4000 || cfg.LLM.Temperature != 0.3 {
		t.Fatalf("llm defaults = %+v", cfg.LLM)
	}
	if cfg.Limits.MaxWords != 4000 {
		t.Fatalf("max words = %d", cfg.Limits.MaxWords)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
listen_addr: ":8080"
db_path: "/tmp/test.db"
llm:
  base_url: "https://api.test/v1/chat/completions"
  model: "grok-3"
  api_key: "from-file"
  timeout_seconds: 30
limits:
  max_words: 2000
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.LLM.Model != "grok-3" || cfg.LLM.APIKey != "from-file" {
		t.Fatalf("llm = %+v", cfg.LLM)
	}
	if got := cfg.LLM.Timeout().Seconds(); got != 30 {
		t.Fatalf("timeout = %v", got)
	}
	if cfg.Limits.MaxWords != 2000 {
		t.Fatalf("max words = %d", cfg.Limits.MaxWords)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("api key = %q", cfg.LLM.APIKey)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, discourseerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, discourseerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for bad yaml, got %v", err)
	}
}
