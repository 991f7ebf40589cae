package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Afolstee/politiscope/pkg/discourse/discourseerr"
)

// Config is the full server configuration, loaded from YAML.
type Config struct {
	ListenAddr string  `yaml:"listen_addr"`
	DBPath     string  `yaml:"db_path"`
	LLM        LLM     `yaml:"llm"`
	Limits     Limits  `yaml:"limits"`
	Logging    Logging `yaml:"logging"`
}

// LLM configures the upstream completion endpoint.
type LLM struct {
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	APIKey         string  `yaml:"api_key"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// Limits bounds accepted input.
type Limits struct {
	MaxWords int `yaml:"max_words"`
}

// Logging mirrors the logger setup knobs.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// APIKeyEnv is consulted when no key is configured or sent per request.
const APIKeyEnv = "XAI_API_KEY"

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr: ":5000",
		DBPath:     "politiscope.db",
		LLM: LLM{
			BaseURL:        "https://api.x.ai/v1/chat/completions",
			Model:          "grok-beta",
			MaxTokens:      4000,
			Temperature:    0.3,
			TimeoutSeconds: 60,
		},
		Limits:  Limits{MaxWords: 4000},
		Logging: Logging{Level: "info", Format: "text", Output: "stdout"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults. The API key falls back to the XAI_API_KEY environment
// variable.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %v", discourseerr.ErrInvalidConfig, err)
		}
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr required", discourseerr.ErrInvalidConfig)
	}
	if c.LLM.BaseURL == "" || c.LLM.Model == "" {
		return fmt.Errorf("%w: llm base_url and model required", discourseerr.ErrInvalidConfig)
	}
	if c.Limits.MaxWords <= 0 {
		return fmt.Errorf("%w: limits max_words must be positive", discourseerr.ErrInvalidConfig)
	}
	return nil
}

// Timeout returns the upstream request timeout as a duration.
func (l LLM) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}
