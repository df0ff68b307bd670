// Package config loads runtime settings.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file, an optional .env file, then AIRQ_-prefixed environment
// variables. OPENAI_API_KEY is honored when AIRQ_NLU_API_KEY is unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AIRQ_"

// DefaultDotenv is the .env file read when Load is given none.
const DefaultDotenv = ".env"

// Config is the full runtime configuration.
type Config struct {
	// DataDir holds the movement partitions (*.parquet).
	DataDir      string        `yaml:"data_dir" env:"DATA_DIR"`
	QueryTimeout time.Duration `yaml:"query_timeout" env:"QUERY_TIMEOUT"`
	BatchSize    int           `yaml:"batch_size" env:"BATCH_SIZE"`

	// HistoryPath is the conversation log database. Empty disables it.
	HistoryPath string `yaml:"history_path" env:"HISTORY_PATH"`

	// OtherThreshold is the market-share long-tail cut, in percent.
	OtherThreshold float64 `yaml:"other_threshold" env:"OTHER_THRESHOLD"`

	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR"`

	NLU NLU `yaml:"nlu" envPrefix:"NLU_"`
}

// NLU configures the question parser endpoint.
type NLU struct {
	BaseURL  string        `yaml:"base_url" env:"BASE_URL"`
	Model    string        `yaml:"model" env:"MODEL"`
	APIKey   string        `yaml:"api_key" env:"API_KEY"`
	Attempts int           `yaml:"attempts" env:"ATTEMPTS"`
	Backoff  time.Duration `yaml:"backoff" env:"BACKOFF"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:        "data/movements",
		QueryTimeout:   30 * time.Second,
		BatchSize:      1000,
		HistoryPath:    "chat_history.db",
		OtherThreshold: 1.0,
		ListenAddr:     ":8080",
		NLU: NLU{
			BaseURL:  "https://api.openai.com/v1",
			Model:    "gpt-4o-mini",
			Attempts: 3,
			Backoff:  2 * time.Second,
			Timeout:  30 * time.Second,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; dotenv
// names .env files, defaulting to DefaultDotenv when it exists. The process
// environment always wins over .env entries.
func Load(path string, dotenv ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	vars, err := environment(dotenv)
	if err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.NLU.APIKey == "" {
		cfg.NLU.APIKey = vars["OPENAI_API_KEY"]
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// environment merges .env entries under the process environment.
func environment(files []string) (map[string]string, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultDotenv); err == nil {
			files = []string{DefaultDotenv}
		}
	}

	vars := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("read dotenv: %w", err)
		}
		for k, v := range read {
			vars[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, problem string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s %s", field, problem))
		}
	}

	check(strings.TrimSpace(c.DataDir) != "", "data_dir", "must not be empty")
	check(c.QueryTimeout > 0, "query_timeout", "must be positive")
	check(c.BatchSize > 0, "batch_size", "must be positive")
	check(c.OtherThreshold >= 0 && c.OtherThreshold <= 100, "other_threshold", "must be between 0 and 100")
	check(strings.TrimSpace(c.ListenAddr) != "", "listen_addr", "must not be empty")
	check(c.NLU.Attempts >= 1, "nlu.attempts", "must be at least 1")
	check(c.NLU.Backoff >= 0, "nlu.backoff", "must not be negative")
	check(c.NLU.Timeout > 0, "nlu.timeout", "must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
