package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com"
	DefaultModel    = "gemini-1.5-flash"
	DefaultTimeout  = 60 * time.Second
	DefaultAddr     = ":8080"
)

// apiKeyEnv lists the environment variables searched for the API key, in order.
var apiKeyEnv = []string{"GEMINI_API_KEY", "REACT_APP_GEMINI_API_KEY"}

type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration

	Dev     bool
	LogPath string

	// Addr is the listen address of the local relay.
	Addr string
}

// Load reads .env (if present) and the process environment on top of the
// defaults. An unparsable GEMINI_TIMEOUT returns an error together with a
// Config that keeps the default timeout, so callers may still accept it when
// the timeout is set some other way.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIKey:   apiKeyFromEnv(),
		Endpoint: getEnvOrDefault("GEMINI_ENDPOINT", DefaultEndpoint),
		Model:    getEnvOrDefault("GEMINI_MODEL", DefaultModel),
		Timeout:  DefaultTimeout,
		Addr:     DefaultAddr,
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.Contains(port, ":") {
			cfg.Addr = port
		} else {
			cfg.Addr = ":" + port
		}
	}

	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("invalid GEMINI_TIMEOUT value: %q", raw)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// BindFlags registers the command line flags on fs using the current values
// of cfg as defaults, so flags win over the environment. The API key flag
// has no default to keep the key out of help output; see Resolve.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.APIKey, "api-key", "", "Gemini API key (defaults to $GEMINI_API_KEY)")
	fs.StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Base URL of the generation endpoint")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Model id used in the generateContent path")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout, 0 disables it")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Development mode")
	fs.StringVar(&cfg.LogPath, "logPath", cfg.LogPath, "Path to save the log file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address for the local relay")
}

// Resolve fills in values that flags left unset. Call it after parsing.
func (c *Config) Resolve() {
	if c.APIKey == "" {
		c.APIKey = apiKeyFromEnv()
	}
}

func apiKeyFromEnv() string {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
