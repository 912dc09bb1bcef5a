package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
// It is read-only after Load() returns and thread-safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Auth     AuthConfig     `yaml:"auth"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// AIConfig contains optional AI enrichment settings. An empty APIKey
// disables enrichment; recommendations still work without it.
type AIConfig struct {
	APIKey             string  `yaml:"-"` // env-only, never in YAML
	Model              string  `yaml:"model"`
	CustomChallengeOdds float64 `yaml:"custom_challenge_odds"`
	MinHistoryForCustom int     `yaml:"min_history_for_custom"`
}

// AuthConfig contains token parsing settings. An empty secret means
// bearer tokens are decoded without signature verification.
type AuthConfig struct {
	JWTSecret string `yaml:"-"` // env-only, never in YAML
}

// FeedbackConfig contains in-memory feedback log retention settings.
type FeedbackConfig struct {
	MaxPerUser    int      `yaml:"max_per_user"`
	MaxAge        Duration `yaml:"max_age"`
	PruneInterval Duration `yaml:"prune_interval"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CORSConfig contains cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// EnrichmentEnabled reports whether AI enrichment is configured.
func (c *Config) EnrichmentEnabled() bool {
	return c.AI.APIKey != ""
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Load loads configuration with precedence: defaults → YAML file → env vars.
// Returns an immutable Config suitable for concurrent read access.
func Load() (*Config, error) {
	cfg := newDefaults()

	configPath := getEnv("SEREN_CONFIG_PATH", "config/seren.yaml")

	// Load YAML file if it exists (missing file is not an error)
	if err := loadYAMLFile(cfg, configPath); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific path.
// Used for testing and explicit path specification.
func LoadFromFile(path string) (*Config, error) {
	cfg := newDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		AI: AIConfig{
			Model:               "gpt-4o-mini",
			CustomChallengeOdds: 0.3,
			MinHistoryForCustom: 5,
		},
		Feedback: FeedbackConfig{
			MaxPerUser:    500,
			MaxAge:        Duration(90 * 24 * time.Hour),
			PruneInterval: Duration(1 * time.Hour),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// loadYAMLFile loads configuration from a YAML file if it exists.
// Missing file is not an error; we just use defaults.
func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("SEREN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SEREN_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = Duration(d)
		}
	}
	if v := os.Getenv("SEREN_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = Duration(d)
		}
	}
	if v := os.Getenv("SEREN_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ShutdownTimeout = Duration(d)
		}
	}

	// AI (OPENAI_API_KEY is industry convention)
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("SEREN_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("SEREN_CUSTOM_CHALLENGE_ODDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AI.CustomChallengeOdds = f
		}
	}

	// Auth
	if v := os.Getenv("SEREN_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	// Feedback
	if v := os.Getenv("SEREN_FEEDBACK_MAX_PER_USER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feedback.MaxPerUser = n
		}
	}
	if v := os.Getenv("SEREN_FEEDBACK_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Feedback.MaxAge = Duration(d)
		}
	}
	if v := os.Getenv("SEREN_FEEDBACK_PRUNE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Feedback.PruneInterval = Duration(d)
		}
	}

	// Log
	if v := os.Getenv("SEREN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SEREN_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	// CORS (comma-separated list)
	if v := os.Getenv("SEREN_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORS.AllowedOrigins = origins
		}
	}
}

// validate checks configuration bounds. No keys are required: the
// service runs fully featured without AI enrichment or JWT parsing.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.AI.CustomChallengeOdds < 0 || c.AI.CustomChallengeOdds > 1 {
		return fmt.Errorf("custom_challenge_odds %v outside [0, 1]", c.AI.CustomChallengeOdds)
	}
	if c.Feedback.MaxPerUser < 1 {
		return fmt.Errorf("feedback max_per_user must be positive, got %d", c.Feedback.MaxPerUser)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
