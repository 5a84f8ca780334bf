package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Sync    SyncConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// AIConfig holds the text-generation collaborator configuration. The API key
// is deliberately optional: a missing key fails at the point of first use and
// every caller substitutes its local fallback.
type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// SyncConfig holds the simulated device-sync behavior.
type SyncConfig struct {
	Latency time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// AI defaults
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", 10*time.Second)

	// Device-sync latency mimics the wearable round trip on refresh
	v.SetDefault("sync.latency", 600*time.Millisecond)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// AI collaborator
	v.BindEnv("ai.apikey", "AURA_AI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("ai.model", "AURA_AI_MODEL")
	v.BindEnv("ai.timeout", "AURA_AI_TIMEOUT")

	// Device sync
	v.BindEnv("sync.latency", "AURA_SYNC_LATENCY")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	if c.AI.Model == "" {
		return fmt.Errorf("ai.model is required")
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive")
	}

	if c.Sync.Latency < 0 {
		return fmt.Errorf("sync.latency must not be negative")
	}

	return nil
}
