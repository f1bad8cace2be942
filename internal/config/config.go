package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Broadcast granularity modes
const (
	BroadcastModeFull    = "full"
	BroadcastModePartial = "partial"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Logs      LogsConfig      `yaml:"logs"`
	Codes     CodesConfig     `yaml:"codes"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int           `yaml:"port"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	StaticDir   string        `yaml:"static_dir"`

	// MaxMessageBytes bounds a single inbound websocket frame. Raised
	// well past the usual few KB because item and auction submissions
	// carry inline images.
	MaxMessageBytes int64 `yaml:"max_message_bytes"`
}

// BroadcastConfig selects what goes out after a mutation
type BroadcastConfig struct {
	// Mode is "partial" (changed collections only) or "full" (whole
	// snapshot every time)
	Mode string `yaml:"mode"`
}

// SweepConfig holds the auction sweeper configuration
type SweepConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LogsConfig bounds the activity log
type LogsConfig struct {
	Capacity int `yaml:"capacity"`
}

// CodesConfig controls gift-code generation
type CodesConfig struct {
	SuffixLength int `yaml:"suffix_length"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if cfg.Broadcast.Mode != BroadcastModeFull && cfg.Broadcast.Mode != BroadcastModePartial {
		return nil, fmt.Errorf("invalid broadcast mode %q", cfg.Broadcast.Mode)
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "public"
	}
	if c.Server.MaxMessageBytes == 0 {
		c.Server.MaxMessageBytes = 16 << 20
	}

	if c.Broadcast.Mode == "" {
		c.Broadcast.Mode = BroadcastModePartial
	}

	if c.Sweep.Interval == 0 {
		c.Sweep.Interval = 30 * time.Second
	}

	if c.Logs.Capacity == 0 {
		c.Logs.Capacity = 50
	}

	if c.Codes.SuffixLength == 0 {
		c.Codes.SuffixLength = 4
	}
}

// DefaultConfig returns a configuration with all defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
