// Package config loads beacon's startup configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"beacon/internal/logging"
	"github.com/BurntSushi/toml"
)

// ErrInvalidPort is returned when a configured port is outside 1..65535
var ErrInvalidPort = errors.New("invalid port")

// Config holds all configuration settings for the application
type Config struct {
	// Port is the TCP port the server listens on, on all interfaces
	Port int `toml:"port"`

	// HealthMessage is the free-text message returned by /health
	HealthMessage string `toml:"health_message"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// Page holds the landing page presentation settings
	Page PageConfig `toml:"page"`
}

// PageConfig configures the landing page served at /
type PageConfig struct {
	Title      string `toml:"title"`
	Heading    string `toml:"heading"`
	Subheading string `toml:"subheading"`
	Body       string `toml:"body"`
	Footer     string `toml:"footer"`

	// ShowRenderInfo adds the render time and port to the page
	ShowRenderInfo bool `toml:"show_render_info"`

	// TemplatePath replaces the embedded template with an html/template file
	TemplatePath string `toml:"template_path"`
}

// defaultConfig returns the configuration used when nothing overrides it
func defaultConfig() *Config {
	return &Config{
		Port:            DefaultPort,
		HealthMessage:   DefaultHealthMessage,
		ShutdownTimeout: DefaultShutdownTimeout,
		Page: PageConfig{
			Title:      "Beacon",
			Heading:    "Deployment Successful",
			Subheading: "Your application is live",
			Body:       "This page is served by beacon, a smoke-test target for delivery pipelines.",
			Footer:     "Health check available at /health",
		},
	}
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := defaultConfig()

	configPath := DefaultConfigPath
	if p := os.Getenv(EnvConfigPath); p != "" {
		configPath = p
	}
	if _, err := os.Stat(configPath); err == nil {
		md, err := toml.DecodeFile(configPath, config)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", configPath, err)
		}
		for _, key := range md.Undecoded() {
			logging.Warning("Unknown config key %q in %s", key.String(), configPath)
		}
	} else if os.Getenv(EnvConfigPath) != "" {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if raw := os.Getenv(EnvPort); raw != "" {
		port, err := ParsePort(raw)
		switch {
		case errors.Is(err, ErrInvalidPort):
			return nil, err
		case err != nil:
			logging.Warning("Ignoring non-numeric %s=%q, using port %d", EnvPort, raw, config.Port)
		default:
			config.Port = port
		}
	}

	if msg := os.Getenv(EnvHealthMessage); msg != "" {
		config.HealthMessage = msg
	}

	if tmpl := os.Getenv(EnvPageTemplate); tmpl != "" {
		config.Page.TemplatePath = tmpl
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ParsePort parses a port number. A value that is not a number returns a
// strconv error; a number outside 1..65535 returns ErrInvalidPort.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("port %q is not a number: %w", s, err)
	}
	if err := validatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

func validatePort(port int) error {
	if port < 1 || port > MaxPort {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidPort, port, MaxPort)
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if err := validatePort(c.Port); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Addr returns the listen address covering all interfaces
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Port: %d", c.Port))
	parts = append(parts, fmt.Sprintf("ShutdownTimeout: %s", c.ShutdownTimeout))
	parts = append(parts, fmt.Sprintf("ShowRenderInfo: %t", c.Page.ShowRenderInfo))
	if c.Page.TemplatePath != "" {
		parts = append(parts, fmt.Sprintf("TemplatePath: %s", c.Page.TemplatePath))
	}
	return strings.Join(parts, ", ")
}
