package config

import "time"

// Port configuration constants
const (
	// DefaultPort is used when neither the config file nor PORT sets one
	DefaultPort = 3000

	// MaxPort is the highest valid TCP port
	MaxPort = 65535
)

// Defaults for the remaining settings
const (
	DefaultHealthMessage   = "Modern app running successfully"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultConfigPath      = "config.toml"
)

// Environment variables read by Load
const (
	EnvPort          = "PORT"
	EnvConfigPath    = "BEACON_CONFIG"
	EnvHealthMessage = "BEACON_HEALTH_MESSAGE"
	EnvPageTemplate  = "BEACON_PAGE_TEMPLATE"
)
