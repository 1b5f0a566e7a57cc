// Package config provides configuration management for Tunedeck.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with TD_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.tunedeck/config.yaml, /etc/tunedeck/config.yaml)
//  3. .env files
//  4. Environment variables (TD_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Environment variables override all other configuration sources.
// Use TD_ prefix and underscores for nested keys:
//   - TD_SERVER_PORT=8095
//   - TD_STORE_CONTENT_ROOT=/var/lib/tunedeck
//   - TD_BACKUP_AUTO_ENABLED=true
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure for Tunedeck.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Store contains the document store settings
	Store StoreConfig `mapstructure:"store"`

	// Bus contains the CAN bus simulator settings
	Bus BusConfig `mapstructure:"bus"`

	// Diagnostics contains the diagnostic engine settings
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`

	// Backup contains snapshot scheduling settings
	Backup BackupConfig `mapstructure:"backup"`

	// Logging contains logging and observability settings
	Logging LoggingConfig `mapstructure:"logging"`

	// Security contains security and rate limiting settings
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: localhost)
	Host string `mapstructure:"host"`

	// Port is the server listen port (default: 8095)
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug enables debug logging and additional endpoints
	Debug bool `mapstructure:"debug"`

	// TLSEnabled enables HTTPS
	TLSEnabled bool `mapstructure:"tls_enabled"`

	// TLSCert is the path to the TLS certificate file
	TLSCert string `mapstructure:"tls_cert"`

	// TLSKey is the path to the TLS private key file
	TLSKey string `mapstructure:"tls_key"`
}

// StoreConfig contains document store settings.
type StoreConfig struct {
	// ContentRoot is the directory all document collections live under
	ContentRoot string `mapstructure:"content_root"`
}

// BusConfig contains CAN bus simulator settings.
type BusConfig struct {
	// BufferSize bounds the shared message buffer across all buses
	BufferSize int `mapstructure:"buffer_size"`
}

// DiagnosticsConfig contains diagnostic engine settings.
type DiagnosticsConfig struct {
	// HistoryLimit bounds the retained diagnostic result history
	HistoryLimit int `mapstructure:"history_limit"`
}

// BackupConfig contains snapshot scheduling settings.
type BackupConfig struct {
	// AutoEnabled turns the periodic snapshot scheduler on
	AutoEnabled bool `mapstructure:"auto_enabled"`

	// Interval is the duration between automatic snapshots
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format"`

	// Output is the log output destination (stdout, file)
	Output string `mapstructure:"output"`
}

// SecurityConfig contains security and rate limiting settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// APIKeys are valid API keys for authentication (optional)
	APIKeys []string `mapstructure:"api_keys"`

	// AuthEnabled enables JWT authentication (default: false)
	AuthEnabled bool `mapstructure:"auth_enabled"`

	// JWTSecret is the secret key for signing JWT tokens
	JWTSecret string `mapstructure:"jwt_secret"`

	// JWTExpiration is the JWT token expiration duration (default: 24h)
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
}

var cfg *Config

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (TD_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.tunedeck")
		v.AddConfigPath("/etc/tunedeck")
	}

	if err := v.ReadInConfig(); err != nil {
		// An explicitly specified file may be absent, in which case the
		// defaults apply. Any other read error is fatal.
		if cfgFile != "" {
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("TD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8095)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.tls_enabled", false)

	v.SetDefault("store.content_root", "./content")

	v.SetDefault("bus.buffer_size", 100)

	v.SetDefault("diagnostics.history_limit", 500)

	v.SetDefault("backup.auto_enabled", false)
	v.SetDefault("backup.interval", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.auth_enabled", false)
	v.SetDefault("security.jwt_secret", "change-me-in-production")
	v.SetDefault("security.jwt_expiration", "24h")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Store.ContentRoot == "" {
		return fmt.Errorf("store content root is required")
	}

	if cfg.Bus.BufferSize < 1 {
		return fmt.Errorf("invalid bus buffer size: %d", cfg.Bus.BufferSize)
	}

	if cfg.Diagnostics.HistoryLimit < 1 {
		return fmt.Errorf("invalid diagnostics history limit: %d", cfg.Diagnostics.HistoryLimit)
	}

	if cfg.Backup.AutoEnabled && cfg.Backup.Interval < time.Minute {
		return fmt.Errorf("backup interval must be at least one minute, got %s", cfg.Backup.Interval)
	}

	return nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	return cfg
}

// Address returns the host:port pair the server binds to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
