// ABOUTME: Gainsbook configuration management with backend selection.
// ABOUTME: Loads config.yaml through viper and provides the storage backend factory.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gainsbook/internal/charm"
	"github.com/harperreed/gainsbook/internal/kvstore"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "GAINSBOOK"

	// Config keys.
	KeyBackend          = "backend"
	KeyDataDir          = "data_dir"
	KeyLogLevel         = "log_level"
	KeyLogFile          = "log_file"
	KeyDefaultCountdown = "default_countdown"
	KeyCharmHost        = "charm_host"

	// Backend names.
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"

	defaultLogLevel         = "info"
	defaultCountdownMinutes = 1
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# gainsbook configuration

# Storage backend: sqlite, badger or charm
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir: ~/.local/share/gainsbook

# Log level: debug, info, warn, error
log_level: info

# Log file used while the MCP server owns stdout (optional)
# log_file: ~/.local/state/gainsbook/gainsbook.log

# Countdown preset in minutes used by "timer countdown" without --minutes
default_countdown: 1
`

// Config stores gainsbook configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger" or "charm".
	Backend string `mapstructure:"backend" yaml:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts gainsbook.db here. Badger puts its files under badger/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/gainsbook.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file,omitempty"`

	// DefaultCountdown is the countdown preset in minutes.
	DefaultCountdown int `mapstructure:"default_countdown" yaml:"default_countdown,omitempty"`

	// CharmHost overrides the Charm server for the charm backend.
	CharmHost string `mapstructure:"charm_host" yaml:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, defaulting to
// gainsbook.log under the XDG state directory.
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return ExpandPath(c.LogFile)
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "gainsbook", "gainsbook.log")
}

// GetDefaultCountdown returns the countdown preset in minutes.
func (c *Config) GetDefaultCountdown() int {
	if c.DefaultCountdown <= 0 {
		return defaultCountdownMinutes
	}
	return c.DefaultCountdown
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(logger *log.Logger) (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		dbPath := filepath.Join(dataDir, "gainsbook.db")
		return storage.Open(dbPath)
	case BackendBadger:
		store, err := kvstore.OpenBadger(filepath.Join(dataDir, "badger"), logger)
		if err != nil {
			return nil, err
		}
		return storage.NewKVStore(store), nil
	case BackendCharm:
		client, err := charm.Open(charm.Options{Host: c.CharmHost, AutoSync: true})
		if err != nil {
			return nil, err
		}
		if client.IsReadOnly() && logger != nil {
			logger.Warn("charm database is read-only; another process holds the lock")
		}
		return storage.NewKVStore(client), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// ConfigDir returns the config directory following XDG spec.
func ConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gainsbook")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return filepath.Join(ConfigDir(), configFileExt)
}

// Load reads config from the default config directory.
func Load() (*Config, error) {
	return LoadFrom(ConfigDir())
}

// LoadFrom reads config.yaml from configDir, creating a default file on first run.
// A missing config.yaml is not an error. GAINSBOOK_* environment variables override file values.
func LoadFrom(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyDefaultCountdown, defaultCountdownMinutes)
	v.SetDefault(KeyCharmHost, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Save writes config to the default config path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigDir())
}

// SaveTo writes config.yaml into configDir.
func (c *Config) SaveTo(configDir string) error {
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(configFileType)
	v.Set(KeyBackend, c.GetBackend())
	if c.DataDir != "" {
		v.Set(KeyDataDir, c.DataDir)
	}
	v.Set(KeyLogLevel, c.GetLogLevel())
	if c.LogFile != "" {
		v.Set(KeyLogFile, c.LogFile)
	}
	v.Set(KeyDefaultCountdown, c.GetDefaultCountdown())
	if c.CharmHost != "" {
		v.Set(KeyCharmHost, c.CharmHost)
	}
	return v.WriteConfigAs(filepath.Join(configDir, configFileExt))
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0600)
}
