// Package config handles the XDG configuration directory and config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"netlist/internal/storage"
	"netlist/internal/view"
)

const (
	// AppName is the application directory name.
	AppName = "netlist"

	// ConfigFile is the optional configuration filename inside Dir.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. NETLIST_STORAGE_BACKEND.
	EnvPrefix = "NETLIST"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendSQLite   = "sqlite"
)

// ErrUnknownBackend is returned for an unsupported storage.backend value.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-" yaml:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-" yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-" yaml:"-"`

	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	View    ViewConfig    `mapstructure:"view" yaml:"view"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
}

// StorageConfig selects where the task slot lives.
type StorageConfig struct {
	// Backend is one of file, memory, postgres, mysql, sqlite.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// DSN is the connection string for database backends.
	// For sqlite it is a file path; empty means <Dir>/netlist.db.
	DSN string `mapstructure:"dsn" yaml:"dsn,omitempty"`

	// Slot is the name of the storage slot.
	Slot string `mapstructure:"slot" yaml:"slot"`
}

// ViewConfig holds the initial filter and sort selections.
type ViewConfig struct {
	Filter string `mapstructure:"filter" yaml:"filter"`
	Sort   string `mapstructure:"sort" yaml:"sort"`
}

// ServerConfig configures `netlist serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// ExportConfig configures `netlist export`.
type ExportConfig struct {
	// Font is a UTF-8 TrueType font for PDF task lines. Without it, PDF
	// export refuses text outside cp1252.
	Font string `mapstructure:"font" yaml:"font,omitempty"`
}

// Default returns the built-in configuration for dir.
func Default(dir string) *Config {
	return &Config{
		Dir: dir,
		Storage: StorageConfig{
			Backend: BackendFile,
			Slot:    storage.DefaultSlotName,
		},
		View: ViewConfig{
			Filter: "all",
			Sort:   "priority",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8089",
		},
	}
}

// New creates a Config for the default or specified config directory,
// layering config.yaml and NETLIST_* environment variables over the defaults.
// If configDir is empty, uses XDG_CONFIG_HOME/netlist or $HOME/.config/netlist.
// A missing config.yaml is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults must be registered for AutomaticEnv to see the keys on Unmarshal.
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.dsn", cfg.Storage.DSN)
	v.SetDefault("storage.slot", cfg.Storage.Slot)
	v.SetDefault("view.filter", cfg.View.Filter)
	v.SetDefault("view.sort", cfg.View.Sort)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("export.font", cfg.Export.Font)

	if _, err := os.Stat(cfg.FilePath()); err == nil {
		v.SetConfigFile(cfg.FilePath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", cfg.FilePath(), err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite:
	case BackendPostgres, BackendMySQL:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn required for %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Slot) == "" {
		return errors.New("storage.slot must not be empty")
	}
	if _, err := view.ParseFilter(c.View.Filter); err != nil {
		return fmt.Errorf("view.filter: %w", err)
	}
	if _, err := view.ParseSort(c.View.Sort); err != nil {
		return fmt.Errorf("view.sort: %w", err)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// SQLitePath returns the sqlite database path.
func (c *Config) SQLitePath() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	return filepath.Join(c.Dir, AppName+".db")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
