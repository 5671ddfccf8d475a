package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RemoteConfig holds the connection settings for the remote store.
type RemoteConfig struct {
	// BaseURL is the root URL of the remote store
	// (e.g., https://xyzcompany.example.co).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// AnonKey is the public API key sent with every request.
	AnonKey string `mapstructure:"anon_key" yaml:"anon_key"`

	// TimeoutSec bounds a single HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// SyncConfig holds the reconciliation cadence settings.
type SyncConfig struct {
	// DebounceSec is the quiet period after a local mutation before a
	// drain is attempted.
	DebounceSec int `mapstructure:"debounce_sec" yaml:"debounce_sec"`

	// IntervalSec is the fixed periodic drain trigger.
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`
}

// ReportConfig holds report rendering defaults.
type ReportConfig struct {
	Template  string `mapstructure:"template" yaml:"template"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// UserID is the account whose shifts and notes this session manages.
	UserID string `mapstructure:"user_id" yaml:"user_id"`

	// DataDir holds the local sqlite database.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Remote   RemoteConfig `mapstructure:"remote" yaml:"remote"`
	Sync     SyncConfig   `mapstructure:"sync" yaml:"sync"`
	Report   ReportConfig `mapstructure:"report" yaml:"report"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/attendance/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "attendance", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, _ := os.UserHomeDir()
	return &AppConfig{
		DataDir:  filepath.Join(home, ".local", "share", "attendance"),
		LogLevel: "info",
		Remote:   RemoteConfig{TimeoutSec: 30},
		Sync:     SyncConfig{DebounceSec: 5, IntervalSec: 60},
		Report:   ReportConfig{OutputDir: "."},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	home, _ := os.UserHomeDir()
	v.SetDefault("data_dir", filepath.Join(home, ".local", "share", "attendance"))
	v.SetDefault("log_level", "info")
	v.SetDefault("remote.timeout_sec", 30)
	v.SetDefault("sync.debounce_sec", 5)
	v.SetDefault("sync.interval_sec", 60)
	v.SetDefault("report.output_dir", ".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user_id", cfg.UserID)
	v.Set("data_dir", cfg.DataDir)
	v.Set("log_level", cfg.LogLevel)
	v.Set("remote", cfg.Remote)
	v.Set("sync", cfg.Sync)
	v.Set("report", cfg.Report)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
