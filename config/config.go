// ABOUTME: Application configuration with precedence defaults, YAML file, .env, environment
// ABOUTME: Read-only after Load returns

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const AppName = "opslog"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Charm    CharmConfig    `yaml:"charm"`
	Insights InsightsConfig `yaml:"insights"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type CharmConfig struct {
	Host     string `yaml:"host"`
	AutoSync bool   `yaml:"auto_sync"`
}

type InsightsConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	Timeout  Duration `yaml:"timeout"`
	APIKey   string   `yaml:"-"` // env only
}

type ServerConfig struct {
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Duration is a time.Duration written as a string such as "30s" in YAML.
type Duration time.Duration

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

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DefaultPath returns $OPSLOG_CONFIG or the XDG config location.
func DefaultPath() string {
	if p := os.Getenv("OPSLOG_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads the config at path, or DefaultPath when path is empty. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = DefaultPath()
	}
	if err := loadYAMLFile(cfg, path); err != nil {
		return nil, err
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config with every default value.
func Defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(xdg.DataHome, AppName, AppName+".db"),
		},
		Charm: CharmConfig{
			Host:     "charm.2389.dev",
			AutoSync: true,
		},
		Insights: InsightsConfig{
			Provider: "gemini",
			Timeout:  Duration(30 * time.Second),
		},
		Server: ServerConfig{
			Port:            8765,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

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

// applyEnvOverrides lets non-empty environment variables win over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPSLOG_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("OPSLOG_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("OPSLOG_CHARM_HOST"); v != "" {
		cfg.Charm.Host = v
	}
	if v := os.Getenv("OPSLOG_CHARM_AUTO_SYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Charm.AutoSync = b
		}
	}
	if v := os.Getenv("OPSLOG_INSIGHTS_PROVIDER"); v != "" {
		cfg.Insights.Provider = v
	}
	if v := os.Getenv("OPSLOG_INSIGHTS_MODEL"); v != "" {
		cfg.Insights.Model = v
	}
	if v := os.Getenv("OPSLOG_INSIGHTS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Insights.Timeout = Duration(d)
		}
	}
	cfg.Insights.APIKey = insightsKey(cfg.Insights.Provider)
	if v := os.Getenv("OPSLOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("OPSLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OPSLOG_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
}

// insightsKey prefers the opslog-specific variable, then the provider's conventional one.
func insightsKey(provider string) string {
	if v := os.Getenv("OPSLOG_INSIGHTS_API_KEY"); v != "" {
		return v
	}
	switch strings.ToLower(provider) {
	case "gemini":
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			return v
		}
		return os.Getenv("GOOGLE_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendCharm, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be sqlite, charm or memory, got %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
		return errors.New("storage.path is required for the sqlite backend")
	}
	switch strings.ToLower(c.Insights.Provider) {
	case "gemini", "openai", "none":
	default:
		return fmt.Errorf("insights.provider must be gemini, openai or none, got %q", c.Insights.Provider)
	}
	if c.Insights.Timeout <= 0 {
		return errors.New("insights.timeout must be positive")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
