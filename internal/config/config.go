// Package config loads SimpleCRM settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SIMPLECRM_GRAPHQL_ENDPOINT.
const EnvPrefix = "SIMPLECRM"

// Config holds application configuration.
type Config struct {
	GraphQL GraphQLConfig `mapstructure:"graphql"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// GraphQLConfig holds endpoint settings.
type GraphQLConfig struct {
	Endpoint string            `mapstructure:"endpoint"`
	Timeout  time.Duration     `mapstructure:"timeout"`
	Headers  map[string]string `mapstructure:"headers"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	Policy  string        `mapstructure:"policy"`
	TTL     time.Duration `mapstructure:"ttl"`
	Size    int           `mapstructure:"size"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale        string `mapstructure:"locale"`
	StartRoute    string `mapstructure:"start_route"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// LogConfig holds log file settings. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graphql.endpoint", "http://localhost:8000/graphql")
	v.SetDefault("graphql.timeout", "10s")
	v.SetDefault("graphql.headers", map[string]string{})
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.path", filepath.Join(home(), ".cache", "simplecrm", "responses.db"))
	v.SetDefault("cache.policy", "cache-first")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.size", 256)
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.start_route", "/")
	v.SetDefault("ui.markdown_style", "dark")
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "simplecrm", "simplecrm.log"))
	v.SetDefault("log.level", "info")
}

// Path returns the config file location: $SIMPLECRM_CONFIG or
// ~/.config/simplecrm/config.toml.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "simplecrm", "config.toml")
}

// Load reads configuration from file and env. A missing file is not an error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads configuration from path and env.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the client cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GraphQL.Endpoint) == "" {
		return fmt.Errorf("config: graphql.endpoint is required")
	}
	if c.GraphQL.Timeout < 0 {
		return fmt.Errorf("config: graphql.timeout must not be negative")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return fmt.Errorf("config: cache.path is required when the cache is enabled")
	}
	return nil
}

// Update sets the given keys in the file at path and leaves every other
// key as the user wrote it. Defaults, env values and flag overrides are not
// written. The file and its directory are created when missing.
func Update(path string, values map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	for key, val := range values {
		v.Set(key, val)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
