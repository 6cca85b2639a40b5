package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SessionCookie  string   `mapstructure:"session_cookie"`
	SessionMaxAge  int      `mapstructure:"session_max_age"` // seconds
}

// FeedConfig holds product feed configuration
type FeedConfig struct {
	BaseURL               string   `mapstructure:"base_url"`
	Path                  string   `mapstructure:"path"`
	Format                string   `mapstructure:"format"` // json or html
	ScriptSelector        string   `mapstructure:"script_selector"`
	Timeout               int      `mapstructure:"timeout"`
	MaxRetries            int      `mapstructure:"max_retries"`
	MaxWorkers            int      `mapstructure:"max_workers"`
	MaxPages              int      `mapstructure:"max_pages"`
	MaxRequestsPerSecond  int      `mapstructure:"max_requests_per_second"`
	CircuitBreakerMinutes int      `mapstructure:"circuit_breaker_minutes"`
	RefreshInterval       int      `mapstructure:"refresh_interval"` // seconds
	Mirrors               []string `mapstructure:"mirrors"`
}

// CatalogConfig holds defaults for new sessions
type CatalogConfig struct {
	ItemsPerPage int `mapstructure:"items_per_page"`
}

// RedisConfig holds Redis connection details for session state
type RedisConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	SessionTTL int    `mapstructure:"session_ttl"` // seconds
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Load loads configuration from config.yaml (or the file named by
// CATALOG_CONFIG) with environment variable overrides
func Load() (*Config, error) {
	v := viper.New()

	if path := os.Getenv("CATALOG_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	return load(v)
}

// LoadFile loads configuration from an explicit path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("catalog")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	switch c.Feed.Format {
	case "json", "html":
	default:
		return fmt.Errorf("feed.format must be json or html, got %q", c.Feed.Format)
	}
	if c.Feed.MaxPages < 1 {
		return fmt.Errorf("feed.max_pages must be positive")
	}
	if c.Catalog.ItemsPerPage < 1 {
		return fmt.Errorf("catalog.items_per_page must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.session_cookie", "catalog_session")
	v.SetDefault("server.session_max_age", 7*24*3600)

	v.SetDefault("feed.base_url", "")
	v.SetDefault("feed.path", "/products.json")
	v.SetDefault("feed.format", "json")
	v.SetDefault("feed.script_selector", "script#catalog-products")
	v.SetDefault("feed.timeout", 30)
	v.SetDefault("feed.max_retries", 3)
	v.SetDefault("feed.max_workers", 4)
	v.SetDefault("feed.max_pages", 50)
	v.SetDefault("feed.max_requests_per_second", 5)
	v.SetDefault("feed.circuit_breaker_minutes", 10)
	v.SetDefault("feed.refresh_interval", 300)
	v.SetDefault("feed.mirrors", []string{})

	v.SetDefault("catalog.items_per_page", 100)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.session_ttl", 7*24*3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
