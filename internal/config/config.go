package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Wizard   WizardConfig   `mapstructure:"wizard"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port                 int    `mapstructure:"port"`
	Host                 string `mapstructure:"host"`
	Mode                 string `mapstructure:"mode"`                    // gin mode: debug, release, test
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"` // 0 disables pacing
	ShutdownTimeout      int    `mapstructure:"shutdown_timeout"`        // seconds
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig controls the logrus logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// CatalogConfig says where the category catalog is loaded from
type CatalogConfig struct {
	Source     string `mapstructure:"source"` // file, http or postgres
	Path       string `mapstructure:"path"`
	URL        string `mapstructure:"url"`
	Format     string `mapstructure:"format"` // json or yaml, empty to detect
	Timeout    int    `mapstructure:"timeout"`
	MaxRetries int    `mapstructure:"max_retries"`
	Table      string `mapstructure:"table"`
	Name       string `mapstructure:"name"` // row to read from Table
}

// SessionConfig holds session storage and cookie settings
type SessionConfig struct {
	Backend    string `mapstructure:"backend"` // memory or redis
	CookieName string `mapstructure:"cookie_name"`
	Secure     bool   `mapstructure:"secure"`
	TTL        int    `mapstructure:"ttl"` // seconds
}

// WizardConfig holds behaviour switches of the wizard steps
type WizardConfig struct {
	RequireSelection bool `mapstructure:"require_selection"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load loads configuration from YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory and falls
// back to defaults when there is none; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the file source")
		}
	case "http":
		if c.Catalog.URL == "" {
			return fmt.Errorf("catalog.url is required for the http source")
		}
	case "postgres":
		if c.Catalog.Table == "" || c.Catalog.Name == "" {
			return fmt.Errorf("catalog.table and catalog.name are required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q", c.Catalog.Source)
	}

	switch c.Catalog.Format {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("unknown catalog.format %q", c.Catalog.Format)
	}

	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_requests_per_second", 0)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "./categories.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.format", "")
	v.SetDefault("catalog.timeout", 30)
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.table", "category_catalogs")
	v.SetDefault("catalog.name", "default")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.cookie_name", "wizard_session")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.ttl", 86400)

	v.SetDefault("wizard.require_selection", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "wizard")
	v.SetDefault("database.user", "wizard_user")
	v.SetDefault("database.password", "wizard_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "wizard:session:")
}
