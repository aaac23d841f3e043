package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Storage backend: "mongodb" or "sqlite"
	Backend string `mapstructure:"backend"`

	// MongoDB settings
	MongoURI            string        `mapstructure:"mongo_uri"`
	MongoDatabase       string        `mapstructure:"mongo_database"`
	MongoCollection     string        `mapstructure:"mongo_collection"`
	MongoConnectTimeout time.Duration `mapstructure:"mongo_connect_timeout"`

	// SQLite settings
	SQLitePath string `mapstructure:"sqlite_path"`

	// API settings
	APIHost       string   `mapstructure:"api_host"`
	APIPort       int      `mapstructure:"api_port"`
	RoutePrefixes []string `mapstructure:"route_prefixes"`

	// Optional CORS settings, empty allows every origin
	CORSOrigins []string `mapstructure:"cors_origins"`

	LogLevel string `mapstructure:"log_level"`
	DevMode  bool   `mapstructure:"dev_mode"`

	ConfigPath string `mapstructure:"-"`
}

const (
	BackendMongoDB = "mongodb"
	BackendSQLite  = "sqlite"

	EnvPrefix = "CLIENTSAPI"

	DefaultConfigPath          = "/etc/clientsapi/config.yml"
	DefaultBackend             = BackendMongoDB
	DefaultMongoDatabase       = "clientsapi"
	DefaultMongoCollection     = "clients"
	DefaultMongoConnectTimeout = 10 * time.Second
	DefaultSQLitePath          = "clients.sqlite3"
	DefaultAPIHost             = "0.0.0.0"
	DefaultAPIPort             = 5000
	DefaultLogLevel            = "info"
)

// DefaultRoutePrefixes mounts the client routes under /api/clients and /clients.
var DefaultRoutePrefixes = []string{"/api", ""}

// Load reads configuration from a .env file, an optional YAML file and the
// environment. An empty configPath falls back to DefaultConfigPath, which may
// be absent.
func Load(configPath string) (*Config, error) {
	// Variables already present in the environment win over .env
	_ = godotenv.Load()

	v := viper.New()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", DefaultMongoDatabase)
	v.SetDefault("mongo_collection", DefaultMongoCollection)
	v.SetDefault("mongo_connect_timeout", DefaultMongoConnectTimeout)
	v.SetDefault("sqlite_path", DefaultSQLitePath)
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("route_prefixes", DefaultRoutePrefixes)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("dev_mode", false)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Unprefixed names used by hosted deployments
	_ = v.BindEnv("mongo_uri", EnvPrefix+"_MONGO_URI", "MONGO_URI")
	_ = v.BindEnv("api_port", EnvPrefix+"_API_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	// Comma separated lists from the environment arrive as a single element
	cfg.RoutePrefixes = splitList(cfg.RoutePrefixes)
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMongoDB:
		if c.MongoURI == "" {
			return fmt.Errorf("mongo_uri is required for the mongodb backend")
		}
		if c.MongoDatabase == "" || c.MongoCollection == "" {
			return fmt.Errorf("mongo_database and mongo_collection must not be empty")
		}
		if c.MongoConnectTimeout <= 0 {
			return fmt.Errorf("mongo_connect_timeout must be positive")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("backend must be '%s' or '%s'", BackendMongoDB, BackendSQLite)
	}

	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}

	if len(c.RoutePrefixes) == 0 {
		return fmt.Errorf("route_prefixes must contain at least one prefix")
	}
	seen := make(map[string]bool)
	for _, prefix := range c.RoutePrefixes {
		if prefix != "" && (!strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/")) {
			return fmt.Errorf("route prefix must start and not end with '/': %q", prefix)
		}
		if seen[prefix] {
			return fmt.Errorf("duplicate route prefix: %q", prefix)
		}
		seen[prefix] = true
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode || os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}

func splitList(values []string) []string {
	if len(values) != 1 || !strings.Contains(values[0], ",") {
		return values
	}
	parts := strings.Split(values[0], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
