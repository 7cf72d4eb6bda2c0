package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backend names
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
	StoreRest     = "rest"
)

// StoreTypes lists every supported backend
var StoreTypes = []string{StoreMemory, StoreRedis, StorePostgres, StoreMySQL, StoreRest}

// Config is the onboarding application configuration
type Config struct {
	LogLevel string `env:"ONBOARD_LOG_LEVEL" env-default:"info" env-description:"logging level: debug, info, warn, error"`
	Store    Store
	Splash   Splash
	Hasher   Hasher
}

type Store struct {
	Type         string `env:"ONBOARD_STORE_TYPE" env-default:"memory" env-description:"one of memory/redis/postgres/mysql/rest"`
	EnsureSchema bool   `env:"ONBOARD_STORE_ENSURE_SCHEMA" env-default:"false" env-description:"create the users table on startup (postgres, mysql)"`
	Redis        Redis
	Postgres     Postgres
	MySQL        MySQL
	Rest         Rest
}

type Redis struct {
	URL      string `env:"ONBOARD_REDIS_URL" env-default:"redis://localhost:6379"`
	PoolSize int    `env:"ONBOARD_REDIS_POOL_SIZE" env-default:"10"`
}

type Postgres struct {
	URL      string `env:"ONBOARD_POSTGRES_URL" env-default:""`
	MaxConns int32  `env:"ONBOARD_POSTGRES_MAX_CONNS" env-default:"4"`
}

type MySQL struct {
	Net                string        `env:"ONBOARD_MYSQL_NET" env-default:"tcp"`
	Server             string        `env:"ONBOARD_MYSQL_SERVER" env-default:"localhost:3306"`
	DBName             string        `env:"ONBOARD_MYSQL_DB" env-default:"onboarding"`
	User               string        `env:"ONBOARD_MYSQL_USER" env-default:"root"`
	Password           string        `env:"ONBOARD_MYSQL_PASSWORD" env-default:""`
	Timeout            time.Duration `env:"ONBOARD_MYSQL_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"ONBOARD_MYSQL_MAX_IDLE_CONNECTIONS" env-default:"4"`
	MaxOpenConnections int           `env:"ONBOARD_MYSQL_MAX_OPEN_CONNECTIONS" env-default:"4"`
}

type Rest struct {
	URL     string        `env:"ONBOARD_REST_URL" env-default:""`
	APIKey  string        `env:"ONBOARD_REST_API_KEY" env-default:""`
	Timeout time.Duration `env:"ONBOARD_REST_TIMEOUT" env-default:"30s"`
}

type Splash struct {
	Duration time.Duration `env:"ONBOARD_SPLASH_DURATION" env-default:"5s"`
}

type Hasher struct {
	Cost int `env:"ONBOARD_BCRYPT_COST" env-default:"10" env-description:"bcrypt work factor"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads a yaml, json, toml or .env file, then applies environment
// overrides on top of it
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that cannot be expressed as tags
func (c *Config) Validate() error {
	c.Store.Type = strings.ToLower(strings.TrimSpace(c.Store.Type))
	if !isStoreType(c.Store.Type) {
		return fmt.Errorf("invalid store type %q: must be one of %s", c.Store.Type, strings.Join(StoreTypes, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	switch c.Store.Type {
	case StorePostgres:
		if c.Store.Postgres.URL == "" {
			return fmt.Errorf("ONBOARD_POSTGRES_URL required when store type is %s", StorePostgres)
		}
	case StoreRest:
		if c.Store.Rest.URL == "" {
			return fmt.Errorf("ONBOARD_REST_URL required when store type is %s", StoreRest)
		}
	}
	return nil
}

// Level parses LogLevel into a slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// Usage returns a description of every environment variable
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func isStoreType(t string) bool {
	for _, known := range StoreTypes {
		if t == known {
			return true
		}
	}
	return false
}
