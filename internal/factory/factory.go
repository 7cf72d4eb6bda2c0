package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/onboarding/internal/config"
	"github.com/mcoot/onboarding/internal/dependencies/clock"
	"github.com/mcoot/onboarding/internal/dependencies/hasher"
	"github.com/mcoot/onboarding/internal/services/registration"
	"github.com/mcoot/onboarding/internal/services/splash"
	"github.com/mcoot/onboarding/internal/storage"
	"github.com/mcoot/onboarding/internal/storage/memory"
	mysqlstorage "github.com/mcoot/onboarding/internal/storage/mysql"
	pgstorage "github.com/mcoot/onboarding/internal/storage/postgres"
	redisstorage "github.com/mcoot/onboarding/internal/storage/redis"
	reststorage "github.com/mcoot/onboarding/internal/storage/rest"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock  clock.Clock
	Hasher hasher.PasswordHasher

	Logger       *slog.Logger
	SplashConfig splash.Config
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StoreType selects the storage backend
	// If empty, defaults to "memory"
	StoreType string
	// EnsureSchema creates the users table for the SQL backends
	EnsureSchema bool

	// Backend settings, required for the matching StoreType
	RedisConfig    *redisstorage.Config
	PostgresConfig *pgstorage.Config
	MySQLConfig    *mysqlstorage.Config
	RestConfig     *reststorage.Config

	SplashConfig splash.Config
	// BcryptCost of zero means hasher.DefaultCost
	BcryptCost int
}

// FromConfig translates loaded settings into a factory Config
func FromConfig(c *config.Config, logger *slog.Logger) Config {
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = c.Store.Redis.URL
	if c.Store.Redis.PoolSize > 0 {
		redisCfg.PoolSize = c.Store.Redis.PoolSize
	}

	restCfg := reststorage.DefaultConfig()
	restCfg.URL = c.Store.Rest.URL
	restCfg.APIKey = c.Store.Rest.APIKey
	restCfg.Logger = logger
	if c.Store.Rest.Timeout > 0 {
		restCfg.Timeout = c.Store.Rest.Timeout
	}

	return Config{
		Logger:       logger,
		StoreType:    c.Store.Type,
		EnsureSchema: c.Store.EnsureSchema,
		RedisConfig:  &redisCfg,
		PostgresConfig: &pgstorage.Config{
			URL:      c.Store.Postgres.URL,
			MaxConns: c.Store.Postgres.MaxConns,
		},
		MySQLConfig: &mysqlstorage.Config{
			Net:                c.Store.MySQL.Net,
			Server:             c.Store.MySQL.Server,
			DBName:             c.Store.MySQL.DBName,
			User:               c.Store.MySQL.User,
			Password:           c.Store.MySQL.Password,
			Timeout:            c.Store.MySQL.Timeout,
			MaxIdleConnections: c.Store.MySQL.MaxIdleConnections,
			MaxOpenConnections: c.Store.MySQL.MaxOpenConnections,
		},
		RestConfig:   &restCfg,
		SplashConfig: splash.Config{Duration: c.Splash.Duration},
		BcryptCost:   c.Hasher.Cost,
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	h := hasher.New(cfg.BcryptCost)

	logger.Debug("application wired",
		slog.String("store", storeTypeOrDefault(cfg.StoreType)),
		slog.Int("bcrypt_cost", h.Cost()),
	)

	return newWithDependencies(store, clk, h, cfg.SplashConfig, logger), nil
}

func newStore(ctx context.Context, cfg Config) (storage.Store, error) {
	switch storeTypeOrDefault(cfg.StoreType) {
	case config.StoreMemory:
		return memory.New(), nil

	case config.StoreRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StorePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StoreType is postgres")
		}
		store, err := pgstorage.New(ctx, *cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		if cfg.EnsureSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure postgres schema: %w", err)
			}
		}
		return store, nil

	case config.StoreMySQL:
		if cfg.MySQLConfig == nil {
			return nil, errors.New("MySQLConfig required when StoreType is mysql")
		}
		store, err := mysqlstorage.New(*cfg.MySQLConfig)
		if err != nil {
			return nil, err
		}
		if cfg.EnsureSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure mysql schema: %w", err)
			}
		}
		return store, nil

	case config.StoreRest:
		if cfg.RestConfig == nil {
			return nil, errors.New("RestConfig required when StoreType is rest")
		}
		store, err := reststorage.New(*cfg.RestConfig)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("invalid StoreType %q", cfg.StoreType)
	}
}

func storeTypeOrDefault(t string) string {
	if t == "" {
		return config.StoreMemory
	}
	return t
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, h hasher.PasswordHasher, splashCfg splash.Config, logger *slog.Logger) *App {
	if splashCfg.Duration <= 0 {
		splashCfg = splash.DefaultConfig()
	}
	return &App{
		Store:        store,
		Clock:        clk,
		Hasher:       h,
		Logger:       logger,
		SplashConfig: splashCfg,
	}
}

// NewSubmitter creates a registration submitter reporting to notifier
func (a *App) NewSubmitter(notifier registration.Notifier) *registration.Submitter {
	return registration.NewSubmitter(a.Store, a.Hasher, a.Clock, notifier, a.Logger)
}

// NewSplash creates an idle splash controller
func (a *App) NewSplash() *splash.Controller {
	return splash.NewController(a.Clock, a.SplashConfig, a.Logger)
}

// Close releases the store's connections, if it holds any
func (a *App) Close() error {
	if closer, ok := a.Store.(storage.Closer); ok {
		return closer.Close()
	}
	return nil
}
