package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/onboarding/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ConfigFile string
	Store      string
	Output     string
	Verbose    bool

	// App is the loaded application configuration
	App *config.Config
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ConfigFile: os.Getenv("ONBOARD_CONFIG_FILE"),
		Output:     getEnvOrDefault("ONBOARD_OUTPUT", "text"),
		Verbose:    false,
	}
}

// Load reads the application configuration and applies flag overrides
func (c *Config) Load() error {
	var (
		app *config.Config
		err error
	)
	if c.ConfigFile != "" {
		app, err = config.LoadFile(c.ConfigFile)
	} else {
		app, err = config.Load()
	}
	if err != nil {
		return err
	}

	if c.Store != "" {
		app.Store.Type = c.Store
	}
	if c.Verbose {
		app.LogLevel = "debug"
	}
	if err := app.Validate(); err != nil {
		return err
	}

	c.App = app
	return nil
}

// Logger creates the JSON logger writing to w
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.App != nil {
		if l, err := c.App.Level(); err == nil {
			level = l
		}
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
