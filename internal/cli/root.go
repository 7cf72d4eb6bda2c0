package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/onboarding/internal/factory"
)

var (
	cfg    *Config
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "onboard",
		Short: "Account onboarding: splash screen and registration form",
		Long: `onboard runs the account onboarding flow in the terminal.

The run command shows the splash screen and then the registration form.
The register and validate commands submit or check a form given as flags,
and hash and verify are helpers for the stored password hashes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			// stdout belongs to the user, logs go to stderr
			logger = cfg.Logger(cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file: yaml, json, toml or .env (env: ONBOARD_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Store, "store", cfg.Store, "Store backend: memory, redis, postgres, mysql, rest (env: ONBOARD_STORE_TYPE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newHashCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newEnvCmd())

	return rootCmd
}

// newApp wires the application for commands that talk to the store
func newApp(ctx context.Context) (*factory.App, error) {
	return factory.New(ctx, factory.FromConfig(cfg.App, logger))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
