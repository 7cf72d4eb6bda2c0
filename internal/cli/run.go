package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/shell"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the splash screen, then the registration form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			sh := shell.New(app.NewSplash(), app.NewSubmitter(out), cmd.InOrStdin(), cmd.OutOrStdout(), logger)

			err = sh.Run(ctx)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, model.ErrInputClosed), errors.Is(err, context.Canceled):
				logger.Info("onboarding ended before registration completed")
				return nil
			default:
				return err
			}
		},
	}
}
