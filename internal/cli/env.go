package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/onboarding/internal/config"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables onboard reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), config.Usage())
			return nil
		},
	}
}
