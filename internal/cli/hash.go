package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/onboarding/internal/dependencies/hasher"
)

var errPasswordMismatch = errors.New("password does not match hash")

func newHashCmd() *cobra.Command {
	var (
		password string
		cost     int
	)

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Generate a bcrypt hash the way registration stores passwords",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			if !cmd.Flags().Changed("cost") {
				cost = cfg.App.Hasher.Cost
			}

			h := hasher.New(cost)
			hash, err := h.Hash(cmd.Context(), password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(HashResult{Hash: hash, Cost: h.Cost()})
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Plaintext password (required)")
	cmd.Flags().IntVar(&cost, "cost", hasher.DefaultCost, "bcrypt cost (env: ONBOARD_BCRYPT_COST)")

	return cmd
}

func newVerifyCmd() *cobra.Command {
	var hash, password string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a plaintext password against a stored hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			if hash == "" || password == "" {
				return fmt.Errorf("--hash and --password are required")
			}

			cost, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				return fmt.Errorf("invalid hash: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := hasher.New(cost).Compare(hash, password); err != nil {
				out.Print(VerifyResult{Match: false})
				return errPasswordMismatch
			}

			out.Print(VerifyResult{Match: true, Cost: cost})
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "bcrypt hash (required)")
	cmd.Flags().StringVar(&password, "password", "", "Plaintext password (required)")

	return cmd
}
