package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/onboarding/internal/services/registration"
)

var (
	errRegistrationFailed = errors.New("registration failed")
	errInvalidForm        = errors.New("form is invalid")
)

func newRegisterCmd() *cobra.Command {
	var flags *formFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Submit one registration without the interactive form",
		Example: `  onboard register --firstname Joan --lastname Ayala --mobile 3005998866 \
    --email joan@mail.com --password secret1 --confirm-password secret1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			submitter := app.NewSubmitter(nil)
			if err := flags.apply(submitter.Set); err != nil {
				return err
			}

			outcome := submitter.Submit(cmd.Context())

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(newOutcomeResult(outcome))

			switch outcome.Status {
			case registration.StatusSucceeded:
				return nil
			case registration.StatusInvalid:
				return errInvalidForm
			default:
				return errRegistrationFailed
			}
		},
	}

	flags = addFormFlags(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var flags *formFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a registration form without submitting it",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form()
			if err != nil {
				return err
			}

			verr := registration.NewValidator().Validate(form)

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(newValidationResult(verr))

			if verr != nil {
				return errInvalidForm
			}
			return nil
		},
	}

	flags = addFormFlags(cmd)
	return cmd
}
