package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/onboarding/internal/model"
)

// formFlags binds one flag per registration field
type formFlags struct {
	values map[model.Field]*string
}

func addFormFlags(cmd *cobra.Command) *formFlags {
	f := &formFlags{values: make(map[model.Field]*string, len(model.Fields))}
	for _, field := range model.Fields {
		v := new(string)
		cmd.Flags().StringVar(v, flagName(field), "", field.Label())
		f.values[field] = v
	}
	return f
}

// apply copies every flag value through set, in field order
func (f *formFlags) apply(set func(model.Field, string) error) error {
	for _, field := range model.Fields {
		if err := set(field, *f.values[field]); err != nil {
			return err
		}
	}
	return nil
}

// form returns the flag values as a RegistrationForm
func (f *formFlags) form() (model.RegistrationForm, error) {
	var form model.RegistrationForm
	err := f.apply(form.Set)
	return form, err
}

func flagName(field model.Field) string {
	return strings.ReplaceAll(string(field), "_", "-")
}
