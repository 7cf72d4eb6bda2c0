package registration

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/onboarding/internal/model"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule identifies one validation check
type Rule string

const (
	RuleFirstnameRequired Rule = "firstname_required"
	RuleLastnameRequired  Rule = "lastname_required"
	RuleMobileRequired    Rule = "mobile_required"
	RuleEmailRequired     Rule = "email_required"
	RuleEmailFormat       Rule = "email_format"
	RulePasswordRequired  Rule = "password_required"
	RulePasswordLength    Rule = "password_length"
	RulePasswordMatch     Rule = "password_match"
)

// ValidationError is the first rule a form fails
type ValidationError struct {
	Rule    Rule
	Field   model.Field
	Message string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// rule is a single check, run through go-playground/validator.
// other is only used by cross-field tags such as eqcsfield.
type rule struct {
	id      Rule
	field   model.Field
	tag     string
	message string
	value   func(f *model.RegistrationForm) string
	other   func(f *model.RegistrationForm) string
}

// rules are evaluated in order; the first failure wins
var rules = []rule{
	{
		id: RuleFirstnameRequired, field: model.FieldFirstname, tag: "required",
		message: "Firstname is required",
		value:   func(f *model.RegistrationForm) string { return strings.TrimSpace(f.Firstname) },
	},
	{
		id: RuleLastnameRequired, field: model.FieldLastname, tag: "required",
		message: "Lastname is required",
		value:   func(f *model.RegistrationForm) string { return strings.TrimSpace(f.Lastname) },
	},
	{
		id: RuleMobileRequired, field: model.FieldMobile, tag: "required",
		message: "Mobile number is required",
		value:   func(f *model.RegistrationForm) string { return strings.TrimSpace(f.Mobile) },
	},
	{
		id: RuleEmailRequired, field: model.FieldEmail, tag: "required",
		message: "Email is required",
		value:   func(f *model.RegistrationForm) string { return strings.TrimSpace(f.Email) },
	},
	{
		// matched against the raw value, so surrounding spaces fail here
		id: RuleEmailFormat, field: model.FieldEmail, tag: "simple_email",
		message: "Email format is invalid",
		value:   func(f *model.RegistrationForm) string { return f.Email },
	},
	{
		id: RulePasswordRequired, field: model.FieldPassword, tag: "required",
		message: "Password is required",
		value:   func(f *model.RegistrationForm) string { return f.Password },
	},
	{
		id: RulePasswordLength, field: model.FieldPassword, tag: "min=6",
		message: "Password must be at least 6 characters",
		value:   func(f *model.RegistrationForm) string { return f.Password },
	},
	{
		id: RulePasswordMatch, field: model.FieldConfirmPassword, tag: "eqcsfield",
		message: "Passwords do not match",
		value:   func(f *model.RegistrationForm) string { return f.Password },
		other:   func(f *model.RegistrationForm) string { return f.ConfirmPassword },
	},
}

// Validator checks a RegistrationForm against the ordered rule list
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("simple_email", simpleEmail); err != nil {
		panic("register simple_email validator: " + err.Error())
	}
	return &Validator{validate: v}
}

var simpleEmail validator.Func = func(fl validator.FieldLevel) bool {
	return emailRegexp.MatchString(fl.Field().String())
}

// Validate returns the first failing rule, or nil if the form is valid
func (v *Validator) Validate(form model.RegistrationForm) *ValidationError {
	for _, r := range rules {
		var err error
		if r.other != nil {
			err = v.validate.VarWithValue(r.value(&form), r.other(&form), r.tag)
		} else {
			err = v.validate.Var(r.value(&form), r.tag)
		}
		if err != nil {
			return &ValidationError{Rule: r.id, Field: r.field, Message: r.message}
		}
	}
	return nil
}
