package registration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/onboarding/internal/model"
)

func validForm() model.RegistrationForm {
	return model.RegistrationForm{
		Firstname:       "Joan",
		Lastname:        "Ayala",
		Mobile:          "3005998866",
		Email:           "joan@mail.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func ruleMessages() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.message
	}
	return out
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	v := NewValidator()

	forms := []model.RegistrationForm{
		validForm(),
		{Firstname: " Joan ", Lastname: "Ayala", Mobile: "+57 300", Email: "a@b.co", Password: "123456", ConfirmPassword: "123456"},
		{Firstname: "J", Lastname: "A", Mobile: "1", Email: "x.y+z@sub.domain.org", Password: "pässwörd", ConfirmPassword: "pässwörd"},
	}
	for _, f := range forms {
		assert.Nil(t, v.Validate(f), "form %+v", f)
	}
}

func TestValidateSingleInvalidField(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(f *model.RegistrationForm)
		rule    Rule
		field   model.Field
		message string
	}{
		{"firstname empty", func(f *model.RegistrationForm) { f.Firstname = "" }, RuleFirstnameRequired, model.FieldFirstname, "Firstname is required"},
		{"firstname blank", func(f *model.RegistrationForm) { f.Firstname = "   " }, RuleFirstnameRequired, model.FieldFirstname, "Firstname is required"},
		{"lastname blank", func(f *model.RegistrationForm) { f.Lastname = "\t" }, RuleLastnameRequired, model.FieldLastname, "Lastname is required"},
		{"mobile blank", func(f *model.RegistrationForm) { f.Mobile = " " }, RuleMobileRequired, model.FieldMobile, "Mobile number is required"},
		{"email blank", func(f *model.RegistrationForm) { f.Email = "  " }, RuleEmailRequired, model.FieldEmail, "Email is required"},
		{"email malformed", func(f *model.RegistrationForm) { f.Email = "bademail" }, RuleEmailFormat, model.FieldEmail, "Email format is invalid"},
		{"email without tld", func(f *model.RegistrationForm) { f.Email = "joan@mail" }, RuleEmailFormat, model.FieldEmail, "Email format is invalid"},
		{"email with inner space", func(f *model.RegistrationForm) { f.Email = "jo an@mail.com" }, RuleEmailFormat, model.FieldEmail, "Email format is invalid"},
		{"email with padding", func(f *model.RegistrationForm) { f.Email = " joan@mail.com" }, RuleEmailFormat, model.FieldEmail, "Email format is invalid"},
		{"email two ats", func(f *model.RegistrationForm) { f.Email = "a@b@c.com" }, RuleEmailFormat, model.FieldEmail, "Email format is invalid"},
		{"password empty", func(f *model.RegistrationForm) { f.Password = ""; f.ConfirmPassword = "" }, RulePasswordRequired, model.FieldPassword, "Password is required"},
		{"password short", func(f *model.RegistrationForm) { f.Password = "12345"; f.ConfirmPassword = "12345" }, RulePasswordLength, model.FieldPassword, "Password must be at least 6 characters"},
		{"password mismatch", func(f *model.RegistrationForm) { f.ConfirmPassword = "secret2" }, RulePasswordMatch, model.FieldConfirmPassword, "Passwords do not match"},
		{"confirm empty", func(f *model.RegistrationForm) { f.ConfirmPassword = "" }, RulePasswordMatch, model.FieldConfirmPassword, "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			verr := v.Validate(form)
			require.NotNil(t, verr)
			assert.Equal(t, tt.rule, verr.Rule)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestValidatePasswordIsNotTrimmed(t *testing.T) {
	v := NewValidator()

	form := validForm()
	form.Password = "      "
	form.ConfirmPassword = "      "

	assert.Nil(t, v.Validate(form))
}

func TestValidateReportsEarliestRule(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		form model.RegistrationForm
		rule Rule
	}{
		{"everything empty", model.RegistrationForm{}, RuleFirstnameRequired},
		{"lastname and email bad", model.RegistrationForm{Firstname: "Joan", Mobile: "1", Email: "bad", Password: "secret1", ConfirmPassword: "secret1"}, RuleLastnameRequired},
		{"mobile and password bad", model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Password: "1"}, RuleMobileRequired},
		{"email empty and password short", model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Mobile: "1", Password: "1"}, RuleEmailRequired},
		{"email malformed and mismatch", model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Mobile: "1", Email: "bademail", Password: "secret1", ConfirmPassword: "other"}, RuleEmailFormat},
		{"password empty and mismatch", model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Mobile: "1", Email: "a@b.co", ConfirmPassword: "x"}, RulePasswordRequired},
		{"password short and mismatch", model.RegistrationForm{Firstname: "Joan", Lastname: "Ayala", Mobile: "1", Email: "a@b.co", Password: "abc", ConfirmPassword: "xyz"}, RulePasswordLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := v.Validate(tt.form)
			require.NotNil(t, verr)
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestValidatePriorityWhenEveryLaterRuleAlsoFails(t *testing.T) {
	v := NewValidator()

	// Each step repairs one more rule; the reported rule must advance in order.
	steps := []func(f *model.RegistrationForm){
		func(f *model.RegistrationForm) { f.Firstname = "Joan" },
		func(f *model.RegistrationForm) { f.Lastname = "Ayala" },
		func(f *model.RegistrationForm) { f.Mobile = "3005998866" },
		func(f *model.RegistrationForm) { f.Email = "bademail" },
		func(f *model.RegistrationForm) { f.Email = "joan@mail.com" },
		func(f *model.RegistrationForm) { f.Password = "abc" },
		func(f *model.RegistrationForm) { f.Password = "secret1" },
		func(f *model.RegistrationForm) { f.ConfirmPassword = "secret1" },
	}

	form := model.RegistrationForm{}
	messages := ruleMessages()
	for i, step := range steps {
		verr := v.Validate(form)
		require.NotNil(t, verr, "step %d", i)
		assert.Equal(t, messages[i], verr.Message, "step %d", i)
		step(&form)
	}
	assert.Nil(t, v.Validate(form))
}

func TestMessagesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Firstname is required",
		"Lastname is required",
		"Mobile number is required",
		"Email is required",
		"Email format is invalid",
		"Password is required",
		"Password must be at least 6 characters",
		"Passwords do not match",
	}, ruleMessages())
}

func TestValidatePasswordLengthBoundary(t *testing.T) {
	v := NewValidator()

	form := validForm()
	form.Password = strings.Repeat("a", MinPasswordLength)
	form.ConfirmPassword = form.Password
	assert.Nil(t, v.Validate(form))

	form.Password = strings.Repeat("a", MinPasswordLength-1)
	form.ConfirmPassword = form.Password
	verr := v.Validate(form)
	require.NotNil(t, verr)
	assert.Equal(t, RulePasswordLength, verr.Rule)
}

func TestValidatePasswordLengthCountsCharactersNotBytes(t *testing.T) {
	v := NewValidator()

	form := validForm()
	form.Password = "😀😀😀"
	form.ConfirmPassword = form.Password
	verr := v.Validate(form)
	require.NotNil(t, verr)
	assert.Equal(t, RulePasswordLength, verr.Rule)
	assert.Equal(t, "Password must be at least 6 characters", verr.Message)

	form.Password = "😀😀😀😀😀😀"
	form.ConfirmPassword = form.Password
	assert.Nil(t, v.Validate(form))
}
