package model

import "strings"

// Field identifies one input of the registration form
type Field string

const (
	FieldFirstname       Field = "firstname"
	FieldLastname        Field = "lastname"
	FieldMobile          Field = "mobile"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirm_password"
)

// Fields lists the form inputs in display order
var Fields = []Field{
	FieldFirstname,
	FieldLastname,
	FieldMobile,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
}

// IsSecret reports whether the field holds a password
func (f Field) IsSecret() bool {
	return f == FieldPassword || f == FieldConfirmPassword
}

// Label returns the human-readable name of the field
func (f Field) Label() string {
	switch f {
	case FieldFirstname:
		return "Firstname"
	case FieldLastname:
		return "Lastname"
	case FieldMobile:
		return "Mobile number"
	case FieldEmail:
		return "Email"
	case FieldPassword:
		return "Password"
	case FieldConfirmPassword:
		return "Confirm password"
	default:
		return string(f)
	}
}

// ParseField converts a field name into a Field
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// RegistrationForm holds the raw, unvalidated user input
type RegistrationForm struct {
	Firstname       string
	Lastname        string
	Mobile          string
	Email           string
	Password        string
	ConfirmPassword string
}

// Set overwrites a single field
func (f *RegistrationForm) Set(field Field, value string) error {
	switch field {
	case FieldFirstname:
		f.Firstname = value
	case FieldLastname:
		f.Lastname = value
	case FieldMobile:
		f.Mobile = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Get returns the current value of a field
func (f *RegistrationForm) Get(field Field) (string, error) {
	switch field {
	case FieldFirstname:
		return f.Firstname, nil
	case FieldLastname:
		return f.Lastname, nil
	case FieldMobile:
		return f.Mobile, nil
	case FieldEmail:
		return f.Email, nil
	case FieldPassword:
		return f.Password, nil
	case FieldConfirmPassword:
		return f.ConfirmPassword, nil
	default:
		return "", ErrUnknownField
	}
}

// Reset empties every field
func (f *RegistrationForm) Reset() {
	*f = RegistrationForm{}
}

// IsEmpty reports whether every field is empty
func (f *RegistrationForm) IsEmpty() bool {
	return *f == RegistrationForm{}
}
