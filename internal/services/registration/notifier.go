package registration

// Alert titles
const (
	TitleValidation = "Validation"
	TitleFailed     = "Registration failed"
	TitleSuccess    = "Success"
)

// Alert bodies that are not derived from an error
const (
	MessageSuccess      = "User registered successfully"
	MessageUnknownError = "Unknown error"
)

// Notifier surfaces alerts to the user
type Notifier interface {
	Alert(title, message string)
}

type nopNotifier struct{}

func (nopNotifier) Alert(string, string) {}
