package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/onboarding/internal/services/registration"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// Ensure Output can surface registration alerts
var _ registration.Notifier = (*Output)(nil)

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

// Alert shows a registration alert
func (o *Output) Alert(title, message string) {
	if o.format == "json" {
		data, _ := json.Marshal(AlertResult{Title: title, Message: message})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintf(o.out, "\n[%s] %s\n\n", title, message)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case OutcomeResult:
		o.printOutcome(v)
	case ValidationResult:
		o.printValidation(v)
	case HashResult:
		fmt.Fprintln(o.out, v.Hash)
	case VerifyResult:
		o.printVerify(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AlertResult is an alert as shown to the user
type AlertResult struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// OutcomeResult describes a finished registration attempt
type OutcomeResult struct {
	Status  string `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ValidationResult is the result of checking a form
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Rule    string `json:"rule,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// HashResult holds a generated password hash
type HashResult struct {
	Hash string `json:"hash"`
	Cost int    `json:"cost"`
}

// VerifyResult reports whether a password matches a hash
type VerifyResult struct {
	Match bool `json:"match"`
	Cost  int  `json:"cost,omitempty"`
}

func newOutcomeResult(outcome registration.Outcome) OutcomeResult {
	result := OutcomeResult{
		Status:  string(outcome.Status),
		Title:   outcome.Title,
		Message: outcome.Message,
	}
	if outcome.Validation != nil {
		result.Rule = string(outcome.Validation.Rule)
		result.Field = string(outcome.Validation.Field)
	}
	return result
}

func newValidationResult(verr *registration.ValidationError) ValidationResult {
	if verr == nil {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{
		Valid:   false,
		Rule:    string(verr.Rule),
		Field:   string(verr.Field),
		Message: verr.Message,
	}
}

func (o *Output) printOutcome(r OutcomeResult) {
	fmt.Fprintf(o.out, "%s: %s\n", r.Title, r.Message)
}

func (o *Output) printValidation(r ValidationResult) {
	if r.Valid {
		fmt.Fprintln(o.out, "Form is valid")
		return
	}
	fmt.Fprintf(o.out, "Invalid %s: %s\n", r.Field, r.Message)
}

func (o *Output) printVerify(r VerifyResult) {
	if r.Match {
		fmt.Fprintf(o.out, "Password matches (cost %d)\n", r.Cost)
		return
	}
	fmt.Fprintln(o.out, "Password does not match")
}
