package registration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/onboarding/internal/dependencies/clock"
	"github.com/mcoot/onboarding/internal/dependencies/hasher"
	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
)

// Status is the result category of a Submit call
type Status string

const (
	// StatusIgnored means another submission was already in flight
	StatusIgnored   Status = "ignored"
	StatusInvalid   Status = "invalid"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome describes how a submission ended and what the user was shown
type Outcome struct {
	Status  Status
	Title   string
	Message string

	// Validation is set when Status is StatusInvalid
	Validation *ValidationError
	// Cause is the hashing or store failure when Status is StatusFailed
	Cause error
}

// Submitter owns one registration form and submits it to the remote store.
// At most one submission runs at a time per Submitter.
type Submitter struct {
	store     storage.Store
	hasher    hasher.PasswordHasher
	clock     clock.Clock
	notifier  Notifier
	validator *Validator
	logger    *slog.Logger

	mu         sync.Mutex
	form       model.RegistrationForm
	submitting bool
}

// NewSubmitter creates a Submitter with an empty form
func NewSubmitter(
	store storage.Store,
	hasher hasher.PasswordHasher,
	clock clock.Clock,
	notifier Notifier,
	logger *slog.Logger,
) *Submitter {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Submitter{
		store:     store,
		hasher:    hasher,
		clock:     clock,
		notifier:  notifier,
		validator: NewValidator(),
		logger:    logger,
	}
}

// UpdateField overwrites one form field by name. No validation is performed.
func (s *Submitter) UpdateField(name, value string) error {
	field, err := model.ParseField(name)
	if err != nil {
		return err
	}
	return s.Set(field, value)
}

// Set overwrites one form field
func (s *Submitter) Set(field model.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Set(field, value)
}

// Form returns a copy of the current form
func (s *Submitter) Form() model.RegistrationForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Submitting reports whether a submission is in flight
func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Validate returns the first failing rule for the current form, or nil
func (s *Submitter) Validate() *ValidationError {
	return s.validator.Validate(s.Form())
}

// Submit validates the form, hashes the password and inserts the record,
// blocking until the store answers. Every result is reported through the
// Notifier; nothing is returned as an error.
func (s *Submitter) Submit(ctx context.Context) Outcome {
	form, outcome, ok := s.begin()
	if !ok {
		return outcome
	}
	return s.run(ctx, form)
}

// SubmitAsync is Submit without blocking the caller. The in-flight flag is
// already set when SubmitAsync returns; the channel yields one Outcome.
func (s *Submitter) SubmitAsync(ctx context.Context) <-chan Outcome {
	ch := make(chan Outcome, 1)

	form, outcome, ok := s.begin()
	if !ok {
		ch <- outcome
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)
		ch <- s.run(ctx, form)
	}()
	return ch
}

// begin applies the single-flight guard and the validation gate.
// It returns a snapshot of the form when the submission may proceed.
func (s *Submitter) begin() (model.RegistrationForm, Outcome, bool) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		s.logger.Debug("submission ignored, already in flight")
		return model.RegistrationForm{}, Outcome{Status: StatusIgnored}, false
	}

	form := s.form
	if verr := s.validator.Validate(form); verr != nil {
		s.mu.Unlock()
		s.logger.Debug("registration form invalid", slog.String("rule", string(verr.Rule)))
		s.notifier.Alert(TitleValidation, verr.Message)
		return form, Outcome{
			Status:     StatusInvalid,
			Title:      TitleValidation,
			Message:    verr.Message,
			Validation: verr,
		}, false
	}

	s.submitting = true
	s.mu.Unlock()
	return form, Outcome{}, true
}

func (s *Submitter) run(ctx context.Context, form model.RegistrationForm) (outcome Outcome) {
	defer s.finish()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("registration submission panicked", slog.Any("panic", r))
			err, _ := r.(error)
			outcome = s.reduce(&panicError{value: r, err: err})
		}
	}()

	hash, err := s.hasher.Hash(ctx, form.Password)
	if err != nil {
		return s.reduce(err)
	}

	record := model.NewRegistrationRecord(form, hash, s.clock.Now())

	if err := s.store.Insert(ctx, storage.TableUsers, record); err != nil {
		return s.reduce(err)
	}
	return s.reduce(nil)
}

// reduce maps the result of the asynchronous chain back into form state.
func (s *Submitter) reduce(err error) Outcome {
	if err == nil {
		s.logger.Info("registration succeeded")
		s.notifier.Alert(TitleSuccess, MessageSuccess)

		// Success is the only path that clears the form
		s.mu.Lock()
		s.form.Reset()
		s.mu.Unlock()

		return Outcome{Status: StatusSucceeded, Title: TitleSuccess, Message: MessageSuccess}
	}

	// Failure keeps the form so the user can correct and retry
	msg := FailureMessage(err)
	attrs := []any{slog.String("error", err.Error())}
	var remote *storage.RemoteError
	if errors.As(err, &remote) && remote.Code != "" {
		attrs = append(attrs, slog.String("code", remote.Code))
	}
	s.logger.Warn("registration failed", attrs...)
	s.notifier.Alert(TitleFailed, msg)

	return Outcome{Status: StatusFailed, Title: TitleFailed, Message: msg, Cause: err}
}

func (s *Submitter) finish() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// FailureMessage picks the user-facing text for a hashing or store failure.
// Remote messages pass through verbatim; anything without a message falls
// back to MessageUnknownError.
func FailureMessage(err error) string {
	if err == nil {
		return MessageUnknownError
	}

	var remote *storage.RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return remote.Message
		}
		return MessageUnknownError
	}

	var pe *panicError
	if errors.As(err, &pe) {
		if pe.err != nil && pe.err.Error() != "" {
			return pe.err.Error()
		}
		return MessageUnknownError
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MessageUnknownError
}

// panicError carries a value recovered from the hasher or the store
type panicError struct {
	value any
	err   error
}

func (e *panicError) Error() string {
	if e.err != nil {
		return "panic: " + e.err.Error()
	}
	return "panic"
}

func (e *panicError) Unwrap() error {
	return e.err
}
