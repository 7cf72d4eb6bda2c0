package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/services/registration"
	"github.com/mcoot/onboarding/internal/services/splash"
)

const banner = `
  +----------------------------+
  |         ONBOARDING         |
  |     create your account    |
  +----------------------------+
`

// Shell drives the terminal flow: splash first, then the registration form
type Shell struct {
	splash    *splash.Controller
	submitter *registration.Submitter
	out       io.Writer
	logger    *slog.Logger

	lines      chan string
	quit       chan struct{}
	quitOnce   sync.Once
	readerDone chan struct{}

	mu    sync.Mutex
	state model.SplashState
}

// New creates a Shell reading answers from in and rendering to out
func New(
	splashCtl *splash.Controller,
	submitter *registration.Submitter,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *Shell {
	s := &Shell{
		splash:     splashCtl,
		submitter:  submitter,
		out:        out,
		logger:     logger,
		lines:      make(chan string),
		quit:       make(chan struct{}),
		readerDone: make(chan struct{}),
		state:      model.SplashVisible,
	}
	go s.readLines(in)
	return s
}

// SplashState returns whether the splash screen is still showing
func (s *Shell) SplashState() model.SplashState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run shows the splash until it expires, then prompts for the form until a
// registration succeeds. Cancelling ctx during the splash tears it down
// without finishing it.
func (s *Shell) Run(ctx context.Context) error {
	defer s.quitOnce.Do(func() { close(s.quit) })

	if err := s.runSplash(ctx); err != nil {
		return err
	}
	return s.runRegistration(ctx)
}

func (s *Shell) runSplash(ctx context.Context) error {
	fmt.Fprint(s.out, banner)

	err := s.splash.Start(func() {
		s.mu.Lock()
		s.state = model.SplashFinished
		s.mu.Unlock()
	})
	if err != nil {
		return err
	}

	select {
	case <-s.splash.Done():
	case <-ctx.Done():
		s.splash.Stop()
		s.logger.Debug("splash torn down", slog.String("reason", ctx.Err().Error()))
		return ctx.Err()
	}

	if s.splash.State() != splash.StateFinished {
		return ctx.Err()
	}
	return nil
}

func (s *Shell) runRegistration(ctx context.Context) error {
	fmt.Fprintln(s.out, "\nRegister")
	fmt.Fprintln(s.out, "Press Enter to keep a value you already entered.")

	for {
		if err := s.fillForm(ctx); err != nil {
			return err
		}

		fmt.Fprintln(s.out, "Submitting...")
		var outcome registration.Outcome
		select {
		case outcome = <-s.submitter.SubmitAsync(ctx):
		case <-ctx.Done():
			return ctx.Err()
		}

		switch outcome.Status {
		case registration.StatusSucceeded:
			return nil
		case registration.StatusIgnored:
			s.logger.Warn("submission already in flight")
		}
	}
}

// fillForm prompts for every field. Empty answers keep the current value.
func (s *Shell) fillForm(ctx context.Context) error {
	form := s.submitter.Form()
	for _, field := range model.Fields {
		current, err := form.Get(field)
		if err != nil {
			return err
		}

		answer, err := s.prompt(ctx, promptLabel(field, current))
		if err != nil {
			return err
		}
		if answer == "" {
			continue
		}
		if err := s.submitter.Set(field, answer); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(s.out, label)
	select {
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", model.ErrInputClosed
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Shell) readLines(in io.Reader) {
	defer close(s.readerDone)
	defer close(s.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case s.lines <- strings.TrimRight(scanner.Text(), "\r"):
		case <-s.quit:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("failed to read input", slog.String("error", err.Error()))
	}
}

func promptLabel(field model.Field, current string) string {
	switch {
	case current == "":
		return field.Label() + ": "
	case field.IsSecret():
		return field.Label() + " [******]: "
	default:
		return fmt.Sprintf("%s [%s]: ", field.Label(), current)
	}
}
