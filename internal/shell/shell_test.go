package shell

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/onboarding/internal/dependencies/mocks"
	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/services/registration"
	"github.com/mcoot/onboarding/internal/services/splash"
	"github.com/mcoot/onboarding/internal/testutil"
)

type ShellSuite struct {
	suite.Suite
	clock     *mocks.MockClock
	store     *mocks.MockStore
	notifier  *mocks.MockNotifier
	splash    *splash.Controller
	submitter *registration.Submitter
	out       *bytes.Buffer
}

func TestShellSuite(t *testing.T) {
	suite.Run(t, new(ShellSuite))
}

func (s *ShellSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = mocks.NewMockStore()
	s.notifier = mocks.NewMockNotifier()
	s.splash = splash.NewController(s.clock, splash.DefaultConfig(), testutil.NopLogger())
	s.submitter = registration.NewSubmitter(s.store, mocks.NewMockHasher(), s.clock, s.notifier, testutil.NopLogger())
	s.out = &bytes.Buffer{}
}

func (s *ShellSuite) start(ctx context.Context, input string) (*Shell, <-chan error) {
	sh := New(s.splash, s.submitter, strings.NewReader(input), s.out, testutil.NopLogger())
	errCh := make(chan error, 1)
	go func() {
		errCh <- sh.Run(ctx)
	}()

	s.Require().Eventually(func() bool {
		return s.clock.PendingTimers() == 1
	}, 2*time.Second, time.Millisecond)
	return sh, errCh
}

func (s *ShellSuite) wait(errCh <-chan error) error {
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		s.FailNow("shell did not return")
		return nil
	}
}

func lines(values ...string) string {
	return strings.Join(values, "\n") + "\n"
}

func (s *ShellSuite) TestSplashThenSuccessfulRegistration() {
	sh, errCh := s.start(context.Background(),
		lines("Joan", "Ayala", "3005998866", "joan@mail.com", "secret1", "secret1"))

	s.Equal(model.SplashVisible, sh.SplashState())
	s.clock.Advance(splash.DefaultDuration)

	s.Require().NoError(s.wait(errCh))
	s.Equal(model.SplashFinished, sh.SplashState())
	s.Equal(1, s.store.CallCount())
	s.Equal(mocks.Alert{Title: "Success", Message: "User registered successfully"}, s.notifier.Last())

	out := s.out.String()
	s.Contains(out, "ONBOARDING")
	s.Contains(out, "Firstname: ")
	s.Contains(out, "Confirm password: ")
}

// screenRecorder notes the splash state at the moment the registration
// screen is written
type screenRecorder struct {
	mu              sync.Mutex
	buf             bytes.Buffer
	shell           *Shell
	stateAtRegister model.SplashState
}

func (r *screenRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stateAtRegister == "" && bytes.Contains(p, []byte("Register")) {
		r.stateAtRegister = r.shell.SplashState()
	}
	return r.buf.Write(p)
}

func (r *screenRecorder) StateAtRegister() model.SplashState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateAtRegister
}

func (s *ShellSuite) TestSplashStateFinishedWhenRegistrationShown() {
	rec := &screenRecorder{}
	sh := New(s.splash, s.submitter, strings.NewReader(""), rec, testutil.NopLogger())
	rec.shell = sh

	errCh := make(chan error, 1)
	go func() {
		errCh <- sh.Run(context.Background())
	}()
	s.Require().Eventually(func() bool {
		return s.clock.PendingTimers() == 1
	}, 2*time.Second, time.Millisecond)

	s.clock.Advance(splash.DefaultDuration)

	s.ErrorIs(s.wait(errCh), model.ErrInputClosed)
	s.Equal(model.SplashFinished, rec.StateAtRegister())
}

func (s *ShellSuite) readerStopped(sh *Shell) bool {
	select {
	case <-sh.readerDone:
		return true
	default:
		return false
	}
}

func (s *ShellSuite) TestReaderStopsWhenRunSucceedsWithInputLeft() {
	sh, errCh := s.start(context.Background(),
		lines("Joan", "Ayala", "3005998866", "joan@mail.com", "secret1", "secret1", "extra", "more"))
	s.clock.Advance(splash.DefaultDuration)

	s.Require().NoError(s.wait(errCh))
	s.Eventually(func() bool {
		return s.readerStopped(sh)
	}, 2*time.Second, time.Millisecond)
}

func (s *ShellSuite) TestReaderStopsWhenCancelledDuringSplash() {
	ctx, cancel := context.WithCancel(context.Background())
	sh, errCh := s.start(ctx, lines("Joan", "Ayala"))

	cancel()

	s.ErrorIs(s.wait(errCh), context.Canceled)
	s.Eventually(func() bool {
		return s.readerStopped(sh)
	}, 2*time.Second, time.Millisecond)
}

func (s *ShellSuite) TestFormNotShownBeforeSplashExpires() {
	sh, errCh := s.start(context.Background(), "")

	s.clock.Advance(2000 * time.Millisecond)

	s.Equal(model.SplashVisible, sh.SplashState())
	s.NotContains(s.out.String(), "Register")

	s.clock.Advance(3000 * time.Millisecond)
	s.ErrorIs(s.wait(errCh), model.ErrInputClosed)
	s.Equal(model.SplashFinished, sh.SplashState())
}

func (s *ShellSuite) TestInvalidInputIsCorrectedAndResubmitted() {
	input := lines(
		"Joan", "Ayala", "3005998866", "bademail", "secret1", "secret1",
		"", "", "", "joan@mail.com", "", "",
	)
	_, errCh := s.start(context.Background(), input)
	s.clock.Advance(splash.DefaultDuration)

	s.Require().NoError(s.wait(errCh))

	s.Equal([]mocks.Alert{
		{Title: "Validation", Message: "Email format is invalid"},
		{Title: "Success", Message: "User registered successfully"},
	}, s.notifier.Alerts())
	s.Require().Equal(1, s.store.CallCount())
	s.Equal("joan@mail.com", s.store.Calls()[0].Record.Email)

	out := s.out.String()
	s.Contains(out, "Firstname [Joan]: ")
	s.Contains(out, "Password [******]: ")
	s.NotContains(out, "secret1")
}

func (s *ShellSuite) TestEndOfInputStopsWithoutSubmitting() {
	_, errCh := s.start(context.Background(), lines("Joan"))
	s.clock.Advance(splash.DefaultDuration)

	s.ErrorIs(s.wait(errCh), model.ErrInputClosed)
	s.Equal(0, s.store.CallCount())
	s.Equal("Joan", s.submitter.Form().Firstname)
}

func (s *ShellSuite) TestCancelDuringSplashTearsItDown() {
	ctx, cancel := context.WithCancel(context.Background())
	sh, errCh := s.start(ctx, "")

	s.clock.Advance(2000 * time.Millisecond)
	cancel()

	s.ErrorIs(s.wait(errCh), context.Canceled)
	s.Equal(splash.StateCancelled, s.splash.State())
	s.Equal(0, s.clock.PendingTimers())

	s.clock.Advance(10 * time.Second)
	s.Equal(model.SplashVisible, sh.SplashState())
}

func (s *ShellSuite) TestSplashCanOnlyRunOnce() {
	_, errCh := s.start(context.Background(), "")
	s.clock.Advance(splash.DefaultDuration)
	s.ErrorIs(s.wait(errCh), model.ErrInputClosed)

	again := New(s.splash, s.submitter, strings.NewReader(""), &bytes.Buffer{}, testutil.NopLogger())
	s.ErrorIs(again.Run(context.Background()), model.ErrAlreadyActivated)
}

func (s *ShellSuite) TestPromptLabel() {
	s.Equal("Email: ", promptLabel(model.FieldEmail, ""))
	s.Equal("Email [joan@mail.com]: ", promptLabel(model.FieldEmail, "joan@mail.com"))
	s.Equal("Password [******]: ", promptLabel(model.FieldPassword, "secret1"))
}
