package splash

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/onboarding/internal/dependencies/clock"
	"github.com/mcoot/onboarding/internal/model"
)

// DefaultDuration is how long the splash screen stays up
const DefaultDuration = 5000 * time.Millisecond

// State is the lifecycle position of one splash activation
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateFinished  State = "finished"
	StateCancelled State = "cancelled"
)

// IsTerminal reports whether no further transition is possible
func (s State) IsTerminal() bool {
	return s == StateFinished || s == StateCancelled
}

// Config holds the splash settings
type Config struct {
	Duration time.Duration
}

// DefaultConfig returns the standard splash configuration
func DefaultConfig() Config {
	return Config{Duration: DefaultDuration}
}

// Controller runs a one-shot countdown and reports its expiry.
// A Controller is activated at most once.
type Controller struct {
	clock    clock.Clock
	duration time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	state    State
	timer    clock.Timer
	onFinish func()
	done     chan struct{}
}

// NewController creates an idle splash controller
func NewController(clock clock.Clock, cfg Config, logger *slog.Logger) *Controller {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	return &Controller{
		clock:    clock,
		duration: cfg.Duration,
		logger:   logger,
		state:    StateIdle,
		done:     make(chan struct{}),
	}
}

// Start begins the countdown. onFinish runs exactly once if the countdown
// expires before Stop is called, and never otherwise.
func (c *Controller) Start(onFinish func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return model.ErrAlreadyActivated
	}

	c.state = StatePending
	c.onFinish = onFinish
	c.timer = c.clock.AfterFunc(c.duration, c.expire)

	c.logger.Debug("splash started", slog.Duration("duration", c.duration))
	return nil
}

// Stop tears the splash down. A pending countdown is cancelled; in any
// other state Stop does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePending {
		return
	}

	c.timer.Stop()
	c.state = StateCancelled
	c.onFinish = nil
	close(c.done)

	c.logger.Debug("splash cancelled")
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once the controller reaches Finished or Cancelled. On
// expiry it closes only after the completion callback has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) expire() {
	c.mu.Lock()
	// Stop may have won the race against a timer that already fired
	if c.state != StatePending {
		c.mu.Unlock()
		return
	}
	c.state = StateFinished
	onFinish := c.onFinish
	c.onFinish = nil
	c.mu.Unlock()

	// Done must not close until the callback has observed the expiry
	if onFinish != nil {
		onFinish()
	}
	close(c.done)
	c.logger.Debug("splash finished")
}
