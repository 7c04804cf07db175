package timerqueue

import (
	"fmt"
	"log/slog"
	"time"

	tqerrors "github.com/vnykmshr/timerqueue/pkg/common/errors"
	"github.com/vnykmshr/timerqueue/pkg/common/validation"
	"github.com/vnykmshr/timerqueue/pkg/log"
	"github.com/vnykmshr/timerqueue/pkg/metrics"
)

const module = "timerqueue"

const (
	// DefaultMaxWait caps every worker sleep so the stop flag and newly
	// scheduled events are noticed at least this often.
	DefaultMaxWait = time.Second

	// DefaultMinWait is the shortest sleep between two drains.
	DefaultMinWait = time.Millisecond

	// DefaultName labels logs and metrics of an unnamed queue.
	DefaultName = "default"
)

// FireMode selects whether callbacks run with the queue lock held.
type FireMode int

const (
	// FireLocked invokes each due callback while holding the queue lock.
	// At most one callback runs at a time and every Schedule, Cancel and
	// Reschedule waits for the running callback. Callbacks must not call
	// back into their queue.
	FireLocked FireMode = iota

	// FireUnlocked re-arms due events under the lock, then releases it and
	// invokes the callbacks on the worker goroutine. Callbacks may call any
	// queue operation except Close, including cancelling their own event.
	FireUnlocked
)

func (m FireMode) String() string {
	switch m {
	case FireLocked:
		return "locked"
	case FireUnlocked:
		return "unlocked"
	default:
		return fmt.Sprintf("FireMode(%d)", int(m))
	}
}

// Config holds timer queue configuration. Zero values select defaults.
type Config struct {
	// Name labels logs and metrics (default: "default").
	Name string

	// MaxWait is the upper bound on a single worker sleep (default: 1s).
	MaxWait time.Duration

	// MinWait is the lower bound on a single worker sleep (default: 1ms).
	// It keeps zero-timeout periodic events from spinning the worker.
	MinWait time.Duration

	// FireMode selects locked (default) or unlocked callback execution.
	FireMode FireMode

	// DisableEarlyWake stops Schedule and Reschedule from waking the worker
	// when they create an expiry earlier than its current wake target. The
	// new event then waits out the current sleep, bounded by MaxWait.
	DisableEarlyWake bool

	// Clock supplies the current time (default: SystemClock).
	Clock Clock

	// Location is used to evaluate cron expressions (default: time.Local).
	Location *time.Location

	// Logger receives lifecycle and operation logs (default: discarded).
	Logger *slog.Logger

	// Metrics enables Prometheus instrumentation.
	Metrics metrics.Config
}

// Validate reports the first invalid field of c, after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()

	if err := validation.ValidatePositiveDuration(module, "max_wait", c.MaxWait); err != nil {
		return err
	}
	if err := validation.ValidatePositiveDuration(module, "min_wait", c.MinWait); err != nil {
		return err
	}
	if c.MinWait > c.MaxWait {
		return tqerrors.NewValidationError(module, "min_wait", c.MinWait, "exceeds max_wait").
			WithHint(fmt.Sprintf("use a value no greater than %v", c.MaxWait))
	}
	if c.FireMode != FireLocked && c.FireMode != FireUnlocked {
		return tqerrors.NewValidationError(module, "fire_mode", int(c.FireMode), "unknown fire mode").
			WithHint("use FireLocked or FireUnlocked")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.MaxWait == 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.MinWait == 0 {
		c.MinWait = DefaultMinWait
		if c.MaxWait > 0 && c.MinWait > c.MaxWait {
			c.MinWait = c.MaxWait
		}
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Logger == nil {
		c.Logger = log.Discard()
	}
	return c
}
