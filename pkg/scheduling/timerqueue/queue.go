package timerqueue

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	tqerrors "github.com/vnykmshr/timerqueue/pkg/common/errors"
	"github.com/vnykmshr/timerqueue/pkg/common/validation"
	"github.com/vnykmshr/timerqueue/pkg/log"
	"github.com/vnykmshr/timerqueue/pkg/metrics"
)

// Queue is a timer queue: an expiry-ordered set of periodic events fired by a
// single background worker. All methods are safe for concurrent use.
type Queue struct {
	cfg        Config
	clock      Clock
	logger     *slog.Logger
	registry   *metrics.Registry
	metrics    *metrics.QueueMetrics
	cronParser cron.Parser

	mu     sync.Mutex
	store  *store
	wakeAt time.Time

	closed   atomic.Bool
	stopping atomic.Bool
	state    atomic.Int32
	stop     chan struct{}
	wake     chan struct{}
	done     chan struct{}

	scheduled   atomic.Uint64
	cancelled   atomic.Uint64
	rescheduled atomic.Uint64
	fired       atomic.Uint64
	released    atomic.Uint64
	wakeups     atomic.Uint64
}

// Stats is a point-in-time summary of a queue.
type Stats struct {
	Pending     int
	Scheduled   uint64
	Cancelled   uint64
	Rescheduled uint64
	Fired       uint64
	Released    uint64
	Wakeups     uint64
	State       WorkerState
}

// New creates a queue with cfg and starts its worker. It returns an error if
// cfg is invalid or the worker cannot be started; no goroutine is left
// running in either case.
func New(cfg Config) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	q := &Queue{
		cfg:        cfg,
		clock:      cfg.Clock,
		logger:     cfg.Logger.With(log.Queue(cfg.Name)),
		cronParser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		store:      newStore(),
		stop:       make(chan struct{}),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}

	if cfg.Metrics.Enabled {
		registry, err := metrics.NewRegistry(cfg.Metrics)
		if err != nil {
			return nil, tqerrors.NewOperationError(module, "New", fmt.Errorf("%w: %w", tqerrors.ErrWorkerStart, err)).
				WithContext("metrics registration")
		}
		q.registry = registry
		q.metrics = registry.Queue(cfg.Name)
	}

	started := make(chan struct{})
	go q.run(started)
	<-started

	q.logger.Info("timer queue started",
		slog.Duration("max_wait", cfg.MaxWait),
		slog.String("fire_mode", cfg.FireMode.String()))
	return q, nil
}

// Close stops the worker, waits for it to exit and releases every event still
// queued without firing it. Close must not be called from a callback. A second
// call returns ErrClosed.
func (q *Queue) Close() error {
	if q == nil {
		return nilQueue("Close")
	}
	if !q.closed.CompareAndSwap(false, true) {
		return tqerrors.ErrClosed
	}

	q.stopping.Store(true)
	close(q.stop)
	<-q.done

	q.mu.Lock()
	remaining := q.store.drain()
	q.setPendingLocked()
	q.mu.Unlock()

	busy := 0
	for _, e := range remaining {
		if n := e.Refs(); n != 1 {
			busy++
			q.logger.Warn("event still referenced at close", log.EventID(e.id), slog.Int("refs", n))
		}
		e.cancelled.Store(true)
		e.unref()
	}

	if q.registry != nil {
		q.registry.Unregister()
	}

	q.logger.Info("timer queue stopped", log.Count(len(remaining)),
		slog.Uint64("fired", q.fired.Load()))

	if busy > 0 {
		return tqerrors.NewOperationError(module, "Close", tqerrors.ErrEventBusy).
			WithContext(fmt.Sprintf("%d events still referenced", busy))
	}
	return nil
}

// Schedule registers fn to be called with arg once timeout elapses, and again
// every timeout after that until the event is cancelled.
func (q *Queue) Schedule(timeout time.Duration, fn Callback, arg any) (*Event, error) {
	if q == nil {
		return nil, nilQueue("Schedule")
	}
	if err := validation.AsArgument(validation.ValidateNotNil(module, "callback", fn)); err != nil {
		return nil, err
	}
	if err := validation.AsArgument(validation.ValidateNonNegativeDuration(module, "timeout", timeout)); err != nil {
		return nil, err
	}

	e := newEvent(fn, arg, timeout)
	e.armAfter(q.clock.Now(), timeout)
	if err := q.enqueue(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ScheduleCron registers fn to be called with arg at every activation of the
// cron expression expr. Expressions take a leading seconds field
// ("*/5 * * * * *") or a descriptor such as "@every 1m". Cron events fire
// in wall-clock time evaluated in Config.Location.
func (q *Queue) ScheduleCron(expr string, fn Callback, arg any) (*Event, error) {
	if q == nil {
		return nil, nilQueue("ScheduleCron")
	}
	if err := validation.AsArgument(validation.ValidateNotNil(module, "callback", fn)); err != nil {
		return nil, err
	}
	if err := validation.AsArgument(validation.ValidateNotEmpty(module, "cron", expr)); err != nil {
		return nil, err
	}
	schedule, err := q.cronParser.Parse(expr)
	if err != nil {
		return nil, tqerrors.NewArgumentError(module, "cron", expr, err.Error()).
			WithHint("use six fields starting with seconds, or a descriptor like @every 1m")
	}

	e := newEvent(fn, arg, 0)
	e.schedule = schedule
	e.loc = q.cfg.Location
	if !e.rearm(q.clock.Now()) {
		return nil, tqerrors.NewArgumentError(module, "cron", expr, "never activates")
	}
	if err := q.enqueue(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (q *Queue) enqueue(e *Event) error {
	e.onRelease = q.onRelease

	q.mu.Lock()
	if q.closed.Load() {
		q.mu.Unlock()
		return tqerrors.ErrClosed
	}
	q.store.insert(e)
	q.setPendingLocked()
	q.wakeIfEarlierLocked(e)
	q.mu.Unlock()

	q.scheduled.Add(1)
	if q.metrics != nil {
		q.metrics.Scheduled.Inc()
	}
	q.logger.Debug("event scheduled", log.EventID(e.id), log.Timeout(e.Timeout()))
	return nil
}

// Cancel unlinks e and drops the queue's reference to it. A cancelled event
// never fires again; if it is firing right now the worker's reference keeps
// it alive until that callback returns. e must not be used after Cancel.
func (q *Queue) Cancel(e *Event) error {
	if q == nil {
		return nilQueue("Cancel")
	}
	if e == nil {
		return nilEvent()
	}

	q.mu.Lock()
	if q.closed.Load() {
		q.mu.Unlock()
		return tqerrors.ErrClosed
	}
	ok := q.store.remove(e)
	if ok {
		e.cancelled.Store(true)
		q.setPendingLocked()
	}
	q.mu.Unlock()

	if !ok {
		return tqerrors.ErrNotScheduled
	}

	e.unref()
	q.cancelled.Add(1)
	if q.metrics != nil {
		q.metrics.Cancelled.Inc()
	}
	q.logger.Debug("event cancelled", log.EventID(e.id))
	return nil
}

// Reschedule sets a new timeout on e and re-arms it from the current time.
// Interval events keep the new timeout for every later period; cron events
// return to their schedule after the next firing.
func (q *Queue) Reschedule(e *Event, timeout time.Duration) error {
	if q == nil {
		return nilQueue("Reschedule")
	}
	if e == nil {
		return nilEvent()
	}
	if err := validation.AsArgument(validation.ValidateNonNegativeDuration(module, "timeout", timeout)); err != nil {
		return err
	}

	q.mu.Lock()
	if q.closed.Load() {
		q.mu.Unlock()
		return tqerrors.ErrClosed
	}
	if !q.store.remove(e) {
		q.mu.Unlock()
		return tqerrors.ErrNotScheduled
	}
	e.armAfter(q.clock.Now(), timeout)
	q.store.insert(e)
	q.wakeIfEarlierLocked(e)
	q.mu.Unlock()

	q.rescheduled.Add(1)
	if q.metrics != nil {
		q.metrics.Rescheduled.Inc()
	}
	q.logger.Debug("event rescheduled", log.EventID(e.id), log.Timeout(timeout))
	return nil
}

// Peek returns the event with the earliest expiry, or nil if the queue is empty.
func (q *Queue) Peek() *Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.peek()
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.len()
}

// Events returns the queued events in the order they will fire.
func (q *Queue) Events() []*Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.snapshot()
}

// Stats returns a point-in-time summary of the queue. A nil queue reports
// a stopped worker and nothing else.
func (q *Queue) Stats() Stats {
	if q == nil {
		return Stats{State: StateStopped}
	}
	return Stats{
		Pending:     q.Len(),
		Scheduled:   q.scheduled.Load(),
		Cancelled:   q.cancelled.Load(),
		Rescheduled: q.rescheduled.Load(),
		Fired:       q.fired.Load(),
		Released:    q.released.Load(),
		Wakeups:     q.wakeups.Load(),
		State:       q.WorkerState(),
	}
}

func (q *Queue) onRelease(e *Event) {
	q.released.Add(1)
	if q.metrics != nil {
		q.metrics.Released.Inc()
	}
	q.logger.Debug("event released", log.EventID(e.id))
}

func (q *Queue) setPendingLocked() {
	if q.metrics != nil {
		q.metrics.Pending.Set(float64(q.store.len()))
	}
}

// wakeIfEarlierLocked signals the worker when e is due before the worker
// plans to wake up.
func (q *Queue) wakeIfEarlierLocked(e *Event) {
	if q.cfg.DisableEarlyWake || !e.expiry.Before(q.wakeAt) {
		return
	}
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func nilQueue(op string) error {
	return tqerrors.NewOperationError(module, op,
		tqerrors.NewArgumentError(module, "queue", nil, "cannot be nil"))
}

func nilEvent() error {
	return tqerrors.NewArgumentError(module, "event", nil, "cannot be nil").
		WithHint("pass the handle returned by Schedule")
}
