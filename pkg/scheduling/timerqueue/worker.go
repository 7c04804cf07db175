package timerqueue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vnykmshr/timerqueue/pkg/log"
)

// WorkerState is the phase of the queue's background worker.
type WorkerState int32

const (
	// StateWaiting means the worker is sleeping until the next expiry.
	StateWaiting WorkerState = iota
	// StateDraining means the worker is firing due events.
	StateDraining
	// StateStopped means the worker has exited.
	StateStopped
)

func (s WorkerState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("WorkerState(%d)", int32(s))
	}
}

// WorkerState returns the current phase of the worker.
func (q *Queue) WorkerState() WorkerState {
	if q == nil {
		return StateStopped
	}
	return WorkerState(q.state.Load())
}

func (q *Queue) setState(s WorkerState) {
	q.state.Store(int32(s))
}

// run is the worker loop. The wait at the end of each iteration is the only
// place the worker observes a stop request.
func (q *Queue) run(started chan<- struct{}) {
	defer close(q.done)
	defer q.setState(StateStopped)

	timer := time.NewTimer(q.cfg.MaxWait)
	defer timer.Stop()

	q.setState(StateWaiting)
	close(started)
	q.logger.Debug("worker started")

	for !q.stopping.Load() {
		wakeAt := q.drain()
		if !q.wait(timer, wakeAt) {
			break
		}
	}
	q.logger.Debug("worker stopped")
}

// drain fires every event due now, re-arms it, and returns the time the
// worker should next wake.
func (q *Queue) drain() time.Time {
	q.setState(StateDraining)
	defer q.setState(StateWaiting)

	now := q.clock.Now()

	q.mu.Lock()
	due := q.store.popDue(now)
	var exhausted []*Event
	if q.cfg.FireMode == FireLocked {
		for _, e := range due {
			e.ref()
			q.fire(e)
			if e.rearm(q.clock.Now()) {
				q.store.insert(e)
			} else {
				e.cancelled.Store(true)
				exhausted = append(exhausted, e)
			}
			e.unref()
		}
		if len(due) > 0 {
			now = q.clock.Now()
		}
	} else {
		for _, e := range due {
			if e.rearm(now) {
				q.store.insert(e)
			} else {
				exhausted = append(exhausted, e)
			}
			e.ref()
		}
	}
	if len(exhausted) > 0 {
		q.setPendingLocked()
	}
	wakeAt := q.nextWakeLocked(now)
	q.mu.Unlock()

	if q.cfg.FireMode == FireUnlocked {
		for _, e := range due {
			if !e.cancelled.Load() {
				q.fire(e)
			}
			e.unref()
		}
	}

	// Exhausted events are no longer linked; drop the reference the store held.
	for _, e := range exhausted {
		e.cancelled.Store(true)
		q.logger.Debug("cron schedule exhausted", log.EventID(e.id))
		e.unref()
	}
	return wakeAt
}

// nextWakeLocked computes the wake target from the earliest event, bounded
// by MinWait and MaxWait, and records it for early-wake checks.
func (q *Queue) nextWakeLocked(now time.Time) time.Time {
	sleep := q.cfg.MaxWait
	if head := q.store.peek(); head != nil {
		if d := head.expiry.Sub(now); d < sleep {
			sleep = d
		}
	}
	if sleep < q.cfg.MinWait {
		sleep = q.cfg.MinWait
	}
	q.wakeAt = now.Add(sleep)
	return q.wakeAt
}

// fire invokes e's callback on the worker goroutine. Panics are not recovered.
func (q *Queue) fire(e *Event) {
	fn, arg := e.callback()
	if fn == nil {
		return
	}

	start := time.Now()
	fn(arg)
	elapsed := time.Since(start)

	e.fires.Add(1)
	q.fired.Add(1)
	if q.metrics != nil {
		q.metrics.Fired.Inc()
		q.metrics.CallbackDuration.Observe(elapsed.Seconds())
	}
	q.logger.Debug("event fired", log.EventID(e.id), slog.Duration("elapsed", elapsed))
}

// wait blocks until wakeAt, an early-wake signal or a stop request. It
// reports false once the queue is stopping.
func (q *Queue) wait(timer *time.Timer, wakeAt time.Time) bool {
	sleep := wakeAt.Sub(q.clock.Now())
	if sleep < q.cfg.MinWait {
		sleep = q.cfg.MinWait
	}
	if sleep > q.cfg.MaxWait {
		sleep = q.cfg.MaxWait
	}
	if q.metrics != nil {
		q.metrics.Sleep.Observe(sleep.Seconds())
	}

	resetTimer(timer, sleep)
	select {
	case <-q.stop:
		return false
	case <-q.wake:
	case <-timer.C:
	}

	q.wakeups.Add(1)
	if q.metrics != nil {
		q.metrics.Wakeups.Inc()
	}
	return !q.stopping.Load()
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
