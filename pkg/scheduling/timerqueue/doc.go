/*
Package timerqueue provides a periodic timer queue driven by a single background worker.

Callers register a callback with a timeout. Once the timeout elapses the worker
invokes the callback and re-arms the event for another timeout, so every event
repeats until it is cancelled. Events may be cancelled or rescheduled at any time
from any goroutine.

Basic Usage:

	q, err := timerqueue.New(timerqueue.Config{})
	if err != nil {
		return err
	}
	defer q.Close()

	heartbeat, _ := q.Schedule(time.Second, func(arg any) {
		fmt.Println("tick", arg)
	}, "session-42")

	// Fire every 5 seconds from now on
	_ = q.Reschedule(heartbeat, 5*time.Second)

	// Stop it
	_ = q.Cancel(heartbeat)

Cron events re-arm by a schedule instead of a fixed timeout:

	q.ScheduleCron("0/10 * * * * *", rotate, nil) // every 10 seconds
	q.ScheduleCron("@every 1m", flush, nil)

Ordering:

Events fire in expiry order. Events with equal expiries fire in the order they
were scheduled, rescheduled or re-armed. Queue.Events returns the queued events
in that order and Queue.Peek returns the next one due.

Worker:

The worker sleeps until the earliest expiry, bounded by Config.MaxWait (default
1s) and Config.MinWait (default 1ms). Scheduling or rescheduling an event earlier
than the current wake target wakes the worker immediately unless
Config.DisableEarlyWake is set, in which case the event is noticed on the next
scheduled wake.

Fire Modes:

With FireLocked (the default) callbacks run while the queue lock is held. No two
callbacks ever overlap and every queue operation waits for the running callback,
so a slow callback delays all producers. Callbacks must not call back into their
own queue.

With FireUnlocked the worker re-arms due events, releases the lock, then runs
the callbacks. Producers are never blocked by callbacks and callbacks may cancel
or reschedule events, including their own.

Callbacks always run on the worker goroutine, one at a time. A callback that
blocks stalls the queue; a callback that panics is not recovered.

Lifetimes:

Each Event is reference counted. The queue holds one reference while the event
is queued and the worker holds another during a firing. Cancel drops the queue's
reference; the event is released when the last reference goes, after which
Event.Released reports true. A cron event whose schedule has no further
activation is unlinked and released after its last firing. Close stops the
worker and releases every queued event without firing it.
*/
package timerqueue
