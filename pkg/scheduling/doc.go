/*
Package scheduling provides time-based execution primitives for Go applications.

  - timerqueue: periodic timer queue with cancel, reschedule and cron re-arming

Timer Queue:

	q, _ := timerqueue.New(timerqueue.Config{Name: "sessions"})
	defer q.Close()

	ev, _ := q.Schedule(30*time.Second, expireSession, sessionID)
	q.Reschedule(ev, 30*time.Second) // touch
	q.Cancel(ev)                     // logout

All scheduling components are safe for concurrent use.
*/
package scheduling
