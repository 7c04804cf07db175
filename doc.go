/*
Package timerqueue is the root of a Go module for in-process timer queues.

Scheduling (pkg/scheduling):
  - timerqueue: periodic callbacks with cancel and reschedule, one worker per queue

Support (pkg):
  - metrics: Prometheus instrumentation for queues
  - log: slog logger construction and attribute helpers
  - common/errors, common/validation: error types shared by all packages

Examples (examples):
  - timerqueue: command-line demo serving queue metrics until interrupted

Example usage:

	import "github.com/vnykmshr/timerqueue/pkg/scheduling/timerqueue"

	q, err := timerqueue.New(timerqueue.Config{})
	if err != nil {
		log.Fatal(err)
	}
	defer q.Close()

	q.Schedule(time.Second, func(arg any) { fmt.Println(arg) }, "tick")
*/
package timerqueue
