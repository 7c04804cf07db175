package timerqueue_test

import (
	"fmt"
	"time"

	"github.com/vnykmshr/timerqueue/pkg/scheduling/timerqueue"
)

func ExampleQueue_Schedule() {
	q, err := timerqueue.New(timerqueue.Config{MaxWait: 10 * time.Millisecond})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer q.Close()

	fired := make(chan any, 1)
	ev, _ := q.Schedule(0, func(arg any) {
		select {
		case fired <- arg:
		default:
		}
	}, "heartbeat")

	fmt.Println("fired:", <-fired)
	fmt.Println("cancel:", q.Cancel(ev))

	// Output:
	// fired: heartbeat
	// cancel: <nil>
}

func ExampleQueue_Events() {
	q, _ := timerqueue.New(timerqueue.Config{})
	defer q.Close()

	for i, name := range []string{"c", "a", "b"} {
		timeout := []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour}[i]
		_, _ = q.Schedule(timeout, func(any) {}, name)
	}

	for _, ev := range q.Events() {
		fmt.Println(ev.Arg(), ev.Timeout())
	}
	fmt.Println("next:", q.Peek().Arg())

	// Output:
	// a 1h0m0s
	// b 2h0m0s
	// c 3h0m0s
	// next: a
}

func ExampleQueue_Reschedule() {
	q, _ := timerqueue.New(timerqueue.Config{})
	defer q.Close()

	session, _ := q.Schedule(30*time.Minute, func(any) {}, "session")
	audit, _ := q.Schedule(time.Hour, func(any) {}, "audit")

	_ = q.Reschedule(audit, time.Minute)
	fmt.Println("next:", q.Peek().Arg())

	_ = q.Cancel(audit)
	fmt.Println("next:", q.Peek().Arg(), "pending:", q.Len())
	_ = session

	// Output:
	// next: audit
	// next: session pending: 1
}
