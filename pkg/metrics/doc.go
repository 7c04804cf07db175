// Package metrics provides Prometheus instrumentation for timer queues.
//
// # Overview
//
// A Registry owns one set of collectors. Each queue created with metrics
// enabled gets a pre-labelled QueueMetrics view keyed by its name, so several
// queues can share a registry.
//
// # Quick Start
//
//	registry := prometheus.NewRegistry()
//	q, err := timerqueue.New(timerqueue.Config{
//		Name: "sessions",
//		Metrics: metrics.Config{
//			Enabled:  true,
//			Registry: registry,
//		},
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// # Available Metrics
//
//   - timerqueue_events_scheduled_total: Total number of events scheduled
//   - timerqueue_events_cancelled_total: Total number of events cancelled
//   - timerqueue_events_rescheduled_total: Total number of events rescheduled
//   - timerqueue_events_fired_total: Total number of event callbacks invoked
//   - timerqueue_events_released_total: Events released after their last reference dropped
//   - timerqueue_events_pending: Events currently held by the queue
//   - timerqueue_worker_callback_duration_seconds: Time spent inside callbacks
//   - timerqueue_worker_wakeups_total: Worker wakeups
//   - timerqueue_worker_sleep_duration_seconds: Computed sleep between drains
//
// Every series carries a queue_name label.
//
// # Registration
//
// NewRegistry registers with Config.Registry (prometheus.DefaultRegisterer
// when nil) and returns the registration error instead of panicking. Two
// registries on the same registerer with the same namespace conflict; give each
// its own namespace or share one Registry.
package metrics
