// Package metrics provides Prometheus instrumentation for timer queues.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const queueLabel = "queue_name"

// Registry holds all metric instances for a timer queue.
type Registry struct {
	EventsScheduled   *prometheus.CounterVec
	EventsCancelled   *prometheus.CounterVec
	EventsRescheduled *prometheus.CounterVec
	EventsFired       *prometheus.CounterVec
	EventsReleased    *prometheus.CounterVec
	EventsPending     *prometheus.GaugeVec

	CallbackDuration *prometheus.HistogramVec
	WorkerWakeups    *prometheus.CounterVec
	WorkerSleep      *prometheus.HistogramVec

	reg        prometheus.Registerer
	collectors []prometheus.Collector
}

// NewRegistry creates the timer queue metrics and registers them with the
// configured registerer. If any collector fails to register, the ones already
// registered are unregistered again and the error is returned.
func NewRegistry(cfg Config) (*Registry, error) {
	ns := cfg.namespace()
	labels := []string{queueLabel}

	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "events",
			Name:        name,
			Help:        help,
			ConstLabels: cfg.Labels,
		}, labels)
	}

	r := &Registry{
		EventsScheduled:   counter("scheduled_total", "Total number of events scheduled"),
		EventsCancelled:   counter("cancelled_total", "Total number of events cancelled"),
		EventsRescheduled: counter("rescheduled_total", "Total number of events rescheduled"),
		EventsFired:       counter("fired_total", "Total number of event callbacks invoked"),
		EventsReleased:    counter("released_total", "Total number of events released after their last reference dropped"),

		EventsPending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "events",
				Name:        "pending",
				Help:        "Number of events currently held by the queue",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		CallbackDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "worker",
				Name:        "callback_duration_seconds",
				Help:        "Time spent inside event callbacks",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		WorkerWakeups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "worker",
				Name:        "wakeups_total",
				Help:        "Total number of worker wakeups",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		WorkerSleep: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "worker",
				Name:        "sleep_duration_seconds",
				Help:        "Computed worker sleep between drains",
				Buckets:     []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		reg: cfg.registerer(),
	}

	for _, c := range []prometheus.Collector{
		r.EventsScheduled,
		r.EventsCancelled,
		r.EventsRescheduled,
		r.EventsFired,
		r.EventsReleased,
		r.EventsPending,
		r.CallbackDuration,
		r.WorkerWakeups,
		r.WorkerSleep,
	} {
		if err := r.reg.Register(c); err != nil {
			r.Unregister()
			return nil, err
		}
		r.collectors = append(r.collectors, c)
	}

	return r, nil
}

// Unregister removes every collector this Registry registered.
func (r *Registry) Unregister() {
	for _, c := range r.collectors {
		r.reg.Unregister(c)
	}
	r.collectors = nil
}

// Queue returns the series of a single named queue.
func (r *Registry) Queue(name string) *QueueMetrics {
	return &QueueMetrics{
		Scheduled:        r.EventsScheduled.WithLabelValues(name),
		Cancelled:        r.EventsCancelled.WithLabelValues(name),
		Rescheduled:      r.EventsRescheduled.WithLabelValues(name),
		Fired:            r.EventsFired.WithLabelValues(name),
		Released:         r.EventsReleased.WithLabelValues(name),
		Pending:          r.EventsPending.WithLabelValues(name),
		CallbackDuration: r.CallbackDuration.WithLabelValues(name),
		Wakeups:          r.WorkerWakeups.WithLabelValues(name),
		Sleep:            r.WorkerSleep.WithLabelValues(name),
	}
}

// QueueMetrics is the pre-labelled view of a Registry for one queue, so hot
// paths skip label lookups.
type QueueMetrics struct {
	Scheduled        prometheus.Counter
	Cancelled        prometheus.Counter
	Rescheduled      prometheus.Counter
	Fired            prometheus.Counter
	Released         prometheus.Counter
	Pending          prometheus.Gauge
	CallbackDuration prometheus.Observer
	Wakeups          prometheus.Counter
	Sleep            prometheus.Observer
}
