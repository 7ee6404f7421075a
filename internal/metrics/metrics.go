// Package metrics exports binding manager activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/tickbind/internal/event"
)

const namespace = "tickbind"

// Collector implements binding.Observer on Prometheus collectors.
type Collector struct {
	events     *prometheus.CounterVec
	callbacks  prometheus.Counter
	reconciles prometheus.Counter
	added      prometheus.Counter
	removed    prometheus.Counter
	orders     prometheus.Gauge
	ticks      prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events dispatched, by kind.",
		}, []string{"kind"}),
		callbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Callbacks invoked.",
		}),
		reconciles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciles_total",
			Help:      "Reconciliations that applied at least one request.",
		}),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_added_total",
			Help:      "Orders inserted by reconciliation.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_removed_total",
			Help:      "Orders removed by reconciliation.",
		}),
		orders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders",
			Help:      "Orders currently stored.",
		}),
		ticks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_seconds",
			Help:      "Duration of one loop tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	for _, col := range []prometheus.Collector{
		c.events, c.callbacks, c.reconciles, c.added, c.removed, c.orders, c.ticks,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// EventHandled records one dispatched event.
func (c *Collector) EventHandled(kind event.Kind, fired int) {
	c.events.WithLabelValues(kind.String()).Inc()
	c.callbacks.Add(float64(fired))
}

// Reconciled records one reconciliation.
func (c *Collector) Reconciled(removed, added, total int) {
	c.reconciles.Inc()
	c.removed.Add(float64(removed))
	c.added.Add(float64(added))
	c.orders.Set(float64(total))
}

// ObserveTick records the duration of one tick.
func (c *Collector) ObserveTick(d time.Duration) {
	c.ticks.Observe(d.Seconds())
}
