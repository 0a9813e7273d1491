// Package metrics exports the kitchen's event stream as prometheus series.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"freezerush/internal/protocol"
)

type Collector struct {
	reg *prometheus.Registry

	events          *prometheus.CounterVec
	ordersGenerated prometheus.Counter
	ordersFulfilled prometheus.Counter
	ordersExpired   prometheus.Counter
	ordersActive    prometheus.Gauge
	score           prometheus.Gauge
	combo           prometheus.Gauge
	tickDuration    prometheus.Histogram
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		reg: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "freezerush_events_total",
			Help: "Simulation events by kind.",
		}, []string{"kind"}),
		ordersGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "freezerush_orders_generated_total",
			Help: "Orders generated.",
		}),
		ordersFulfilled: factory.NewCounter(prometheus.CounterOpts{
			Name: "freezerush_orders_fulfilled_total",
			Help: "Orders fulfilled.",
		}),
		ordersExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "freezerush_orders_expired_total",
			Help: "Orders expired before completion.",
		}),
		ordersActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "freezerush_orders_active",
			Help: "Orders currently waiting.",
		}),
		score: factory.NewGauge(prometheus.GaugeOpts{
			Name: "freezerush_score",
			Help: "Current session score.",
		}),
		combo: factory.NewGauge(prometheus.GaugeOpts{
			Name: "freezerush_combo",
			Help: "Current combo streak length.",
		}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "freezerush_tick_duration_seconds",
			Help:    "Wall time spent in one simulation step.",
			Buckets: prometheus.ExponentialBuckets(10e-6, 4, 8),
		}),
	}
}

// ObserveEvents consumes one tick's event batch. Safe to call from the sim
// goroutine: prometheus counters are internally synchronized.
func (c *Collector) ObserveEvents(evs []protocol.Event) {
	for _, ev := range evs {
		c.events.WithLabelValues(ev.Kind).Inc()
		switch ev.Kind {
		case protocol.EvOrderGenerated:
			c.ordersGenerated.Inc()
			c.ordersActive.Inc()
		case protocol.EvOrderFulfilled:
			c.ordersFulfilled.Inc()
			c.ordersActive.Dec()
		case protocol.EvOrderExpired:
			c.ordersExpired.Inc()
			c.ordersActive.Dec()
		case protocol.EvScoreChanged:
			c.score.Set(float64(ev.Total))
		case protocol.EvComboChanged:
			c.combo.Set(float64(ev.Combo))
		}
	}
}

// ObserveTick records one simulation step's wall time.
func (c *Collector) ObserveTick(d time.Duration) {
	c.tickDuration.Observe(d.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
