// Package metrics exposes instrument activity and HTTP traffic as Prometheus
// metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	instrumentEvents *prometheus.CounterVec
	emiPaidAmount    prometheus.Counter
	depositPrincipal prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewCollector creates the metrics in a registry of their own so that several
// collectors can coexist in tests.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		instrumentEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instrument_events_total",
				Help:      "Total number of instrument changes per event type",
			},
			[]string{"event"},
		),
		emiPaidAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emi_paid_amount_total",
			Help:      "Sum of EMI installments marked as paid",
		}),
		depositPrincipal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixed_deposit_principal_total",
			Help:      "Sum of principal placed in newly created fixed deposits",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	c.registry.MustRegister(
		c.instrumentEvents,
		c.emiPaidAmount,
		c.depositPrincipal,
		c.httpRequests,
		c.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// expose every event type from the start, even before it happens
	for _, eventType := range event_bus.AllEventTypes {
		c.instrumentEvents.WithLabelValues(string(eventType))
	}
	return c
}

// Subscribe counts every instrument event published on bus and sums the
// amounts carried by EMI payments and new deposits.
func (c *Collector) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribes := make([]func(), 0, len(event_bus.AllEventTypes)+2)
	for _, eventType := range event_bus.AllEventTypes {
		unsubscribes = append(unsubscribes, bus.Subscribe(eventType, func(e event_bus.Event) error {
			c.instrumentEvents.WithLabelValues(string(e.Type)).Inc()
			return nil
		}))
	}
	unsubscribes = append(unsubscribes,
		event_bus.SubscribeTyped(bus, event_bus.EMIPaid, func(e event_bus.EventT[event_bus.EMIPaidEvent]) error {
			c.emiPaidAmount.Add(e.Data.EMIAmount)
			return nil
		}),
		event_bus.SubscribeTyped(bus, event_bus.FixedDepositCreated, func(e event_bus.EventT[event_bus.InstrumentChanged]) error {
			c.depositPrincipal.Add(e.Data.Amount)
			return nil
		}),
	)
	return func() {
		for _, u := range unsubscribes {
			u()
		}
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware records count and latency of every request, labelled with the
// mux route template rather than the raw path.
func (c *Collector) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(srw, r)

			route := routeTemplate(r)
			c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(srw.statusCode)).Inc()
			c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
