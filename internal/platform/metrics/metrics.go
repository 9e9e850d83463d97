package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "puppybowl"

// Outcome labels for upstream calls.
const (
	OutcomeOK          = "ok"
	OutcomeTransport   = "transport_error"
	OutcomeService     = "service_error"
	OutcomeUnavailable = "unavailable"
)

// Recorder owns a private Prometheus registry so nothing leaks into the
// global default registerer. A nil *Recorder records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	pageRenders     *prometheus.CounterVec
	renderedPlayers prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Calls made to the Puppy Bowl API by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of Puppy Bowl API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of served requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "renders_total",
			Help:      "Player container replacements by result.",
		}, []string{"result"}),
		renderedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "page",
			Name:      "players",
			Help:      "Players currently shown in the player container.",
		}),
	}

	reg.MustRegister(
		r.upstreamCalls,
		r.upstreamLatency,
		r.httpRequests,
		r.httpLatency,
		r.pageRenders,
		r.renderedPlayers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordUpstream(operation, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.upstreamCalls.WithLabelValues(operation, outcome).Inc()
	r.upstreamLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRender tracks a container replacement; players is ignored on failure.
func (r *Recorder) RecordRender(players int, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.pageRenders.WithLabelValues("failed").Inc()
		return
	}
	r.pageRenders.WithLabelValues("replaced").Inc()
	r.renderedPlayers.Set(float64(players))
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
