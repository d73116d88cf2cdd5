package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contactrelay"

// PrometheusRecorder exports metrics through a dedicated registry.
type PrometheusRecorder struct {
	registry     *prometheus.Registry
	submissions  *prometheus.CounterVec
	emails       *prometheus.CounterVec
	quotes       *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

// NewPrometheus creates a Recorder backed by a new registry.
// Go runtime and process collectors are registered alongside the app metrics.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Contact form submissions handled, by result",
			},
			[]string{"status"},
		),
		emails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_total",
				Help:      "Email send attempts, by kind and status",
			},
			[]string{"kind", "status"},
		),
		quotes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Quotes embedded in acknowledgments, by source",
			},
			[]string{"source"},
		),
		stepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_duration_seconds",
				Help:      "Duration of each workflow step in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"step"},
		),
	}
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// IncSubmission increments the submission counter.
func (p *PrometheusRecorder) IncSubmission(status string) {
	p.submissions.WithLabelValues(status).Inc()
}

// IncEmail increments the email counter.
func (p *PrometheusRecorder) IncEmail(kind, status string) {
	p.emails.WithLabelValues(kind, status).Inc()
}

// IncQuote increments the quote counter.
func (p *PrometheusRecorder) IncQuote(source string) {
	p.quotes.WithLabelValues(source).Inc()
}

// ObserveStepDuration records a step duration.
func (p *PrometheusRecorder) ObserveStepDuration(step string, duration time.Duration) {
	p.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}
