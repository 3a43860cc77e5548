// Package metrics exposes site counters through an OpenTelemetry meter
// backed by a Prometheus exporter.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// Lead submission outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Recorder holds the site instruments. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	exporter *prometheus.Exporter

	requests metric.Int64Counter
	duration metric.Float64ValueRecorder
	leads    metric.Int64Counter
	content  metric.Int64Counter
}

// New builds a Recorder with its own Prometheus registry.
func New(service string) (*Recorder, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("init prometheus exporter: %w", err)
	}

	meter := metric.Must(exporter.MeterProvider().Meter(service))
	return &Recorder{
		exporter: exporter,
		requests: meter.NewInt64Counter(
			"http_requests",
			metric.WithDescription("Count of completed requests, by route and response status"),
		),
		duration: meter.NewFloat64ValueRecorder(
			"http_request_duration_seconds",
			metric.WithDescription("Request latency, by route"),
		),
		leads: meter.NewInt64Counter(
			"lead_submissions",
			metric.WithDescription("Demo request submissions, by outcome"),
		),
		content: meter.NewInt64Counter(
			"content_queries",
			metric.WithDescription("Content repository queries, by operation"),
		),
	}, nil
}

// Handler serves the Prometheus scrape endpoint.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return r.exporter
}

// Request records one completed HTTP request.
func (r *Recorder) Request(ctx context.Context, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.Add(ctx, 1,
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	r.duration.Record(ctx, elapsed.Seconds(), attribute.String("route", route))
}

// LeadSubmitted counts one demo request by outcome.
func (r *Recorder) LeadSubmitted(ctx context.Context, outcome string) {
	if r == nil {
		return
	}
	r.leads.Add(ctx, 1, attribute.String("outcome", outcome))
}

// ContentQuery counts one content lookup by operation name.
func (r *Recorder) ContentQuery(ctx context.Context, op string) {
	if r == nil {
		return
	}
	r.content.Add(ctx, 1, attribute.String("op", op))
}
