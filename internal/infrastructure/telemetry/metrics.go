package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrTarget         = attribute.Key("supplier.target")
	AttrOutcome        = attribute.Key("outcome")
	AttrFindingKind    = attribute.Key("finding_kind")
)

// Outcome label values
const (
	OutcomeAccepted           = "accepted"
	OutcomeRejected           = "rejected"
	OutcomeCompiled           = "compiled"
	OutcomePreconditionFailed = "precondition_failed"
)

// Finding kinds reported by the builder and the ABC payload validator
const (
	FindingWarning = "warning"
	FindingError   = "error"
	FindingFix     = "fix"
)

// Bucket boundaries in seconds
var (
	HTTPDurationBuckets    = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	CompileDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1}
)

// Labels are the order dimensions a data point is broken down by. Empty
// fields are left off.
type Labels struct {
	Target  string
	Outcome string
	Finding string
}

func (l Labels) options(extra []attribute.KeyValue) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, 3+len(extra))
	if l.Target != "" {
		attrs = append(attrs, AttrTarget.String(l.Target))
	}
	if l.Outcome != "" {
		attrs = append(attrs, AttrOutcome.String(l.Outcome))
	}
	if l.Finding != "" {
		attrs = append(attrs, AttrFindingKind.String(l.Finding))
	}
	return metric.WithAttributes(append(attrs, extra...)...)
}

// Counter is a monotonically increasing count
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter registers an int64 counter on meter
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add increments the counter by n. Non-positive n is ignored.
func (c *Counter) Add(ctx context.Context, n int, labels Labels, extra ...attribute.KeyValue) {
	if n <= 0 {
		return
	}
	c.counter.Add(ctx, int64(n), labels.options(extra))
}

// Histogram records a distribution of float64 values
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram registers a float64 histogram with explicit bucket boundaries
func NewHistogram(meter metric.Meter, name, description, unit string, buckets []float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{
		metric.WithDescription(description),
		metric.WithUnit(unit),
	}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	return &Histogram{histogram: h}, nil
}

// Record adds v to the distribution
func (h *Histogram) Record(ctx context.Context, v float64, labels Labels, extra ...attribute.KeyValue) {
	h.histogram.Record(ctx, v, labels.options(extra))
}

// RecordDuration adds d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, labels Labels, extra ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), labels, extra...)
}

// validatedTarget is the only supplier whose payloads are validated
const validatedTarget = "ABC"

// ErrNilMeter is returned when compile metrics are created without a meter
var ErrNilMeter = errors.New("telemetry: meter is required")

// CompileMetrics tracks raw orders through build, compile and ABC payload
// validation.
type CompileMetrics struct {
	builds      *Counter
	findings    *Counter
	compiles    *Counter
	validations *Counter
	durations   *Histogram
}

// NewCompileMetrics registers the order instruments on meter
func NewCompileMetrics(meter metric.Meter) (*CompileMetrics, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	var (
		cm  CompileMetrics
		err error
	)
	if cm.builds, err = NewCounter(meter, "supplier_order_build_total",
		"Unified order builds by target and outcome", "{orders}"); err != nil {
		return nil, err
	}
	if cm.findings, err = NewCounter(meter, "supplier_order_findings_total",
		"Warnings and errors reported while building orders", "{findings}"); err != nil {
		return nil, err
	}
	if cm.compiles, err = NewCounter(meter, "supplier_order_compile_total",
		"Supplier request compilations by target and outcome", "{requests}"); err != nil {
		return nil, err
	}
	if cm.validations, err = NewCounter(meter, "supplier_abc_validation_findings_total",
		"Fixes, warnings and errors reported by the ABC payload validator", "{findings}"); err != nil {
		return nil, err
	}
	if cm.durations, err = NewHistogram(meter, "supplier_order_compile_duration_seconds",
		"Time spent compiling and finishing a supplier request", "s", CompileDurationBuckets); err != nil {
		return nil, err
	}
	return &cm, nil
}

// RecordBuild counts one builder run and its findings
func (cm *CompileMetrics) RecordBuild(ctx context.Context, target, outcome string, warnings, errs int) {
	cm.builds.Add(ctx, 1, Labels{Target: target, Outcome: outcome})
	cm.findings.Add(ctx, warnings, Labels{Target: target, Finding: FindingWarning})
	cm.findings.Add(ctx, errs, Labels{Target: target, Finding: FindingError})
}

// RecordCompile counts one compiler invocation and records how long it took
func (cm *CompileMetrics) RecordCompile(ctx context.Context, target, outcome string, d time.Duration) {
	cm.compiles.Add(ctx, 1, Labels{Target: target, Outcome: outcome})
	cm.durations.RecordDuration(ctx, d, Labels{Target: target})
}

// RecordValidation counts the findings of one ABC validator run
func (cm *CompileMetrics) RecordValidation(ctx context.Context, fixes, warnings, errs int) {
	cm.validations.Add(ctx, fixes, Labels{Target: validatedTarget, Finding: FindingFix})
	cm.validations.Add(ctx, warnings, Labels{Target: validatedTarget, Finding: FindingWarning})
	cm.validations.Add(ctx, errs, Labels{Target: validatedTarget, Finding: FindingError})
}
