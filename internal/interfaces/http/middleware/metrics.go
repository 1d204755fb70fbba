package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/infrastructure/telemetry"
)

// Order payloads are small JSON documents
var payloadSizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 2000000}

type httpInstruments struct {
	requests *telemetry.Counter
	latency  *telemetry.Histogram
	bodyIn   *telemetry.Histogram
	bodyOut  *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)
	if in.requests, err = telemetry.NewCounter(meter, "http_server_request_total",
		"HTTP requests by route, status and supplier target", "{request}"); err != nil {
		return nil, err
	}
	if in.latency, err = telemetry.NewHistogram(meter, "http_server_request_duration_seconds",
		"HTTP request latency", "s", telemetry.HTTPDurationBuckets); err != nil {
		return nil, err
	}
	if in.bodyIn, err = telemetry.NewHistogram(meter, "http_server_request_size_bytes",
		"Raw order payload sizes", "By", payloadSizeBuckets); err != nil {
		return nil, err
	}
	if in.bodyOut, err = telemetry.NewHistogram(meter, "http_server_response_size_bytes",
		"Compiled supplier request sizes", "By", payloadSizeBuckets); err != nil {
		return nil, err
	}
	if in.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in flight"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics counts requests per route and supplier target and records
// latency and body sizes. A nil meter, or one that rejects the instruments,
// yields a pass-through handler.
func HTTPMetrics(meter metric.Meter) gin.HandlerFunc {
	var in *httpInstruments
	if meter != nil {
		in, _ = newHTTPInstruments(meter)
	}
	if in == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		received := c.Request.ContentLength

		in.inFlight.Add(ctx, 1)
		c.Next()
		in.inFlight.Add(ctx, -1)

		route := routePattern(c)
		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		path := telemetry.AttrHTTPRoute.String(route)

		in.requests.Add(ctx, 1, telemetry.Labels{Target: c.GetString(logger.GinTargetKey)},
			method, path, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))
		in.latency.RecordDuration(ctx, time.Since(start), telemetry.Labels{}, method, path)
		if received > 0 {
			in.bodyIn.Record(ctx, float64(received), telemetry.Labels{}, method, path)
		}
		if sent := c.Writer.Size(); sent > 0 {
			in.bodyOut.Record(ctx, float64(sent), telemetry.Labels{}, method, path)
		}
	}
}

// routePattern keeps cardinality bounded by the registered routes
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}
