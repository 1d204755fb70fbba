package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domain "github.com/erp/supplierorders/internal/domain/order"
	"github.com/erp/supplierorders/internal/domain/shared"
	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/infrastructure/supplier/abcvalidate"
	"github.com/erp/supplierorders/internal/infrastructure/telemetry"
)

// ErrNoCompilers is returned when a Service is created without a compiler registry
var ErrNoCompilers = errors.New("order service: compiler registry is required")

// CompilerRegistry dispatches a unified order to its target's compiler
type CompilerRegistry interface {
	Compile(o *domain.UnifiedOrder) (*domain.RequestDescriptor, error)
}

// PayloadValidator repairs ABC order payloads
type PayloadValidator interface {
	Validate(payload []any, opts abcvalidate.Options) abcvalidate.Result
}

// CompileResult is the outcome of turning raw sources into a supplier request.
// Request is nil when the build reported errors.
type CompileResult struct {
	Target     domain.Target             `json:"target"`
	Order      *domain.UnifiedOrder      `json:"order"`
	Request    *domain.RequestDescriptor `json:"request"`
	Errors     []string                  `json:"errors"`
	Warnings   []string                  `json:"warnings"`
	Validation *abcvalidate.Result       `json:"validation,omitempty"`
}

// OK reports whether a request descriptor was produced
func (r *CompileResult) OK() bool {
	return r != nil && r.Request != nil && len(r.Errors) == 0
}

// ServiceConfig wires a Service
type ServiceConfig struct {
	Builder   *Builder
	Compilers CompilerRegistry
	// Validator runs over compiled ABC payloads when FinishABC is set
	Validator PayloadValidator
	FinishABC bool
	Logger    *zap.Logger
	// Now stamps sample orders; defaults to time.Now
	Now func() time.Time
}

// Service builds unified orders and compiles them into supplier requests
type Service struct {
	builder        *Builder
	compilers      CompilerRegistry
	validator      PayloadValidator
	finishABC      bool
	logger         *zap.Logger
	now            func() time.Time
	compileMetrics *telemetry.CompileMetrics
}

// NewService creates a new Service
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Compilers == nil {
		return nil, ErrNoCompilers
	}
	s := &Service{
		builder:   cfg.Builder,
		compilers: cfg.Compilers,
		validator: cfg.Validator,
		finishABC: cfg.FinishABC && cfg.Validator != nil,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if s.builder == nil {
		s.builder = NewBuilder(nil)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// SetCompileMetrics sets the compile metrics collector
func (s *Service) SetCompileMetrics(cm *telemetry.CompileMetrics) {
	s.compileMetrics = cm
}

// Build assembles a unified order from sources without compiling it
func (s *Service) Build(ctx context.Context, sources ...any) BuildResult {
	result := s.builder.Build(ctx, sources...)
	s.recordBuild(ctx, result)
	return result
}

// Compile builds a unified order and renders it for its target supplier.
// Business validation failures come back on the result with a nil Request;
// the returned error is reserved for precondition and encoding failures.
func (s *Service) Compile(ctx context.Context, sources ...any) (*CompileResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "compile")
	defer span.End()

	built := s.Build(ctx, sources...)
	result := &CompileResult{
		Order:    built.Order,
		Errors:   built.Errors,
		Warnings: built.Warnings,
	}
	if !built.OK() {
		result.Target = s.resolveTargetForReport(sources)
		telemetry.SetAttributes(span, telemetry.SpanAttrErrorCount, len(built.Errors))
		return result, nil
	}
	result.Target = built.Order.Target
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTarget, result.Target,
		telemetry.SpanAttrRequestID, built.Order.RequestID,
	)

	if err := s.compileInto(ctx, result); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

// Sample compiles the built-in sample order for target
func (s *Service) Sample(ctx context.Context, rawTarget string) (*CompileResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "sample")
	defer span.End()

	target, ok := domain.ParseTarget(rawTarget)
	if !ok {
		err := fmt.Errorf("%w: %q", shared.ErrUnsupportedTarget, rawTarget)
		telemetry.RecordError(span, err)
		return nil, err
	}

	o := domain.SampleOrder(target, s.now().UTC())
	result := &CompileResult{
		Target:   target,
		Order:    o,
		Errors:   []string{},
		Warnings: []string{},
	}
	if err := s.compileInto(ctx, result); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return result, nil
}

// ValidateABC runs the ABC payload validator on its own
func (s *Service) ValidateABC(ctx context.Context, payload []any) (abcvalidate.Result, error) {
	_, span := telemetry.StartServiceSpan(ctx, "abc", "validate")
	defer span.End()

	if s.validator == nil {
		return abcvalidate.Result{}, fmt.Errorf("%w: abc validator not configured", shared.ErrNotFound)
	}
	result := s.validator.Validate(payload, abcvalidate.Options{Now: s.now()})
	s.recordValidation(ctx, span, result)
	return result, nil
}

// compileInto dispatches result.Order to its compiler and, for ABC, runs
// the finishing validator over the payload.
func (s *Service) compileInto(ctx context.Context, result *CompileResult) error {
	start := time.Now()
	o := result.Order

	req, err := s.compilers.Compile(o)
	if err != nil {
		s.recordCompile(ctx, o.Target, telemetry.OutcomePreconditionFailed, time.Since(start))
		s.log(ctx).Error("compile failed",
			zap.String("target", o.Target.String()),
			zap.String("order_request_id", o.RequestID),
			zap.Error(err))
		return err
	}

	if s.finishABC && o.Target == domain.TargetABC {
		validation, err := s.finish(ctx, req, o.PreparedAt)
		if err != nil {
			return err
		}
		result.Validation = validation
	}

	result.Request = req
	s.recordCompile(ctx, o.Target, telemetry.OutcomeCompiled, time.Since(start))
	s.log(ctx).Info("order compiled",
		zap.String("target", o.Target.String()),
		zap.String("order_request_id", o.RequestID),
		zap.Int("line_count", len(o.LineItems)),
		zap.Int("payload_bytes", len(req.Body)))
	return nil
}

// finish repairs an ABC body in place. The validator is anchored on the
// order's PreparedAt so the repaired body stays deterministic.
func (s *Service) finish(ctx context.Context, req *domain.RequestDescriptor, preparedAt time.Time) (*abcvalidate.Result, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "abc", "finish")
	defer span.End()

	dec := json.NewDecoder(bytes.NewReader(req.Body))
	dec.UseNumber()
	var payload []any
	if err := dec.Decode(&payload); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("decode abc payload: %w", err)
	}

	result := s.validator.Validate(payload, abcvalidate.Options{Now: preparedAt})
	body, err := json.Marshal(result.Payload)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("encode abc payload: %w", err)
	}
	req.Body = body

	s.recordValidation(ctx, span, result)
	return &result, nil
}

func (s *Service) resolveTargetForReport(sources []any) domain.Target {
	var scratch BuildResult
	return s.builder.resolveTarget(sources, &scratch)
}

func (s *Service) recordBuild(ctx context.Context, result BuildResult) {
	outcome := telemetry.OutcomeAccepted
	target := ""
	if result.Order != nil {
		target = result.Order.Target.String()
	} else {
		outcome = telemetry.OutcomeRejected
	}

	if s.compileMetrics != nil {
		s.compileMetrics.RecordBuild(ctx, target, outcome, len(result.Warnings), len(result.Errors))
	}
	s.log(ctx).Info("order built",
		zap.String("target", target),
		zap.String("outcome", outcome),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("errors", len(result.Errors)))
}

func (s *Service) recordCompile(ctx context.Context, target domain.Target, outcome string, d time.Duration) {
	if s.compileMetrics != nil {
		s.compileMetrics.RecordCompile(ctx, target.String(), outcome, d)
	}
}

func (s *Service) recordValidation(ctx context.Context, span trace.Span, result abcvalidate.Result) {
	telemetry.SetAttributes(span,
		telemetry.SpanAttrFixCount, result.FixCount(),
		telemetry.SpanAttrWarningCount, result.WarningCount(),
		telemetry.SpanAttrErrorCount, result.ErrorCount(),
	)
	if s.compileMetrics != nil {
		s.compileMetrics.RecordValidation(ctx, result.FixCount(), result.WarningCount(), result.ErrorCount())
	}
	s.log(ctx).Info("abc payload validated",
		zap.Int("orders", len(result.Report)),
		zap.Int("fixes", result.FixCount()),
		zap.Int("warnings", result.WarningCount()),
		zap.Bool("has_errors", result.HasErrors))
}

// log prefers the request-scoped logger placed on ctx by the HTTP middleware
func (s *Service) log(ctx context.Context) *logger.ContextLogger {
	return logger.For(ctx, s.logger)
}
