package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apporder "github.com/erp/supplierorders/internal/application/order"
	"github.com/erp/supplierorders/internal/infrastructure/config"
	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/infrastructure/supplier"
	"github.com/erp/supplierorders/internal/infrastructure/supplier/abcvalidate"
	"github.com/erp/supplierorders/internal/infrastructure/telemetry"
	"github.com/erp/supplierorders/internal/interfaces/http/handler"
	"github.com/erp/supplierorders/internal/interfaces/http/middleware"
	"github.com/erp/supplierorders/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Service:    cfg.App.Name,
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting supplier order service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// OpenTelemetry; every signal stays a no-op when disabled
	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:         cfg.Telemetry.Enabled,
		Endpoint:        cfg.Telemetry.CollectorEndpoint,
		Insecure:        cfg.Telemetry.Insecure,
		ServiceName:     cfg.Telemetry.ServiceName,
		ServiceVersion:  version,
		SamplingRatio:   cfg.Telemetry.SamplingRatio,
		Metrics:         cfg.Telemetry.MetricsEnabled,
		MetricsInterval: cfg.Telemetry.MetricsInterval,
		Logs:            cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log = providers.BridgeLogger(log, zapcore.InfoLevel)

	// Rule documents
	docs, err := config.LoadDocuments(cfg.Documents)
	if err != nil {
		log.Fatal("Failed to load rule documents", zap.Error(err))
	}

	// Compilers
	registry, err := supplier.NewDefaultRegistry(supplier.Config{
		ABC:    &supplier.ABCConfig{URL: cfg.Supplier.ABC.URL},
		Beacon: &supplier.BeaconConfig{URL: cfg.Supplier.Beacon.URL, APISiteID: cfg.Supplier.Beacon.APISiteID},
		SRS:    &supplier.SRSConfig{URL: cfg.Supplier.SRS.URL, SourceSystem: cfg.Supplier.SRS.SourceSystem},
	})
	if err != nil {
		log.Fatal("Failed to configure supplier compilers", zap.Error(err))
	}

	validator, err := abcvalidate.New(docs.ABCValidation)
	if err != nil {
		log.Fatal("Failed to configure ABC payload validator", zap.Error(err))
	}

	// Application services
	orderService, err := apporder.NewService(apporder.ServiceConfig{
		Builder:   apporder.NewBuilder(docs.Targets),
		Compilers: registry,
		Validator: validator,
		FinishABC: cfg.Supplier.ABC.ValidatePayload,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Failed to create order service", zap.Error(err))
	}

	if providers.MetricsEnabled() {
		compileMetrics, err := telemetry.NewCompileMetrics(providers.Meter("supplier-orders/order"))
		if err != nil {
			log.Warn("Compile metrics disabled", zap.Error(err))
		} else {
			orderService.SetCompileMetrics(compileMetrics)
		}
	}

	// Handlers
	orderHandler := handler.NewOrderHandler(orderService)
	abcHandler := handler.NewABCHandler(orderService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, registry.Targets())

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span plus request and target attributes
	// 4. Logger - Log requests
	// 5. Metrics - HTTP request metrics
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     providers.TracingEnabled(),
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	if providers.MetricsEnabled() {
		engine.Use(middleware.HTTPMetrics(providers.Meter("supplier-orders/http")))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Rate limiting applies to the API only
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
		r.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Float64("rps", cfg.HTTP.RateLimitRPS),
			zap.Int("burst", limiter.Limit()),
		)
	}

	r.Register(router.NewOrderRoutes(orderHandler)).
		Register(router.NewABCRoutes(abcHandler)).
		Register(router.NewSystemRoutes(systemHandler))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.Stringers("targets", registry.Targets()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry after the last request has been served
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
