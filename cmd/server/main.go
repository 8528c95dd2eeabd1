package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/billing"
	fleetapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/fleet"
	identityapp "github.com/adrijusxx/TMS-TRUCKING-sub015/internal/application/identity"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/auth"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/config"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/logger"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/infrastructure/persistence"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/handler"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/middleware"
	"github.com/adrijusxx/TMS-TRUCKING-sub015/internal/interfaces/http/router"
)

//	@title			TMS Billing API
//	@version		1.0
//	@description	Trucking back-office billing API. Loads, billing holds, invoice generation and invoice batches, scoped per MC authority.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		OTelBridge: cfg.Log.OTelBridge,
		ScopeName:  cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TMS billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.Options{
		LogLevel:     logger.MapGormLogLevel(cfg.Log.Level),
		Logger:       log,
		SlowQuery:    cfg.Billing.DBSlowQueryThresh,
		TraceQueries: cfg.Billing.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	loadRepo := persistence.NewGormLoadRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	batchRepo := persistence.NewGormInvoiceBatchRepository(db.DB)
	holdRepo := persistence.NewGormBillingHoldRepository(db.DB)
	mcRepo := persistence.NewGormMcNumberRepository(db.DB)
	podChecker := persistence.NewGormPODChecker(db.DB)
	numberGen := persistence.NewSequenceNumberGenerator(db.DB, cfg.Billing.NumberMaxRetries)

	// Application services
	validator := billingapp.NewEligibilityValidator(holdRepo, podChecker, log)
	generator := billingapp.NewInvoiceGenerator(invoiceRepo, customerRepo, numberGen, log,
		cfg.Billing.InvoicePrefix, cfg.Billing.DefaultPaymentTermsDays)
	builder := billingapp.NewBatchBuilder(invoiceRepo, batchRepo, numberGen, log, cfg.Billing.BatchPrefix)
	fromLoadsService := billingapp.NewFromLoadsService(loadRepo, invoiceRepo, validator, generator, builder, log)
	queryService := billingapp.NewQueryService(invoiceRepo, batchRepo, mcRepo, log)
	holdService := billingapp.NewHoldService(holdRepo, loadRepo, log)
	loadService := fleetapp.NewLoadService(loadRepo, mcRepo, log)
	mcService := identityapp.NewMcNumberService(mcRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Token revocation lives in Redis so every instance sees a logout.
	// Fall back to the in-process blacklist when Redis is unreachable.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// HTTP handlers
	loadHandler := handler.NewLoadHandler(loadService)
	holdHandler := handler.NewBillingHoldHandler(holdService)
	invoiceHandler := handler.NewInvoiceHandler(queryService)
	batchHandler := handler.NewBatchHandler(fromLoadsService, queryService)
	mcNumberHandler := handler.NewMcNumberHandler(mcService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	if cfg.HTTP.TraceEnabled {
		engine.Use(middleware.Tracing(cfg.App.Name))
		engine.Use(middleware.TracingAttributes())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/ping",
		},
		Logger: log,
	}))
	r.Use(middleware.McSelectionMiddleware())

	// Fleet domain (loads and their billing holds)
	loadRoutes := router.NewDomainGroup("loads", "/loads")
	loadRoutes.GET("", loadHandler.List)
	loadRoutes.POST("", loadHandler.Create)
	loadRoutes.GET("/:id", loadHandler.GetByID)
	loadRoutes.PATCH("/:id/status", loadHandler.UpdateStatus)
	loadRoutes.POST("/:id/billing-hold", holdHandler.Place)
	loadRoutes.DELETE("/:id/billing-hold", holdHandler.Release)

	// Billing domain (invoices, batches)
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)

	batchRoutes := router.NewDomainGroup("batches", "/batches")
	batchRoutes.POST("/from-loads", batchHandler.CreateFromLoads)
	batchRoutes.GET("", batchHandler.List)
	batchRoutes.GET("/:id", batchHandler.GetByID)

	// Identity domain (MC numbers)
	mcRoutes := router.NewDomainGroup("mc-numbers", "/mc-numbers")
	mcRoutes.GET("", mcNumberHandler.List)
	mcRoutes.POST("", mcNumberHandler.Create)
	mcRoutes.PATCH("/:id", mcNumberHandler.Update)
	mcRoutes.DELETE("/:id", mcNumberHandler.Delete)

	r.Register(loadRoutes).
		Register(invoiceRoutes).
		Register(batchRoutes).
		Register(mcRoutes)

	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
