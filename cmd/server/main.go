package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/bricksflow/backend/internal/application/admin"
	billingapp "github.com/bricksflow/backend/internal/application/billing"
	catalogapp "github.com/bricksflow/backend/internal/application/catalog"
	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	financeapp "github.com/bricksflow/backend/internal/application/finance"
	identityapp "github.com/bricksflow/backend/internal/application/identity"
	inventoryapp "github.com/bricksflow/backend/internal/application/inventory"
	partnerapp "github.com/bricksflow/backend/internal/application/partner"
	printingapp "github.com/bricksflow/backend/internal/application/printing"
	productionapp "github.com/bricksflow/backend/internal/application/production"
	reportapp "github.com/bricksflow/backend/internal/application/report"
	tradeapp "github.com/bricksflow/backend/internal/application/trade"
	workforceapp "github.com/bricksflow/backend/internal/application/workforce"
	"github.com/bricksflow/backend/internal/domain/billing"
	"github.com/bricksflow/backend/internal/infrastructure/auth"
	"github.com/bricksflow/backend/internal/infrastructure/cache"
	"github.com/bricksflow/backend/internal/infrastructure/config"
	"github.com/bricksflow/backend/internal/infrastructure/logger"
	"github.com/bricksflow/backend/internal/infrastructure/payment"
	"github.com/bricksflow/backend/internal/infrastructure/persistence"
	"github.com/bricksflow/backend/internal/infrastructure/printing"
	"github.com/bricksflow/backend/internal/infrastructure/scheduler"
	"github.com/bricksflow/backend/internal/infrastructure/storage"
	"github.com/bricksflow/backend/internal/infrastructure/telemetry"
	"github.com/bricksflow/backend/internal/interfaces/http/handler"
	"github.com/bricksflow/backend/internal/interfaces/http/middleware"
	"github.com/bricksflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/bricksflow/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

//	@title			BricksFlow API
//	@version		1.0
//	@description	Brick factory management: production, materials, sales, payroll, expenses and reports.

//	@contact.name	BricksFlow Support
//	@contact.email	support@bricksflow.example.com

//	@host		localhost:8000
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if tel.Logs.IsEnabled() {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = zapcore.InfoLevel
		}
		if exported, err := logger.New(logCfg, telemetry.NewZapOTELCore(tel.Logs, level)); err == nil {
			log = exported
		} else {
			log.Warn("Failed to attach OTEL log exporter", zap.Error(err))
		}
	}
	defer logger.Sync(log)

	log.Info("Starting BricksFlow",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.Open(&cfg.Database, persistence.WithLogger(gormLog), persistence.WithPlugin(tel.DB))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	store, redisClient, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).Build()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	factoryRepo := persistence.NewGormFactoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productionRepo := persistence.NewGormProductionLogRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	definitionRepo := persistence.NewGormMaterialDefinitionRepository(db.DB)
	purchaseRepo := persistence.NewGormMaterialPurchaseRepository(db.DB)
	usageRepo := persistence.NewGormMaterialUsageRepository(db.DB)
	ledger := persistence.NewGormStockLedger(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	employeePaymentRepo := persistence.NewGormEmployeePaymentRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	gateway, err := payment.NewGateway(cfg.Payment, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}
	catalog := billing.NewCatalog(
		cfg.Subscription.MonthlyDays,
		cfg.Subscription.YearlyDays,
		cfg.Subscription.MonthlyPricePaise,
		cfg.Subscription.YearlyPricePaise,
	)

	var objectStore printingapp.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare invoice bucket", zap.Error(err))
		}
		objectStore = s3Store
	}

	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		renderer = printing.NewChromedpRenderer(cfg.Printing, log)
		defer func() {
			if err := renderer.Close(); err != nil {
				log.Warn("Error closing PDF renderer", zap.Error(err))
			}
		}()
	}

	// Services
	guard := factoryapp.NewGuard(factoryRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	adminService := adminapp.NewAdminService(userRepo, factoryRepo, cfg.Admin.PIN, log)
	factoryService := factoryapp.NewFactoryService(factoryRepo, cfg.Subscription.TrialDays, log)
	subscriptionService := billingapp.NewSubscriptionService(factoryRepo, catalog, gateway, tel.Business, log)
	productService := catalogapp.NewProductService(productRepo, guard, log)
	productionService := productionapp.NewProductionService(productionRepo, productRepo, guard, tel.Business, log)
	inventoryService := inventoryapp.NewInventoryService(inventoryapp.Repositories{
		Materials:   materialRepo,
		Definitions: definitionRepo,
		Purchases:   purchaseRepo,
		Usage:       usageRepo,
		Ledger:      ledger,
	}, guard, tel.Business, log)
	customerService := partnerapp.NewCustomerService(customerRepo, guard, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, guard, log)
	workforceService := workforceapp.NewWorkforceService(employeeRepo, employeePaymentRepo, guard, log)
	financeService := financeapp.NewFinanceService(rateRepo, expenseRepo, guard, log)
	saleService := tradeapp.NewSaleService(saleRepo, productRepo, guard, tel.Business, log)
	invoiceService := printingapp.NewInvoiceService(saleRepo, productRepo, guard, renderer, objectStore, log)
	reportService := reportapp.NewReportService(reportapp.Sources{
		Products:   productRepo,
		Production: productionRepo,
		Sales:      saleRepo,
		Payments:   employeePaymentRepo,
		Materials:  materialRepo,
		Purchases:  purchaseRepo,
		Usage:      usageRepo,
		Expenses:   expenseRepo,
		Rates:      rateRepo,
	}, guard, store, cfg.Cache.DashboardTTL, log)

	sweeper, err := scheduler.NewExpirySweeper(scheduler.ExpirySweeperConfig{
		Interval:   cfg.Scheduler.ExpirySweepInterval,
		RunOnStart: true,
		Timeout:    30 * time.Second,
	}, factoryRepo, log)
	if err != nil {
		log.Fatal("Invalid expiry sweeper configuration", zap.Error(err))
	}
	sweeper.SetObserver(tel.Business.RecordExpirySweep)
	if cfg.Scheduler.ExpirySweepEnabled {
		if err := sweeper.Start(ctx); err != nil {
			log.Fatal("Failed to start expiry sweeper", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: cfg.Telemetry.Enabled}),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORS(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(tel.Meter.Meter("bricksflow/http"), log),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	var publicLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		publicLimit = middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow))
	}

	healthExtra := map[string]handler.HealthCheck{}
	if redisClient != nil {
		healthExtra["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	router.Mount(router.NewRouter(engine), router.Handlers{
		System:       handler.NewSystemHandler(version, "postgresql", db, healthExtra),
		Auth:         handler.NewAuthHandler(authService),
		Admin:        handler.NewAdminHandler(adminService),
		Factory:      handler.NewFactoryHandler(factoryService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Product:      handler.NewProductHandler(productService),
		Production:   handler.NewProductionHandler(productionService),
		Material:     handler.NewMaterialHandler(inventoryService),
		Sale:         handler.NewSaleHandler(saleService, invoiceService),
		Partner:      handler.NewPartnerHandler(customerService, supplierService),
		Workforce:    handler.NewWorkforceHandler(workforceService),
		Finance:      handler.NewFinanceHandler(financeService),
		Report:       handler.NewReportHandler(reportService),
	}, router.Guards{
		PublicLimit: publicLimit,
		Authenticated: []gin.HandlerFunc{
			middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Logger:         log,
			}),
			middleware.FactoryScope(),
			middleware.TracingAttributeInjector(),
			middleware.Profiling(tel.Profiler.IsEnabled()),
		},
		WriteGate: middleware.ReadOnlyGate(middleware.ReadOnlyGateConfig{
			Checker:      factoryService,
			ExemptRoutes: []string{"POST /api/factories"},
		}),
	}).Setup()

	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if sweeper.IsRunning() {
		if err := sweeper.Stop(shutdownCtx); err != nil {
			log.Warn("Expiry sweeper did not stop cleanly", zap.Error(err))
		}
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
