package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/shopsync/backend/docs"
	categoryapp "github.com/shopsync/backend/internal/application/category"
	productapp "github.com/shopsync/backend/internal/application/product"
	shopapp "github.com/shopsync/backend/internal/application/shop"
	taxonomyapp "github.com/shopsync/backend/internal/application/taxonomy"
	"github.com/shopsync/backend/internal/infrastructure/ai"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/shoptet"
	"github.com/shopsync/backend/internal/infrastructure/telemetry"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

//	@title			ShopSync Taxonomy API
//	@version		1.0
//	@description	Cross-shop taxonomy mapping and reconciliation engine

//	@contact.name	API Support
//	@contact.url	https://github.com/shopsync/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}()
	if cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.EnableDBTracing(db.DB, tracerProvider, cfg.Database.DBName); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Catalog.ListingCacheBackend == "redis" {
		redisClient = cache.NewRedisClient(&cfg.Redis)
		defer func() { _ = redisClient.Close() }()
	}
	listings, err := cache.NewListingCache(&cfg.Catalog, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize listing cache", zap.Error(err))
	}

	catalog, err := shoptet.NewAdapter(&shoptet.ClientConfig{
		BaseURL:          cfg.Shoptet.BaseURL,
		Timeout:          cfg.Shoptet.Timeout,
		MaxResponseBytes: cfg.Shoptet.MaxResponseBytes,
	}, nil, log)
	if err != nil {
		log.Fatal("Failed to initialize catalog client", zap.Error(err))
	}

	oracle := ai.NewClient(ai.ClientConfig{
		BaseURL: cfg.Suggestions.BaseURL,
		APIKey:  cfg.Suggestions.APIKey,
		Timeout: cfg.Suggestions.Timeout,
	}, log)

	txManager := persistence.NewTxManager(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	attributeMappingRepo := persistence.NewGormAttributeMappingRepository(db.DB)
	nodeRepo := persistence.NewGormCategoryNodeRepository(db.DB)
	shopNodeRepo := persistence.NewGormShopNodeRepository(db.DB)
	categoryMappingRepo := persistence.NewGormCategoryMappingRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	overlayRepo := persistence.NewGormOverlayRepository(db.DB)

	taxonomyService := taxonomyapp.NewService(
		shopRepo, settingsRepo, attributeMappingRepo,
		catalog, oracle, listings, txManager,
		cfg.Catalog.Language, log,
	)
	categoryService := categoryapp.NewService(
		shopRepo, nodeRepo, shopNodeRepo, categoryMappingRepo,
		oracle, catalog, txManager, log,
	)
	productService := productapp.NewService(
		shopRepo, productRepo, overlayRepo,
		nodeRepo, shopNodeRepo, categoryMappingRepo,
		catalog, txManager, log,
	)
	shopService := shopapp.NewService(shopRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())

	systemHandler := handler.NewSystemHandler(db, redisClient)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	swaggerGroup := engine.Group("/swagger", middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:    cfg.Swagger.Enabled,
		AllowedIPs: cfg.Swagger.AllowedIPs,
	}))
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewAttributeMappingHandler(taxonomyService)).
		Register(handler.NewCategoryTreeHandler(categoryService)).
		Register(handler.NewDefaultCategoryHandler(productService)).
		Register(handler.NewShopHandler(shopService)).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
