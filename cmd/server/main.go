package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vintner/backend/docs"
	catalogapp "github.com/vintner/backend/internal/application/catalog"
	"github.com/vintner/backend/internal/infrastructure/auth"
	"github.com/vintner/backend/internal/infrastructure/cache"
	"github.com/vintner/backend/internal/infrastructure/config"
	"github.com/vintner/backend/internal/infrastructure/logger"
	"github.com/vintner/backend/internal/infrastructure/persistence"
	"github.com/vintner/backend/internal/infrastructure/refdata"
	"github.com/vintner/backend/internal/infrastructure/storage"
	"github.com/vintner/backend/internal/infrastructure/telemetry"
	"github.com/vintner/backend/internal/interfaces/http/handler"
	"github.com/vintner/backend/internal/interfaces/http/middleware"
	"github.com/vintner/backend/internal/interfaces/http/router"
)

// @title                      Vintner Catalog API
// @version                    1.0
// @description                Manufacturer catalog service with taxonomy synchronization.
// @BasePath                   /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"
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
		zap.String("port", cfg.App.Port))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.DBTraceEnabled
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	imageRepo := persistence.NewGormManufacturerImageRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	microRegionRepo := persistence.NewGormMicroRegionRepository(db.DB)
	taxonomyRepo := persistence.NewGormTaxonomyRepository(db.DB)
	taxonRepo := persistence.NewGormTaxonRepository(db.DB)

	// Reference data. The taxonomy synchronizer works without country
	// names, so a missing file only costs localized taxon naming.
	var localizer catalogapp.CountryNameLocalizer
	if names, err := refdata.LoadCountryNames(cfg.RefData.CountryNamesPath); err != nil {
		log.Warn("Country name reference data unavailable",
			zap.String("path", cfg.RefData.CountryNamesPath),
			zap.Error(err))
	} else {
		localizer = names
		log.Info("Loaded country names", zap.Int("entries", names.Len()))
	}

	if records, err := refdata.LoadMicroRegions(cfg.RefData.MicroRegionsPath); err != nil {
		log.Warn("Micro region reference data unavailable",
			zap.String("path", cfg.RefData.MicroRegionsPath),
			zap.Error(err))
	} else {
		seeder := refdata.NewMicroRegionSeeder(microRegionRepo, log)
		created, err := seeder.Seed(ctx, records)
		if err != nil {
			log.Warn("Micro region seeding failed", zap.Error(err))
		} else if created > 0 {
			log.Info("Seeded micro regions", zap.Int("created", created))
		}
	}

	// Object storage
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Bucket != "" && cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, using stub storage")
	}

	// Services
	syncService := catalogapp.NewTaxonomySyncService(
		taxonomyRepo,
		taxonRepo,
		manufacturerRepo,
		productRepo,
		countryRepo,
		microRegionRepo,
		localizer,
		catalogapp.TaxonomySyncConfig{
			CountryRootPath:      cfg.Taxonomy.CountryRootPath,
			CountryRootName:      cfg.Taxonomy.CountryRootName,
			ManufacturerRootPath: cfg.Taxonomy.ManufacturerRootPath,
			ManufacturerRootName: cfg.Taxonomy.ManufacturerRootName,
			Locale:               cfg.Taxonomy.DefaultLocale,
		},
		log,
	)
	if err := syncService.EnsureRoots(ctx); err != nil {
		log.Fatal("Failed to ensure taxonomy roots", zap.Error(err))
	}

	manufacturerService := catalogapp.NewManufacturerService(manufacturerRepo, countryRepo, syncService, log)
	manufacturerService.SetTypeaheadCache(newTypeaheadCache(cfg, log))

	productService := catalogapp.NewProductService(productRepo, syncService, log)

	imageService := catalogapp.NewImageService(imageRepo, manufacturerRepo, objectStorage, log)
	imageCfg := catalogapp.DefaultImageServiceConfig()
	if cfg.Storage.UploadExpiry > 0 {
		imageCfg.UploadURLExpiry = cfg.Storage.UploadExpiry
	}
	if cfg.Storage.DownloadExpiry > 0 {
		imageCfg.DownloadURLExpiry = cfg.Storage.DownloadExpiry
	}
	imageService.SetConfig(imageCfg)

	// Handlers
	manufacturerHandler := handler.NewManufacturerHandler(manufacturerService)
	imageHandler := handler.NewImageHandler(imageService)
	productHandler := handler.NewProductHandler(productService)
	systemHandler := handler.NewSystemHandler(db)

	// HTTP engine
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
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow))
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing())
		engine.Use(middleware.SpanErrorMarker())
	}

	verifier := auth.NewTokenVerifier(cfg.JWT)
	jwtConfig := middleware.DefaultJWTConfig(verifier)
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = []string{
		"/api/v1/health",
		"/api/v1/system/info",
		"/api/v1/system/ping",
	}
	jwtConfig.SkipPathPrefixes = []string{"/swagger"}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(manufacturerHandler).
		Register(imageHandler).
		Register(productHandler).
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// newTypeaheadCache prefers Redis and falls back to the in-process cache
// when Redis is unreachable at startup.
func newTypeaheadCache(cfg *config.Config, log *zap.Logger) catalogapp.TypeaheadCache {
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisTypeaheadCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
			cache.WithTypeaheadTTL(cfg.Redis.TypeaheadTTL),
			cache.WithTypeaheadLogger(log),
		)
		if err == nil {
			log.Info("Redis typeahead cache configured",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port))
			return redisCache
		}
		log.Warn("Redis unavailable, falling back to in-memory typeahead cache", zap.Error(err))
	}
	return cache.NewInMemoryTypeaheadCache(cfg.Redis.TypeaheadTTL)
}
