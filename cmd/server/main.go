package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerquiz/backend/internal/cache"
	"careerquiz/backend/internal/config"
	"careerquiz/backend/internal/handlers"
	"careerquiz/backend/internal/insights"
	"careerquiz/backend/internal/jobs"
	"careerquiz/backend/internal/llm"
	_ "careerquiz/backend/internal/llm/gemini"
	"careerquiz/backend/internal/metrics"
	appmiddleware "careerquiz/backend/internal/middleware"
	"careerquiz/backend/internal/models"
	"careerquiz/backend/internal/prompts"
	"careerquiz/backend/internal/questions"
	"careerquiz/backend/internal/ratelimit"
	"careerquiz/backend/internal/repositories"
	"careerquiz/backend/internal/routers"
	"careerquiz/backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "careerquiz"

// dependencies shared by every route
type app struct {
	config   *config.Config
	provider llm.Provider
	prompts  prompts.PromptProvider
	db       *gorm.DB
	cache    cache.Store
	logger   *zap.Logger
}

// openDatabase connects to the configured store and migrates the schema.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN())
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models.AllEntities()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// newResultCache picks redis when REDIS_ADDR is set, else the in-process store.
func newResultCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Store, error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory result cache", zap.Duration("ttl", cfg.ResultCacheTTL))
		return cache.NewMemoryStore(cfg.ResultCacheTTL), nil
	}

	store := cache.NewRedisStore(cfg.RedisAddr, cfg.ResultCacheTTL)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("Using redis result cache", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.ResultCacheTTL))
	return store, nil
}

// buildRouter wires repositories, pipelines, services and handlers into the
// HTTP surface.
func buildRouter(a *app) *chi.Mux {
	users := &repositories.UserRepository{DB: a.db}
	quizzes := &repositories.QuizRepository{DB: a.db}
	results := &repositories.ResultRepository{DB: a.db}

	// one limiter so question and insight calls share the model's pacing
	limiter := ratelimit.New(a.config.RateLimitInterval, nil)
	questionPipeline := questions.NewPipeline(a.provider, a.prompts, limiter, a.logger)
	insightPipeline := insights.NewPipeline(a.provider, a.prompts, limiter, a.logger)

	sharedResults := services.NewResultService(results, users, a.cache, a.logger)
	quizService := services.NewQuizService(questionPipeline, insightPipeline, users, quizzes, results, a.logger)
	profileService := services.NewProfileService(users, quizzes, results, sharedResults, a.logger)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	router.Use(metrics.Middleware(serviceName))
	router.Use(middleware.Timeout(requestTimeout(a.config)))

	router.Handle("/metrics", metrics.Handler())

	healthHandler := handlers.NewHealthHandler(a.provider, a.prompts, a.config, a.db, a.cache)
	routers.HealthRoutes(router, healthHandler)

	requireAuth := appmiddleware.RequireAuth(appmiddleware.AuthConfig{
		Secret:  a.config.AuthSecret,
		DevMode: a.config.AuthDevMode,
	}, a.logger)

	routers.APIRoutes(router, routers.Handlers{
		Auth:    handlers.NewAuthHandler(profileService, a.logger),
		Quiz:    handlers.NewQuizHandler(quizService, a.logger),
		Profile: handlers.NewProfileHandler(profileService, a.logger),
		Results: handlers.NewResultHandler(sharedResults, a.logger),
	}, requireAuth)

	return router
}

// requestTimeout leaves room for a throttled model call plus persistence.
func requestTimeout(cfg *config.Config) time.Duration {
	return 2*cfg.ModelTimeout + cfg.RateLimitInterval + 15*time.Second
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.StoreDriver),
		zap.Bool("auth_dev_mode", cfg.AuthDevMode))
	if cfg.AuthDevMode {
		logger.Warn("AUTH_DEV_MODE is on: bearer token signatures are not verified")
	}

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider, llm.ProviderOptions{Timeout: cfg.ModelTimeout})
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	resultCache, err := newResultCache(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		logger.Fatal("Failed to initialize result cache", zap.Error(err))
	}
	defer resultCache.Close()

	router := buildRouter(&app{
		config:   cfg,
		provider: aiProvider,
		prompts:  promptManager,
		db:       db,
		cache:    resultCache,
		logger:   logger,
	})

	cleanupJob := jobs.NewSessionCleanupJob(&repositories.QuizRepository{DB: db}, jobs.CleanupConfig{
		Schedule: cfg.CleanupSchedule,
		MaxAge:   cfg.StaleSessionAge,
	}, logger)
	if err := cleanupJob.Start(); err != nil {
		logger.Fatal("Failed to start session cleanup job", zap.Error(err))
	}

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout(cfg) + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Career quiz service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Career quiz service shutting down...")

	cleanupJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Career quiz service exited")
}
