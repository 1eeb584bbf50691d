package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/config"
	"github.com/yourusername/quizpang-api/internal/domain/repository"
	"github.com/yourusername/quizpang-api/internal/handler"
	"github.com/yourusername/quizpang-api/internal/middleware"
	pgRepo "github.com/yourusername/quizpang-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizpang-api/internal/repository/redis"
	"github.com/yourusername/quizpang-api/internal/service"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
	"github.com/yourusername/quizpang-api/pkg/auth"
	"github.com/yourusername/quizpang-api/pkg/database"
	"github.com/yourusername/quizpang-api/pkg/logger"
	"github.com/yourusername/quizpang-api/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("Failed to init logger: %v", err)
		os.Exit(1)
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Конфигурация загружена", zap.String("path", configPath), zap.String("mode", cfg.Server.Mode))

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis необязателен: без него рейтинги не кешируются и лимит запросов не применяется
	var (
		redisClient redis.UniversalClient
		cacheRepo   repository.CacheRepository
	)
	if client, err := database.NewUniversalRedisClient(ctx, cfg.Redis); err != nil {
		appLogger.Warn("Redis недоступен, работаем без кеша и rate limiting", zap.Error(err))
	} else {
		redisClient = client
		repo, err := redisRepo.NewCacheRepo(client)
		if err != nil {
			appLogger.Fatal("Failed to initialize CacheRepo", zap.Error(err))
		}
		cacheRepo = repo
		appLogger.Info("Successfully connected to Redis")
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	voteRepo := pgRepo.NewVoteRepo(db)
	rankingRepo := pgRepo.NewRankingRepo(db)
	probe := pgRepo.NewProbe(db)

	appMetrics := metrics.New()

	opts := service.Options{
		QueryTimeout: cfg.Database.QueryTimeout(),
		Ranking: ranking.Config{
			TopN:      cfg.Ranking.TopN,
			QuizBonus: cfg.Ranking.QuizBonus,
		},
		RankingCacheTTL: cfg.Ranking.CacheTTL(),
		EmailTimeout:    cfg.Email.Timeout(),
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		appLogger.Fatal("Failed to create JWT service", zap.Error(err))
	}

	var emailService service.EmailService = service.NewNoopEmailService(appLogger)
	if cfg.Email.ResendAPIKey != "" {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			appLogger.Fatal("Failed to create email service", zap.Error(err))
		}
		emailService = resendService
	}

	// Инициализируем сервисы
	rankingService := service.NewRankingService(rankingRepo, cacheRepo, probe, appMetrics, opts, appLogger)
	ratingService := service.NewRatingService(questionRepo, probe, rankingService, appMetrics, opts, appLogger)
	attemptService := service.NewAttemptService(attemptRepo, userRepo, quizRepo, probe, rankingService, appMetrics, opts, appLogger)
	quizService := service.NewQuizService(quizRepo, userRepo, probe, rankingService, opts, appLogger)
	voteService := service.NewVoteService(voteRepo, quizRepo, probe, opts, appLogger)
	authService := service.NewAuthService(userRepo, jwtService, emailService, probe, rankingService, opts, appLogger)
	healthService := service.NewHealthService(probe, cacheRepo, 2*time.Second)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, appLogger)
	}

	isProduction := cfg.Server.Mode == gin.ReleaseMode
	gin.SetMode(cfg.Server.Mode)

	// В production не доверяем прокси-заголовкам (защита от IP spoofing)
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}

	router := handler.NewRouter(handler.RouterDeps{
		Auth:           handler.NewAuthHandler(authService, appLogger),
		Quiz:           handler.NewQuizHandler(quizService, voteService, appLogger),
		Rating:         handler.NewRatingHandler(ratingService, appLogger),
		Attempt:        handler.NewAttemptHandler(attemptService, appLogger),
		Ranking:        handler.NewRankingHandler(rankingService, appLogger),
		Health:         handler.NewHealthHandler(healthService),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService, appLogger),
		RateLimiter:    rateLimiter,
		AuthLimit:      middleware.AuthRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
		WriteLimit:     middleware.WriteRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
		Metrics:        appMetrics,
		CORSOrigins:    cfg.Server.CORSOrigins,
		TrustedProxies: trustedProxies,
		Logger:         appLogger,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Дожидаемся приветственных писем, у каждого свой тайм-аут
	authService.WaitPending()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Warn("Error closing Redis client", zap.Error(err))
		}
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		_ = sqlDB.Close()
	}

	appLogger.Info("Server exited properly")
}
