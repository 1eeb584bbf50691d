package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/middleware"
	"github.com/yourusername/quizpang-api/pkg/metrics"
)

// RouterDeps — всё, что нужно для сборки маршрутов
type RouterDeps struct {
	Auth    *AuthHandler
	Quiz    *QuizHandler
	Rating  *RatingHandler
	Attempt *AttemptHandler
	Ranking *RankingHandler
	Health  *HealthHandler

	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter может быть nil: тогда ограничение не применяется
	RateLimiter *middleware.RateLimiter
	AuthLimit   middleware.RateLimitConfig
	WriteLimit  middleware.RateLimitConfig

	// Metrics может быть nil: тогда /metrics не регистрируется
	Metrics *metrics.Metrics

	CORSOrigins    []string
	TrustedProxies []string
	Logger         *zap.Logger
}

func (d *RouterDeps) limit(cfg middleware.RateLimitConfig) gin.HandlerFunc {
	if d.RateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return d.RateLimiter.Limit(cfg)
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(d RouterDeps) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))

	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	if len(d.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderUserID},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", d.Metrics.Handler())
	}

	router.GET("/health", d.Health.Health)

	api := router.Group("/api")
	api.Use(d.AuthMiddleware.OptionalAuth())
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(d.limit(d.AuthLimit))
		{
			authGroup.POST("/signup", d.Auth.Signup)
			authGroup.POST("/login", d.Auth.Login)
		}

		// Викторины
		quizzes := api.Group("/quiz")
		{
			quizzes.POST("/create", d.Quiz.CreateQuiz)
			quizzes.GET("/list", d.Quiz.ListQuizzes)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", ContextQuizID))
			{
				quizWithID.GET("/questions", d.Quiz.GetQuizWithQuestions)
				quizWithID.DELETE("", d.Quiz.DeleteQuiz)
				quizWithID.POST("/vote", d.limit(d.WriteLimit), d.Quiz.VoteQuiz)
				quizWithID.GET("/vote/:userId", d.Quiz.GetVoteStatus)
			}
		}

		api.GET("/users/:userId/quizzes", d.Quiz.ListUserQuizzes)

		// Оценки и попытки
		api.POST("/question/rate", d.limit(d.WriteLimit), d.Rating.RateQuestion)
		api.POST("/attempt/save", d.limit(d.WriteLimit), d.Attempt.SaveAttempt)
		api.GET("/history/:userId", d.Attempt.GetHistory)

		// Рейтинги
		api.GET("/ranking", d.Ranking.GetRanking)
		api.GET("/ranking/export", d.Ranking.ExportRanking)
	}

	return router
}
