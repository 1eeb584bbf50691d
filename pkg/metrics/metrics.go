package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — набор метрик приложения на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RatingsApplied  prometheus.Counter
	AttemptsSaved   *prometheus.CounterVec
	RankingCache    *prometheus.CounterVec
}

// New регистрирует метрики в новом реестре
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		RatingsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quizpang_question_ratings_total",
			Help: "Number of ratings folded into question averages",
		}),
		AttemptsSaved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizpang_attempts_total",
				Help: "Number of recorded quiz attempts",
			},
			[]string{"mode"},
		),
		RankingCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizpang_ranking_cache_total",
				Help: "Ranking cache lookups by result",
			},
			[]string{"type", "result"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.RatingsApplied,
		m.AttemptsSaved,
		m.RankingCache,
	)
	return m
}

// Middleware считает запросы и их длительность
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
