package service

import (
	"context"
	"time"

	"github.com/yourusername/quizpang-api/internal/domain/repository"
)

// HealthStatus — состояние зависимостей сервиса
type HealthStatus struct {
	Status         string `json:"status"`
	DBConnected    bool   `json:"db_connected"`
	RedisConnected bool   `json:"redis_connected"`
}

// Healthy — база доступна; без Redis сервис работает без кеша
func (h HealthStatus) Healthy() bool {
	return h.DBConnected
}

// HealthService проверяет доступность базы и Redis
type HealthService struct {
	db      repository.StorageProbe
	cache   repository.CacheRepository
	timeout time.Duration
}

// NewHealthService создает сервис проверки состояния. cache может быть nil.
func NewHealthService(db repository.StorageProbe, cache repository.CacheRepository, timeout time.Duration) *HealthService {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthService{db: db, cache: cache, timeout: timeout}
}

// Check пингует зависимости
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status := HealthStatus{Status: "ok"}
	status.DBConnected = s.db != nil && s.db.Ping(ctx) == nil
	status.RedisConnected = s.cache != nil && s.cache.Ping(ctx) == nil
	if !status.Healthy() {
		status.Status = "degraded"
	}
	return status
}
