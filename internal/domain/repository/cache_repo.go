package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// GetJSON возвращает apperrors.ErrNotFound при промахе
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	// Increment атомарно увеличивает счетчик и возвращает новое значение
	Increment(ctx context.Context, key string) (int64, error)
	// GetInt возвращает значение счетчика, 0 если ключа нет
	GetInt(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}
