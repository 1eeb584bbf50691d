package repository

import (
	"context"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// RankingRepository считает агрегаты для рейтингов.
// Каждый пользователь присутствует в выборке, даже без активности.
type RankingRepository interface {
	AuthorStats(ctx context.Context) ([]entity.AuthorStats, error)
	SolverStats(ctx context.Context) ([]entity.SolverStats, error)
}

// StorageProbe проверяет доступность хранилища
type StorageProbe interface {
	Ping(ctx context.Context) error
}
