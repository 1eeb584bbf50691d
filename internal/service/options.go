package service

import (
	"time"

	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

// Options — общие настройки сервисов
type Options struct {
	// QueryTimeout ограничивает одну операцию с хранилищем, 0 отключает ограничение
	QueryTimeout time.Duration

	Ranking ranking.Config

	// RankingCacheTTL — время жизни кеша рейтингов; 0 отключает кеш
	RankingCacheTTL time.Duration

	// EmailTimeout ограничивает фоновую отправку письма вместе с повторами
	EmailTimeout time.Duration
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		QueryTimeout:    5 * time.Second,
		Ranking:         ranking.DefaultConfig(),
		RankingCacheTTL: 15 * time.Second,
		EmailTimeout:    10 * time.Second,
	}
}
