package repository

import (
	"context"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками прохождения
type AttemptRepository interface {
	Create(ctx context.Context, attempt *entity.QuizAttempt) error
	// ListByUser возвращает попытки пользователя, последние первыми
	ListByUser(ctx context.Context, userID string) ([]entity.QuizAttempt, error)
}
