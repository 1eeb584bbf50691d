package repository

import "context"

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// ApplyRating атомарно добавляет оценку к агрегату вопроса и возвращает новые avg и count.
	// Если вопроса нет, возвращает apperrors.ErrNotFound.
	ApplyRating(ctx context.Context, questionID uint, rating int) (float64, int, error)
}
