package ranking

import (
	"fmt"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// ValidateRating проверяет оценку до обращения к хранилищу
func ValidateRating(rating int) error {
	if !entity.IsValidRating(rating) {
		return fmt.Errorf("%w: rating must be between %d and %d, got %d",
			apperrors.ErrValidation, entity.MinRating, entity.MaxRating, rating)
	}
	return nil
}

// FoldRating добавляет оценку к текущему среднему.
// Сумма восстанавливается как avg*count, отдельно она не хранится.
// В продакшене оценка применяется не здесь, а одним UPDATE в postgres.QuestionRepo.ApplyRating
// с тем же выражением. FoldRating служит эталоном формулы: им пользуются хранилище в памяти
// и тесты репозитория, сверяющие последовательность значений из ApplyRating.
func FoldRating(avg float64, count int, rating int) (float64, int) {
	if count < 0 {
		count = 0
	}
	newCount := count + 1
	newAvg := (avg*float64(count) + float64(rating)) / float64(newCount)
	return newAvg, newCount
}
