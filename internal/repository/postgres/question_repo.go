package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// applyRatingSQL вычисляет новое среднее из сохранённых avg и count на стороне сервера.
// Правая часть SET видит старую строку, а блокировка строки сериализует конкурентные оценки.
const applyRatingSQL = `UPDATE questions
SET votes_avg = (votes_avg * votes_count + ?) / (votes_count + 1),
    votes_count = votes_count + 1
WHERE id = ?
RETURNING votes_avg, votes_count`

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// ApplyRating добавляет оценку одним UPDATE ... RETURNING
func (r *QuestionRepo) ApplyRating(ctx context.Context, questionID uint, rating int) (float64, int, error) {
	var result struct {
		VotesAvg   float64
		VotesCount int
	}
	tx := r.db.WithContext(ctx).Raw(applyRatingSQL, rating, questionID).Scan(&result)
	if tx.Error != nil {
		return 0, 0, translateError(tx.Error, "apply rating")
	}
	if tx.RowsAffected == 0 {
		return 0, 0, fmt.Errorf("question #%d: %w", questionID, apperrors.ErrNotFound)
	}
	return result.VotesAvg, result.VotesCount, nil
}
