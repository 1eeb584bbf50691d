package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create добавляет попытку одной вставкой. Несуществующие user_id/quiz_id дают ErrConflict.
func (r *AttemptRepo) Create(ctx context.Context, attempt *entity.QuizAttempt) error {
	return translateError(r.db.WithContext(ctx).Create(attempt).Error, "create attempt")
}

// ListByUser возвращает историю пользователя, последние попытки первыми
func (r *AttemptRepo) ListByUser(ctx context.Context, userID string) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, translateError(err, "list attempts")
	}
	return attempts, nil
}
