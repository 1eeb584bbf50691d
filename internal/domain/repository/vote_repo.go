package repository

import (
	"context"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// VoteRepository хранит голоса пользователей за викторины
type VoteRepository interface {
	// Create возвращает apperrors.ErrConflict, если пользователь уже голосовал
	Create(ctx context.Context, vote *entity.UserQuizVote) error
	Get(ctx context.Context, userID string, quizID uint) (*entity.UserQuizVote, error)
}
