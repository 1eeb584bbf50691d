package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// VoteRepo реализует repository.VoteRepository
type VoteRepo struct {
	db *gorm.DB
}

// NewVoteRepo создает новый репозиторий голосов
func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Create сохраняет голос. Повторный голос нарушает первичный ключ и даёт ErrConflict.
func (r *VoteRepo) Create(ctx context.Context, vote *entity.UserQuizVote) error {
	return translateError(r.db.WithContext(ctx).Create(vote).Error, "create vote")
}

// Get возвращает голос пользователя за викторину
func (r *VoteRepo) Get(ctx context.Context, userID string, quizID uint) (*entity.UserQuizVote, error) {
	var vote entity.UserQuizVote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&vote).Error
	if err != nil {
		return nil, translateError(err, "get vote")
	}
	return &vote, nil
}
