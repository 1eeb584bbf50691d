package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	"github.com/yourusername/quizpang-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

// VoteService фиксирует, что пользователь оценил викторину, не более одного раза
type VoteService struct {
	voteRepo repository.VoteRepository
	quizRepo repository.QuizRepository
	guard    storageGuard
	logger   *zap.Logger
}

// NewVoteService создает новый сервис голосов
func NewVoteService(
	voteRepo repository.VoteRepository,
	quizRepo repository.QuizRepository,
	probe repository.StorageProbe,
	opts Options,
	logger *zap.Logger,
) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		quizRepo: quizRepo,
		guard:    newStorageGuard(probe, opts.QueryTimeout),
		logger:   logger.Named("VoteService"),
	}
}

// VoteQuiz сохраняет голос. Повторный голос того же пользователя даёт ErrConflict.
func (s *VoteService) VoteQuiz(ctx context.Context, userID string, quizID uint, rating int) (*entity.UserQuizVote, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}
	if err := ranking.ValidateRating(rating); err != nil {
		return nil, err
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.GetByID(ctx, quizID); err != nil {
		return nil, fmt.Errorf("vote quiz #%d: %w", quizID, err)
	}

	vote := &entity.UserQuizVote{UserID: userID, QuizID: quizID, Rating: rating}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: user already voted for quiz #%d", apperrors.ErrConflict, quizID)
		}
		return nil, fmt.Errorf("vote quiz #%d: %w", quizID, err)
	}

	s.logger.Info("Голос за викторину сохранён", zap.String("user_id", userID), zap.Uint("quiz_id", quizID))
	return vote, nil
}

// HasVoted сообщает, голосовал ли пользователь за викторину
func (s *VoteService) HasVoted(ctx context.Context, userID string, quizID uint) (bool, error) {
	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return false, err
	}

	if _, err := s.voteRepo.Get(ctx, userID, quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("has voted: %w", err)
	}
	return true, nil
}
