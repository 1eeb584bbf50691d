package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/domain/repository"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
	"github.com/yourusername/quizpang-api/pkg/metrics"
)

// RatingResult — агрегат вопроса после применения оценки
type RatingResult struct {
	QuestionID uint    `json:"question_id"`
	NewAverage float64 `json:"new_avg"`
	VotesCount int     `json:"votes_count"`
}

// RatingService применяет оценки 1..5 к вопросам
type RatingService struct {
	questionRepo repository.QuestionRepository
	guard        storageGuard
	invalidator  RankingInvalidator
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewRatingService создает новый сервис оценок
func NewRatingService(
	questionRepo repository.QuestionRepository,
	probe repository.StorageProbe,
	invalidator RankingInvalidator,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		questionRepo: questionRepo,
		guard:        newStorageGuard(probe, opts.QueryTimeout),
		invalidator:  invalidatorOrNoop(invalidator),
		metrics:      m,
		logger:       logger.Named("RatingService"),
	}
}

// RateQuestion добавляет оценку к среднему вопроса.
// Недопустимая оценка отклоняется до обращения к хранилищу.
func (s *RatingService) RateQuestion(ctx context.Context, questionID uint, rating int) (*RatingResult, error) {
	if err := ranking.ValidateRating(rating); err != nil {
		return nil, err
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	avg, count, err := s.questionRepo.ApplyRating(ctx, questionID, rating)
	if err != nil {
		return nil, fmt.Errorf("rate question #%d: %w", questionID, err)
	}

	if s.metrics != nil {
		s.metrics.RatingsApplied.Inc()
	}
	s.invalidator.Invalidate(ctx)
	s.logger.Debug("Оценка применена",
		zap.Uint("question_id", questionID),
		zap.Int("rating", rating),
		zap.Float64("votes_avg", avg),
		zap.Int("votes_count", count))

	return &RatingResult{QuestionID: questionID, NewAverage: avg, VotesCount: count}, nil
}
