package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	"github.com/yourusername/quizpang-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/pkg/metrics"
)

// RecordAttemptInput — данные о прохождении викторины
type RecordAttemptInput struct {
	UserID         string
	QuizID         uint
	Score          int
	TotalQuestions int
	Mode           string
}

// AttemptService записывает попытки и отдаёт историю
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	quizRepo    repository.QuizRepository
	guard       storageGuard
	invalidator RankingInvalidator
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
	quizRepo repository.QuizRepository,
	probe repository.StorageProbe,
	invalidator RankingInvalidator,
	m *metrics.Metrics,
	opts Options,
	logger *zap.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		guard:       newStorageGuard(probe, opts.QueryTimeout),
		invalidator: invalidatorOrNoop(invalidator),
		metrics:     m,
		logger:      logger.Named("AttemptService"),
		now:         time.Now,
	}
}

func validateAttempt(in *RecordAttemptInput) error {
	in.UserID = strings.TrimSpace(in.UserID)
	in.Mode = strings.ToLower(strings.TrimSpace(in.Mode))

	var missing []string
	if in.UserID == "" {
		missing = append(missing, "userId")
	}
	if in.QuizID == 0 {
		missing = append(missing, "quizId")
	}
	if in.Mode == "" {
		missing = append(missing, "mode")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	if in.TotalQuestions < 0 {
		return fmt.Errorf("%w: totalQuestions must not be negative", apperrors.ErrValidation)
	}
	if in.Score < 0 || in.Score > in.TotalQuestions {
		return fmt.Errorf("%w: score must be between 0 and totalQuestions (%d), got %d",
			apperrors.ErrValidation, in.TotalQuestions, in.Score)
	}
	if !entity.IsValidAttemptMode(in.Mode) {
		return fmt.Errorf("%w: mode must be %q or %q", apperrors.ErrValidation, entity.AttemptModeExam, entity.AttemptModeStudy)
	}
	return nil
}

// RecordAttempt сохраняет попытку. Время проставляет сервер.
// Несуществующий пользователь или викторина дают ErrConflict.
func (s *AttemptService) RecordAttempt(ctx context.Context, in RecordAttemptInput) (*entity.QuizAttempt, error) {
	if err := validateAttempt(&in); err != nil {
		return nil, err
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	if err := s.ensureReferences(ctx, in.UserID, in.QuizID); err != nil {
		return nil, err
	}

	attempt := &entity.QuizAttempt{
		UserID:         in.UserID,
		QuizID:         in.QuizID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		Mode:           in.Mode,
		Date:           entity.EpochMillis(s.now()),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AttemptsSaved.WithLabelValues(attempt.Mode).Inc()
	}
	s.invalidator.Invalidate(ctx)
	s.logger.Info("Попытка сохранена",
		zap.Uint("attempt_id", attempt.ID),
		zap.String("user_id", attempt.UserID),
		zap.Uint("quiz_id", attempt.QuizID),
		zap.Int("score", attempt.Score),
		zap.Int("total_questions", attempt.TotalQuestions))
	return attempt, nil
}

// ensureReferences переводит отсутствие пользователя или викторины в ErrConflict.
// Внешние ключи в базе остаются последней линией защиты при гонке с удалением.
func (s *AttemptService) ensureReferences(ctx context.Context, userID string, quizID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %q does not exist", apperrors.ErrConflict, userID)
		}
		return err
	}
	if _, err := s.quizRepo.GetByID(ctx, quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: quiz #%d does not exist", apperrors.ErrConflict, quizID)
		}
		return err
	}
	return nil
}

// GetUserHistory возвращает попытки пользователя, последние первыми
func (s *AttemptService) GetUserHistory(ctx context.Context, userID string) ([]entity.QuizAttempt, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user history: %w", err)
	}
	if attempts == nil {
		attempts = []entity.QuizAttempt{}
	}
	return attempts, nil
}
