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

// Ограничения на содержимое викторины
const (
	MaxQuizTitleLength    = 100
	MaxQuizCategoryLength = 50
	MaxQuestionsPerQuiz   = 100
)

// QuestionInput — вопрос новой викторины
type QuestionInput struct {
	Type          string
	Text          string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// CreateQuizInput — данные для создания викторины
type CreateQuizInput struct {
	Title     string
	Category  string
	CreatorID string
	Questions []QuestionInput
}

// QuizDetails — викторина с живыми агрегатами и вопросами
type QuizDetails struct {
	Summary   entity.QuizSummary
	Questions []entity.Question
}

// QuizService предоставляет методы для работы с викторинами
type QuizService struct {
	quizRepo    repository.QuizRepository
	userRepo    repository.UserRepository
	guard       storageGuard
	invalidator RankingInvalidator
	logger      *zap.Logger
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	probe repository.StorageProbe,
	invalidator RankingInvalidator,
	opts Options,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		userRepo:    userRepo,
		guard:       newStorageGuard(probe, opts.QueryTimeout),
		invalidator: invalidatorOrNoop(invalidator),
		logger:      logger.Named("QuizService"),
	}
}

func validateCreateQuiz(in *CreateQuizInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.CreatorID = strings.TrimSpace(in.CreatorID)

	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.CreatorID == "" {
		missing = append(missing, "creator_id")
	}
	if len(in.Questions) == 0 {
		missing = append(missing, "questions")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}

	if len([]rune(in.Title)) > MaxQuizTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", apperrors.ErrValidation, MaxQuizTitleLength)
	}
	if len([]rune(in.Category)) > MaxQuizCategoryLength {
		return fmt.Errorf("%w: category is longer than %d characters", apperrors.ErrValidation, MaxQuizCategoryLength)
	}
	if len(in.Questions) > MaxQuestionsPerQuiz {
		return fmt.Errorf("%w: quiz can not have more than %d questions", apperrors.ErrValidation, MaxQuestionsPerQuiz)
	}

	for i := range in.Questions {
		q := &in.Questions[i]
		q.Type = strings.ToLower(strings.TrimSpace(q.Type))
		q.Text = strings.TrimSpace(q.Text)
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)

		if !entity.IsValidQuestionType(q.Type) {
			return fmt.Errorf("%w: question %d: unknown type %q", apperrors.ErrValidation, i+1, q.Type)
		}
		if q.Text == "" || q.CorrectAnswer == "" {
			return fmt.Errorf("%w: question %d: text and correct_answer are required", apperrors.ErrValidation, i+1)
		}
		if q.Type == entity.QuestionTypeMultiple && len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d: multiple choice needs at least 2 options", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

func toQuestionEntities(inputs []QuestionInput) []entity.Question {
	questions := make([]entity.Question, 0, len(inputs))
	for _, in := range inputs {
		var options entity.StringArray
		if len(in.Options) > 0 {
			options = entity.StringArray(in.Options)
		}
		questions = append(questions, entity.Question{
			Type:          in.Type,
			Text:          in.Text,
			Options:       options,
			CorrectAnswer: in.CorrectAnswer,
			Explanation:   in.Explanation,
		})
	}
	return questions
}

// CreateQuiz создает викторину со всеми вопросами атомарно
func (s *QuizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*entity.Quiz, error) {
	if err := validateCreateQuiz(&in); err != nil {
		return nil, err
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, in.CreatorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: creator %q does not exist", apperrors.ErrConflict, in.CreatorID)
		}
		return nil, err
	}

	quiz := &entity.Quiz{
		Title:     in.Title,
		Category:  in.Category,
		CreatorID: in.CreatorID,
		Questions: toQuestionEntities(in.Questions),
	}
	if err := s.quizRepo.CreateWithQuestions(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info("Викторина создана",
		zap.Uint("quiz_id", quiz.ID),
		zap.String("creator_id", quiz.CreatorID),
		zap.Int("questions", quiz.QuestionsCount))
	return quiz, nil
}

// ListQuizzes возвращает все викторины с живыми агрегатами
func (s *QuizService) ListQuizzes(ctx context.Context) ([]entity.QuizSummary, error) {
	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	summaries, err := s.quizRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if summaries == nil {
		summaries = []entity.QuizSummary{}
	}
	return summaries, nil
}

// ListQuizzesByCreator возвращает викторины, созданные пользователем
func (s *QuizService) ListQuizzesByCreator(ctx context.Context, userID string) ([]entity.QuizSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	summaries, err := s.quizRepo.ListSummariesByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes by creator: %w", err)
	}
	if summaries == nil {
		summaries = []entity.QuizSummary{}
	}
	return summaries, nil
}

// GetQuizWithQuestions возвращает викторину, её агрегаты и вопросы
func (s *QuizService) GetQuizWithQuestions(ctx context.Context, quizID uint) (*QuizDetails, error) {
	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get quiz #%d: %w", quizID, err)
	}

	votes := make([]ranking.QuestionVotes, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		votes = append(votes, ranking.QuestionVotes{Avg: q.VotesAvg, Count: q.VotesCount})
	}
	rollup := ranking.QuizRollup(votes)

	questions := quiz.Questions
	if questions == nil {
		questions = []entity.Question{}
	}
	return &QuizDetails{
		Summary: entity.QuizSummary{
			ID:             quiz.ID,
			Title:          quiz.Title,
			Category:       quiz.Category,
			CreatorID:      quiz.CreatorID,
			QuestionsCount: rollup.QuestionsCount,
			VotesCount:     rollup.VotesCount,
			VotesAvg:       rollup.VotesAvg,
			CreatedAt:      quiz.CreatedAt,
		},
		Questions: questions,
	}, nil
}

// DeleteQuiz удаляет викторину вместе с вопросами, попытками и голосами.
// Если requesterID задан, удалить может только автор.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID uint, requesterID string) error {
	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return err
	}

	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("delete quiz #%d: %w", quizID, err)
	}
	if requesterID != "" && !quiz.IsOwnedBy(requesterID) {
		return fmt.Errorf("%w: only the creator can delete quiz #%d", apperrors.ErrForbidden, quizID)
	}

	if err := s.quizRepo.Delete(ctx, quizID); err != nil {
		return fmt.Errorf("delete quiz #%d: %w", quizID, err)
	}

	s.invalidator.Invalidate(ctx)
	s.logger.Info("Викторина удалена", zap.Uint("quiz_id", quizID), zap.String("requester_id", requesterID))
	return nil
}
