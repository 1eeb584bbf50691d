package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// quizSummarySelect считает живые агрегаты викторины по её вопросам.
// Средний рейтинг взвешен по votes_count, без голосов равен 0.
const quizSummarySelect = `z.id, z.title, z.category, z.creator_id, z.created_at,
COUNT(q.id) AS questions_count,
COALESCE(SUM(q.votes_count), 0) AS votes_count,
CASE WHEN COALESCE(SUM(q.votes_count), 0) = 0 THEN 0
     ELSE SUM(q.votes_avg * q.votes_count) / SUM(q.votes_count) END AS votes_avg`

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions создает викторину и её вопросы атомарно.
// Ошибка на любом вопросе откатывает всю транзакцию.
func (r *QuizRepo) CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error {
	quiz.QuestionsCount = len(quiz.Questions)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return err
		}
		if len(quiz.Questions) == 0 {
			return nil
		}
		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
		}
		return tx.Create(&quiz.Questions).Error
	})
	return translateError(err, "create quiz")
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, translateError(err, "get quiz")
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами
func (r *QuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		First(&quiz, id).Error
	if err != nil {
		return nil, translateError(err, "get quiz with questions")
	}
	return &quiz, nil
}

// ListSummaries возвращает все викторины с агрегатами, новые первыми
func (r *QuizRepo) ListSummaries(ctx context.Context) ([]entity.QuizSummary, error) {
	var summaries []entity.QuizSummary
	if err := r.summaryQuery(ctx).Scan(&summaries).Error; err != nil {
		return nil, translateError(err, "list quizzes")
	}
	return summaries, nil
}

// ListSummariesByCreator возвращает викторины одного автора с агрегатами
func (r *QuizRepo) ListSummariesByCreator(ctx context.Context, creatorID string) ([]entity.QuizSummary, error) {
	var summaries []entity.QuizSummary
	err := r.summaryQuery(ctx).
		Where("z.creator_id = ?", creatorID).
		Scan(&summaries).Error
	if err != nil {
		return nil, translateError(err, "list quizzes by creator")
	}
	return summaries, nil
}

// Delete удаляет викторину. Вопросы, попытки и голоса удаляет ON DELETE CASCADE.
func (r *QuizRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		return translateError(result.Error, "delete quiz")
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("quiz #%d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *QuizRepo) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("quizzes AS z").
		Select(quizSummarySelect).
		Joins("LEFT JOIN questions AS q ON q.quiz_id = z.id").
		Group("z.id").
		Order("z.created_at DESC, z.id DESC")
}
