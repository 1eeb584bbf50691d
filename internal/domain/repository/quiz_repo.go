package repository

import (
	"context"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// CreateWithQuestions создает викторину и все её вопросы в одной транзакции
	CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error
	GetByID(ctx context.Context, id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину с вопросами, упорядоченными по id
	GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error)
	// ListSummaries возвращает все викторины с живыми агрегатами, новые первыми
	ListSummaries(ctx context.Context) ([]entity.QuizSummary, error)
	// ListSummariesByCreator — то же, но только викторины одного автора
	ListSummariesByCreator(ctx context.Context, creatorID string) ([]entity.QuizSummary, error)
	// Delete удаляет викторину; вопросы, попытки и голоса удаляются каскадом
	Delete(ctx context.Context, id uint) error
}
