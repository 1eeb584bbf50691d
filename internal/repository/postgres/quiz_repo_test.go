package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

func newQuizWithQuestions() *entity.Quiz {
	return &entity.Quiz{
		Title:     "Столицы",
		Category:  "География",
		CreatorID: "user-1",
		Questions: []entity.Question{
			{Type: entity.QuestionTypeOX, Text: "Сеул — столица?", CorrectAnswer: "O"},
			{Type: entity.QuestionTypeSubjective, Text: "Столица Японии?", CorrectAnswer: "Токио"},
		},
	}
}

func TestQuizRepo_CreateWithQuestions_Atomic(t *testing.T) {
	// Arrange
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)
	quiz := newQuizWithQuestions()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "quizzes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "questions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100).AddRow(101))
	mock.ExpectCommit()

	// Act
	err := repo.CreateWithQuestions(context.Background(), quiz)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), quiz.ID)
	assert.Equal(t, 2, quiz.QuestionsCount, "questions_count кешируется при создании")
	for _, q := range quiz.Questions {
		assert.Equal(t, uint(42), q.QuizID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepo_CreateWithQuestions_RollbackOnQuestionFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "quizzes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "questions"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})
	mock.ExpectRollback()

	err := repo.CreateWithQuestions(context.Background(), newQuizWithQuestions())

	assert.True(t, errors.Is(err, apperrors.ErrConflict), "Ошибка FK должна стать ErrConflict, получено: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet(), "Транзакция должна быть откачена")
}

func TestQuizRepo_CreateWithQuestions_UnknownCreator(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "quizzes"`).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	err := repo.CreateWithQuestions(context.Background(), newQuizWithQuestions())

	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepo_Delete_ReliesOnCascade(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)

	// Одно удаление: вопросы, попытки и голоса удаляет ON DELETE CASCADE
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "quizzes" WHERE "quizzes"."id" = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "quizzes"`).
		WithArgs(77).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 77)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestQuizRepo_ListSummaries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "title", "category", "creator_id", "created_at", "questions_count", "votes_count", "votes_avg"}).
		AddRow(2, "Новая", "Наука", "u2", now, 3, 5, 4.6).
		AddRow(1, "Старая", "История", "u1", now.Add(-time.Hour), 0, 0, 0.0)
	mock.ExpectQuery(`(?s)SELECT z\.id, z\.title.*FROM quizzes AS z LEFT JOIN questions AS q ON q\.quiz_id = z\.id GROUP BY z\.id ORDER BY z\.created_at DESC, z\.id DESC`).
		WillReturnRows(rows)

	summaries, err := repo.ListSummaries(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, uint(2), summaries[0].ID)
	assert.Equal(t, 3, summaries[0].QuestionsCount)
	assert.Equal(t, int64(5), summaries[0].VotesCount)
	assert.InDelta(t, 4.6, summaries[0].VotesAvg, 1e-9)
	assert.Equal(t, 0.0, summaries[1].VotesAvg, "Викторина без голосов имеет рейтинг 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepo_ListSummariesByCreator(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizRepo(db)

	mock.ExpectQuery(`(?s)FROM quizzes AS z .*WHERE z\.creator_id = \$1`).
		WithArgs("u7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "category", "creator_id", "created_at", "questions_count", "votes_count", "votes_avg"}))

	summaries, err := repo.ListSummariesByCreator(context.Background(), "u7")

	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
