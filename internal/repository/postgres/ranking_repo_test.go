package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

func TestRankingRepo_AuthorStats_LeftJoin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	rows := sqlmock.NewRows([]string{"user_id", "username", "quiz_count", "question_votes", "rating_sum"}).
		AddRow("u1", "alice", 2, 5, 23.0).
		AddRow("u2", "idle", 0, 0, 0.0)
	mock.ExpectQuery(`(?s)FROM users AS u\s+LEFT JOIN`).WillReturnRows(rows)

	stats, err := repo.AuthorStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 2, "Пользователь без викторин тоже присутствует")
	assert.Equal(t, entity.AuthorStats{UserID: "u1", Username: "alice", QuizCount: 2, QuestionVotes: 5, RatingSum: 23}, stats[0])
	assert.Equal(t, int64(0), stats[1].QuizCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRankingRepo_SolverStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	rows := sqlmock.NewRows([]string{"user_id", "username", "attempts", "total_correct", "total_questions"}).
		AddRow("u1", "alice", 3, 17, 20)
	mock.ExpectQuery(`(?s)LEFT JOIN quiz_attempts AS a ON a\.user_id = u\.id\s+GROUP BY u\.id, u\.username`).
		WillReturnRows(rows)

	stats, err := repo.SolverStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(17), stats[0].TotalCorrect)
	assert.Equal(t, int64(20), stats[0].TotalQuestions)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil, "op"))

	err := translateError(&pgconn.PgError{Code: "23505"}, "op")
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "pgx unique violation")

	err = translateError(&pq.Error{Code: "23503"}, "op")
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "lib/pq foreign key violation")

	err = translateError(&pgconn.PgError{Code: "08006"}, "op")
	assert.True(t, errors.Is(err, apperrors.ErrStorageUnavailable), "Класс 08 — ошибка соединения")

	err = translateError(&pgconn.PgError{Code: "42601"}, "op")
	assert.False(t, errors.Is(err, apperrors.ErrConflict))
	assert.False(t, errors.Is(err, apperrors.ErrStorageUnavailable))
}
