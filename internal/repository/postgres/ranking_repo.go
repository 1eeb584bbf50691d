package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// authorStatsSQL агрегирует викторины и оценки вопросов по авторам.
// Подзапросы не дают JOIN'у размножить строки.
const authorStatsSQL = `SELECT u.id AS user_id, u.username,
       COALESCE(qc.quiz_count, 0) AS quiz_count,
       COALESCE(qv.question_votes, 0) AS question_votes,
       COALESCE(qv.rating_sum, 0) AS rating_sum
FROM users AS u
LEFT JOIN (
    SELECT creator_id, COUNT(*) AS quiz_count
    FROM quizzes GROUP BY creator_id
) AS qc ON qc.creator_id = u.id
LEFT JOIN (
    SELECT z.creator_id,
           SUM(q.votes_count) AS question_votes,
           SUM(q.votes_avg * q.votes_count) AS rating_sum
    FROM questions AS q
    JOIN quizzes AS z ON z.id = q.quiz_id
    GROUP BY z.creator_id
) AS qv ON qv.creator_id = u.id`

const solverStatsSQL = `SELECT u.id AS user_id, u.username,
       COUNT(a.id) AS attempts,
       COALESCE(SUM(a.score), 0) AS total_correct,
       COALESCE(SUM(a.total_questions), 0) AS total_questions
FROM users AS u
LEFT JOIN quiz_attempts AS a ON a.user_id = u.id
GROUP BY u.id, u.username`

// RankingRepo реализует repository.RankingRepository.
// Сортировку и обрезку до top-N выполняет пакет ranking.
type RankingRepo struct {
	db *gorm.DB
}

// NewRankingRepo создает новый репозиторий рейтингов
func NewRankingRepo(db *gorm.DB) *RankingRepo {
	return &RankingRepo{db: db}
}

// AuthorStats возвращает агрегаты по всем пользователям
func (r *RankingRepo) AuthorStats(ctx context.Context) ([]entity.AuthorStats, error) {
	var stats []entity.AuthorStats
	if err := r.db.WithContext(ctx).Raw(authorStatsSQL).Scan(&stats).Error; err != nil {
		return nil, translateError(err, "author stats")
	}
	return stats, nil
}

// SolverStats возвращает агрегаты попыток по всем пользователям
func (r *RankingRepo) SolverStats(ctx context.Context) ([]entity.SolverStats, error) {
	var stats []entity.SolverStats
	if err := r.db.WithContext(ctx).Raw(solverStatsSQL).Scan(&stats).Error; err != nil {
		return nil, translateError(err, "solver stats")
	}
	return stats, nil
}
