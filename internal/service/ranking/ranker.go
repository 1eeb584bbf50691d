package ranking

import (
	"sort"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// RankAuthors сортирует авторов по очкам (убывание), затем по имени (возрастание),
// обрезает до TopN и проставляет позиционный ранг.
func RankAuthors(stats []entity.AuthorStats, cfg Config) []AuthorRow {
	cfg = cfg.normalized()

	rows := make([]AuthorRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, AuthorRow{
			UserID:            s.UserID,
			Username:          s.Username,
			QuizCount:         s.QuizCount,
			QuestionVotes:     s.QuestionVotes,
			AvgQuestionRating: WeightedAverage(s.RatingSum, s.QuestionVotes),
			AuthorPoints:      AuthorPoints(s.RatingSum, s.QuizCount, cfg.QuizBonus),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.AuthorPoints != b.AuthorPoints {
			return a.AuthorPoints > b.AuthorPoints
		}
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		return a.UserID < b.UserID
	})

	if len(rows) > cfg.TopN {
		rows = rows[:cfg.TopN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// RankSolvers сортирует решателей по сумме правильных ответов (убывание),
// затем по имени (возрастание), обрезает до TopN и проставляет позиционный ранг.
func RankSolvers(stats []entity.SolverStats, cfg Config) []SolverRow {
	cfg = cfg.normalized()

	rows := make([]SolverRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, SolverRow{
			UserID:         s.UserID,
			Username:       s.Username,
			Attempts:       s.Attempts,
			SolverPoints:   s.TotalCorrect,
			TotalQuestions: s.TotalQuestions,
			Accuracy:       Accuracy(s.TotalCorrect, s.TotalQuestions),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.SolverPoints != b.SolverPoints {
			return a.SolverPoints > b.SolverPoints
		}
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		return a.UserID < b.UserID
	})

	if len(rows) > cfg.TopN {
		rows = rows[:cfg.TopN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
