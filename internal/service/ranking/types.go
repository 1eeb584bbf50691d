package ranking

import (
	"fmt"
	"strings"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

// Kind выбирает конвейер ранжирования
type Kind int

const (
	KindAuthor Kind = iota
	KindSolver
)

// ParseKind разбирает параметр type. Пустая строка означает рейтинг авторов.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "author":
		return KindAuthor, nil
	case "solver":
		return KindSolver, nil
	}
	return 0, fmt.Errorf("%w: unknown ranking type %q", apperrors.ErrValidation, s)
}

func (k Kind) String() string {
	switch k {
	case KindAuthor:
		return "author"
	case KindSolver:
		return "solver"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// AuthorRow — строка рейтинга авторов
type AuthorRow struct {
	Rank              int     `json:"rank"`
	UserID            string  `json:"userId"`
	Username          string  `json:"username"`
	QuizCount         int64   `json:"quizCount"`
	QuestionVotes     int64   `json:"questionVotes"`
	AvgQuestionRating float64 `json:"avgQuestionRating"`
	AuthorPoints      float64 `json:"authorPoints"`
}

// SolverRow — строка рейтинга решателей
type SolverRow struct {
	Rank           int     `json:"rank"`
	UserID         string  `json:"userId"`
	Username       string  `json:"username"`
	Attempts       int64   `json:"attempts"`
	SolverPoints   int64   `json:"solverPoints"`
	TotalQuestions int64   `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
}

// Result — рейтинг одного из двух видов. Заполнено ровно одно из полей.
type Result struct {
	Kind    Kind        `json:"-"`
	Authors []AuthorRow `json:"authors,omitempty"`
	Solvers []SolverRow `json:"solvers,omitempty"`
}

// Len возвращает количество строк рейтинга
func (r *Result) Len() int {
	switch r.Kind {
	case KindAuthor:
		return len(r.Authors)
	case KindSolver:
		return len(r.Solvers)
	}
	return 0
}
