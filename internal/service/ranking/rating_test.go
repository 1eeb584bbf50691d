package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
)

func TestFoldRating_FirstVote(t *testing.T) {
	avg, count := FoldRating(0, 0, 4)

	assert.Equal(t, 4.0, avg, "Первая оценка становится средним")
	assert.Equal(t, 1, count)
}

func TestFoldRating_EqualsArithmeticMean(t *testing.T) {
	sequences := [][]int{
		{5},
		{1, 2, 3, 4, 5},
		{5, 5, 5, 1},
		{3, 3, 3, 3, 3, 3, 3},
		{1, 5, 1, 5, 1, 5, 2, 4, 3, 3, 2},
	}

	for _, ratings := range sequences {
		var avg float64
		var count int
		sum := 0
		for _, r := range ratings {
			avg, count = FoldRating(avg, count, r)
			sum += r
		}

		want := float64(sum) / float64(len(ratings))
		assert.InDelta(t, want, avg, 1e-9, "Среднее должно совпадать с арифметическим для %v", ratings)
		assert.Equal(t, len(ratings), count)
		assert.InDelta(t, float64(sum), avg*float64(count), 1e-9, "avg*count должен восстанавливать сумму")
	}
}

func TestFoldRating_LongSequenceDriftIsSmall(t *testing.T) {
	var avg float64
	var count int
	sum := 0
	for i := 0; i < 10000; i++ {
		r := i%5 + 1
		avg, count = FoldRating(avg, count, r)
		sum += r
	}

	assert.Equal(t, 10000, count)
	assert.InDelta(t, float64(sum)/10000, avg, 1e-6)
}

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))

	err := ValidateRating(0)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "0 — недопустимая оценка")

	err = ValidateRating(6)
	assert.True(t, errors.Is(err, apperrors.ErrValidation), "6 — недопустимая оценка")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	assert.NoError(t, err)
	assert.Equal(t, KindAuthor, k, "По умолчанию — рейтинг авторов")

	k, err = ParseKind("author")
	assert.NoError(t, err)
	assert.Equal(t, KindAuthor, k)

	k, err = ParseKind("Solver")
	assert.NoError(t, err)
	assert.Equal(t, KindSolver, k)

	_, err = ParseKind("players")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	assert.Equal(t, "author", KindAuthor.String())
	assert.Equal(t, "solver", KindSolver.String())
}
