package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

func sampleAuthorRanking() *ranking.Result {
	return &ranking.Result{
		Kind: ranking.KindAuthor,
		Authors: []ranking.AuthorRow{
			{Rank: 1, UserID: "a", Username: "alice", QuizCount: 2, QuestionVotes: 3, AvgQuestionRating: 4.5, AuthorPoints: 23.5},
			{Rank: 2, UserID: "m", Username: "=HYPERLINK(\"x\")", QuizCount: 1},
		},
	}
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatXLSX, f)

	f, err = ParseExportFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, f)

	_, err = ParseExportFormat("pdf")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExportRanking_CSV(t *testing.T) {
	export, err := ExportRanking(sampleAuthorRanking(), "csv")
	require.NoError(t, err)

	assert.Equal(t, "ranking-author.csv", export.Filename)
	records, err := csv.NewReader(bytes.NewReader(export.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Rank", records[0][0])
	assert.Equal(t, []string{"1", "a", "alice", "2", "3", "4.5000", "23.5000"}, records[1])
	assert.Equal(t, "'=HYPERLINK(\"x\")", records[2][2], "Формулы в именах экранируются")
}

func TestExportRanking_XLSX(t *testing.T) {
	export, err := ExportRanking(sampleAuthorRanking(), "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "ranking-author.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("author")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Username", rows[0][2])
	assert.Equal(t, "alice", rows[1][2])
}
