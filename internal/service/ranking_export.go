package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

// Форматы выгрузки рейтинга
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// Export — готовый файл выгрузки
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParseExportFormat проверяет формат; пустая строка означает xlsx
func ParseExportFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ExportFormatXLSX:
		return ExportFormatXLSX, nil
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", apperrors.ErrValidation, s)
}

func exportTable(result *ranking.Result) ([]string, [][]interface{}) {
	switch result.Kind {
	case ranking.KindSolver:
		header := []string{"Rank", "User ID", "Username", "Attempts", "Solver points", "Total questions", "Accuracy"}
		rows := make([][]interface{}, 0, len(result.Solvers))
		for _, r := range result.Solvers {
			rows = append(rows, []interface{}{r.Rank, r.UserID, sanitizeForExcel(r.Username), r.Attempts, r.SolverPoints, r.TotalQuestions, r.Accuracy})
		}
		return header, rows
	default:
		header := []string{"Rank", "User ID", "Username", "Quizzes", "Question votes", "Avg question rating", "Author points"}
		rows := make([][]interface{}, 0, len(result.Authors))
		for _, r := range result.Authors {
			rows = append(rows, []interface{}{r.Rank, r.UserID, sanitizeForExcel(r.Username), r.QuizCount, r.QuestionVotes, r.AvgQuestionRating, r.AuthorPoints})
		}
		return header, rows
	}
}

// ExportRanking сериализует рейтинг в xlsx или csv
func ExportRanking(result *ranking.Result, format string) (*Export, error) {
	format, err := ParseExportFormat(format)
	if err != nil {
		return nil, err
	}

	header, rows := exportTable(result)
	base := "ranking-" + result.Kind.String()

	if format == ExportFormatCSV {
		data, err := writeCSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &Export{Filename: base + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	}

	data, err := writeXLSX(result.Kind.String(), header, rows)
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename:    base + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func writeXLSX(sheetName string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create stream writer: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(header []string, rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 4, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
