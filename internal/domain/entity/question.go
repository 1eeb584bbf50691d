package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Типы вопросов
const (
	QuestionTypeMultiple   = "multiple"   // выбор из вариантов
	QuestionTypeOX         = "ox"         // верно / неверно
	QuestionTypeSubjective = "subjective" // свободный ответ
)

// Допустимые значения рейтинга вопроса
const (
	MinRating = 1
	MaxRating = 5
)

// StringArray - пользовательский тип для работы с JSONB.
// nil-слайс хранится как NULL (у вопросов со свободным ответом нет вариантов).
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*o = nil
		return nil
	}

	return json.Unmarshal(bytes, (*[]string)(o))
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal([]string(o))
}

// Question представляет вопрос викторины вместе с агрегатом оценок.
// Инвариант: VotesAvg * VotesCount равно сумме всех учтённых оценок.
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	QuizID        uint        `gorm:"not null;index" json:"quiz_id"`
	Type          string      `gorm:"size:20;not null" json:"type"`
	Text          string      `gorm:"type:text;not null" json:"text"`
	Options       StringArray `gorm:"type:jsonb" json:"options"`
	CorrectAnswer string      `gorm:"size:500;not null" json:"correct_answer"`
	Explanation   string      `gorm:"type:text;not null;default:''" json:"explanation"`
	VotesAvg      float64     `gorm:"not null;default:0" json:"votes_avg"`
	VotesCount    int         `gorm:"not null;default:0" json:"votes_count"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidQuestionType проверяет тег типа вопроса
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMultiple, QuestionTypeOX, QuestionTypeSubjective:
		return true
	}
	return false
}

// IsValidRating проверяет, что оценка лежит в диапазоне 1..5
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// RatingSum восстанавливает сумму всех оценок из среднего и количества
func (q *Question) RatingSum() float64 {
	return q.VotesAvg * float64(q.VotesCount)
}
