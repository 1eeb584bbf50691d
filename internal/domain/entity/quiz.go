package entity

import (
	"time"
)

// Quiz представляет викторину, созданную пользователем.
// QuestionsCount кешируется при создании и служит только подсказкой для отображения:
// актуальное количество вопросов считается по таблице questions.
type Quiz struct {
	ID             uint       `gorm:"primaryKey" json:"quiz_id"`
	Title          string     `gorm:"size:100;not null" json:"title"`
	Category       string     `gorm:"size:50;not null;index" json:"category"`
	CreatorID      string     `gorm:"size:80;not null;index" json:"creator_id"`
	QuestionsCount int        `gorm:"not null;default:0" json:"questions_count"`
	Questions      []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsOwnedBy проверяет, является ли пользователь автором викторины
func (q *Quiz) IsOwnedBy(userID string) bool {
	return q.CreatorID == userID
}

// QuizSummary — викторина вместе с живыми агрегатами по её вопросам.
// Заполняется запросом с LEFT JOIN по questions, не хранится.
type QuizSummary struct {
	ID             uint      `json:"quiz_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	CreatorID      string    `json:"creator_id"`
	QuestionsCount int       `json:"questions_count"`
	VotesCount     int64     `json:"votes_count"`
	VotesAvg       float64   `json:"votes_avg"`
	CreatedAt      time.Time `json:"created_at"`
}
