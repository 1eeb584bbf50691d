package entity

import "time"

// Режимы прохождения викторины
const (
	AttemptModeExam  = "exam"
	AttemptModeStudy = "study"
)

// QuizAttempt — неизменяемый факт прохождения викторины.
// Date — время записи в миллисекундах Unix, проставляется сервером.
type QuizAttempt struct {
	ID             uint   `gorm:"primaryKey" json:"attempt_id"`
	UserID         string `gorm:"size:80;not null;index" json:"user_id"`
	QuizID         uint   `gorm:"not null;index" json:"quiz_id"`
	Score          int    `gorm:"not null" json:"score"`
	TotalQuestions int    `gorm:"not null" json:"total_questions"`
	Mode           string `gorm:"size:20;not null" json:"mode"`
	Date           int64  `gorm:"not null;index" json:"date"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// IsValidAttemptMode проверяет тег режима
func IsValidAttemptMode(mode string) bool {
	return mode == AttemptModeExam || mode == AttemptModeStudy
}

// EpochMillis переводит время в миллисекунды Unix
func EpochMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
