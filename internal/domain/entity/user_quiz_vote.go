package entity

import "time"

// UserQuizVote фиксирует, что пользователь оценил викторину.
// Одна запись на пару (пользователь, викторина).
type UserQuizVote struct {
	UserID    string    `gorm:"primaryKey;size:80" json:"user_id"`
	QuizID    uint      `gorm:"primaryKey" json:"quiz_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserQuizVote) TableName() string {
	return "user_quiz_votes"
}
