package dto

import (
	"time"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
)

// SignupRequest — запрос на регистрацию
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest — запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse — ответ на регистрацию и вход
type AuthResponse struct {
	Message     string     `json:"message"`
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	AccessToken string     `json:"access_token,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// SaveAttemptRequest — запись о прохождении викторины.
// Score и TotalQuestions указатели: 0 отличается от отсутствующего поля.
type SaveAttemptRequest struct {
	UserID         string `json:"userId" binding:"required,max=80"`
	QuizID         uint   `json:"quizId" binding:"required"`
	Score          *int   `json:"score" binding:"required"`
	TotalQuestions *int   `json:"totalQuestions" binding:"required"`
	Mode           string `json:"mode" binding:"required"`
}

// AttemptResponse — попытка в истории пользователя
type AttemptResponse struct {
	AttemptID      uint   `json:"attemptId"`
	UserID         string `json:"userId"`
	QuizID         uint   `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Mode           string `json:"mode"`
	Date           int64  `json:"date"`
}

// NewAttemptResponse создает DTO для попытки
func NewAttemptResponse(a *entity.QuizAttempt) AttemptResponse {
	return AttemptResponse{
		AttemptID:      a.ID,
		UserID:         a.UserID,
		QuizID:         a.QuizID,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Mode:           a.Mode,
		Date:           a.Date,
	}
}

// NewHistoryResponse создает список попыток; пустая история дает пустой массив
func NewHistoryResponse(attempts []entity.QuizAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for i := range attempts {
		out = append(out, NewAttemptResponse(&attempts[i]))
	}
	return out
}

// SaveAttemptResponse — ответ на запись попытки
type SaveAttemptResponse struct {
	Message   string `json:"message"`
	AttemptID uint   `json:"attemptId"`
	Date      int64  `json:"date"`
}
