package dto

import (
	"github.com/yourusername/quizpang-api/internal/domain/entity"
	"github.com/yourusername/quizpang-api/internal/handler/helper"
	"github.com/yourusername/quizpang-api/internal/service"
)

// QuestionRequest — вопрос в запросе на создание викторины
type QuestionRequest struct {
	Type          string   `json:"type" binding:"required"`
	Text          string   `json:"text" binding:"required,max=2000"`
	Options       []string `json:"options" binding:"omitempty,max=10,dive,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
	Explanation   string   `json:"explanation" binding:"omitempty,max=2000"`
}

// CreateQuizRequest — запрос на создание викторины.
// CreatorID используется, только если автор не определён по токену или X-User-Id.
type CreateQuizRequest struct {
	Title     string            `json:"title" binding:"required,max=100"`
	Category  string            `json:"category" binding:"required,max=50"`
	CreatorID string            `json:"creator_id" binding:"omitempty,max=80"`
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,max=100,dive"`
}

// ToInput переводит запрос во входные данные сервиса
func (r *CreateQuizRequest) ToInput(creatorID string) service.CreateQuizInput {
	questions := make([]service.QuestionInput, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, service.QuestionInput{
			Type:          q.Type,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return service.CreateQuizInput{
		Title:     r.Title,
		Category:  r.Category,
		CreatorID: creatorID,
		Questions: questions,
	}
}

// CreateQuizResponse — ответ на создание викторины
type CreateQuizResponse struct {
	Message string `json:"message"`
	QuizID  uint   `json:"quiz_id"`
}

// QuizInfo — шапка викторины в ответе со списком вопросов
type QuizInfo struct {
	ID             uint    `json:"quiz_id"`
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	CreatorID      string  `json:"creator_id"`
	QuestionsCount int     `json:"questions_count"`
	VotesCount     int64   `json:"votes_count"`
	VotesAvg       float64 `json:"votes_avg"`
}

// QuestionResponse — вопрос вместе с агрегатом оценок
type QuestionResponse struct {
	ID            uint     `json:"id"`
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	VotesAvg      float64  `json:"votes_avg"`
	VotesCount    int      `json:"votes_count"`
}

// QuizWithQuestionsResponse — ответ GET /api/quiz/:id/questions
type QuizWithQuestionsResponse struct {
	Quiz      QuizInfo           `json:"quiz"`
	Questions []QuestionResponse `json:"questions"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:            q.ID,
		Type:          q.Type,
		Text:          q.Text,
		Options:       helper.OptionsOrEmpty(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		VotesAvg:      q.VotesAvg,
		VotesCount:    q.VotesCount,
	}
}

// NewQuizWithQuestionsResponse собирает ответ из деталей викторины
func NewQuizWithQuestionsResponse(d *service.QuizDetails) QuizWithQuestionsResponse {
	questions := make([]QuestionResponse, 0, len(d.Questions))
	for i := range d.Questions {
		questions = append(questions, NewQuestionResponse(&d.Questions[i]))
	}
	return QuizWithQuestionsResponse{
		Quiz: QuizInfo{
			ID:             d.Summary.ID,
			Title:          d.Summary.Title,
			Category:       d.Summary.Category,
			CreatorID:      d.Summary.CreatorID,
			QuestionsCount: d.Summary.QuestionsCount,
			VotesCount:     d.Summary.VotesCount,
			VotesAvg:       d.Summary.VotesAvg,
		},
		Questions: questions,
	}
}

// RateQuestionRequest — оценка вопроса от 1 до 5
type RateQuestionRequest struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Rating     int  `json:"rating" binding:"required"`
}

// RateQuestionResponse — новое среднее вопроса
type RateQuestionResponse struct {
	Message    string  `json:"message"`
	NewAverage float64 `json:"new_avg"`
	VotesCount int     `json:"votes_count"`
}

// VoteQuizRequest — голос за викторину
type VoteQuizRequest struct {
	UserID string `json:"user_id" binding:"omitempty,max=80"`
	Rating int    `json:"rating" binding:"required"`
}

// VoteStatusResponse — голосовал ли пользователь
type VoteStatusResponse struct {
	QuizID   uint   `json:"quiz_id"`
	UserID   string `json:"user_id"`
	HasVoted bool   `json:"has_voted"`
}
