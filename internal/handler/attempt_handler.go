package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/handler/dto"
	"github.com/yourusername/quizpang-api/internal/service"
)

// AttemptHandler записывает попытки и отдаёт историю
type AttemptHandler struct {
	attemptService *service.AttemptService
	logger         *zap.Logger
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService, logger *zap.Logger) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService, logger: logger.Named("AttemptHandler")}
}

// SaveAttempt сохраняет результат прохождения викторины
// POST /api/attempt/save
func (h *AttemptHandler) SaveAttempt(c *gin.Context) {
	var req dto.SaveAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	attempt, err := h.attemptService.RecordAttempt(c.Request.Context(), service.RecordAttemptInput{
		UserID:         req.UserID,
		QuizID:         req.QuizID,
		Score:          *req.Score,
		TotalQuestions: *req.TotalQuestions,
		Mode:           req.Mode,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SaveAttemptResponse{
		Message:   "Attempt saved",
		AttemptID: attempt.ID,
		Date:      attempt.Date,
	})
}

// GetHistory возвращает попытки пользователя, последние первыми
// GET /api/history/:userId
func (h *AttemptHandler) GetHistory(c *gin.Context) {
	attempts, err := h.attemptService.GetUserHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHistoryResponse(attempts))
}
