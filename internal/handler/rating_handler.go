package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/handler/dto"
	"github.com/yourusername/quizpang-api/internal/service"
)

// RatingHandler принимает оценки вопросов
type RatingHandler struct {
	ratingService *service.RatingService
	logger        *zap.Logger
}

// NewRatingHandler создает новый обработчик оценок
func NewRatingHandler(ratingService *service.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, logger: logger.Named("RatingHandler")}
}

// RateQuestion добавляет оценку 1..5 к вопросу
// POST /api/question/rate
func (h *RatingHandler) RateQuestion(c *gin.Context) {
	var req dto.RateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.ratingService.RateQuestion(c.Request.Context(), req.QuestionID, req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.RateQuestionResponse{
		Message:    "Rating saved",
		NewAverage: res.NewAverage,
		VotesCount: res.VotesCount,
	})
}
