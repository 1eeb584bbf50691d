package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/handler/dto"
	"github.com/yourusername/quizpang-api/internal/handler/helper"
	"github.com/yourusername/quizpang-api/internal/middleware"
	"github.com/yourusername/quizpang-api/internal/service"
)

// ContextQuizID — ключ, под который ExtractUintParam кладёт id викторины
const ContextQuizID = "quizID"

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService *service.QuizService
	voteService *service.VoteService
	logger      *zap.Logger
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, voteService *service.VoteService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		voteService: voteService,
		logger:      logger.Named("QuizHandler"),
	}
}

// CreateQuiz создает викторину вместе с вопросами.
// Автор берётся из токена или X-User-Id, иначе из creator_id тела запроса.
// POST /api/quiz/create
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	creatorID := helper.FirstNonEmpty(middleware.UserID(c), req.CreatorID)
	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), req.ToInput(creatorID))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateQuizResponse{
		Message: "Quiz created successfully",
		QuizID:  quiz.ID,
	})
}

// ListQuizzes возвращает все викторины с агрегатами, новые первыми
// GET /api/quiz/list
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// ListUserQuizzes возвращает викторины, созданные пользователем
// GET /api/users/:userId/quizzes
func (h *QuizHandler) ListUserQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzesByCreator(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuizWithQuestions возвращает викторину и её вопросы
// GET /api/quiz/:id/questions
func (h *QuizHandler) GetQuizWithQuestions(c *gin.Context) {
	quizID := c.MustGet(ContextQuizID).(uint)

	details, err := h.quizService.GetQuizWithQuestions(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizWithQuestionsResponse(details))
}

// DeleteQuiz удаляет викторину; если пользователь известен, только свою
// DELETE /api/quiz/:id
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet(ContextQuizID).(uint)

	if err := h.quizService.DeleteQuiz(c.Request.Context(), quizID, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully", "quiz_id": quizID})
}

// VoteQuiz сохраняет голос пользователя за викторину
// POST /api/quiz/:id/vote
func (h *QuizHandler) VoteQuiz(c *gin.Context) {
	quizID := c.MustGet(ContextQuizID).(uint)

	var req dto.VoteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID := helper.FirstNonEmpty(middleware.UserID(c), req.UserID)
	vote, err := h.voteService.VoteQuiz(c.Request.Context(), userID, quizID, req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded", "quiz_id": vote.QuizID, "rating": vote.Rating})
}

// GetVoteStatus сообщает, голосовал ли пользователь за викторину
// GET /api/quiz/:id/vote/:userId
func (h *QuizHandler) GetVoteStatus(c *gin.Context) {
	quizID := c.MustGet(ContextQuizID).(uint)
	userID := c.Param("userId")

	voted, err := h.voteService.HasVoted(c.Request.Context(), userID, quizID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.VoteStatusResponse{QuizID: quizID, UserID: userID, HasVoted: voted})
}
