package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/service"
	"github.com/yourusername/quizpang-api/internal/service/ranking"
)

// RankingHandler отдаёт рейтинги авторов и решателей
type RankingHandler struct {
	rankingService *service.RankingService
	logger         *zap.Logger
}

// NewRankingHandler создает новый обработчик рейтингов
func NewRankingHandler(rankingService *service.RankingService, logger *zap.Logger) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, logger: logger.Named("RankingHandler")}
}

func (h *RankingHandler) load(c *gin.Context) (*ranking.Result, bool) {
	kind, err := ranking.ParseKind(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_param"})
		return nil, false
	}

	result, err := h.rankingService.GetRanking(c.Request.Context(), kind)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return result, true
}

// GetRanking возвращает до 100 строк рейтинга массивом
// GET /api/ranking?type=author|solver
func (h *RankingHandler) GetRanking(c *gin.Context) {
	result, ok := h.load(c)
	if !ok {
		return
	}

	if result.Kind == ranking.KindSolver {
		rows := result.Solvers
		if rows == nil {
			rows = []ranking.SolverRow{}
		}
		c.JSON(http.StatusOK, rows)
		return
	}
	rows := result.Authors
	if rows == nil {
		rows = []ranking.AuthorRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// ExportRanking выгружает рейтинг в xlsx или csv
// GET /api/ranking/export?type=author|solver&format=xlsx|csv
func (h *RankingHandler) ExportRanking(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "invalid_param"})
		return
	}

	result, ok := h.load(c)
	if !ok {
		return
	}

	export, err := service.ExportRanking(result, format)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
