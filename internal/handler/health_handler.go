package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizpang-api/internal/service"
)

// HealthHandler отдаёт состояние зависимостей
type HealthHandler struct {
	healthService *service.HealthService
}

// NewHealthHandler создает обработчик проверки состояния
func NewHealthHandler(healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Health — 200, если база доступна, иначе 503
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
