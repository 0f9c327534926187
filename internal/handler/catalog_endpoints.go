package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quest-server/internal/models"
)

// @Summary Поиск квестов
// @Description Пустой запрос отдаёт начало каталога по алфавиту
// @Tags catalog
// @Produce json
// @Param q query string false "Подстрока названия"
// @Success 200 {array} models.Quest
// @Router /api/quests/search [get]
func (h *QuestHandler) searchQuests(c *gin.Context) {
	quests, err := h.catalogService.SearchQuests(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quests)
}

// @Summary Список игровых серверов
// @Tags catalog
// @Produce json
// @Success 200 {array} models.GameServer
// @Router /api/servers [get]
func (h *QuestHandler) listServers(c *gin.Context) {
	servers, err := h.catalogService.ListServers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, servers)
}

// @Summary Проверка подключения к БД
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 503 {object} models.ErrorResponse "База недоступна"
// @Router /api/db-health [get]
func (h *QuestHandler) dbHealth(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		zap.L().Error("Database ping failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Code:    models.ErrCodeInternal,
			Message: "Database unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
