package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quest-server/internal/models"
	"quest-server/internal/service"
)

// @Summary Заявить квест
// @Description Записывает квест за активным персонажем; повтор обновляет заметку
// @Tags selections
// @Accept json
// @Produce json
// @Param request body trackQuestRequest true "Сервер, квест, заметка"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 400 {object} models.ErrorResponse "Нет активного персонажа или не тот сервер"
// @Security BearerAuth
// @Router /api/selection [post]
func (h *QuestHandler) trackQuest(c *gin.Context) {
	var req trackQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	selection, err := h.selectionService.Track(c.Request.Context(), emailFromContext(c), service.TrackQuestInput{
		ServerID: req.ServerID,
		QuestID:  req.QuestID,
		Note:     req.Note,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	questDeclarationsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "selection": selection})
}

// @Summary Кто ещё на этом квесте
// @Description Публичный список заявок по серверу и квесту, новые первыми
// @Tags selections
// @Produce json
// @Param serverId query int true "ID сервера"
// @Param questId query int true "ID квеста"
// @Success 200 {array} models.MatchRow
// @Failure 400 {object} models.ErrorResponse "Неверные параметры"
// @Router /api/matches [get]
func (h *QuestHandler) listMatches(c *gin.Context) {
	serverID, err := strconv.ParseInt(c.Query("serverId"), 10, 32)
	if err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "serverId must be an integer"}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}
	questID, err := strconv.ParseInt(c.Query("questId"), 10, 64)
	if err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "questId must be an integer"}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	rows, err := h.selectionService.ListForMatch(c.Request.Context(), emailFromContext(c), int32(serverID), questID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	matchLookupsTotal.Inc()
	c.JSON(http.StatusOK, rows)
}

// @Summary Мои заявки
// @Description Заявки активного персонажа с именами квестов и серверов
// @Tags selections
// @Produce json
// @Success 200 {array} models.MySelectionRow
// @Security BearerAuth
// @Router /api/my-selections [get]
func (h *QuestHandler) listMySelections(c *gin.Context) {
	rows, err := h.selectionService.ListMine(c.Request.Context(), emailFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary Удаление заявки
// @Tags selections
// @Produce json
// @Param id path string true "ID заявки"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} models.ErrorResponse "Чужая заявка"
// @Failure 404 {object} models.ErrorResponse "Не найдена"
// @Security BearerAuth
// @Router /api/selection/{id} [delete]
func (h *QuestHandler) removeSelection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid selection id"}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	if err := h.selectionService.Remove(c.Request.Context(), emailFromContext(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
