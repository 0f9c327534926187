package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/service"
)

// @Summary Список персонажей аккаунта
// @Description Возвращает персонажей сессии и id активного персонажа
// @Tags characters
// @Produce json
// @Success 200 {object} service.CharacterList
// @Failure 401 {object} models.ErrorResponse "Неавторизован"
// @Security BearerAuth
// @Router /api/characters [get]
func (h *QuestHandler) listCharacters(c *gin.Context) {
	list, err := h.characterService.List(c.Request.Context(), emailFromContext(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Создание персонажа
// @Description Регистрирует персонажа; первый персонаж аккаунта становится активным
// @Tags characters
// @Accept json
// @Produce json
// @Param request body createCharacterRequest true "Данные персонажа"
// @Success 201 {object} models.CharacterWithServer
// @Failure 400 {object} models.ErrorResponse "Неверные данные"
// @Failure 409 {object} models.ErrorResponse "Имя занято на этом сервере"
// @Security BearerAuth
// @Router /api/characters [post]
func (h *QuestHandler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	character, err := h.characterService.Create(c.Request.Context(), emailFromContext(c), service.CreateCharacterInput{
		ServerID: req.ServerID,
		Name:     req.Name,
		Level:    req.Level,
		Class:    req.Class,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	charactersCreatedTotal.Inc()
	c.JSON(http.StatusCreated, character)
}

// @Summary Частичное изменение персонажа
// @Tags characters
// @Accept json
// @Produce json
// @Param id path string true "ID персонажа"
// @Param request body updateCharacterRequest true "Изменяемые поля"
// @Success 200 {object} models.CharacterWithServer
// @Failure 404 {object} models.ErrorResponse "Не найден или чужой"
// @Failure 409 {object} models.ErrorResponse "Имя занято на этом сервере"
// @Security BearerAuth
// @Router /api/characters/{id} [patch]
func (h *QuestHandler) updateCharacter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid character id"}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	var req updateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	character, err := h.characterService.Update(c.Request.Context(), emailFromContext(c), id, service.UpdateCharacterInput{
		ServerID: req.ServerID,
		Name:     req.Name,
		Level:    req.Level,
		Class:    req.Class,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// @Summary Удаление персонажа
// @Description Удаляет персонажа вместе с его выборами квестов
// @Tags characters
// @Produce json
// @Param id path string true "ID персонажа"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 404 {object} models.ErrorResponse "Не найден или чужой"
// @Security BearerAuth
// @Router /api/characters/{id} [delete]
func (h *QuestHandler) deleteCharacter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid character id"}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	if err := h.characterService.Delete(c.Request.Context(), emailFromContext(c), id); err != nil {
		handleServiceError(c, err)
		return
	}

	zap.L().Info("Character deleted", zap.String("characterID", id.String()))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Выбор активного персонажа
// @Description Устанавливает (или сбрасывает при null) активного персонажа
// @Tags characters
// @Accept json
// @Produce json
// @Param request body setActiveCharacterRequest true "ID персонажа или null"
// @Success 200 {object} map[string]interface{} "ok"
// @Failure 403 {object} models.ErrorResponse "Чужой персонаж"
// @Security BearerAuth
// @Router /api/characters/active [patch]
func (h *QuestHandler) setActiveCharacter(c *gin.Context) {
	var req setActiveCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp := models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request data: " + err.Error()}
		c.AbortWithStatusJSON(http.StatusBadRequest, errResp)
		return
	}

	if err := h.characterService.SetActive(c.Request.Context(), emailFromContext(c), req.CharacterID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
