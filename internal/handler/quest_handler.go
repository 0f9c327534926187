package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"quest-server/internal/config"
	"quest-server/internal/service"
)

// Pinger is the slice of the database the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QuestHandler exposes the HTTP API: character registry, selection ledger,
// match listing and the public catalogs.
type QuestHandler struct {
	characterService service.CharacterService
	selectionService service.SelectionService
	catalogService   service.CatalogService
	db               Pinger
	cfg              *config.Config
}

func NewQuestHandler(
	characterService service.CharacterService,
	selectionService service.SelectionService,
	catalogService service.CatalogService,
	db Pinger,
	cfg *config.Config,
) *QuestHandler {
	return &QuestHandler{
		characterService: characterService,
		selectionService: selectionService,
		catalogService:   catalogService,
		db:               db,
		cfg:              cfg,
	}
}

// RegisterRoutes mounts the API. rateLimiter guards the anonymous search and
// match endpoints; pass nil to mount without limiting (tests).
func (h *QuestHandler) RegisterRoutes(router *gin.Engine, rateLimiter gin.HandlerFunc) {
	public := router.Group("/api")
	{
		public.GET("/servers", h.listServers)
		public.GET("/db-health", h.dbHealth)

		limited := public.Group("")
		if rateLimiter != nil {
			limited.Use(rateLimiter)
		}
		limited.GET("/quests/search", h.searchQuests)
		limited.GET("/matches", h.OptionalAuthMiddleware(), h.listMatches)
	}

	protected := router.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/characters", h.listCharacters)
		protected.POST("/characters", h.createCharacter)
		protected.PATCH("/characters/active", h.setActiveCharacter)
		protected.PATCH("/characters/:id", h.updateCharacter)
		protected.DELETE("/characters/:id", h.deleteCharacter)

		protected.POST("/selection", h.trackQuest)
		protected.DELETE("/selection/:id", h.removeSelection)
		protected.GET("/my-selections", h.listMySelections)
	}
}
