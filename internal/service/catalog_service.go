package service

import (
	"context"

	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository"
)

const (
	questBrowseLimit = 100
	questSearchLimit = 50
)

// CatalogService serves the read-only quest and game server catalogs.
type CatalogService interface {
	// SearchQuests returns the alphabetical head of the catalog for an empty
	// query, or a case-insensitive substring match otherwise.
	SearchQuests(ctx context.Context, query string) ([]models.Quest, error)
	ListServers(ctx context.Context) ([]models.GameServer, error)
}

type catalogService struct {
	quests  repository.QuestRepository
	servers repository.ServerRepository
	logger  *zap.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(quests repository.QuestRepository, servers repository.ServerRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		quests:  quests,
		servers: servers,
		logger:  logger.Named("CatalogService"),
	}
}

func (s *catalogService) SearchQuests(ctx context.Context, query string) ([]models.Quest, error) {
	q := SanitizeQuery(query)
	if q == "" {
		return s.quests.ListAlphabetical(ctx, questBrowseLimit)
	}
	return s.quests.SearchByName(ctx, q, questSearchLimit)
}

func (s *catalogService) ListServers(ctx context.Context) ([]models.GameServer, error) {
	return s.servers.List(ctx)
}
