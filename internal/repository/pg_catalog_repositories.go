package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"quest-server/internal/models"
)

const (
	listQuestsAlphabeticalQuery = `
		SELECT id, name, category, level, area
		FROM quests
		ORDER BY name ASC
		LIMIT $1
	`
	searchQuestsByNameQuery = `
		SELECT id, name, category, level, area
		FROM quests
		WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2
	`
	listGameServersQuery = `
		SELECT id, name, region, kind
		FROM game_servers
		ORDER BY id ASC
	`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Compile-time checks
var (
	_ QuestRepository  = (*pgQuestRepository)(nil)
	_ ServerRepository = (*pgServerRepository)(nil)
)

type pgQuestRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgQuestRepository creates a read-only repository over the quest catalog.
func NewPgQuestRepository(db DBTX, logger *zap.Logger) QuestRepository {
	return &pgQuestRepository{
		db:     db,
		logger: logger.Named("PgQuestRepo"),
	}
}

func (r *pgQuestRepository) ListAlphabetical(ctx context.Context, limit int) ([]models.Quest, error) {
	quests := make([]models.Quest, 0)
	err := pgxscan.Select(ctx, r.db, &quests, listQuestsAlphabeticalQuery, limit)
	if err != nil {
		r.logger.Error("Failed to list quests", zap.Error(err))
		return nil, fmt.Errorf("db error listing quests: %w", err)
	}
	return quests, nil
}

func (r *pgQuestRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Quest, error) {
	quests := make([]models.Quest, 0)
	// ILIKE metacharacters in the user query must match literally.
	err := pgxscan.Select(ctx, r.db, &quests, searchQuestsByNameQuery, likeEscaper.Replace(query), limit)
	if err != nil {
		r.logger.Error("Failed to search quests", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("db error searching quests: %w", err)
	}
	return quests, nil
}

type pgServerRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgServerRepository creates a read-only repository over the server list.
func NewPgServerRepository(db DBTX, logger *zap.Logger) ServerRepository {
	return &pgServerRepository{
		db:     db,
		logger: logger.Named("PgServerRepo"),
	}
}

func (r *pgServerRepository) List(ctx context.Context) ([]models.GameServer, error) {
	servers := make([]models.GameServer, 0)
	err := pgxscan.Select(ctx, r.db, &servers, listGameServersQuery)
	if err != nil {
		r.logger.Error("Failed to list game servers", zap.Error(err))
		return nil, fmt.Errorf("db error listing game servers: %w", err)
	}
	return servers, nil
}
