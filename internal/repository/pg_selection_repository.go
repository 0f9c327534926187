package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"quest-server/internal/models"
)

const (
	// The unique index on (character_id, server_id, quest_id) makes the
	// upsert atomic: concurrent double-submission never produces two rows,
	// the second writer just replaces the note.
	upsertSelectionQuery = `
		INSERT INTO selections (id, character_id, server_id, quest_id, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (character_id, server_id, quest_id)
		DO UPDATE SET note = EXCLUDED.note
		RETURNING id, created_at
	`
	getSelectionWithOwnerQuery = `
		SELECT s.id, s.character_id, s.server_id, s.quest_id, s.note, s.created_at,
		       c.account_id
		FROM selections s
		JOIN characters c ON c.id = s.character_id
		WHERE s.id = $1
	`
	deleteSelectionQuery             = `DELETE FROM selections WHERE id = $1`
	deleteSelectionsByCharacterQuery = `DELETE FROM selections WHERE character_id = $1`
	listSelectionsForMatchQuery      = `
		SELECT s.id, s.created_at, s.character_id, s.note,
		       c.name  AS character_name,
		       c.level AS character_level,
		       c.class AS character_class
		FROM selections s
		JOIN characters c ON c.id = s.character_id
		WHERE s.server_id = $1 AND s.quest_id = $2
		ORDER BY s.created_at DESC
		LIMIT $3
	`
	listSelectionsByCharacterQuery = `
		SELECT s.id, s.created_at, s.quest_id, s.server_id, s.note,
		       q.name   AS quest_name,
		       sv.name  AS server_name,
		       c.id     AS character_id,
		       c.name   AS character_name,
		       c.level  AS character_level,
		       c.class  AS character_class
		FROM selections s
		JOIN quests q        ON q.id = s.quest_id
		JOIN game_servers sv ON sv.id = s.server_id
		JOIN characters c    ON c.id = s.character_id
		WHERE s.character_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2
	`
)

// Compile-time check
var _ SelectionRepository = (*pgSelectionRepository)(nil)

type pgSelectionRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgSelectionRepository creates a new PostgreSQL-backed SelectionRepository.
func NewPgSelectionRepository(db DBTX, logger *zap.Logger) SelectionRepository {
	return &pgSelectionRepository{
		db:     db,
		logger: logger.Named("PgSelectionRepo"),
	}
}

func (r *pgSelectionRepository) Upsert(ctx context.Context, querier DBTX, selection *models.Selection) error {
	if selection.ID == uuid.Nil {
		selection.ID = uuid.New()
	}
	logFields := []zap.Field{
		zap.String("characterID", selection.CharacterID.String()),
		zap.Int32("serverID", selection.ServerID),
		zap.Int64("questID", selection.QuestID),
	}
	// RETURNING hands back the surviving row's identity: on conflict the
	// original id and created_at are kept, only the note changes.
	err := querier.QueryRow(ctx, upsertSelectionQuery,
		selection.ID, selection.CharacterID, selection.ServerID, selection.QuestID, selection.Note,
	).Scan(&selection.ID, &selection.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			// unknown quest or server id
			r.logger.Warn("Selection references unknown quest or server", logFields...)
			return fmt.Errorf("%w: unknown quest or server", models.ErrInvalidInput)
		}
		r.logger.Error("Failed to upsert selection", append(logFields, zap.Error(err))...)
		return fmt.Errorf("db error upserting selection: %w", err)
	}
	r.logger.Debug("Selection upserted", append(logFields, zap.String("selectionID", selection.ID.String()))...)
	return nil
}

func (r *pgSelectionRepository) GetWithOwner(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Selection, uuid.UUID, error) {
	selection := &models.Selection{}
	var ownerID uuid.UUID
	err := querier.QueryRow(ctx, getSelectionWithOwnerQuery, id).Scan(
		&selection.ID, &selection.CharacterID, &selection.ServerID,
		&selection.QuestID, &selection.Note, &selection.CreatedAt,
		&ownerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, uuid.Nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get selection", zap.String("selectionID", id.String()), zap.Error(err))
		return nil, uuid.Nil, fmt.Errorf("db error getting selection %s: %w", id, err)
	}
	return selection, ownerID, nil
}

func (r *pgSelectionRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	cmdTag, err := querier.Exec(ctx, deleteSelectionQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete selection", zap.String("selectionID", id.String()), zap.Error(err))
		return fmt.Errorf("db error deleting selection %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgSelectionRepository) DeleteByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID) (int64, error) {
	cmdTag, err := querier.Exec(ctx, deleteSelectionsByCharacterQuery, characterID)
	if err != nil {
		r.logger.Error("Failed to delete selections for character", zap.String("characterID", characterID.String()), zap.Error(err))
		return 0, fmt.Errorf("db error deleting selections for character: %w", err)
	}
	deleted := cmdTag.RowsAffected()
	r.logger.Debug("Selections deleted for character",
		zap.String("characterID", characterID.String()),
		zap.Int64("count", deleted),
	)
	return deleted, nil
}

func (r *pgSelectionRepository) ListForMatch(ctx context.Context, querier DBTX, serverID int32, questID int64, limit int) ([]models.MatchRow, error) {
	rows := make([]models.MatchRow, 0)
	err := pgxscan.Select(ctx, querier, &rows, listSelectionsForMatchQuery, serverID, questID, limit)
	if err != nil {
		r.logger.Error("Failed to list selections for match",
			zap.Int32("serverID", serverID),
			zap.Int64("questID", questID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("db error listing selections for match: %w", err)
	}
	return rows, nil
}

func (r *pgSelectionRepository) ListByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID, limit int) ([]models.MySelectionRow, error) {
	rows := make([]models.MySelectionRow, 0)
	err := pgxscan.Select(ctx, querier, &rows, listSelectionsByCharacterQuery, characterID, limit)
	if err != nil {
		r.logger.Error("Failed to list selections for character", zap.String("characterID", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("db error listing selections for character: %w", err)
	}
	return rows, nil
}
