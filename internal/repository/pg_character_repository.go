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
	createCharacterQuery = `
		INSERT INTO characters (id, account_id, server_id, name, level, class)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	getOwnedCharacterQuery = `
		SELECT id, account_id, server_id, name, level, class, created_at
		FROM characters
		WHERE id = $1 AND account_id = $2
	`
	getOwnedCharacterWithServerQuery = `
		SELECT c.id, c.account_id, c.server_id, c.name, c.level, c.class, c.created_at,
		       s.name AS server_name
		FROM characters c
		JOIN game_servers s ON s.id = c.server_id
		WHERE c.id = $1 AND c.account_id = $2
	`
	listCharactersByAccountQuery = `
		SELECT c.id, c.account_id, c.server_id, c.name, c.level, c.class, c.created_at,
		       s.name AS server_name
		FROM characters c
		JOIN game_servers s ON s.id = c.server_id
		WHERE c.account_id = $1
		ORDER BY c.created_at DESC
	`
	// COALESCE keeps the stored value for fields the caller did not send.
	updateCharacterQuery = `
		UPDATE characters SET
			server_id = COALESCE($3, server_id),
			name      = COALESCE($4, name),
			level     = COALESCE($5, level),
			class     = COALESCE($6, class)
		WHERE id = $1 AND account_id = $2
	`
	deleteCharacterQuery = `DELETE FROM characters WHERE id = $1`
)

// PostgreSQL error codes relevant to character writes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Compile-time check
var _ CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a new PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db DBTX, logger *zap.Logger) CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

// translateWriteError maps constraint violations to domain errors:
// the (account, server, name) unique index means the name is taken,
// a foreign key failure means the referenced server does not exist.
func (r *pgCharacterRepository) translateWriteError(err error, logFields ...zap.Field) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			r.logger.Warn("Duplicate character name on server", logFields...)
			return models.ErrCharacterNameTaken
		case pgForeignKeyViolation:
			r.logger.Warn("Character write references unknown server", logFields...)
			return models.ErrInvalidInput
		}
	}
	return nil
}

func (r *pgCharacterRepository) Create(ctx context.Context, querier DBTX, character *models.Character) error {
	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}
	logFields := []zap.Field{
		zap.String("accountID", character.AccountID.String()),
		zap.Int32("serverID", character.ServerID),
		zap.String("name", character.Name),
	}
	err := querier.QueryRow(ctx, createCharacterQuery,
		character.ID, character.AccountID, character.ServerID,
		character.Name, character.Level, character.Class,
	).Scan(&character.CreatedAt)
	if err != nil {
		if domainErr := r.translateWriteError(err, logFields...); domainErr != nil {
			return domainErr
		}
		r.logger.Error("Failed to create character", append(logFields, zap.Error(err))...)
		return fmt.Errorf("db error creating character: %w", err)
	}
	r.logger.Info("Character created", append(logFields, zap.String("characterID", character.ID.String()))...)
	return nil
}

func (r *pgCharacterRepository) GetOwned(ctx context.Context, querier DBTX, id, accountID uuid.UUID) (*models.Character, error) {
	character := &models.Character{}
	err := querier.QueryRow(ctx, getOwnedCharacterQuery, id, accountID).Scan(
		&character.ID, &character.AccountID, &character.ServerID,
		&character.Name, &character.Level, &character.Class, &character.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get character", zap.String("characterID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("db error getting character %s: %w", id, err)
	}
	return character, nil
}

func (r *pgCharacterRepository) GetOwnedWithServer(ctx context.Context, querier DBTX, id, accountID uuid.UUID) (*models.CharacterWithServer, error) {
	var character models.CharacterWithServer
	err := pgxscan.Get(ctx, querier, &character, getOwnedCharacterWithServerQuery, id, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get character with server", zap.String("characterID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("db error getting character %s: %w", id, err)
	}
	return &character, nil
}

func (r *pgCharacterRepository) ListByAccount(ctx context.Context, querier DBTX, accountID uuid.UUID) ([]models.CharacterWithServer, error) {
	characters := make([]models.CharacterWithServer, 0)
	err := pgxscan.Select(ctx, querier, &characters, listCharactersByAccountQuery, accountID)
	if err != nil {
		r.logger.Error("Failed to list characters", zap.String("accountID", accountID.String()), zap.Error(err))
		return nil, fmt.Errorf("db error listing characters: %w", err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, querier DBTX, id, accountID uuid.UUID, upd models.CharacterUpdate) error {
	logFields := []zap.Field{
		zap.String("characterID", id.String()),
		zap.String("accountID", accountID.String()),
	}
	cmdTag, err := querier.Exec(ctx, updateCharacterQuery,
		id, accountID, upd.ServerID, upd.Name, upd.Level, upd.Class,
	)
	if err != nil {
		if domainErr := r.translateWriteError(err, logFields...); domainErr != nil {
			return domainErr
		}
		r.logger.Error("Failed to update character", append(logFields, zap.Error(err))...)
		return fmt.Errorf("db error updating character %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update non-existent or unauthorized character", logFields...)
		return models.ErrNotFound
	}
	return nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, querier DBTX, id uuid.UUID) error {
	cmdTag, err := querier.Exec(ctx, deleteCharacterQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.String("characterID", id.String()), zap.Error(err))
		return fmt.Errorf("db error deleting character %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Character deleted", zap.String("characterID", id.String()))
	return nil
}
