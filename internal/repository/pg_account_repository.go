package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"quest-server/internal/models"
)

const (
	createAccountQuery = `
		INSERT INTO accounts (id, email)
		VALUES ($1, $2)
		RETURNING created_at
	`
	getAccountByEmailQuery = `
		SELECT id, email, active_character_id, created_at
		FROM accounts
		WHERE email = $1
	`
	setActiveCharacterQuery = `
		UPDATE accounts SET active_character_id = $2 WHERE id = $1
	`
	activateIfNoneQuery = `
		UPDATE accounts SET active_character_id = $2
		WHERE id = $1 AND active_character_id IS NULL
	`
	clearActiveIfQuery = `
		UPDATE accounts SET active_character_id = NULL
		WHERE id = $1 AND active_character_id = $2
	`
)

// Compile-time check
var _ AccountRepository = (*pgAccountRepository)(nil)

type pgAccountRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAccountRepository creates a new PostgreSQL-backed AccountRepository.
func NewPgAccountRepository(db DBTX, logger *zap.Logger) AccountRepository {
	return &pgAccountRepository{
		db:     db,
		logger: logger.Named("PgAccountRepo"),
	}
}

func (r *pgAccountRepository) Create(ctx context.Context, querier DBTX, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	err := querier.QueryRow(ctx, createAccountQuery, account.ID, account.Email).Scan(&account.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create account", zap.String("email", account.Email), zap.Error(err))
		return fmt.Errorf("db error creating account: %w", err)
	}
	r.logger.Debug("Account created", zap.String("accountID", account.ID.String()))
	return nil
}

func (r *pgAccountRepository) GetByEmail(ctx context.Context, querier DBTX, email string) (*models.Account, error) {
	account := &models.Account{}
	err := querier.QueryRow(ctx, getAccountByEmailQuery, email).Scan(
		&account.ID, &account.Email, &account.ActiveCharacterID, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Account not found by email", zap.String("email", email))
			return nil, models.ErrAccountNotFound
		}
		r.logger.Error("Failed to get account by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("db error getting account by email: %w", err)
	}
	return account, nil
}

func (r *pgAccountRepository) SetActiveCharacter(ctx context.Context, querier DBTX, accountID uuid.UUID, characterID *uuid.UUID) error {
	cmdTag, err := querier.Exec(ctx, setActiveCharacterQuery, accountID, characterID)
	if err != nil {
		r.logger.Error("Failed to set active character", zap.String("accountID", accountID.String()), zap.Error(err))
		return fmt.Errorf("db error setting active character: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to set active character for non-existent account", zap.String("accountID", accountID.String()))
		return models.ErrAccountNotFound
	}
	return nil
}

func (r *pgAccountRepository) ActivateIfNone(ctx context.Context, querier DBTX, accountID, characterID uuid.UUID) error {
	_, err := querier.Exec(ctx, activateIfNoneQuery, accountID, characterID)
	if err != nil {
		r.logger.Error("Failed to activate character",
			zap.String("accountID", accountID.String()),
			zap.String("characterID", characterID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("db error activating character: %w", err)
	}
	return nil
}

func (r *pgAccountRepository) ClearActiveIf(ctx context.Context, querier DBTX, accountID, characterID uuid.UUID) error {
	_, err := querier.Exec(ctx, clearActiveIfQuery, accountID, characterID)
	if err != nil {
		r.logger.Error("Failed to clear active character",
			zap.String("accountID", accountID.String()),
			zap.String("characterID", characterID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("db error clearing active character: %w", err)
	}
	return nil
}
