package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quest-server/internal/models"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so repository methods
// can run against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository manages player accounts and the active-character pointer.
// Methods take an explicit querier so the service can run them inside a
// transaction together with character writes.
type AccountRepository interface {
	// Create inserts an account row. Used by provisioning and tests; in
	// production the identity provider owns account creation.
	Create(ctx context.Context, querier DBTX, account *models.Account) error
	// GetByEmail returns the account for the session email.
	// Returns models.ErrAccountNotFound when no row exists.
	GetByEmail(ctx context.Context, querier DBTX, email string) (*models.Account, error)
	// SetActiveCharacter sets (or clears, with nil) the active pointer.
	SetActiveCharacter(ctx context.Context, querier DBTX, accountID uuid.UUID, characterID *uuid.UUID) error
	// ActivateIfNone points the account at characterID only when no active
	// character is currently set.
	ActivateIfNone(ctx context.Context, querier DBTX, accountID, characterID uuid.UUID) error
	// ClearActiveIf clears the pointer only if it currently references
	// characterID.
	ClearActiveIf(ctx context.Context, querier DBTX, accountID, characterID uuid.UUID) error
}

// CharacterRepository manages per-account characters. Name uniqueness per
// (account, server) rides the characters_account_server_name_key constraint;
// violations surface as models.ErrCharacterNameTaken.
type CharacterRepository interface {
	Create(ctx context.Context, querier DBTX, character *models.Character) error
	// GetOwned returns the character only when it belongs to accountID.
	// Absence and non-ownership are both models.ErrNotFound, so callers
	// cannot distinguish "not yours" from "does not exist".
	GetOwned(ctx context.Context, querier DBTX, id, accountID uuid.UUID) (*models.Character, error)
	GetOwnedWithServer(ctx context.Context, querier DBTX, id, accountID uuid.UUID) (*models.CharacterWithServer, error)
	ListByAccount(ctx context.Context, querier DBTX, accountID uuid.UUID) ([]models.CharacterWithServer, error)
	// Update applies the partial edit with the ownership predicate built into
	// the UPDATE. Zero rows affected means models.ErrNotFound.
	Update(ctx context.Context, querier DBTX, id, accountID uuid.UUID, upd models.CharacterUpdate) error
	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error
}

// SelectionRepository manages the character x (server, quest) ledger.
type SelectionRepository interface {
	// Upsert creates the selection or, when the (character, server, quest)
	// triple already exists, replaces its note in place.
	Upsert(ctx context.Context, querier DBTX, selection *models.Selection) error
	// GetWithOwner returns the selection and the account id owning its
	// character. Returns models.ErrNotFound when the selection is absent.
	GetWithOwner(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Selection, uuid.UUID, error)
	Delete(ctx context.Context, querier DBTX, id uuid.UUID) error
	DeleteByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID) (int64, error)
	ListForMatch(ctx context.Context, querier DBTX, serverID int32, questID int64, limit int) ([]models.MatchRow, error)
	ListByCharacter(ctx context.Context, querier DBTX, characterID uuid.UUID, limit int) ([]models.MySelectionRow, error)
}

// QuestRepository is read-only access to the quest catalog.
type QuestRepository interface {
	ListAlphabetical(ctx context.Context, limit int) ([]models.Quest, error)
	// SearchByName matches the sanitized query as a case-insensitive
	// substring of the quest name, alphabetical order.
	SearchByName(ctx context.Context, query string, limit int) ([]models.Quest, error)
}

// ServerRepository is read-only access to the game server list.
type ServerRepository interface {
	List(ctx context.Context) ([]models.GameServer, error)
}
