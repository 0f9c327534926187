package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository"
)

// Transactor runs a function inside a database transaction; the querier it
// hands to fn replaces the pool for every repository call in the sequence.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(querier repository.DBTX) error) error
}

// CreateCharacterInput is the raw character creation payload.
type CreateCharacterInput struct {
	ServerID int32
	Name     string
	Level    int
	Class    string
}

// UpdateCharacterInput is the partial edit payload. Nil fields stay unchanged.
type UpdateCharacterInput struct {
	ServerID *int32
	Name     *string
	Level    *int
	Class    *string
}

// CharacterList is the caller's roster plus the active pointer.
type CharacterList struct {
	ActiveCharacterID *uuid.UUID                   `json:"activeCharacterId"`
	Characters        []models.CharacterWithServer `json:"characters"`
}

// CharacterService implements the character registry: per-account CRUD with
// normalized-name uniqueness and active-character tracking.
type CharacterService interface {
	List(ctx context.Context, email string) (*CharacterList, error)
	Create(ctx context.Context, email string, input CreateCharacterInput) (*models.CharacterWithServer, error)
	Update(ctx context.Context, email string, id uuid.UUID, input UpdateCharacterInput) (*models.CharacterWithServer, error)
	Delete(ctx context.Context, email string, id uuid.UUID) error
	SetActive(ctx context.Context, email string, characterID *uuid.UUID) error
}

type characterService struct {
	db         repository.DBTX
	tx         Transactor
	accounts   repository.AccountRepository
	characters repository.CharacterRepository
	selections repository.SelectionRepository
	logger     *zap.Logger
}

// NewCharacterService creates the character registry service.
func NewCharacterService(
	db repository.DBTX,
	tx Transactor,
	accounts repository.AccountRepository,
	characters repository.CharacterRepository,
	selections repository.SelectionRepository,
	logger *zap.Logger,
) CharacterService {
	return &characterService{
		db:         db,
		tx:         tx,
		accounts:   accounts,
		characters: characters,
		selections: selections,
		logger:     logger.Named("CharacterService"),
	}
}

func (s *characterService) List(ctx context.Context, email string) (*CharacterList, error) {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	characters, err := s.characters.ListByAccount(ctx, s.db, account.ID)
	if err != nil {
		return nil, err
	}
	return &CharacterList{
		ActiveCharacterID: account.ActiveCharacterID,
		Characters:        characters,
	}, nil
}

func (s *characterService) Create(ctx context.Context, email string, input CreateCharacterInput) (*models.CharacterWithServer, error) {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}

	if input.ServerID < 1 {
		return nil, fmt.Errorf("%w: serverId must be positive", models.ErrInvalidInput)
	}
	name := NormalizeName(input.Name)
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: invalid character name", models.ErrInvalidInput)
	}
	if !ValidLevel(input.Level) {
		return nil, fmt.Errorf("%w: level must be between %d and %d", models.ErrInvalidInput, minLevel, maxLevel)
	}
	class, ok := CanonicalClass(input.Class)
	if !ok {
		return nil, fmt.Errorf("%w: unknown class %q", models.ErrInvalidInput, input.Class)
	}

	character := &models.Character{
		AccountID: account.ID,
		ServerID:  input.ServerID,
		Name:      name,
		Level:     input.Level,
		Class:     class,
	}

	// The insert and the first-character activation must land together:
	// a concurrent reader either sees the new character already active or
	// does not see it at all.
	err = s.tx.WithTransaction(ctx, func(querier repository.DBTX) error {
		if err := s.characters.Create(ctx, querier, character); err != nil {
			return err
		}
		return s.accounts.ActivateIfNone(ctx, querier, account.ID, character.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Character registered",
		zap.String("accountID", account.ID.String()),
		zap.String("characterID", character.ID.String()),
	)
	return s.characters.GetOwnedWithServer(ctx, s.db, character.ID, account.ID)
}

func (s *characterService) Update(ctx context.Context, email string, id uuid.UUID, input UpdateCharacterInput) (*models.CharacterWithServer, error) {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}

	upd := models.CharacterUpdate{ServerID: input.ServerID, Level: input.Level}
	if input.ServerID != nil && *input.ServerID < 1 {
		return nil, fmt.Errorf("%w: serverId must be positive", models.ErrInvalidInput)
	}
	if input.Name != nil {
		name := NormalizeName(*input.Name)
		if !ValidName(name) {
			return nil, fmt.Errorf("%w: invalid character name", models.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if input.Level != nil && !ValidLevel(*input.Level) {
		return nil, fmt.Errorf("%w: level must be between %d and %d", models.ErrInvalidInput, minLevel, maxLevel)
	}
	if input.Class != nil {
		class, ok := CanonicalClass(*input.Class)
		if !ok {
			return nil, fmt.Errorf("%w: unknown class %q", models.ErrInvalidInput, *input.Class)
		}
		upd.Class = &class
	}

	// Ownership is part of the UPDATE predicate, so an edit of someone
	// else's character reports NotFound, same as a missing one. The unique
	// index re-checks the (account, server, name) invariant against the
	// merged record.
	if err := s.characters.Update(ctx, s.db, id, account.ID, upd); err != nil {
		return nil, err
	}
	return s.characters.GetOwnedWithServer(ctx, s.db, id, account.ID)
}

func (s *characterService) Delete(ctx context.Context, email string, id uuid.UUID) error {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return err
	}

	// Cascade, pointer clear and delete commit atomically: no reader may
	// observe selections surviving their character or a dangling active
	// pointer.
	return s.tx.WithTransaction(ctx, func(querier repository.DBTX) error {
		if _, err := s.characters.GetOwned(ctx, querier, id, account.ID); err != nil {
			return err
		}
		if _, err := s.selections.DeleteByCharacter(ctx, querier, id); err != nil {
			return err
		}
		if err := s.accounts.ClearActiveIf(ctx, querier, account.ID, id); err != nil {
			return err
		}
		return s.characters.Delete(ctx, querier, id)
	})
}

func (s *characterService) SetActive(ctx context.Context, email string, characterID *uuid.UUID) error {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return err
	}

	if characterID != nil {
		if _, err := s.characters.GetOwned(ctx, s.db, *characterID, account.ID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				// Activating a character that is not yours is an explicit
				// permission failure, unlike the opaque CRUD paths.
				return models.ErrForbidden
			}
			return err
		}
	}
	return s.accounts.SetActiveCharacter(ctx, s.db, account.ID, characterID)
}
