package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository"
)

const (
	matchListLimit        = 100
	mySelectionsListLimit = 300
)

// TrackQuestInput is the payload for declaring a quest on the active character.
type TrackQuestInput struct {
	ServerID int32
	QuestID  int64
	Note     string
}

// SelectionService implements the selection ledger: quest declarations of the
// active character and the cross-account match feed built from them.
type SelectionService interface {
	Track(ctx context.Context, email string, input TrackQuestInput) (*models.Selection, error)
	// ListForMatch returns who is on a quest. email may be empty for
	// anonymous callers; with a caller the rows of their active character
	// are flagged as mine.
	ListForMatch(ctx context.Context, email string, serverID int32, questID int64) ([]models.MatchRow, error)
	ListMine(ctx context.Context, email string) ([]models.MySelectionRow, error)
	Remove(ctx context.Context, email string, id uuid.UUID) error
}

type selectionService struct {
	db         repository.DBTX
	accounts   repository.AccountRepository
	characters repository.CharacterRepository
	selections repository.SelectionRepository
	logger     *zap.Logger
}

// NewSelectionService creates the selection ledger service.
func NewSelectionService(
	db repository.DBTX,
	accounts repository.AccountRepository,
	characters repository.CharacterRepository,
	selections repository.SelectionRepository,
	logger *zap.Logger,
) SelectionService {
	return &selectionService{
		db:         db,
		accounts:   accounts,
		characters: characters,
		selections: selections,
		logger:     logger.Named("SelectionService"),
	}
}

func (s *selectionService) Track(ctx context.Context, email string, input TrackQuestInput) (*models.Selection, error) {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if account.ActiveCharacterID == nil {
		return nil, models.ErrNoActiveCharacter
	}
	if input.ServerID < 1 {
		return nil, fmt.Errorf("%w: serverId must be positive", models.ErrInvalidInput)
	}
	if input.QuestID < 1 {
		return nil, fmt.Errorf("%w: questId must be positive", models.ErrInvalidInput)
	}

	character, err := s.characters.GetOwned(ctx, s.db, *account.ActiveCharacterID, account.ID)
	if err != nil {
		return nil, err
	}
	// Declaring on a foreign server would pollute that server's feed with a
	// character that cannot be there.
	if character.ServerID != input.ServerID {
		return nil, models.ErrServerMismatch
	}

	selection := &models.Selection{
		CharacterID: character.ID,
		ServerID:    input.ServerID,
		QuestID:     input.QuestID,
	}
	if note := SanitizeNote(input.Note); note != "" {
		selection.Note = &note
	}

	// Re-declaring the same quest replaces the note instead of erroring,
	// so the client can idempotently retry.
	if err := s.selections.Upsert(ctx, s.db, selection); err != nil {
		return nil, err
	}

	s.logger.Info("Quest declared",
		zap.String("characterID", character.ID.String()),
		zap.Int32("serverID", input.ServerID),
		zap.Int64("questID", input.QuestID),
	)
	return selection, nil
}

func (s *selectionService) ListForMatch(ctx context.Context, email string, serverID int32, questID int64) ([]models.MatchRow, error) {
	if serverID < 1 {
		return nil, fmt.Errorf("%w: serverId must be positive", models.ErrInvalidInput)
	}
	if questID < 1 {
		return nil, fmt.Errorf("%w: questId must be positive", models.ErrInvalidInput)
	}

	rows, err := s.selections.ListForMatch(ctx, s.db, serverID, questID, matchListLimit)
	if err != nil {
		return nil, err
	}

	var activeID *uuid.UUID
	if email != "" {
		account, err := s.accounts.GetByEmail(ctx, s.db, email)
		if err == nil {
			activeID = account.ActiveCharacterID
		}
		// An unknown session browses the feed like an anonymous one.
	}
	for i := range rows {
		rows[i].IsMine = activeID != nil && rows[i].CharacterID == *activeID
	}
	return rows, nil
}

func (s *selectionService) ListMine(ctx context.Context, email string) ([]models.MySelectionRow, error) {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if account.ActiveCharacterID == nil {
		return []models.MySelectionRow{}, nil
	}
	return s.selections.ListByCharacter(ctx, s.db, *account.ActiveCharacterID, mySelectionsListLimit)
}

func (s *selectionService) Remove(ctx context.Context, email string, id uuid.UUID) error {
	account, err := s.accounts.GetByEmail(ctx, s.db, email)
	if err != nil {
		return err
	}
	_, ownerID, err := s.selections.GetWithOwner(ctx, s.db, id)
	if err != nil {
		return err
	}
	if ownerID != account.ID {
		return models.ErrForbidden
	}
	return s.selections.Delete(ctx, s.db, id)
}
