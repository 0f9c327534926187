package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quest-server/internal/models"
	"quest-server/internal/repository"
)

// Mock AccountRepository
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, querier repository.DBTX, account *models.Account) error {
	args := m.Called(ctx, querier, account)
	return args.Error(0)
}
func (m *AccountRepository) GetByEmail(ctx context.Context, querier repository.DBTX, email string) (*models.Account, error) {
	args := m.Called(ctx, querier, email)
	account, _ := args.Get(0).(*models.Account)
	return account, args.Error(1)
}
func (m *AccountRepository) SetActiveCharacter(ctx context.Context, querier repository.DBTX, accountID uuid.UUID, characterID *uuid.UUID) error {
	args := m.Called(ctx, querier, accountID, characterID)
	return args.Error(0)
}
func (m *AccountRepository) ActivateIfNone(ctx context.Context, querier repository.DBTX, accountID, characterID uuid.UUID) error {
	args := m.Called(ctx, querier, accountID, characterID)
	return args.Error(0)
}
func (m *AccountRepository) ClearActiveIf(ctx context.Context, querier repository.DBTX, accountID, characterID uuid.UUID) error {
	args := m.Called(ctx, querier, accountID, characterID)
	return args.Error(0)
}

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, querier repository.DBTX, character *models.Character) error {
	args := m.Called(ctx, querier, character)
	return args.Error(0)
}
func (m *CharacterRepository) GetOwned(ctx context.Context, querier repository.DBTX, id, accountID uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, querier, id, accountID)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}
func (m *CharacterRepository) GetOwnedWithServer(ctx context.Context, querier repository.DBTX, id, accountID uuid.UUID) (*models.CharacterWithServer, error) {
	args := m.Called(ctx, querier, id, accountID)
	character, _ := args.Get(0).(*models.CharacterWithServer)
	return character, args.Error(1)
}
func (m *CharacterRepository) ListByAccount(ctx context.Context, querier repository.DBTX, accountID uuid.UUID) ([]models.CharacterWithServer, error) {
	args := m.Called(ctx, querier, accountID)
	characters, _ := args.Get(0).([]models.CharacterWithServer)
	return characters, args.Error(1)
}
func (m *CharacterRepository) Update(ctx context.Context, querier repository.DBTX, id, accountID uuid.UUID, upd models.CharacterUpdate) error {
	args := m.Called(ctx, querier, id, accountID, upd)
	return args.Error(0)
}
func (m *CharacterRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}

// Mock SelectionRepository
type SelectionRepository struct {
	mock.Mock
}

func (m *SelectionRepository) Upsert(ctx context.Context, querier repository.DBTX, selection *models.Selection) error {
	args := m.Called(ctx, querier, selection)
	return args.Error(0)
}
func (m *SelectionRepository) GetWithOwner(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Selection, uuid.UUID, error) {
	args := m.Called(ctx, querier, id)
	selection, _ := args.Get(0).(*models.Selection)
	ownerID, _ := args.Get(1).(uuid.UUID)
	return selection, ownerID, args.Error(2)
}
func (m *SelectionRepository) Delete(ctx context.Context, querier repository.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, querier, id)
	return args.Error(0)
}
func (m *SelectionRepository) DeleteByCharacter(ctx context.Context, querier repository.DBTX, characterID uuid.UUID) (int64, error) {
	args := m.Called(ctx, querier, characterID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *SelectionRepository) ListForMatch(ctx context.Context, querier repository.DBTX, serverID int32, questID int64, limit int) ([]models.MatchRow, error) {
	args := m.Called(ctx, querier, serverID, questID, limit)
	rows, _ := args.Get(0).([]models.MatchRow)
	return rows, args.Error(1)
}
func (m *SelectionRepository) ListByCharacter(ctx context.Context, querier repository.DBTX, characterID uuid.UUID, limit int) ([]models.MySelectionRow, error) {
	args := m.Called(ctx, querier, characterID, limit)
	rows, _ := args.Get(0).([]models.MySelectionRow)
	return rows, args.Error(1)
}

// Mock QuestRepository
type QuestRepository struct {
	mock.Mock
}

func (m *QuestRepository) ListAlphabetical(ctx context.Context, limit int) ([]models.Quest, error) {
	args := m.Called(ctx, limit)
	quests, _ := args.Get(0).([]models.Quest)
	return quests, args.Error(1)
}
func (m *QuestRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Quest, error) {
	args := m.Called(ctx, query, limit)
	quests, _ := args.Get(0).([]models.Quest)
	return quests, args.Error(1)
}

// Mock ServerRepository
type ServerRepository struct {
	mock.Mock
}

func (m *ServerRepository) List(ctx context.Context) ([]models.GameServer, error) {
	args := m.Called(ctx)
	servers, _ := args.Get(0).([]models.GameServer)
	return servers, args.Error(1)
}

// Mock Transactor прогоняет fn через nil querier, имитируя транзакцию.
type Transactor struct {
	mock.Mock
}

func (m *Transactor) WithTransaction(ctx context.Context, fn func(querier repository.DBTX) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}
