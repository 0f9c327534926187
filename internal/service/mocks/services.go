package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quest-server/internal/models"
	"quest-server/internal/service"
)

// Mock CharacterService
type CharacterService struct {
	mock.Mock
}

func (m *CharacterService) List(ctx context.Context, email string) (*service.CharacterList, error) {
	args := m.Called(ctx, email)
	list, _ := args.Get(0).(*service.CharacterList)
	return list, args.Error(1)
}
func (m *CharacterService) Create(ctx context.Context, email string, input service.CreateCharacterInput) (*models.CharacterWithServer, error) {
	args := m.Called(ctx, email, input)
	character, _ := args.Get(0).(*models.CharacterWithServer)
	return character, args.Error(1)
}
func (m *CharacterService) Update(ctx context.Context, email string, id uuid.UUID, input service.UpdateCharacterInput) (*models.CharacterWithServer, error) {
	args := m.Called(ctx, email, id, input)
	character, _ := args.Get(0).(*models.CharacterWithServer)
	return character, args.Error(1)
}
func (m *CharacterService) Delete(ctx context.Context, email string, id uuid.UUID) error {
	args := m.Called(ctx, email, id)
	return args.Error(0)
}
func (m *CharacterService) SetActive(ctx context.Context, email string, characterID *uuid.UUID) error {
	args := m.Called(ctx, email, characterID)
	return args.Error(0)
}

// Mock SelectionService
type SelectionService struct {
	mock.Mock
}

func (m *SelectionService) Track(ctx context.Context, email string, input service.TrackQuestInput) (*models.Selection, error) {
	args := m.Called(ctx, email, input)
	selection, _ := args.Get(0).(*models.Selection)
	return selection, args.Error(1)
}
func (m *SelectionService) ListForMatch(ctx context.Context, email string, serverID int32, questID int64) ([]models.MatchRow, error) {
	args := m.Called(ctx, email, serverID, questID)
	rows, _ := args.Get(0).([]models.MatchRow)
	return rows, args.Error(1)
}
func (m *SelectionService) ListMine(ctx context.Context, email string) ([]models.MySelectionRow, error) {
	args := m.Called(ctx, email)
	rows, _ := args.Get(0).([]models.MySelectionRow)
	return rows, args.Error(1)
}
func (m *SelectionService) Remove(ctx context.Context, email string, id uuid.UUID) error {
	args := m.Called(ctx, email, id)
	return args.Error(0)
}

// Mock CatalogService
type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) SearchQuests(ctx context.Context, query string) ([]models.Quest, error) {
	args := m.Called(ctx, query)
	quests, _ := args.Get(0).([]models.Quest)
	return quests, args.Error(1)
}
func (m *CatalogService) ListServers(ctx context.Context) ([]models.GameServer, error) {
	args := m.Called(ctx)
	servers, _ := args.Get(0).([]models.GameServer)
	return servers, args.Error(1)
}
