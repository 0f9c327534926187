package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository/mocks"
	"quest-server/internal/service"
)

func newSelectionService(
	accounts *mocks.AccountRepository,
	characters *mocks.CharacterRepository,
	selections *mocks.SelectionRepository,
) service.SelectionService {
	return service.NewSelectionService(nil, accounts, characters, selections, zap.NewNop())
}

func TestSelectionServiceTrack(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	characterID := uuid.New()
	account := &models.Account{ID: accountID, Email: testEmail, ActiveCharacterID: &characterID}
	activeCharacter := &models.Character{ID: characterID, AccountID: accountID, ServerID: 302}

	t.Run("upserts for the active character with a sanitized note", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		characters := new(mocks.CharacterRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, characters, selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		characters.On("GetOwned", ctx, mock.Anything, characterID, accountID).Return(activeCharacter, nil).Once()
		selections.On("Upsert", ctx, mock.Anything, mock.MatchedBy(func(sel *models.Selection) bool {
			assert.Equal(t, characterID, sel.CharacterID)
			assert.Equal(t, int32(302), sel.ServerID)
			assert.Equal(t, int64(1420), sel.QuestID)
			assert.NotNil(t, sel.Note)
			assert.Equal(t, "cherche groupe", *sel.Note)
			return true
		})).Return(nil).Once()

		_, err := svc.Track(ctx, testEmail, service.TrackQuestInput{
			ServerID: 302,
			QuestID:  1420,
			Note:     "  cherche\x00 groupe ​",
		})
		assert.NoError(t, err)
		selections.AssertExpectations(t)
	})

	t.Run("empty note is stored as NULL", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		characters := new(mocks.CharacterRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, characters, selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		characters.On("GetOwned", ctx, mock.Anything, characterID, accountID).Return(activeCharacter, nil).Once()
		selections.On("Upsert", ctx, mock.Anything, mock.MatchedBy(func(sel *models.Selection) bool {
			return sel.Note == nil
		})).Return(nil).Once()

		_, err := svc.Track(ctx, testEmail, service.TrackQuestInput{ServerID: 302, QuestID: 1420, Note: "  ​ "})
		assert.NoError(t, err)
	})

	t.Run("fails without an active character", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).
			Return(&models.Account{ID: accountID, Email: testEmail}, nil).Once()

		_, err := svc.Track(ctx, testEmail, service.TrackQuestInput{ServerID: 302, QuestID: 1420})
		assert.ErrorIs(t, err, models.ErrNoActiveCharacter)
		selections.AssertNotCalled(t, "Upsert")
	})

	t.Run("fails when the server differs from the active character", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		characters := new(mocks.CharacterRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, characters, selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		characters.On("GetOwned", ctx, mock.Anything, characterID, accountID).Return(activeCharacter, nil).Once()

		_, err := svc.Track(ctx, testEmail, service.TrackQuestInput{ServerID: 301, QuestID: 1420})
		assert.ErrorIs(t, err, models.ErrServerMismatch)
		selections.AssertNotCalled(t, "Upsert")
	})
}

func TestSelectionServiceListForMatch(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	myCharacterID := uuid.New()
	otherCharacterID := uuid.New()

	rows := []models.MatchRow{
		{ID: uuid.New(), CharacterID: otherCharacterID, CharacterName: "Autre"},
		{ID: uuid.New(), CharacterID: myCharacterID, CharacterName: "Moi"},
	}

	t.Run("marks rows of the caller's active character", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		selections.On("ListForMatch", ctx, mock.Anything, int32(302), int64(1420), 100).Return(rows, nil).Once()
		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).
			Return(&models.Account{ID: accountID, ActiveCharacterID: &myCharacterID}, nil).Once()

		got, err := svc.ListForMatch(ctx, testEmail, 302, 1420)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.False(t, got[0].IsMine)
		assert.True(t, got[1].IsMine)
	})

	t.Run("anonymous caller sees isMine false everywhere", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		selections.On("ListForMatch", ctx, mock.Anything, int32(302), int64(1420), 100).Return(rows, nil).Once()

		got, err := svc.ListForMatch(ctx, "", 302, 1420)
		assert.NoError(t, err)
		for _, row := range got {
			assert.False(t, row.IsMine)
		}
		accounts.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("invalid params rejected", func(t *testing.T) {
		svc := newSelectionService(new(mocks.AccountRepository), new(mocks.CharacterRepository), new(mocks.SelectionRepository))

		_, err := svc.ListForMatch(ctx, "", 0, 1420)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = svc.ListForMatch(ctx, "", 302, 0)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestSelectionServiceListMine(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	characterID := uuid.New()

	t.Run("empty list without an active character", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).
			Return(&models.Account{ID: accountID}, nil).Once()

		got, err := svc.ListMine(ctx, testEmail)
		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
		selections.AssertNotCalled(t, "ListByCharacter")
	})

	t.Run("lists the active character's selections", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).
			Return(&models.Account{ID: accountID, ActiveCharacterID: &characterID}, nil).Once()
		selections.On("ListByCharacter", ctx, mock.Anything, characterID, 300).
			Return([]models.MySelectionRow{{QuestName: "Le Dofus Pourpre"}}, nil).Once()

		got, err := svc.ListMine(ctx, testEmail)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestSelectionServiceRemove(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	selectionID := uuid.New()
	account := &models.Account{ID: accountID, Email: testEmail}

	t.Run("owner deletes their selection", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		selections.On("GetWithOwner", ctx, mock.Anything, selectionID).
			Return(&models.Selection{ID: selectionID}, accountID, nil).Once()
		selections.On("Delete", ctx, mock.Anything, selectionID).Return(nil).Once()

		assert.NoError(t, svc.Remove(ctx, testEmail, selectionID))
		selections.AssertExpectations(t)
	})

	t.Run("foreign selection is forbidden", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		selections.On("GetWithOwner", ctx, mock.Anything, selectionID).
			Return(&models.Selection{ID: selectionID}, uuid.New(), nil).Once()

		assert.ErrorIs(t, svc.Remove(ctx, testEmail, selectionID), models.ErrForbidden)
		selections.AssertNotCalled(t, "Delete")
	})

	t.Run("absent selection is not found", func(t *testing.T) {
		accounts := new(mocks.AccountRepository)
		selections := new(mocks.SelectionRepository)
		svc := newSelectionService(accounts, new(mocks.CharacterRepository), selections)

		accounts.On("GetByEmail", ctx, mock.Anything, testEmail).Return(account, nil).Once()
		selections.On("GetWithOwner", ctx, mock.Anything, selectionID).
			Return(nil, uuid.Nil, models.ErrNotFound).Once()

		assert.ErrorIs(t, svc.Remove(ctx, testEmail, selectionID), models.ErrNotFound)
	})
}
