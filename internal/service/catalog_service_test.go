package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository/mocks"
	"quest-server/internal/service"
)

func TestCatalogServiceSearchQuests(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query browses the alphabetical head", func(t *testing.T) {
		quests := new(mocks.QuestRepository)
		svc := service.NewCatalogService(quests, new(mocks.ServerRepository), zap.NewNop())

		quests.On("ListAlphabetical", ctx, 100).
			Return([]models.Quest{{ID: 1, Name: "A l'assaut"}}, nil).Once()

		got, err := svc.SearchQuests(ctx, "  ​ ")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		quests.AssertNotCalled(t, "SearchByName")
	})

	t.Run("non-empty query is sanitized, clamped and searched", func(t *testing.T) {
		quests := new(mocks.QuestRepository)
		svc := service.NewCatalogService(quests, new(mocks.ServerRepository), zap.NewNop())

		clamped := strings.Repeat("x", 50)
		quests.On("SearchByName", ctx, clamped, 50).Return([]models.Quest{}, nil).Once()

		_, err := svc.SearchQuests(ctx, strings.Repeat("x", 80))
		assert.NoError(t, err)
		quests.AssertExpectations(t)
	})
}

func TestCatalogServiceListServers(t *testing.T) {
	ctx := context.Background()
	servers := new(mocks.ServerRepository)
	svc := service.NewCatalogService(new(mocks.QuestRepository), servers, zap.NewNop())

	servers.On("List", ctx).Return([]models.GameServer{
		{ID: 101, Name: "Brial"},
		{ID: 302, Name: "Orukam"},
	}, nil).Once()

	got, err := svc.ListServers(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
