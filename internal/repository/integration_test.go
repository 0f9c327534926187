package repository_test // Используем _test пакет для изоляции

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"quest-server/internal/models"
	"quest-server/internal/repository"
	"quest-server/internal/service"
	"quest-server/migrations"
	"quest-server/pkg/database"
	"quest-server/pkg/migration"
)

// IntegrationTestSuite гоняет репозитории и сервисы против настоящего
// PostgreSQL в контейнере.
type IntegrationTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	db          *database.Database
	logger      *zap.Logger

	accounts   repository.AccountRepository
	characters repository.CharacterRepository
	selections repository.SelectionRepository
	quests     repository.QuestRepository
	servers    repository.ServerRepository

	characterSvc service.CharacterService
	selectionSvc service.SelectionService
	catalogSvc   service.CatalogService
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем встроенные миграции, те же что применяет сервер на старте
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, s.pgPool)
	require.NoError(s.T(), migrator.Up(), "Failed to run migrations")

	s.db = database.NewFromPool(s.pgPool, s.logger)

	s.accounts = repository.NewPgAccountRepository(s.pgPool, s.logger)
	s.characters = repository.NewPgCharacterRepository(s.pgPool, s.logger)
	s.selections = repository.NewPgSelectionRepository(s.pgPool, s.logger)
	s.quests = repository.NewPgQuestRepository(s.pgPool, s.logger)
	s.servers = repository.NewPgServerRepository(s.pgPool, s.logger)

	s.characterSvc = service.NewCharacterService(s.pgPool, s.db, s.accounts, s.characters, s.selections, s.logger)
	s.selectionSvc = service.NewSelectionService(s.pgPool, s.accounts, s.characters, s.selections, s.logger)
	s.catalogSvc = service.NewCatalogService(s.quests, s.servers, s.logger)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	// Сносим пользовательские данные, справочники оставляем
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE selections, characters, accounts CASCADE")
	require.NoError(s.T(), err, "Failed to truncate tables")
	_, err = s.pgPool.Exec(s.ctx, "DELETE FROM quests")
	require.NoError(s.T(), err, "Failed to clear quests")

	_, err = s.pgPool.Exec(s.ctx, `INSERT INTO quests (id, name, category, level, area) VALUES
		(1420, 'Le Dofus Pourpre', 'Dofus', 120, 'Pandala'),
		(1421, 'Le Dofus Émeraude', 'Dofus', 100, 'Brakmar'),
		(1500, 'A la recherche du bwork perdu', 'Exploration', 30, 'Bonta')`)
	require.NoError(s.T(), err, "Failed to seed quests")
}

func (s *IntegrationTestSuite) createAccount(email string) *models.Account {
	account := &models.Account{ID: uuid.New(), Email: email}
	require.NoError(s.T(), s.accounts.Create(s.ctx, s.pgPool, account))
	return account
}

func (s *IntegrationTestSuite) TestServerSeedPresent() {
	servers, err := s.servers.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(servers, 13)
	s.Equal("Brial", servers[0].Name)
	s.Equal(int32(101), servers[0].ID)
}

func (s *IntegrationTestSuite) TestDuplicateCharacterNameConflict() {
	s.createAccount("dup@example.com")

	input := service.CreateCharacterInput{ServerID: 302, Name: "Korriander", Level: 42, Class: "Iop"}
	_, err := s.characterSvc.Create(s.ctx, "dup@example.com", input)
	s.Require().NoError(err)

	// то же имя после нормализации
	input.Name = " Korri​ander "
	_, err = s.characterSvc.Create(s.ctx, "dup@example.com", input)
	s.Require().ErrorIs(err, models.ErrCharacterNameTaken)

	// на другом сервере то же имя допустимо
	input.ServerID = 301
	_, err = s.characterSvc.Create(s.ctx, "dup@example.com", input)
	s.Require().NoError(err)
}

func (s *IntegrationTestSuite) TestFirstCharacterBecomesActive() {
	s.createAccount("first@example.com")

	created, err := s.characterSvc.Create(s.ctx, "first@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Premier", Level: 1, Class: "Feca",
	})
	s.Require().NoError(err)

	list, err := s.characterSvc.List(s.ctx, "first@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(list.ActiveCharacterID)
	s.Equal(created.ID, *list.ActiveCharacterID)

	// второй персонаж активного не меняет
	_, err = s.characterSvc.Create(s.ctx, "first@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Second", Level: 1, Class: "Feca",
	})
	s.Require().NoError(err)

	list, err = s.characterSvc.List(s.ctx, "first@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, *list.ActiveCharacterID)
}

func (s *IntegrationTestSuite) TestTrackUpsertsSingleRow() {
	s.createAccount("track@example.com")
	_, err := s.characterSvc.Create(s.ctx, "track@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Traqueur", Level: 100, Class: "Sram",
	})
	s.Require().NoError(err)

	_, err = s.selectionSvc.Track(s.ctx, "track@example.com", service.TrackQuestInput{
		ServerID: 302, QuestID: 1420, Note: "premiere note",
	})
	s.Require().NoError(err)

	_, err = s.selectionSvc.Track(s.ctx, "track@example.com", service.TrackQuestInput{
		ServerID: 302, QuestID: 1420, Note: "note remplacee",
	})
	s.Require().NoError(err)

	var count int
	var note string
	err = s.pgPool.QueryRow(s.ctx, "SELECT count(*) FROM selections").Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
	err = s.pgPool.QueryRow(s.ctx, "SELECT note FROM selections").Scan(&note)
	s.Require().NoError(err)
	s.Equal("note remplacee", note)
}

func (s *IntegrationTestSuite) TestTrackServerMismatch() {
	s.createAccount("mismatch@example.com")
	_, err := s.characterSvc.Create(s.ctx, "mismatch@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Fixe", Level: 10, Class: "Xelor",
	})
	s.Require().NoError(err)

	_, err = s.selectionSvc.Track(s.ctx, "mismatch@example.com", service.TrackQuestInput{
		ServerID: 301, QuestID: 1420,
	})
	s.Require().ErrorIs(err, models.ErrServerMismatch)
}

func (s *IntegrationTestSuite) TestDeleteCharacterCascades() {
	s.createAccount("cascade@example.com")
	created, err := s.characterSvc.Create(s.ctx, "cascade@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Ephemere", Level: 50, Class: "Eniripsa",
	})
	s.Require().NoError(err)

	_, err = s.selectionSvc.Track(s.ctx, "cascade@example.com", service.TrackQuestInput{
		ServerID: 302, QuestID: 1420,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.characterSvc.Delete(s.ctx, "cascade@example.com", created.ID))

	var count int
	err = s.pgPool.QueryRow(s.ctx, "SELECT count(*) FROM selections").Scan(&count)
	s.Require().NoError(err)
	s.Equal(0, count)

	list, err := s.characterSvc.List(s.ctx, "cascade@example.com")
	s.Require().NoError(err)
	s.Nil(list.ActiveCharacterID)
	s.Empty(list.Characters)
}

func (s *IntegrationTestSuite) TestMatchListOrderAndIsMine() {
	s.createAccount("mine@example.com")
	s.createAccount("other@example.com")

	_, err := s.characterSvc.Create(s.ctx, "mine@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Moi", Level: 60, Class: "Pandawa",
	})
	s.Require().NoError(err)
	_, err = s.characterSvc.Create(s.ctx, "other@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Autre", Level: 70, Class: "Sadida",
	})
	s.Require().NoError(err)

	_, err = s.selectionSvc.Track(s.ctx, "other@example.com", service.TrackQuestInput{ServerID: 302, QuestID: 1420})
	s.Require().NoError(err)
	_, err = s.selectionSvc.Track(s.ctx, "mine@example.com", service.TrackQuestInput{ServerID: 302, QuestID: 1420})
	s.Require().NoError(err)

	rows, err := s.selectionSvc.ListForMatch(s.ctx, "mine@example.com", 302, 1420)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	// новые записи первыми
	s.Equal("Moi", rows[0].CharacterName)
	s.True(rows[0].IsMine)
	s.Equal("Autre", rows[1].CharacterName)
	s.False(rows[1].IsMine)

	// анонимный вызов ничего не помечает
	rows, err = s.selectionSvc.ListForMatch(s.ctx, "", 302, 1420)
	s.Require().NoError(err)
	for _, row := range rows {
		s.False(row.IsMine)
	}
}

func (s *IntegrationTestSuite) TestQuestSearch() {
	quests, err := s.catalogSvc.SearchQuests(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(quests, 3)
	// алфавитный порядок
	s.Equal("A la recherche du bwork perdu", quests[0].Name)

	quests, err = s.catalogSvc.SearchQuests(s.ctx, "DOFUS")
	s.Require().NoError(err)
	s.Require().Len(quests, 2)

	// спецсимволы LIKE экранируются
	quests, err = s.catalogSvc.SearchQuests(s.ctx, "%")
	s.Require().NoError(err)
	s.Empty(quests)
}

// TestFullScenario проигрывает целиком путь игрока: персонаж, заявка,
// просмотр матчей вторым аккаунтом, удаление.
func (s *IntegrationTestSuite) TestFullScenario() {
	s.createAccount("alice@example.com")
	s.createAccount("bob@example.com")

	// Алиса создаёт персонажа, он становится активным
	_, err := s.characterSvc.Create(s.ctx, "alice@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Alicette", Level: 150, Class: "Cra",
	})
	s.Require().NoError(err)

	// и заявляет квест
	_, err = s.selectionSvc.Track(s.ctx, "alice@example.com", service.TrackQuestInput{
		ServerID: 302, QuestID: 1420, Note: "dispo ce soir",
	})
	s.Require().NoError(err)

	// Боб создаёт персонажа на том же сервере и видит Алису в матчах
	_, err = s.characterSvc.Create(s.ctx, "bob@example.com", service.CreateCharacterInput{
		ServerID: 302, Name: "Bobard", Level: 140, Class: "Iop",
	})
	s.Require().NoError(err)

	rows, err := s.selectionSvc.ListForMatch(s.ctx, "bob@example.com", 302, 1420)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Alicette", rows[0].CharacterName)
	s.Equal("Crâ", rows[0].CharacterClass)
	s.False(rows[0].IsMine)
	s.Require().NotNil(rows[0].Note)
	s.Equal("dispo ce soir", *rows[0].Note)

	// Боб не может удалить чужую заявку
	err = s.selectionSvc.Remove(s.ctx, "bob@example.com", rows[0].ID)
	s.Require().ErrorIs(err, models.ErrForbidden)

	// Алиса видит заявку у себя и удаляет её
	mine, err := s.selectionSvc.ListMine(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("Le Dofus Pourpre", mine[0].QuestName)
	s.Equal("Orukam", mine[0].ServerName)

	s.Require().NoError(s.selectionSvc.Remove(s.ctx, "alice@example.com", mine[0].ID))

	// повторное удаление отдает not found
	err = s.selectionSvc.Remove(s.ctx, "alice@example.com", mine[0].ID)
	s.Require().ErrorIs(err, models.ErrNotFound)

	rows, err = s.selectionSvc.ListForMatch(s.ctx, "", 302, 1420)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *IntegrationTestSuite) TestClearingActivePointerBlocksTracking() {
	s.createAccount("solo@example.com")

	created, err := s.characterSvc.Create(s.ctx, "solo@example.com", service.CreateCharacterInput{
		ServerID: 301, Name: "Iop", Level: 50, Class: "Iop",
	})
	s.Require().NoError(err)

	_, err = s.characterSvc.Create(s.ctx, "solo@example.com", service.CreateCharacterInput{
		ServerID: 301, Name: "Iop", Level: 50, Class: "Iop",
	})
	s.Require().ErrorIs(err, models.ErrCharacterNameTaken)

	s.Require().NoError(s.characterSvc.SetActive(s.ctx, "solo@example.com", nil))

	list, err := s.characterSvc.List(s.ctx, "solo@example.com")
	s.Require().NoError(err)
	s.Nil(list.ActiveCharacterID)
	s.Require().Len(list.Characters, 1)

	_, err = s.selectionSvc.Track(s.ctx, "solo@example.com", service.TrackQuestInput{
		ServerID: 301, QuestID: 1420,
	})
	s.Require().ErrorIs(err, models.ErrNoActiveCharacter)

	// персонажа можно снова сделать активным
	s.Require().NoError(s.characterSvc.SetActive(s.ctx, "solo@example.com", &created.ID))
	_, err = s.selectionSvc.Track(s.ctx, "solo@example.com", service.TrackQuestInput{
		ServerID: 301, QuestID: 1420,
	})
	s.Require().NoError(err)
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}
