package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/unitofwork"
	"champ-voting-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestStoreIntegration(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.ChampionRepository())
	assert.NotNil(t, uow.UserRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	ctx := context.Background()
	sessionID := time.Now().Format("session_2006-01-02_15-04-05")

	t.Run("Create Session And Resolve Latest", func(t *testing.T) {
		session := &entity.VotingSession{
			Id:        sessionID,
			Title:     "Integration Session",
			Status:    entity.SessionStatusActive,
			CreatedAt: time.Now(),
		}
		err := uow.SessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		latest, err := uow.SessionRepository().FindLatest(ctx)
		assert.NoError(t, err)
		if assert.NotNil(t, latest) {
			assert.Equal(t, sessionID, latest.Id)
		}
	})

	t.Run("Atomic Vote Set Semantics", func(t *testing.T) {
		champion := &entity.Champion{
			Id:        uuid.New(),
			SessionId: sessionID,
			Name:      "Integration Champion " + uuid.New().String(),
			Votes:     []string{},
			CreatedAt: time.Now(),
		}
		err := uow.ChampionRepository().Create(ctx, champion)
		assert.NoError(t, err)

		voter := "voter-" + uuid.New().String()

		// Adding the same voter twice must leave one membership
		assert.NoError(t, uow.ChampionRepository().AddVote(ctx, sessionID, champion.Id, voter))
		assert.NoError(t, uow.ChampionRepository().AddVote(ctx, sessionID, champion.Id, voter))

		got, err := uow.ChampionRepository().FindByID(ctx, sessionID, champion.Id)
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, 1, got.VoteCount())
			assert.True(t, got.HasVote(voter))
		}

		// Removing an absent voter is a no-op
		assert.NoError(t, uow.ChampionRepository().RemoveVote(ctx, sessionID, champion.Id, voter))
		assert.NoError(t, uow.ChampionRepository().RemoveVote(ctx, sessionID, champion.Id, voter))

		got, err = uow.ChampionRepository().FindByID(ctx, sessionID, champion.Id)
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, 0, got.VoteCount())
		}

		assert.NoError(t, uow.ChampionRepository().Delete(ctx, sessionID, champion.Id))

		// Mutations against the deleted champion must fail, not ack silently
		assert.ErrorIs(t, uow.ChampionRepository().AddVote(ctx, sessionID, champion.Id, voter), contract.ErrChampionNotFound)
		assert.ErrorIs(t, uow.ChampionRepository().RemoveVote(ctx, sessionID, champion.Id, voter), contract.ErrChampionNotFound)
	})

	t.Run("Concurrent Voters Never Lose Votes", func(t *testing.T) {
		champion := &entity.Champion{
			Id:        uuid.New(),
			SessionId: sessionID,
			Name:      "Contended Champion " + uuid.New().String(),
			Votes:     []string{},
			CreatedAt: time.Now(),
		}
		err := uow.ChampionRepository().Create(ctx, champion)
		assert.NoError(t, err)

		const voters = 10
		var wg sync.WaitGroup
		for i := 0; i < voters; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				w := uowFactory.NewUnitOfWork(ctx)
				// Each voter also double-submits
				_ = w.ChampionRepository().AddVote(ctx, sessionID, champion.Id, fmt.Sprintf("voter-%d", n))
				_ = w.ChampionRepository().AddVote(ctx, sessionID, champion.Id, fmt.Sprintf("voter-%d", n))
			}(i)
		}
		wg.Wait()

		got, err := uow.ChampionRepository().FindByID(ctx, sessionID, champion.Id)
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, voters, got.VoteCount())
		}

		assert.NoError(t, uow.ChampionRepository().Delete(ctx, sessionID, champion.Id))
	})

	t.Run("Transactional Champion Create", func(t *testing.T) {
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		champion := &entity.Champion{
			Id:        uuid.New(),
			SessionId: sessionID,
			Name:      "Tx Champion " + uuid.New().String(),
			Votes:     []string{},
			CreatedAt: time.Now(),
		}
		err = uow.ChampionRepository().Create(ctx, champion)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Champion in Transaction")
	})
}
