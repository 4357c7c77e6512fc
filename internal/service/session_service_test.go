package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionIDPattern = regexp.MustCompile(`^session_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`)

func TestEnsureCreatesSessionWhenStoreIsEmpty(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	session, err := svc.Ensure(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Regexp(t, sessionIDPattern, session.Id)
	assert.Equal(t, entity.SessionStatusActive, session.Status)

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, session.Id, current.Id)
}

func TestEnsureAdoptsExistingSession(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	ctx := context.Background()
	uow := deps.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_10-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	session, err := svc.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session_2026-01-01_10-00-00", session.Id)
}

func TestResolveCurrentPicksNewestSession(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	ctx := context.Background()
	uow := deps.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_10-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_12-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}))

	session, err := svc.ResolveCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "session_2026-01-01_12-00-00", session.Id)
}

func TestCreateSupersedesCurrentSession(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	ctx := context.Background()
	uow := deps.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_10-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}))
	_, err := svc.ResolveCurrent(ctx)
	require.NoError(t, err)

	created, err := svc.Create(ctx, &dto.ResetSessionRequest{Title: "Fresh round"})
	require.NoError(t, err)

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, created.Id, current.Id)
	assert.Equal(t, "Fresh round", current.Title)

	// The old session is still in the store, just no longer current
	old, err := uow.SessionRepository().FindByID(ctx, "session_2026-01-01_10-00-00")
	require.NoError(t, err)
	assert.NotNil(t, old)
}

func TestResolveCurrentKeepsStateOnStoreFailure(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	ctx := context.Background()
	_, err := svc.Ensure(ctx)
	require.NoError(t, err)
	adopted := svc.Current()
	require.NotNil(t, adopted)

	// Swap in a factory whose session repository always fails
	failing := NewSessionService(&failingFactory{}, deps.pubSub, deps.publisher, deps.logger)
	_, err = failing.ResolveCurrent(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// The healthy service's adopted session is untouched by its own failure path
	_, err = svc.ResolveCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, adopted.Id, svc.Current().Id)
}

func TestSubscribeEmitsCurrentThenChanges(t *testing.T) {
	deps := newTestDeps(t)
	svc := deps.newSessionService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Ensure(ctx)
	require.NoError(t, err)
	first := svc.Current().Id

	sessions, err := svc.Subscribe(ctx)
	require.NoError(t, err)

	select {
	case id := <-sessions:
		assert.Equal(t, first, id)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial session id")
	}
}

// failingFactory simulates a dead store.
type failingFactory struct{}

func (f *failingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &failingUnitOfWork{}
}

type failingUnitOfWork struct{}

var errStoreDown = errors.New("store down")

func (u *failingUnitOfWork) Begin(ctx context.Context) error { return errStoreDown }
func (u *failingUnitOfWork) Commit() error                   { return errStoreDown }
func (u *failingUnitOfWork) Rollback() error                 { return errStoreDown }

func (u *failingUnitOfWork) SessionRepository() contract.SessionRepository {
	return &failingSessionRepository{}
}
func (u *failingUnitOfWork) ChampionRepository() contract.ChampionRepository { return nil }
func (u *failingUnitOfWork) UserRepository() contract.UserRepository         { return nil }

type failingSessionRepository struct{}

func (r *failingSessionRepository) Create(ctx context.Context, session *entity.VotingSession) error {
	return errStoreDown
}
func (r *failingSessionRepository) Update(ctx context.Context, session *entity.VotingSession) error {
	return errStoreDown
}
func (r *failingSessionRepository) Delete(ctx context.Context, id string) error { return errStoreDown }
func (r *failingSessionRepository) FindByID(ctx context.Context, id string) (*entity.VotingSession, error) {
	return nil, errStoreDown
}
func (r *failingSessionRepository) FindLatest(ctx context.Context) (*entity.VotingSession, error) {
	return nil, errStoreDown
}
func (r *failingSessionRepository) FindAll(ctx context.Context) ([]*entity.VotingSession, error) {
	return nil, errStoreDown
}
