package service

import (
	"context"
	"testing"
	"time"

	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChampion(t *testing.T, deps *testDeps, sessionID, name string, votes ...string) *entity.Champion {
	t.Helper()
	champion := &entity.Champion{
		Id:        uuid.New(),
		SessionId: sessionID,
		Name:      name,
		Votes:     votes,
		CreatedAt: time.Now(),
	}
	uow := deps.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChampionRepository().Create(context.Background(), champion))
	return champion
}

func TestRefreshOrdersByVotesThenName(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	const sessionID = "session_2026-01-01_10-00-00"
	seedChampion(t, deps, sessionID, "Yasuo", "u1")
	seedChampion(t, deps, sessionID, "Ahri", "u1", "u2")
	seedChampion(t, deps, sessionID, "Garen", "u3")
	seedChampion(t, deps, sessionID, "Jinx")

	snapshot, err := view.Refresh(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, snapshot, 4)

	names := []string{snapshot[0].Name, snapshot[1].Name, snapshot[2].Name, snapshot[3].Name}
	assert.Equal(t, []string{"Ahri", "Garen", "Yasuo", "Jinx"}, names)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	const sessionID = "session_2026-01-01_10-00-00"
	seedChampion(t, deps, sessionID, "Ahri")

	_, err := view.Refresh(context.Background(), sessionID)
	require.NoError(t, err)

	snapshot := view.Snapshot(sessionID)
	require.Len(t, snapshot, 1)
	snapshot[0] = nil

	assert.NotNil(t, view.Snapshot(sessionID)[0])
}

func TestAddChampionRejectsEmptyName(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	_, err := view.AddChampion(context.Background(), "session_x", "u1", &dto.AddChampionRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyChampionName)
}

func TestAddChampionRejectsDuplicateNameCaseFold(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"

	_, err := view.AddChampion(ctx, sessionID, "u1", &dto.AddChampionRequest{Name: "Luxanna"})
	require.NoError(t, err)

	_, err = view.AddChampion(ctx, sessionID, "u2", &dto.AddChampionRequest{Name: "luxanna"})
	assert.ErrorIs(t, err, ErrDuplicateChampion)
}

func TestSubscribeEmitsInitialSnapshotAndReloadsOnChange(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const sessionID = "session_2026-01-01_10-00-00"
	seedChampion(t, deps, sessionID, "Ahri")

	snapshots, err := view.Subscribe(ctx, sessionID)
	require.NoError(t, err)

	select {
	case snapshot := <-snapshots:
		assert.Equal(t, sessionID, snapshot.SessionId)
		assert.Len(t, snapshot.Champions, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	_, err = view.AddChampion(ctx, sessionID, "u1", &dto.AddChampionRequest{Name: "Garen"})
	require.NoError(t, err)

	select {
	case snapshot := <-snapshots:
		assert.Len(t, snapshot.Champions, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reloaded snapshot")
	}
}

func TestSubscribeIgnoresOtherSessions(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, err := view.Subscribe(ctx, "session_a")
	require.NoError(t, err)

	// Initial emission for the empty session
	select {
	case snapshot := <-snapshots:
		assert.Empty(t, snapshot.Champions)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	// A change in an unrelated session must not produce an emission
	_, err = view.AddChampion(ctx, "session_b", "u1", &dto.AddChampionRequest{Name: "Jinx"})
	require.NoError(t, err)

	select {
	case snapshot, ok := <-snapshots:
		if ok {
			t.Fatalf("unexpected emission for foreign session change: %+v", snapshot)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSubscribeStopsAfterCancel(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())

	const sessionID = "session_2026-01-01_10-00-00"
	snapshots, err := view.Subscribe(ctx, sessionID)
	require.NoError(t, err)
	<-snapshots // initial

	cancel()

	// The stream drains and closes; no further emissions arrive
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-snapshots:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancel")
		}
	}
}

func TestWatchFollowsSessionChanges(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Seed the current session with a past timestamp so the reset below
	// cannot collide with its id.
	uow := deps.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_10-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}))
	first, err := sessions.ResolveCurrent(ctx)
	require.NoError(t, err)

	sink := make(chan ViewSnapshot, 8)
	go func() {
		_ = view.Watch(ctx, func(snapshot ViewSnapshot) { sink <- snapshot })
	}()

	select {
	case snapshot := <-sink:
		assert.Equal(t, first.Id, snapshot.SessionId)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial watched snapshot")
	}

	// Resetting the session moves the watch pipeline to the new session
	second, err := sessions.Create(ctx, &dto.ResetSessionRequest{})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot := <-sink:
			if snapshot.SessionId == second.Id {
				assert.Empty(t, snapshot.Champions)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for new session snapshot")
		}
	}
}

func TestWatchDropsStaleSnapshotsAfterSessionSwitch(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uow := deps.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SessionRepository().Create(ctx, &entity.VotingSession{
		Id:        "session_2026-01-01_10-00-00",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	}))
	first, err := sessions.ResolveCurrent(ctx)
	require.NoError(t, err)

	// Unbuffered sink so emissions queue up inside the pipeline while the
	// test is not reading.
	sink := make(chan ViewSnapshot)
	go func() {
		_ = view.Watch(ctx, func(snapshot ViewSnapshot) {
			select {
			case sink <- snapshot:
			case <-ctx.Done():
			}
		})
	}()

	select {
	case snapshot := <-sink:
		require.Equal(t, first.Id, snapshot.SessionId)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial watched snapshot")
	}

	// Two queued changes for the old session while nobody drains the sink
	require.NoError(t, deps.publisher.PublishChampionChanged(ctx, first.Id))
	require.NoError(t, deps.publisher.PublishChampionChanged(ctx, first.Id))
	time.Sleep(100 * time.Millisecond)

	second, err := sessions.Create(ctx, &dto.ResetSessionRequest{})
	require.NoError(t, err)

	// In-flight old-session snapshots may still drain out, but only before
	// the new session's first emission.
	deadline := time.After(2 * time.Second)
drain:
	for {
		select {
		case snapshot := <-sink:
			if snapshot.SessionId == second.Id {
				break drain
			}
			require.Equal(t, first.Id, snapshot.SessionId)
		case <-deadline:
			t.Fatal("timed out waiting for new session snapshot")
		}
	}

	for {
		select {
		case snapshot := <-sink:
			if snapshot.SessionId == first.Id {
				t.Fatalf("old session snapshot arrived after the switch to %s", second.Id)
			}
		case <-time.After(300 * time.Millisecond):
			return
		}
	}
}

func TestRemoveChampionEmitsChange(t *testing.T) {
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri")

	snapshots, err := view.Subscribe(ctx, sessionID)
	require.NoError(t, err)
	<-snapshots // initial

	require.NoError(t, view.RemoveChampion(ctx, sessionID, champion.Id))

	select {
	case snapshot := <-snapshots:
		assert.Empty(t, snapshot.Champions)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal snapshot")
	}
}
