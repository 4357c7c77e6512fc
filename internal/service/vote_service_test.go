package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoteFixture(t *testing.T) (*testDeps, IChampionViewService, IVoteService) {
	t.Helper()
	deps := newTestDeps(t)
	sessions := deps.newSessionService()
	view := deps.newViewService(sessions)
	votes := NewVoteService(deps.factory, view, deps.publisher, deps.logger)
	return deps, view, votes
}

func TestVoteRequiresVoterIdentity(t *testing.T) {
	_, _, votes := newVoteFixture(t)

	err := votes.Vote(context.Background(), "session_x", uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	err = votes.Unvote(context.Background(), "session_x", uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestVoteAddsVoterOnce(t *testing.T) {
	deps, _, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri")

	require.NoError(t, votes.Vote(ctx, sessionID, champion.Id, "u1"))

	// A second submission without a refreshed snapshot cannot be
	// short-circuited locally; the store's set-union absorbs it.
	require.NoError(t, votes.Vote(ctx, sessionID, champion.Id, "u1"))

	uow := deps.factory.NewUnitOfWork(ctx)
	got, err := uow.ChampionRepository().FindByID(ctx, sessionID, champion.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteCount())
	assert.True(t, got.HasVote("u1"))
}

func TestVoteOnUnknownChampionFails(t *testing.T) {
	deps, _, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	seedChampion(t, deps, sessionID, "Ahri")

	// A vote against a removed or never-created champion must not be
	// acknowledged as success.
	err := votes.Vote(ctx, sessionID, uuid.New(), "u1")
	assert.ErrorIs(t, err, ErrChampionNotFound)

	err = votes.Unvote(ctx, sessionID, uuid.New(), "u1")
	assert.ErrorIs(t, err, ErrChampionNotFound)
}

func TestVoteShortCircuitsOnKnownVote(t *testing.T) {
	deps, view, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri")

	require.NoError(t, votes.Vote(ctx, sessionID, champion.Id, "u1"))

	// Once the snapshot knows about the vote, a duplicate is rejected
	// before it reaches the store.
	_, err := view.Refresh(ctx, sessionID)
	require.NoError(t, err)

	err = votes.Vote(ctx, sessionID, champion.Id, "u1")
	assert.ErrorIs(t, err, ErrAlreadyVoted)
}

func TestUnvoteIsNoOpWhenSnapshotShowsNoVote(t *testing.T) {
	deps, view, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri")

	_, err := view.Refresh(ctx, sessionID)
	require.NoError(t, err)

	// No vote recorded, nothing to remove, no error either
	assert.NoError(t, votes.Unvote(ctx, sessionID, champion.Id, "u1"))
}

func TestUnvoteRemovesVoter(t *testing.T) {
	deps, _, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri", "u1", "u2")

	require.NoError(t, votes.Unvote(ctx, sessionID, champion.Id, "u1"))

	uow := deps.factory.NewUnitOfWork(ctx)
	got, err := uow.ChampionRepository().FindByID(ctx, sessionID, champion.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VoteCount())
	assert.False(t, got.HasVote("u1"))
	assert.True(t, got.HasVote("u2"))
}

func TestHasVoted(t *testing.T) {
	deps, _, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	champion := seedChampion(t, deps, sessionID, "Ahri", "u1")

	voted, err := votes.HasVoted(ctx, sessionID, champion.Id, "u1")
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = votes.HasVoted(ctx, sessionID, champion.Id, "u2")
	require.NoError(t, err)
	assert.False(t, voted)

	voted, err = votes.HasVoted(ctx, sessionID, champion.Id, "")
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestVotesByListsHeldVotes(t *testing.T) {
	deps, _, votes := newVoteFixture(t)

	ctx := context.Background()
	const sessionID = "session_2026-01-01_10-00-00"
	a := seedChampion(t, deps, sessionID, "Ahri", "u1")
	seedChampion(t, deps, sessionID, "Garen", "u2")
	b := seedChampion(t, deps, sessionID, "Jinx", "u1", "u2")

	ids, err := votes.VotesBy(ctx, sessionID, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.Id, b.Id}, ids)

	ids, err = votes.VotesBy(ctx, sessionID, "")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
