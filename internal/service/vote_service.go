package service

import (
	"context"
	"errors"
	"fmt"

	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IVoteService mutates a champion's vote set. It never computes the new set
// itself: membership changes are delegated to the store's atomic set-add /
// set-remove, so concurrent clients cannot lose updates. Success returns no
// tally; every caller converges on the server-confirmed state through the
// view's snapshot stream instead of trusting an optimistic local increment.
type IVoteService interface {
	Vote(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) error
	Unvote(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) error
	HasVoted(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) (bool, error)
	// VotesBy lists the champions the voter currently holds a vote on.
	VotesBy(ctx context.Context, sessionID, voterID string) ([]uuid.UUID, error)
}

type voteService struct {
	uowFactory       unitofwork.RepositoryFactory
	viewService      IChampionViewService
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewVoteService(
	uowFactory unitofwork.RepositoryFactory,
	viewService IChampionViewService,
	publisherService IPublisherService,
	log logger.ILogger,
) IVoteService {
	return &voteService{
		uowFactory:       uowFactory,
		viewService:      viewService,
		publisherService: publisherService,
		logger:           log,
	}
}

// snapshotHasVote consults the latest local snapshot. The second return
// value reports whether the champion was found there at all; a missing
// champion means the check is inconclusive and the store decides.
func (s *voteService) snapshotHasVote(sessionID string, championID uuid.UUID, voterID string) (voted, known bool) {
	for _, champion := range s.viewService.Snapshot(sessionID) {
		if champion.Id == championID {
			return champion.HasVote(voterID), true
		}
	}
	return false, false
}

func (s *voteService) Vote(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) error {
	if voterID == "" {
		return ErrNotAuthenticated
	}

	// Optimistic short-circuit, no store call. The authoritative guard is
	// the store's set-union: a racing double-submission lands as a no-op.
	if voted, known := s.snapshotHasVote(sessionID, championID, voterID); known && voted {
		return ErrAlreadyVoted
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChampionRepository().AddVote(ctx, sessionID, championID, voterID); err != nil {
		if errors.Is(err, contract.ErrChampionNotFound) {
			return ErrChampionNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.publisherService.PublishChampionChanged(ctx, sessionID); err != nil {
		s.logger.Warn("Vote", "Failed to publish vote change", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return nil
}

func (s *voteService) Unvote(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) error {
	if voterID == "" {
		return ErrNotAuthenticated
	}

	// No-op locally when the snapshot already shows no vote.
	if voted, known := s.snapshotHasVote(sessionID, championID, voterID); known && !voted {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChampionRepository().RemoveVote(ctx, sessionID, championID, voterID); err != nil {
		if errors.Is(err, contract.ErrChampionNotFound) {
			return ErrChampionNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.publisherService.PublishChampionChanged(ctx, sessionID); err != nil {
		s.logger.Warn("Vote", "Failed to publish vote change", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return nil
}

func (s *voteService) HasVoted(ctx context.Context, sessionID string, championID uuid.UUID, voterID string) (bool, error) {
	if voterID == "" {
		return false, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	champion, err := uow.ChampionRepository().FindByID(ctx, sessionID, championID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if champion == nil {
		return false, ErrChampionNotFound
	}
	return champion.HasVote(voterID), nil
}

func (s *voteService) VotesBy(ctx context.Context, sessionID, voterID string) ([]uuid.UUID, error) {
	if voterID == "" {
		return []uuid.UUID{}, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	champions, err := uow.ChampionRepository().FindAllBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := make([]uuid.UUID, 0)
	for _, champion := range champions {
		if champion.HasVote(voterID) {
			out = append(out, champion.Id)
		}
	}
	return out, nil
}
