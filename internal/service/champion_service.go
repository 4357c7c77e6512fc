package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ViewSnapshot is one full emission of the champion view: the whole ordered
// champion list of a session, never a diff. Origin names the instance whose
// mutation triggered it ("" for an initial load).
type ViewSnapshot struct {
	SessionId string
	Champions []*entity.Champion
	Origin    string
}

// IChampionViewService maintains the live, sorted projection of all
// champions in a session. Every change event triggers a full reload from
// the store: incoming state replaces the local projection, it is never
// merged into it.
type IChampionViewService interface {
	// Subscribe opens a live snapshot stream for one session. The first
	// emission is the current state; one follows per change. Canceling ctx
	// releases the underlying bus subscription; resubscribing yields a
	// fresh initial snapshot.
	Subscribe(ctx context.Context, sessionID string) (<-chan ViewSnapshot, error)
	// Watch follows the current-session stream, keeping exactly one live
	// session subscription: the previous one is canceled before the next
	// opens. Every snapshot is handed to sink. Blocks until ctx ends.
	Watch(ctx context.Context, sink func(ViewSnapshot)) error
	// Snapshot returns the latest cached ordered snapshot for the session,
	// empty before the first load.
	Snapshot(sessionID string) []*entity.Champion
	// Refresh loads, sorts and caches the session's champions.
	Refresh(ctx context.Context, sessionID string) ([]*entity.Champion, error)

	AddChampion(ctx context.Context, sessionID, voterID string, req *dto.AddChampionRequest) (*dto.AddChampionResponse, error)
	RemoveChampion(ctx context.Context, sessionID string, id uuid.UUID) error
}

type championViewService struct {
	uowFactory       unitofwork.RepositoryFactory
	pubSub           *gochannel.GoChannel
	sessionService   ISessionService
	publisherService IPublisherService
	logger           logger.ILogger

	mu        sync.RWMutex
	snapshots map[string][]*entity.Champion
}

func NewChampionViewService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	sessionService ISessionService,
	publisherService IPublisherService,
	log logger.ILogger,
) IChampionViewService {
	return &championViewService{
		uowFactory:       uowFactory,
		pubSub:           pubSub,
		sessionService:   sessionService,
		publisherService: publisherService,
		logger:           log,
		snapshots:        make(map[string][]*entity.Champion),
	}
}

// sortChampions orders by vote count descending, then name ascending, then
// id. The id tie-break keeps the order total even if a name race slipped
// two equal names into one session.
func sortChampions(champions []*entity.Champion) {
	sort.SliceStable(champions, func(i, j int) bool {
		if champions[i].VoteCount() != champions[j].VoteCount() {
			return champions[i].VoteCount() > champions[j].VoteCount()
		}
		if champions[i].Name != champions[j].Name {
			return champions[i].Name < champions[j].Name
		}
		return champions[i].Id.String() < champions[j].Id.String()
	})
}

func (s *championViewService) Refresh(ctx context.Context, sessionID string) ([]*entity.Champion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	champions, err := uow.ChampionRepository().FindAllBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	sortChampions(champions)

	s.mu.Lock()
	s.snapshots[sessionID] = champions
	s.mu.Unlock()

	return champions, nil
}

func (s *championViewService) Snapshot(sessionID string) []*entity.Champion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.snapshots[sessionID]
	out := make([]*entity.Champion, len(snapshot))
	copy(out, snapshot)
	return out
}

func (s *championViewService) Subscribe(ctx context.Context, sessionID string) (<-chan ViewSnapshot, error) {
	msgs, err := s.pubSub.Subscribe(ctx, TopicChampionChanged)
	if err != nil {
		return nil, err
	}

	out := make(chan ViewSnapshot, 1)
	go func() {
		defer close(out)

		initial, err := s.Refresh(ctx, sessionID)
		if err != nil {
			s.logger.Error("ChampionView", "Initial snapshot load failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			return
		}
		select {
		case out <- ViewSnapshot{SessionId: sessionID, Champions: initial}:
		case <-ctx.Done():
			return
		}

		for msg := range msgs {
			var payload dto.ChampionChangedMessage
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			if payload.SessionId != sessionID {
				continue
			}

			champions, err := s.Refresh(ctx, sessionID)
			if err != nil {
				// The stream ends on a load failure; the consumer decides
				// whether to resubscribe. No auto-retry here.
				s.logger.Error("ChampionView", "Snapshot reload failed, closing stream", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				return
			}
			select {
			case out <- ViewSnapshot{SessionId: sessionID, Champions: champions, Origin: payload.Origin}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *championViewService) Watch(ctx context.Context, sink func(ViewSnapshot)) error {
	sessions, err := s.sessionService.Subscribe(ctx)
	if err != nil {
		return err
	}

	var cancel context.CancelFunc
	var readerDone chan struct{}
	defer func() {
		if cancel != nil {
			cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sessionID, ok := <-sessions:
			if !ok {
				return nil
			}
			// One live subscription at a time: tear the old one down and
			// wait for its reader to exit before the next stream starts,
			// otherwise a snapshot still in flight for the old session
			// could land in sink after its successor's first emission.
			if cancel != nil {
				cancel()
				<-readerDone
				cancel = nil
			}
			subCtx, c := context.WithCancel(ctx)

			snapshots, err := s.Subscribe(subCtx, sessionID)
			if err != nil {
				c()
				s.logger.Error("ChampionView", "Failed to subscribe to session", map[string]interface{}{
					"session_id": sessionID,
					"error":      err.Error(),
				})
				continue
			}
			cancel = c
			done := make(chan struct{})
			readerDone = done
			go func() {
				defer close(done)
				for {
					select {
					case <-subCtx.Done():
						return
					case snapshot, ok := <-snapshots:
						if !ok {
							return
						}
						sink(snapshot)
					}
				}
			}()
		}
	}
}

func (s *championViewService) AddChampion(ctx context.Context, sessionID, voterID string, req *dto.AddChampionRequest) (*dto.AddChampionResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyChampionName
	}

	// Best-effort duplicate check against the latest snapshot. A race with
	// a concurrent identical add can slip through; the snapshot stream then
	// surfaces both entries.
	for _, champion := range s.Snapshot(sessionID) {
		if strings.EqualFold(champion.Name, name) {
			return nil, ErrDuplicateChampion
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if existing, err := uow.ChampionRepository().FindByNameFold(ctx, sessionID, name); err == nil && existing != nil {
		return nil, ErrDuplicateChampion
	}

	champion := &entity.Champion{
		Id:          uuid.New(),
		SessionId:   sessionID,
		Name:        name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Votes:       []string{},
		CreatedAt:   time.Now(),
		CreatedBy:   voterID,
	}
	if err := uow.ChampionRepository().Create(ctx, champion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.publisherService.PublishChampionChanged(ctx, sessionID); err != nil {
		s.logger.Warn("ChampionView", "Failed to publish champion change", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return &dto.AddChampionResponse{Id: champion.Id}, nil
}

func (s *championViewService) RemoveChampion(ctx context.Context, sessionID string, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	champion, err := uow.ChampionRepository().FindByID(ctx, sessionID, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if champion == nil {
		return ErrChampionNotFound
	}

	if err := uow.ChampionRepository().Delete(ctx, sessionID, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.publisherService.PublishChampionChanged(ctx, sessionID); err != nil {
		s.logger.Warn("ChampionView", "Failed to publish champion change", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return nil
}
