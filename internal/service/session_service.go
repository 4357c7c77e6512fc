package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// sessionIDLayout renders wall-clock time into the persisted session id.
// The zero-padded format keeps lexical order aligned with temporal order.
const sessionIDLayout = "session_2006-01-02_15-04-05"

// ISessionService owns the notion of "which session is current". The
// current session is the one with the greatest creation timestamp; there is
// no mutable pointer document, so there is nothing to race against.
type ISessionService interface {
	// Ensure applies the startup policy: resolve the current session and
	// create one when none exists. The system never runs without a current
	// session after initialization.
	Ensure(ctx context.Context) (*entity.VotingSession, error)
	// ResolveCurrent queries the store for the most recent session and
	// adopts it. Returns nil when no session exists.
	ResolveCurrent(ctx context.Context) (*entity.VotingSession, error)
	// Create starts a new session and adopts it as current, superseding the
	// previous one. Old sessions stay in the store but become unreachable
	// from the current pointer.
	Create(ctx context.Context, req *dto.ResetSessionRequest) (*entity.VotingSession, error)
	// Current returns the locally adopted session, nil before resolution.
	Current() *entity.VotingSession
	// Subscribe emits the current session id and every subsequent change
	// until ctx is canceled.
	Subscribe(ctx context.Context) (<-chan string, error)
	// Run follows the change bus so sessions adopted on other instances are
	// adopted here too. Blocks until ctx is canceled.
	Run(ctx context.Context) error

	List(ctx context.Context) ([]*dto.SessionResponse, error)
	Update(ctx context.Context, req *dto.UpdateSessionRequest) error
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	pubSub           *gochannel.GoChannel
	publisherService IPublisherService
	logger           logger.ILogger

	mu      sync.RWMutex
	current *entity.VotingSession
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	publisherService IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		pubSub:           pubSub,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *sessionService) Current() *entity.VotingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *sessionService) setCurrent(session *entity.VotingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
}

func (s *sessionService) ResolveCurrent(ctx context.Context) (*entity.VotingSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.SessionRepository().FindLatest(ctx)
	if err != nil {
		// Local state untouched; the caller sees the store failure.
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if latest == nil {
		s.setCurrent(nil)
		return nil, nil
	}
	s.setCurrent(latest)
	return latest, nil
}

func (s *sessionService) Ensure(ctx context.Context) (*entity.VotingSession, error) {
	current, err := s.ResolveCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return current, nil
	}
	s.logger.Info("Session", "No voting session found, creating one", nil)
	return s.Create(ctx, &dto.ResetSessionRequest{})
}

func (s *sessionService) Create(ctx context.Context, req *dto.ResetSessionRequest) (*entity.VotingSession, error) {
	now := time.Now()
	session := &entity.VotingSession{
		Id:              now.Format(sessionIDLayout),
		Title:           req.Title,
		Description:     req.Description,
		Status:          entity.SessionStatusActive,
		CreatedAt:       now,
		EndDate:         req.EndDate,
		MaxVotesPerUser: req.MaxVotesPerUser,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.setCurrent(session)

	if err := s.publisherService.PublishSessionChanged(ctx, session.Id); err != nil {
		s.logger.Warn("Session", "Failed to publish session change", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	s.logger.Info("Session", "New voting session adopted", map[string]interface{}{
		"session_id": session.Id,
	})
	return session, nil
}

func (s *sessionService) Subscribe(ctx context.Context) (<-chan string, error) {
	msgs, err := s.pubSub.Subscribe(ctx, TopicSessionChanged)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)

		lastID := ""
		if current := s.Current(); current != nil {
			lastID = current.Id
			select {
			case out <- current.Id:
			case <-ctx.Done():
				return
			}
		}

		for msg := range msgs {
			var payload dto.SessionChangedMessage
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			if payload.SessionId == lastID {
				continue
			}
			lastID = payload.SessionId
			select {
			case out <- payload.SessionId:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *sessionService) Run(ctx context.Context) error {
	msgs, err := s.pubSub.Subscribe(ctx, TopicSessionChanged)
	if err != nil {
		return err
	}

	for msg := range msgs {
		var payload dto.SessionChangedMessage
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			msg.Ack()
			continue
		}
		msg.Ack()

		// Locally created sessions were adopted synchronously in Create.
		if payload.Origin == s.publisherService.InstanceID() {
			continue
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		session, err := uow.SessionRepository().FindByID(ctx, payload.SessionId)
		if err != nil || session == nil {
			s.logger.Warn("Session", "Could not load remotely adopted session", map[string]interface{}{
				"session_id": payload.SessionId,
			})
			continue
		}
		s.setCurrent(session)
		s.logger.Info("Session", "Adopted session from another instance", map[string]interface{}{
			"session_id": session.Id,
		})
	}
	return nil
}

func (s *sessionService) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, &dto.SessionResponse{
			SessionId:       session.Id,
			Title:           session.Title,
			Description:     session.Description,
			Status:          session.Status,
			CreatedAt:       session.CreatedAt,
			EndDate:         session.EndDate,
			MaxVotesPerUser: session.MaxVotesPerUser,
		})
	}
	return out, nil
}

func (s *sessionService) Update(ctx context.Context, req *dto.UpdateSessionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindByID(ctx, req.Id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Status != nil {
		session.Status = *req.Status
	}
	if req.EndDate != nil {
		session.EndDate = req.EndDate
	}
	if req.MaxVotesPerUser != nil {
		session.MaxVotesPerUser = req.MaxVotesPerUser
	}

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if current := s.Current(); current != nil && current.Id == session.Id {
		s.setCurrent(session)
	}
	return nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
