package memory

import (
	"context"

	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionRepository is an in-memory stand-in for the session store, used by
// unit tests and the storeless dev mode. Sessions never expire: archival is
// implicit, an old session just stops being the latest.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() contract.SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.VotingSession) error {
	cp := *session
	r.cache.Set(session.Id, &cp, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, session *entity.VotingSession) error {
	cp := *session
	r.cache.Set(session.Id, &cp, cache.NoExpiration)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entity.VotingSession, error) {
	if x, found := r.cache.Get(id); found {
		cp := *(x.(*entity.VotingSession))
		return &cp, nil
	}
	return nil, nil
}

func (r *SessionRepository) FindLatest(ctx context.Context) (*entity.VotingSession, error) {
	var latest *entity.VotingSession
	for _, item := range r.cache.Items() {
		s := item.Object.(*entity.VotingSession)
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]*entity.VotingSession, error) {
	out := make([]*entity.VotingSession, 0, r.cache.ItemCount())
	for _, item := range r.cache.Items() {
		cp := *(item.Object.(*entity.VotingSession))
		out = append(out, &cp)
	}
	// newest first, matching the store query
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}
