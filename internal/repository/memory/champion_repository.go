package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ChampionRepository keeps champion documents in process memory. Vote
// mutations hold the lock for the whole check-and-mutate, mirroring the
// atomic set semantics the SQL implementation gets from jsonb operators.
type ChampionRepository struct {
	mu sync.RWMutex
	// sessionID -> championID -> champion
	champions map[string]map[uuid.UUID]*entity.Champion
}

func NewChampionRepository() contract.ChampionRepository {
	return &ChampionRepository{
		champions: make(map[string]map[uuid.UUID]*entity.Champion),
	}
}

func cloneChampion(c *entity.Champion) *entity.Champion {
	cp := *c
	cp.Votes = make([]string, len(c.Votes))
	copy(cp.Votes, c.Votes)
	if c.Extra != nil {
		cp.Extra = make(map[string]interface{}, len(c.Extra))
		for k, v := range c.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

func (r *ChampionRepository) Create(ctx context.Context, champion *entity.Champion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if champion.Id == uuid.Nil {
		champion.Id = uuid.New()
	}
	if champion.CreatedAt.IsZero() {
		champion.CreatedAt = time.Now()
	}
	if champion.Votes == nil {
		champion.Votes = []string{}
	}

	session, ok := r.champions[champion.SessionId]
	if !ok {
		session = make(map[uuid.UUID]*entity.Champion)
		r.champions[champion.SessionId] = session
	}
	session[champion.Id] = cloneChampion(champion)
	return nil
}

func (r *ChampionRepository) Delete(ctx context.Context, sessionID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.champions[sessionID]; ok {
		delete(session, id)
	}
	return nil
}

func (r *ChampionRepository) FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*entity.Champion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if session, ok := r.champions[sessionID]; ok {
		if c, ok := session[id]; ok {
			return cloneChampion(c), nil
		}
	}
	return nil, nil
}

func (r *ChampionRepository) FindByNameFold(ctx context.Context, sessionID, name string) (*entity.Champion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.champions[sessionID] {
		if strings.EqualFold(c.Name, name) {
			return cloneChampion(c), nil
		}
	}
	return nil, nil
}

func (r *ChampionRepository) FindAllBySession(ctx context.Context, sessionID string) ([]*entity.Champion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session := r.champions[sessionID]
	out := make([]*entity.Champion, 0, len(session))
	for _, c := range session {
		out = append(out, cloneChampion(c))
	}
	return out, nil
}

func (r *ChampionRepository) AddVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.champions[sessionID]
	if !ok {
		return contract.ErrChampionNotFound
	}
	c, ok := session[id]
	if !ok {
		return contract.ErrChampionNotFound
	}
	for _, v := range c.Votes {
		if v == voterID {
			return nil // already a member, set semantics
		}
	}
	c.Votes = append(c.Votes, voterID)
	return nil
}

func (r *ChampionRepository) RemoveVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.champions[sessionID]
	if !ok {
		return contract.ErrChampionNotFound
	}
	c, ok := session[id]
	if !ok {
		return contract.ErrChampionNotFound
	}
	for i, v := range c.Votes {
		if v == voterID {
			c.Votes = append(c.Votes[:i], c.Votes[i+1:]...)
			return nil
		}
	}
	return nil // absent member, no-op
}
