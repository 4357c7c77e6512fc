package contract

import (
	"context"

	"champ-voting-be/internal/entity"
)

// SessionRepository is the voting-session slice of the document store.
// FindLatest is the recency query that decides which session is current.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.VotingSession) error
	Update(ctx context.Context, session *entity.VotingSession) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.VotingSession, error)
	// FindLatest returns the session with the greatest creation timestamp,
	// or nil when no session exists.
	FindLatest(ctx context.Context) (*entity.VotingSession, error)
	// FindAll returns every session ordered newest first.
	FindAll(ctx context.Context) ([]*entity.VotingSession, error)
}
