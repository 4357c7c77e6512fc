package contract

import (
	"context"

	"champ-voting-be/internal/entity"

	"github.com/google/uuid"
)

// ChampionRepository is the champion slice of the document store.
//
// AddVote and RemoveVote carry the whole consistency story: they must be
// single atomic set-union / set-difference operations executed store-side.
// Adding a voter who is already present and removing one who is absent are
// both no-ops, but a mutation against a champion id that does not exist in
// the session returns ErrChampionNotFound. Implementations must never read
// the vote set, modify it in process and write it back.
type ChampionRepository interface {
	Create(ctx context.Context, champion *entity.Champion) error
	Delete(ctx context.Context, sessionID string, id uuid.UUID) error
	FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*entity.Champion, error)
	// FindByNameFold matches the champion name case-insensitively within a session.
	FindByNameFold(ctx context.Context, sessionID, name string) (*entity.Champion, error)
	FindAllBySession(ctx context.Context, sessionID string) ([]*entity.Champion, error)

	AddVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error
	RemoveVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error
}
