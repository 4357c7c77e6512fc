package unitofwork

import (
	"context"

	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/memory"
)

// MemoryFactory serves the in-memory repositories. Every unit of work sees
// the same shared stores, so tests and the storeless dev mode behave like a
// single remote document store.
type MemoryFactory struct {
	sessions  contract.SessionRepository
	champions contract.ChampionRepository
	users     contract.UserRepository
}

func NewMemoryFactory() RepositoryFactory {
	return &MemoryFactory{
		sessions:  memory.NewSessionRepository(),
		champions: memory.NewChampionRepository(),
		users:     memory.NewUserRepository(),
	}
}

func (f *MemoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &memoryUnitOfWork{factory: f}
}

type memoryUnitOfWork struct {
	factory *MemoryFactory
}

// The memory store has no transactions; Begin/Commit/Rollback are no-ops.
func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.factory.sessions
}

func (u *memoryUnitOfWork) ChampionRepository() contract.ChampionRepository {
	return u.factory.champions
}

func (u *memoryUnitOfWork) UserRepository() contract.UserRepository {
	return u.factory.users
}
