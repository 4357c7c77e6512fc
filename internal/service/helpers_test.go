package service

import (
	"path/filepath"
	"testing"

	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type testDeps struct {
	factory   unitofwork.RepositoryFactory
	pubSub    *gochannel.GoChannel
	publisher IPublisherService
	logger    logger.ILogger
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	t.Cleanup(func() { pubSub.Close() })

	return &testDeps{
		factory:   unitofwork.NewMemoryFactory(),
		pubSub:    pubSub,
		publisher: NewPublisherService(pubSub, nil, log),
		logger:    log,
	}
}

func (d *testDeps) newSessionService() ISessionService {
	return NewSessionService(d.factory, d.pubSub, d.publisher, d.logger)
}

func (d *testDeps) newViewService(sessions ISessionService) IChampionViewService {
	return NewChampionViewService(d.factory, d.pubSub, sessions, d.publisher, d.logger)
}
