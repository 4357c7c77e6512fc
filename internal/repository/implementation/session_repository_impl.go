package implementation

import (
	"context"
	"errors"

	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/mapper"
	"champ-voting-be/internal/model"
	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.VotingSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) Update(ctx context.Context, session *entity.VotingSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.VotingSession{}, "id = ?", id).Error
}

func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.VotingSession, error) {
	var m model.VotingSession
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindLatest is the recency query: ORDER BY created_at DESC LIMIT 1.
func (r *SessionRepositoryImpl) FindLatest(ctx context.Context) (*entity.VotingSession, error) {
	var m model.VotingSession
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: 1},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context) ([]*entity.VotingSession, error) {
	var models []*model.VotingSession
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
