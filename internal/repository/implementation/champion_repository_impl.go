package implementation

import (
	"context"
	"errors"

	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/mapper"
	"champ-voting-be/internal/model"
	"champ-voting-be/internal/repository/contract"
	"champ-voting-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChampionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChampionMapper
}

func NewChampionRepository(db *gorm.DB) contract.ChampionRepository {
	return &ChampionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChampionMapper(),
	}
}

func (r *ChampionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChampionRepositoryImpl) Create(ctx context.Context, champion *entity.Champion) error {
	m := r.mapper.ToModel(champion)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*champion = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChampionRepositoryImpl) Delete(ctx context.Context, sessionID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.Champion{}, "id = ?", id).Error
}

func (r *ChampionRepositoryImpl) FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*entity.Champion, error) {
	var m model.Champion
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySessionID{SessionID: sessionID},
		specification.ByID{ID: id},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChampionRepositoryImpl) FindByNameFold(ctx context.Context, sessionID, name string) (*entity.Champion, error) {
	var m model.Champion
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySessionID{SessionID: sessionID},
		specification.ByNameFold{Name: name},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChampionRepositoryImpl) FindAllBySession(ctx context.Context, sessionID string) ([]*entity.Champion, error) {
	var models []*model.Champion
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySessionID{SessionID: sessionID},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// AddVote appends the voter to the jsonb vote set in a single statement.
// The jsonb_exists CASE makes re-adding an existing voter a no-op, so
// concurrent double-submissions cannot produce a duplicate. The vote set is
// never read into the process and written back. The dedupe lives in SET
// rather than WHERE so the row always matches when the champion exists and
// a zero row count can only mean a missing champion.
func (r *ChampionRepositoryImpl) AddVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error {
	tx := r.db.WithContext(ctx).Exec(
		`UPDATE champions
		    SET votes = CASE WHEN jsonb_exists(votes, ?) THEN votes
		                     ELSE votes || to_jsonb(?::text) END
		  WHERE id = ? AND session_id = ?`,
		voterID, voterID, id, sessionID,
	)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return contract.ErrChampionNotFound
	}
	return nil
}

// RemoveVote deletes the voter from the jsonb vote set in a single statement.
// jsonb minus a missing element is a no-op.
func (r *ChampionRepositoryImpl) RemoveVote(ctx context.Context, sessionID string, id uuid.UUID, voterID string) error {
	tx := r.db.WithContext(ctx).Exec(
		`UPDATE champions
		    SET votes = votes - ?::text
		  WHERE id = ? AND session_id = ?`,
		voterID, id, sessionID,
	)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return contract.ErrChampionNotFound
	}
	return nil
}
