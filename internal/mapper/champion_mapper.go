package mapper

import (
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/model"

	"gorm.io/datatypes"
)

type ChampionMapper struct{}

func NewChampionMapper() *ChampionMapper {
	return &ChampionMapper{}
}

func (m *ChampionMapper) ToModel(e *entity.Champion) *model.Champion {
	return &model.Champion{
		Id:          e.Id,
		SessionId:   e.SessionId,
		Name:        e.Name,
		ImageURL:    e.ImageURL,
		Description: e.Description,
		Votes:       datatypes.NewJSONSlice(e.Votes),
		Extra:       datatypes.JSONMap(e.Extra),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

func (m *ChampionMapper) ToEntity(mod *model.Champion) *entity.Champion {
	votes := make([]string, len(mod.Votes))
	copy(votes, mod.Votes)
	return &entity.Champion{
		Id:          mod.Id,
		SessionId:   mod.SessionId,
		Name:        mod.Name,
		ImageURL:    mod.ImageURL,
		Description: mod.Description,
		Votes:       votes,
		CreatedAt:   mod.CreatedAt,
		CreatedBy:   mod.CreatedBy,
		Extra:       map[string]interface{}(mod.Extra),
	}
}

func (m *ChampionMapper) ToEntities(mods []*model.Champion) []*entity.Champion {
	out := make([]*entity.Champion, 0, len(mods))
	for _, mod := range mods {
		out = append(out, m.ToEntity(mod))
	}
	return out
}
