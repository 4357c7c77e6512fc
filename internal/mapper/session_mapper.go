package mapper

import (
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToModel(e *entity.VotingSession) *model.VotingSession {
	return &model.VotingSession{
		Id:              e.Id,
		Title:           e.Title,
		Description:     e.Description,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		EndDate:         e.EndDate,
		MaxVotesPerUser: e.MaxVotesPerUser,
	}
}

func (m *SessionMapper) ToEntity(mod *model.VotingSession) *entity.VotingSession {
	return &entity.VotingSession{
		Id:              mod.Id,
		Title:           mod.Title,
		Description:     mod.Description,
		Status:          mod.Status,
		CreatedAt:       mod.CreatedAt,
		EndDate:         mod.EndDate,
		MaxVotesPerUser: mod.MaxVotesPerUser,
	}
}

func (m *SessionMapper) ToEntities(mods []*model.VotingSession) []*entity.VotingSession {
	out := make([]*entity.VotingSession, 0, len(mods))
	for _, mod := range mods {
		out = append(out, m.ToEntity(mod))
	}
	return out
}
