package controller

import (
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
)

func toChampionResponse(c *entity.Champion) *dto.ChampionResponse {
	votes := make([]string, len(c.Votes))
	copy(votes, c.Votes)
	return &dto.ChampionResponse{
		Id:          c.Id,
		Name:        c.Name,
		ImageURL:    c.ImageURL,
		Description: c.Description,
		VoteCount:   c.VoteCount(),
		Votes:       votes,
		CreatedAt:   c.CreatedAt,
		CreatedBy:   c.CreatedBy,
	}
}

func toChampionResponses(champions []*entity.Champion) []*dto.ChampionResponse {
	out := make([]*dto.ChampionResponse, 0, len(champions))
	for _, c := range champions {
		out = append(out, toChampionResponse(c))
	}
	return out
}

func toSessionResponse(s *entity.VotingSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionId:       s.Id,
		Title:           s.Title,
		Description:     s.Description,
		Status:          s.Status,
		CreatedAt:       s.CreatedAt,
		EndDate:         s.EndDate,
		MaxVotesPerUser: s.MaxVotesPerUser,
	}
}
