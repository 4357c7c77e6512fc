package dto

import "github.com/google/uuid"

type VoteResponse struct {
	ChampionId uuid.UUID `json:"champion_id"`
	SessionId  string    `json:"session_id"`
}

type MyVotesResponse struct {
	SessionId   string      `json:"session_id"`
	ChampionIds []uuid.UUID `json:"champion_ids"`
}
