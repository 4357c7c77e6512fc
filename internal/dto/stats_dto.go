package dto

type StatsResponse struct {
	SessionId     string            `json:"session_id"`
	TotalVotes    int               `json:"total_votes"`
	ChampionCount int               `json:"champion_count"`
	Leader        *ChampionResponse `json:"leader,omitempty"`
	MyVotes       int               `json:"my_votes"`
}
