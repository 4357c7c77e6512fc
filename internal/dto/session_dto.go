package dto

import "time"

type SessionResponse struct {
	SessionId       string     `json:"session_id"`
	Title           string     `json:"title,omitempty"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	MaxVotesPerUser *int       `json:"max_votes_per_user,omitempty"`
}

type ResetSessionRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EndDate         *time.Time `json:"end_date"`
	MaxVotesPerUser *int       `json:"max_votes_per_user"`
}

type UpdateSessionRequest struct {
	Id              string
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status"`
	EndDate         *time.Time `json:"end_date"`
	MaxVotesPerUser *int       `json:"max_votes_per_user"`
}
