package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddChampionRequest struct {
	Name        string `json:"name" validate:"required"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

type AddChampionResponse struct {
	Id uuid.UUID `json:"id"`
}

// ChampionResponse is one entry of a view snapshot. VoteCount is derived
// from the vote set at mapping time, never carried independently.
type ChampionResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`
	VoteCount   int       `json:"vote_count"`
	Votes       []string  `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}
