package model

import (
	"time"
)

type VotingSession struct {
	Id              string `gorm:"type:varchar(64);primaryKey"`
	Title           string `gorm:"type:varchar(255)"`
	Description     string `gorm:"type:text"`
	Status          string `gorm:"type:varchar(32);not null;default:'active'"`
	CreatedAt       time.Time `gorm:"index"`
	EndDate         *time.Time
	MaxVotesPerUser *int
}

func (VotingSession) TableName() string {
	return "voting_sessions"
}
